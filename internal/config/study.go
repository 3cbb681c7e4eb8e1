package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gopower/domain/power"
)

// Study is a declarative sweep definition loaded from YAML
type Study struct {
	Name        string  `yaml:"name"`
	SampleSizes []int   `yaml:"sample_sizes"`
	Iterations  int     `yaml:"iterations"`
	Alpha       float64 `yaml:"alpha"`
	Workers     int     `yaml:"workers"`
	Seed        int64   `yaml:"seed"`
	BudgetMs    int     `yaml:"budget_ms"`
	Policy      string  `yaml:"policy"`
}

// LoadStudy parses a study file from disk
func LoadStudy(path string) (*Study, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study file: %w", err)
	}
	return ParseStudy(raw)
}

// ParseStudy parses a YAML study definition
func ParseStudy(raw []byte) (*Study, error) {
	var study Study
	if err := yaml.Unmarshal(raw, &study); err != nil {
		return nil, fmt.Errorf("parsing study definition: %w", err)
	}
	if study.Name == "" {
		return nil, fmt.Errorf("study needs a name")
	}
	return &study, nil
}

// SweepRequest converts the study into an estimator request, filling gaps
// from the environment config. The request still goes through its own
// validation when the estimator runs it.
func (s *Study) SweepRequest(cfg *Config) (power.SweepRequest, error) {
	req := power.SweepRequest{
		SampleSizes: s.SampleSizes,
		Iterations:  s.Iterations,
		Workers:     s.Workers,
		Seed:        s.Seed,
		Budget:      time.Duration(s.BudgetMs) * time.Millisecond,
		Policy:      power.FailurePolicy(s.Policy),
	}
	alpha := s.Alpha
	if cfg != nil {
		if req.Iterations == 0 {
			req.Iterations = cfg.Iterations
		}
		if req.Workers == 0 {
			req.Workers = cfg.Workers
		}
		if req.Budget == 0 {
			req.Budget = cfg.Budget
		}
		if alpha == 0 {
			alpha = cfg.Alpha
		}
	}
	if alpha <= 0 || alpha >= 1 {
		return power.SweepRequest{}, fmt.Errorf("study %s: alpha must be in (0, 1), got %f", s.Name, alpha)
	}
	req.Criterion = power.MaxPValue(alpha)
	return req, nil
}
