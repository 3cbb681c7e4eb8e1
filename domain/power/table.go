package power

// Row summarizes all trials at one sample size. Power values are empirical
// proportions over ValidTrials, one per outcome component. Failures counts
// trials excluded under the exclude-and-count policy, so a consumer can
// always see when a proportion rests on fewer than the requested trials.
type Row struct {
	SampleSize  int       `json:"sample_size"`
	Components  []string  `json:"components"`
	Power       []float64 `json:"power"`
	ValidTrials int       `json:"valid_trials"`
	Failures    int       `json:"failures"`
}

// Table is the append-only results table of one sweep: one row per sample
// size, in the order the sample sizes were requested. Rows are pre-sized
// at construction; the table never reallocates per append.
type Table struct {
	rows []Row
}

// NewTable creates a results table pre-sized for the sweep
func NewTable(capacity int) *Table {
	return &Table{rows: make([]Row, 0, capacity)}
}

// Append adds the next completed row
func (t *Table) Append(row Row) {
	t.rows = append(t.rows, row)
}

// Rows returns all rows in append order
func (t *Table) Rows() []Row {
	return t.rows
}

// Row finds the row for a sample size
func (t *Table) Row(sampleSize int) (Row, bool) {
	for _, r := range t.rows {
		if r.SampleSize == sampleSize {
			return r, true
		}
	}
	return Row{}, false
}

// Len returns the number of completed rows
func (t *Table) Len() int { return len(t.rows) }
