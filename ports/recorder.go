package ports

import (
	"context"

	"gopower/domain/power"
	"gopower/domain/run"
)

// RecorderPort receives completed sweeps for downstream reporting. The
// results table is the sole exposed artifact; a recorder may hand it to a
// plotting or reporting collaborator but never mutates it.
type RecorderPort interface {
	RecordSweep(ctx context.Context, manifest *run.Manifest, table *power.Table) error
}
