package dataset

import (
	"fmt"
)

// ColumnKey names one generated variable in a simulated data set
type ColumnKey string

// String returns the string representation
func (k ColumnKey) String() string { return string(k) }

// Table is the canonical data object for model fitting: one ephemeral,
// per-trial set of generated observations. Rows are simulated units,
// columns are generated variables. A Table lives for exactly one trial -
// built by a generator, consumed by a fitter, then discarded.
type Table struct {
	keys []ColumnKey
	cols [][]float64
	rows int
}

// NewTable creates an empty table with a fixed row count
func NewTable(rows int) *Table {
	return &Table{rows: rows}
}

// AddColumn appends a named column; its length must match the row count
func (t *Table) AddColumn(key ColumnKey, values []float64) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %s has %d values, table has %d rows", key, len(values), t.rows)
	}
	for _, k := range t.keys {
		if k == key {
			return fmt.Errorf("column %s already present", key)
		}
	}
	t.keys = append(t.keys, key)
	t.cols = append(t.cols, values)
	return nil
}

// Column returns the data for a named column
func (t *Table) Column(key ColumnKey) ([]float64, bool) {
	for i, k := range t.keys {
		if k == key {
			return t.cols[i], true
		}
	}
	return nil, false
}

// Keys returns the column keys in insertion order
func (t *Table) Keys() []ColumnKey {
	keys := make([]ColumnKey, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// RowCount returns the number of simulated units
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of generated variables
func (t *Table) ColumnCount() int { return len(t.keys) }
