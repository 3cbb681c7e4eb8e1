package dataset

import (
	"testing"
)

func TestTable_AddAndRetrieve(t *testing.T) {
	tbl := NewTable(3)

	if err := tbl.AddColumn("y", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if err := tbl.AddColumn("group", []float64{0, 0, 1}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	col, ok := tbl.Column("group")
	if !ok {
		t.Fatal("expected group column")
	}
	if col[2] != 1 {
		t.Errorf("group[2] = %f, want 1", col[2])
	}
	if tbl.RowCount() != 3 || tbl.ColumnCount() != 2 {
		t.Errorf("dims = (%d, %d), want (3, 2)", tbl.RowCount(), tbl.ColumnCount())
	}
}

func TestTable_RejectsLengthMismatch(t *testing.T) {
	tbl := NewTable(4)
	if err := tbl.AddColumn("y", []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched column length")
	}
}

func TestTable_RejectsDuplicateKey(t *testing.T) {
	tbl := NewTable(2)
	if err := tbl.AddColumn("x", []float64{1, 2}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if err := tbl.AddColumn("x", []float64{3, 4}); err == nil {
		t.Error("expected error for duplicate column key")
	}
}

func TestTable_MissingColumn(t *testing.T) {
	tbl := NewTable(1)
	if _, ok := tbl.Column("absent"); ok {
		t.Error("Column should report missing keys")
	}
}
