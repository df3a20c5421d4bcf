// =============================================================================
// Order Sheet - Row Model and Column Schemas
// =============================================================================
//
// Workbook rows are flat lists of typed cells. Catalog and ledger sheets each
// declare a fixed column schema (name, declared kind, required/optional); the
// codec uses the schema to decide which rows are well formed and to write the
// header row.
//
// Cell types are preserved exactly across rewrite cycles: a numeric column
// that goes through a delete-and-rewrite must come back numeric, because
// downstream consumers read those columns as numbers.
//
// =============================================================================

package sheet

import "strings"

// =============================================================================
// CELLS
// =============================================================================

// CellKind identifies the stored type of a single cell.
type CellKind int

const (
	// KindBlank is an empty cell.
	KindBlank CellKind = iota

	// KindString is a text cell.
	KindString

	// KindNumber is a numeric cell.
	KindNumber

	// KindBool is a boolean cell.
	KindBool

	// KindFormula is a formula cell; the formula text is preserved verbatim.
	KindFormula
)

// Cell is one typed workbook cell.
type Cell struct {
	Kind    CellKind
	Str     string
	Num     float64
	Bool    bool
	Formula string
}

// Row is an ordered list of cells.
type Row []Cell

// String creates a text cell.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Number creates a numeric cell.
func Number(n float64) Cell { return Cell{Kind: KindNumber, Num: n} }

// Bool creates a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Formula creates a formula cell.
func Formula(f string) Cell { return Cell{Kind: KindFormula, Formula: f} }

// Blank creates an empty cell.
func Blank() Cell { return Cell{Kind: KindBlank} }

// IsBlank reports whether the cell holds no usable value. A whitespace-only
// string counts as blank.
func (c Cell) IsBlank() bool {
	if c.Kind == KindBlank {
		return true
	}
	if c.Kind == KindString && strings.TrimSpace(c.Str) == "" {
		return true
	}
	return false
}

// Text returns the trimmed string value of a text cell, or "" for anything
// else.
func (c Cell) Text() string {
	if c.Kind != KindString {
		return ""
	}
	return strings.TrimSpace(c.Str)
}

// At returns the cell at index i, or a blank cell when the row is shorter.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Blank()
	}
	return r[i]
}

// IsEmpty reports whether every cell in the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// =============================================================================
// SCHEMAS
// =============================================================================

// ColumnKind is the declared type of a schema column.
type ColumnKind int

const (
	// ColString is free text.
	ColString ColumnKind = iota

	// ColNumber is a numeric value.
	ColNumber

	// ColCurrency is a display-formatted currency string ("200 AMD"). It is
	// stored as text; the distinction matters only to readers that re-parse
	// the value.
	ColCurrency
)

// Column declares one schema column.
type Column struct {
	// Name is the header cell text for this column.
	Name string

	// Kind is the declared cell type.
	Kind ColumnKind

	// Optional columns may be blank or mistyped; the cell is then treated as
	// its default value instead of invalidating the row.
	Optional bool
}

// Schema describes a single-sheet workbook layout: the sheet name, the header
// row and the typed columns beneath it.
type Schema struct {
	Sheet   string
	Columns []Column
}

// Header builds the header row from the column names.
func (s Schema) Header() Row {
	row := make(Row, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = String(col.Name)
	}
	return row
}

// Conform checks a data row against the schema. It returns the row padded and
// normalized to the schema width, and false when any required column is blank
// or of the wrong type. Optional columns that fail the check are replaced
// with blank cells.
func (s Schema) Conform(row Row) (Row, bool) {
	out := make(Row, len(s.Columns))
	for i, col := range s.Columns {
		cell := row.At(i)
		if cellMatches(cell, col.Kind) {
			out[i] = cell
			continue
		}
		if !col.Optional {
			return nil, false
		}
		out[i] = Blank()
	}
	return out, true
}

func cellMatches(cell Cell, kind ColumnKind) bool {
	switch kind {
	case ColNumber:
		return cell.Kind == KindNumber
	case ColString, ColCurrency:
		return cell.Kind == KindString && !cell.IsBlank()
	default:
		return false
	}
}
