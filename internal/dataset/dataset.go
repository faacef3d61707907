package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownColumn indicates a column reference that does not exist in the dataset.
var ErrUnknownColumn = errors.New("dataset: unknown column")

// Kind tags the payload of a Cell.
type Kind uint8

const (
	// Missing is the zero Kind: no usable value in this row.
	Missing Kind = iota
	// Number is a parsed numeric value.
	Number
	// Text is a raw string value that has not been (or cannot be) parsed as numeric.
	Text
)

// Cell is a single tagged value: Missing, Number or Text.
// The zero Cell is Missing.
type Cell struct {
	kind Kind
	num  float64
	text string
}

// NumberCell wraps a numeric value.
func NumberCell(v float64) Cell { return Cell{kind: Number, num: v} }

// TextCell wraps a raw string value. Empty or whitespace-only input becomes Missing.
func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}
	return Cell{kind: Text, text: s}
}

// Kind reports the cell's tag.
func (c Cell) Kind() Kind { return c.kind }

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool { return c.kind == Missing }

// Number returns the numeric payload and whether the cell holds one.
// Text cells are not parsed here; see ParseNumeric and Coerce.
func (c Cell) Number() (float64, bool) {
	if c.kind != Number {
		return 0, false
	}
	return c.num, true
}

// String renders the cell for display: empty string for Missing.
func (c Cell) String() string {
	switch c.kind {
	case Number:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case Text:
		return c.text
	default:
		return ""
	}
}

// Column is a named sequence of cells.
type Column struct {
	name  string
	cells []Cell
}

// Name returns the column's identifier.
func (c *Column) Name() string { return c.name }

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.cells) }

// Cell returns the cell at row i.
func (c *Column) Cell(i int) Cell { return c.cells[i] }

// Numbers returns the column's numeric values in row order, skipping
// missing and text cells.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.cells))
	for _, cell := range c.cells {
		if v, ok := cell.Number(); ok {
			out = append(out, v)
		}
	}
	return out
}

// IsNumeric reports whether the column holds at least one number and no
// unparsed text. Missing cells do not disqualify a column.
func (c *Column) IsNumeric() bool {
	hasNum := false
	for _, cell := range c.cells {
		switch cell.Kind() {
		case Text:
			return false
		case Number:
			hasNum = true
		}
	}
	return hasNum
}

// coerce reinterprets every text cell as numeric in place. Cells that fail
// to parse become Missing; numbers and existing gaps are left untouched.
func (c *Column) coerce() {
	for i, cell := range c.cells {
		if cell.Kind() != Text {
			continue
		}
		if v, ok := ParseNumeric(cell.text); ok {
			c.cells[i] = NumberCell(v)
		} else {
			c.cells[i] = Cell{}
		}
	}
}

// Dataset is an ordered collection of named, equal-length columns. It is
// read-only to the analysis code; Coerce is the one mutation point.
type Dataset struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// FromRecords builds a Dataset from a header row and string records, as
// produced by the CSV and XLSX loaders. Every value enters as a text cell
// (or Missing when blank); types are decided later by coercion. Short
// records are padded with missing cells. Blank header names get positional
// placeholders.
func FromRecords(header []string, records [][]string) *Dataset {
	d := &Dataset{index: make(map[string]int, len(header)), rows: len(records)}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		col := &Column{name: name, cells: make([]Cell, len(records))}
		for r, rec := range records {
			if i < len(rec) {
				col.cells[r] = TextCell(rec[i])
			}
		}
		d.cols = append(d.cols, col)
		if _, dup := d.index[name]; !dup {
			d.index[name] = len(d.cols) - 1
		}
	}
	return d
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.name
	}
	return names
}

// Column resolves a column by name.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return d.cols[i], nil
}

// Coerce attempts to reinterpret the named columns as numeric, in place.
// Individual values that fail to parse silently become missing; the only
// error is an unknown column name.
func (d *Dataset) Coerce(names ...string) error {
	for _, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return err
		}
		col.coerce()
	}
	return nil
}

// NumericColumns returns the names of columns currently numeric
// (post-coercion), in dataset order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, c := range d.cols {
		if c.IsNumeric() {
			names = append(names, c.name)
		}
	}
	return names
}

// Record renders row i as display strings, one per column.
func (d *Dataset) Record(i int) []string {
	rec := make([]string, len(d.cols))
	for j, c := range d.cols {
		rec[j] = c.cells[i].String()
	}
	return rec
}

// CleanPair extracts the paired numeric series for columns x and y:
// both columns are coerced value-by-value (without mutating the dataset)
// and any row where either side is missing or non-numeric is dropped.
// Row order is preserved.
func CleanPair(d *Dataset, x, y string) (xs, ys []float64, err error) {
	cx, err := d.Column(x)
	if err != nil {
		return nil, nil, err
	}
	cy, err := d.Column(y)
	if err != nil {
		return nil, nil, err
	}
	xs = make([]float64, 0, d.rows)
	ys = make([]float64, 0, d.rows)
	for i := 0; i < d.rows; i++ {
		vx, ok := cellNumber(cx.cells[i])
		if !ok {
			continue
		}
		vy, ok := cellNumber(cy.cells[i])
		if !ok {
			continue
		}
		xs = append(xs, vx)
		ys = append(ys, vy)
	}
	return xs, ys, nil
}

func cellNumber(c Cell) (float64, bool) {
	switch c.Kind() {
	case Number:
		return c.num, true
	case Text:
		return ParseNumeric(c.text)
	default:
		return 0, false
	}
}

// ParseNumeric attempts to read a cell value as a float. It tolerates
// percent signs, non-breaking spaces, and comma decimal separators with
// dot or space thousands grouping (and vice versa).
func ParseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, " ", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	// Decide the decimal separator: when both ',' and '.' appear, the
	// rightmost one is decimal and the other is grouping.
	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	if cpos > dpos {
		dec = ','
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		// ParseFloat accepts "NaN" and "Inf" spellings; neither is a
		// usable observation.
		return 0, false
	}
	return f, true
}
