// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ast

// Alignment is the horizontal alignment of a column or cell.
type Alignment int

const (
	// AlignDefault inherits from the column spec (or the writer's default).
	AlignDefault Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// ColWidth is either the default width or a fixed fraction of the table.
// A zero Fraction means default.
type ColWidth struct {
	Fraction float64
}

// IsDefault reports whether the width is unspecified.
func (w ColWidth) IsDefault() bool { return w.Fraction <= 0 }

// ColSpec describes one column.
type ColSpec struct {
	Align Alignment
	Width ColWidth
}

// Caption is a table or figure caption. Short is nil when absent.
type Caption struct {
	Short []Inline
	Long  []Block
}

// Cell is a table cell. RowSpan and ColSpan are at least 1.
type Cell struct {
	Attr    Attr
	Align   Alignment
	RowSpan int
	ColSpan int
	Blocks  []Block
}

// NewCell returns a cell with default alignment and unit spans.
func NewCell(blocks ...Block) Cell {
	return Cell{RowSpan: 1, ColSpan: 1, Blocks: blocks}
}

// Spans returns the row and column spans, treating values below 1 as 1.
func (c Cell) Spans() (rows, cols int) {
	rows, cols = c.RowSpan, c.ColSpan
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// Row is a table row.
type Row struct {
	Attr  Attr
	Cells []Cell
}

// TableHead holds the header rows.
type TableHead struct {
	Attr Attr
	Rows []Row
}

// TableBody is one body section. The first RowHeadColumns cells of each row
// are row headers; Head holds intermediate sub-head rows.
type TableBody struct {
	Attr           Attr
	RowHeadColumns int
	Head           []Row
	Body           []Row
}

// Rows returns the sub-head rows followed by the body rows.
func (b TableBody) Rows() []Row {
	rows := make([]Row, 0, len(b.Head)+len(b.Body))
	rows = append(rows, b.Head...)
	return append(rows, b.Body...)
}

// TableFoot holds the footer rows.
type TableFoot struct {
	Attr Attr
	Rows []Row
}

// Table is a full table.
type Table struct {
	Attr     Attr
	Caption  Caption
	ColSpecs []ColSpec
	Head     TableHead
	Bodies   []TableBody
	Foot     TableFoot
}

// HasBody reports whether any body section holds at least one row.
func (t *Table) HasBody() bool {
	for _, b := range t.Bodies {
		if len(b.Head) > 0 || len(b.Body) > 0 {
			return true
		}
	}
	return false
}
