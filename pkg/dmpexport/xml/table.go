package xml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Vertical merge states for w:vMerge.
const (
	MergeRestart  = "restart"
	MergeContinue = "continue"
)

// Table wraps a w:tbl element.
type Table struct {
	el *etree.Element
}

// Element returns the underlying w:tbl element.
func (t *Table) Element() *etree.Element {
	return t.el
}

// Rows returns the table rows in order.
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, el := range childrenW(t.el, "tr") {
		rows = append(rows, &Row{el: el})
	}
	return rows
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(childrenW(t.el, "tr"))
}

// Row returns the row at index i.
func (t *Table) Row(i int) (*Row, bool) {
	rows := childrenW(t.el, "tr")
	if i < 0 || i >= len(rows) {
		return nil, false
	}
	return &Row{el: rows[i]}, true
}

// CloneRow returns a detached deep copy of the row at index i.
func (t *Table) CloneRow(i int) (*Row, error) {
	src, ok := t.Row(i)
	if !ok {
		return nil, fmt.Errorf("clone row %d: table has %d rows", i, t.RowCount())
	}
	return src.Clone(), nil
}

// InsertRow inserts a detached row so that it becomes row pos. pos may
// equal RowCount to append.
func (t *Table) InsertRow(row *Row, pos int) error {
	if row.el.Parent() != nil {
		return fmt.Errorf("insert row: row is still attached")
	}
	rows := childrenW(t.el, "tr")
	switch {
	case pos < 0 || pos > len(rows):
		return fmt.Errorf("insert row at %d: table has %d rows", pos, len(rows))
	case pos == len(rows) && len(rows) > 0:
		last := rows[len(rows)-1]
		t.el.InsertChildAt(last.Index()+1, row.el)
	case pos == len(rows):
		t.el.AddChild(row.el)
	default:
		t.el.InsertChildAt(rows[pos].Index(), row.el)
	}
	return nil
}

// RemoveRow removes a row that belongs to the table.
func (t *Table) RemoveRow(row *Row) error {
	if row.el.Parent() != t.el {
		return fmt.Errorf("remove row: row does not belong to table")
	}
	t.el.RemoveChild(row.el)
	return nil
}

// RemoveRowAt removes the row at index i.
func (t *Table) RemoveRowAt(i int) error {
	row, ok := t.Row(i)
	if !ok {
		return fmt.Errorf("remove row %d: table has %d rows", i, t.RowCount())
	}
	return t.RemoveRow(row)
}

// Caption returns the paragraph immediately preceding the table, if any.
// A table opening a content control is captioned by the paragraph before
// the control.
func (t *Table) Caption() *Paragraph {
	el := t.el
	prev := previousElement(el)
	for (prev == nil || isW(prev, "customXmlPr")) && isBlockWrapper(el.Parent()) {
		el = wrapperOf(el.Parent())
		prev = previousElement(el)
	}
	if !isW(prev, "p") {
		return nil
	}
	return &Paragraph{el: prev}
}

// Remove detaches the table from the document. Content controls left
// empty by the removal are removed as well.
func (t *Table) Remove() {
	el := t.el
	for parent := el.Parent(); parent != nil; parent = el.Parent() {
		parent.RemoveChild(el)
		if !isBlockWrapper(parent) || hasContent(parent) {
			return
		}
		el = wrapperOf(parent)
	}
}

// RemoveWithCaption removes the caption paragraph and then the table.
func (t *Table) RemoveWithCaption() {
	if caption := t.Caption(); caption != nil {
		if parent := caption.el.Parent(); parent != nil {
			parent.RemoveChild(caption.el)
		}
	}
	t.Remove()
}

// isBlockWrapper reports whether el holds block content on behalf of a
// content control or custom XML element.
func isBlockWrapper(el *etree.Element) bool {
	return isW(el, "sdtContent") || isW(el, "customXml")
}

// wrapperOf returns the element to step out to from a block wrapper: the
// w:sdt for its w:sdtContent, the w:customXml itself otherwise.
func wrapperOf(el *etree.Element) *etree.Element {
	if isW(el, "sdtContent") && el.Parent() != nil {
		return el.Parent()
	}
	return el
}

func hasContent(el *etree.Element) bool {
	for _, c := range el.ChildElements() {
		if !isW(c, "customXmlPr") {
			return true
		}
	}
	return false
}

// Paragraphs returns every paragraph inside the table, including nested
// tables.
func (t *Table) Paragraphs() []*Paragraph {
	return wrapParagraphs(descendantsAllW(t.el, "p"))
}

// Row wraps a w:tr element.
type Row struct {
	el *etree.Element
}

// Element returns the underlying w:tr element.
func (r *Row) Element() *etree.Element {
	return r.el
}

// Clone returns a detached deep copy of the row.
func (r *Row) Clone() *Row {
	return &Row{el: r.el.Copy()}
}

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, el := range childrenW(r.el, "tc") {
		cells = append(cells, &Cell{el: el})
	}
	return cells
}

// Cell returns the cell at index i.
func (r *Row) Cell(i int) (*Cell, bool) {
	cells := childrenW(r.el, "tc")
	if i < 0 || i >= len(cells) {
		return nil, false
	}
	return &Cell{el: cells[i]}, true
}

// Texts returns the text of every cell.
func (r *Row) Texts() []string {
	var out []string
	for _, c := range r.Cells() {
		out = append(out, c.Text())
	}
	return out
}

// Cell wraps a w:tc element.
type Cell struct {
	el *etree.Element
}

// Element returns the underlying w:tc element.
func (c *Cell) Element() *etree.Element {
	return c.el
}

// Paragraphs returns the cell's top-level paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	return wrapParagraphs(childrenW(c.el, "p"))
}

// FirstRun returns the first run of the first paragraph.
func (c *Cell) FirstRun() (*Run, bool) {
	paras := c.Paragraphs()
	if len(paras) == 0 {
		return nil, false
	}
	runs := paras[0].Runs()
	if len(runs) == 0 {
		return nil, false
	}
	return runs[0], true
}

// Text returns the text of all paragraphs joined by newlines.
func (c *Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with s. The first paragraph and its
// first run are kept so that their formatting carries over; every other
// run and paragraph is removed.
func (c *Cell) SetText(s string) {
	paras := childrenW(c.el, "p")
	var p *etree.Element
	if len(paras) == 0 {
		p = c.el.CreateElement("w:p")
	} else {
		p = paras[0]
		for _, extra := range paras[1:] {
			c.el.RemoveChild(extra)
		}
	}

	var run *etree.Element
	for _, child := range p.ChildElements() {
		switch {
		case isW(child, "r") && run == nil:
			run = child
		case isW(child, "r"), isW(child, "hyperlink"), isW(child, "fldSimple"), isW(child, "ins"), isW(child, "smartTag"):
			p.RemoveChild(child)
		}
	}
	if run == nil {
		run = p.CreateElement("w:r")
		if mark := paragraphMarkProperties(p); mark != nil {
			run.InsertChildAt(0, mark)
		}
	}
	(&Run{el: run}).SetText(s)
}

// paragraphMarkProperties returns a copy of the paragraph mark's run
// properties as a w:rPr for a new run.
func paragraphMarkProperties(p *etree.Element) *etree.Element {
	pPr := childW(p, "pPr")
	if pPr == nil {
		return nil
	}
	rPr := childW(pPr, "rPr")
	if rPr == nil {
		return nil
	}
	return rPr.Copy()
}

// VMerge returns the cell's vertical merge state: MergeRestart,
// MergeContinue, or "" when the cell is not merged.
func (c *Cell) VMerge() string {
	tcPr := childW(c.el, "tcPr")
	if tcPr == nil {
		return ""
	}
	vm := childW(tcPr, "vMerge")
	if vm == nil {
		return ""
	}
	return vm.SelectAttrValue("w:val", MergeContinue)
}

// SetVMerge marks the cell as starting (MergeRestart) or continuing
// (MergeContinue) a vertical merge.
func (c *Cell) SetVMerge(state string) {
	tcPr := ensureFirstChildW(c.el, "tcPr")
	vm := ensureChildW(tcPr, "vMerge", tcPrAfterVMerge)
	if state == MergeRestart {
		setVal(vm, MergeRestart)
	} else {
		vm.RemoveAttr("w:val")
	}
}
