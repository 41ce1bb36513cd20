package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Run wraps a w:r element.
type Run struct {
	el *etree.Element
}

// Element returns the underlying w:r element.
func (r *Run) Element() *etree.Element {
	return r.el
}

// Text returns the concatenated value of the run's w:t elements.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, t := range childrenW(r.el, "t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// TextNodes returns the run's w:t elements in order.
func (r *Run) TextNodes() []*Text {
	var nodes []*Text
	for _, t := range childrenW(r.el, "t") {
		nodes = append(nodes, &Text{el: t})
	}
	return nodes
}

// Clear removes the run's content (text, breaks, tabs) and keeps its
// properties.
func (r *Run) Clear() {
	for _, c := range r.el.ChildElements() {
		if isW(c, "t") || isW(c, "br") || isW(c, "cr") || isW(c, "tab") {
			r.el.RemoveChild(c)
		}
	}
}

// SetText replaces the run's content with a single text element.
func (r *Run) SetText(s string) {
	r.Clear()
	r.AppendText(s)
}

// AppendText adds a w:t element at the end of the run.
func (r *Run) AppendText(s string) *Text {
	t := &Text{el: r.el.CreateElement("w:t")}
	t.SetValue(s)
	return t
}

// AppendBreak adds a forced line break (w:br) at the end of the run.
func (r *Run) AppendBreak() {
	r.el.CreateElement("w:br")
}

// Paragraph returns the paragraph that contains the run, looking through
// hyperlinks and fields.
func (r *Run) Paragraph() *Paragraph {
	for el := r.el.Parent(); el != nil; el = el.Parent() {
		if isW(el, "p") {
			return &Paragraph{el: el}
		}
	}
	return nil
}

// InHyperlink reports whether the run is wrapped in a w:hyperlink.
func (r *Run) InHyperlink() bool {
	return isW(r.el.Parent(), "hyperlink")
}

// MakeHyperlink wraps the run in a w:hyperlink pointing at relationship
// relID and applies hyperlink character formatting. A run that is
// already a hyperlink gets its target replaced.
func (r *Run) MakeHyperlink(relID string) {
	if parent := r.el.Parent(); isW(parent, "hyperlink") {
		parent.CreateAttr("r:id", relID)
	} else if parent != nil {
		link := etree.NewElement("w:hyperlink")
		link.CreateAttr("r:id", relID)
		link.CreateAttr("w:history", "1")
		parent.InsertChildAt(r.el.Index(), link)
		parent.RemoveChild(r.el)
		link.AddChild(r.el)
	}

	rPr := ensureFirstChildW(r.el, "rPr")
	style := ensureFirstChildW(rPr, "rStyle")
	setVal(style, "Hyperlink")
	setVal(ensureChildW(rPr, "color", rPrAfterColor), "0563C1")
	setVal(ensureChildW(rPr, "u", rPrAfterU), "single")
}

// Text wraps a w:t element.
type Text struct {
	el *etree.Element
}

// Value returns the text content.
func (t *Text) Value() string {
	return t.el.Text()
}

// SetValue replaces the text content, marking leading or trailing
// whitespace as significant.
func (t *Text) SetValue(s string) {
	t.el.SetText(s)
	if needsPreserve(s) {
		t.el.CreateAttr("xml:space", "preserve")
	} else {
		t.el.RemoveAttr("xml:space")
	}
}
