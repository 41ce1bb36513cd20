package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	el *etree.Element
}

// NewParagraph wraps an existing w:p element.
func NewParagraph(el *etree.Element) *Paragraph {
	return &Paragraph{el: el}
}

// Element returns the underlying w:p element.
func (p *Paragraph) Element() *etree.Element {
	return p.el
}

// Runs returns the paragraph's runs in order, including runs wrapped in
// hyperlinks, simple fields and tracked insertions.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.el.ChildElements() {
		switch {
		case isW(c, "r"):
			runs = append(runs, &Run{el: c})
		case isW(c, "hyperlink"), isW(c, "fldSimple"), isW(c, "ins"), isW(c, "smartTag"):
			for _, r := range childrenW(c, "r") {
				runs = append(runs, &Run{el: r})
			}
		}
	}
	return runs
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Alignment returns the paragraph's w:jc value, or "" when unset.
func (p *Paragraph) Alignment() string {
	pPr := childW(p.el, "pPr")
	if pPr == nil {
		return ""
	}
	jc := childW(pPr, "jc")
	if jc == nil {
		return ""
	}
	return jc.SelectAttrValue("w:val", "")
}

// SetAlignment sets the paragraph's w:jc value.
func (p *Paragraph) SetAlignment(align string) {
	pPr := ensureFirstChildW(p.el, "pPr")
	setVal(ensureChildW(pPr, "jc", pPrAfterJc), align)
}
