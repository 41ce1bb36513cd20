package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// XML namespaces used in WordprocessingML packages.
const (
	NamespaceW             = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Paragraph alignment values for w:jc.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
	AlignBoth   = "both"
)

// isW reports whether el is the w:<tag> element.
func isW(el *etree.Element, tag string) bool {
	return el != nil && el.Space == "w" && el.Tag == tag
}

// childW returns the first w:<tag> child of el.
func childW(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isW(c, tag) {
			return c
		}
	}
	return nil
}

// childrenW returns all w:<tag> children of el.
func childrenW(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isW(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

// descendantsW returns every w:<tag> element below el in document order.
// It does not descend into matches.
func descendantsW(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isW(c, tag) {
			out = append(out, c)
			continue
		}
		out = append(out, descendantsW(c, tag)...)
	}
	return out
}

// Property element orders from the WordprocessingML schema. Each list
// holds the siblings a new element must precede.
var (
	pPrAfterJc      = []string{"textDirection", "textAlignment", "textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange"}
	tcPrAfterVMerge = []string{"tcBorders", "shd", "noWrap", "tcMar", "textDirection", "tcFitText", "vAlign", "hideMark", "headers", "cellIns", "cellDel", "cellMerge", "tcPrChange"}
	rPrAfterColor   = []string{"spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath"}
	rPrAfterU       = []string{"effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath"}
)

// ensureChildW returns the w:<tag> child of parent, creating it in front
// of the first sibling listed in before when it does not exist.
func ensureChildW(parent *etree.Element, tag string, before []string) *etree.Element {
	if c := childW(parent, tag); c != nil {
		return c
	}
	el := etree.NewElement("w:" + tag)
	for _, c := range parent.ChildElements() {
		if c.Space == "w" && contains(before, c.Tag) {
			parent.InsertChildAt(c.Index(), el)
			return el
		}
	}
	parent.AddChild(el)
	return el
}

// ensureFirstChildW returns the w:<tag> child of parent, creating it as
// the first child element. Property containers (pPr, rPr, tcPr, trPr)
// must lead their parent.
func ensureFirstChildW(parent *etree.Element, tag string) *etree.Element {
	if c := childW(parent, tag); c != nil {
		return c
	}
	el := etree.NewElement("w:" + tag)
	if first := firstChildElement(parent); first != nil {
		parent.InsertChildAt(first.Index(), el)
	} else {
		parent.AddChild(el)
	}
	return el
}

func firstChildElement(el *etree.Element) *etree.Element {
	children := el.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// previousElement returns the closest preceding sibling element of el.
func previousElement(el *etree.Element) *etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for i := el.Index() - 1; i >= 0; i-- {
		if prev, ok := parent.Child[i].(*etree.Element); ok {
			return prev
		}
	}
	return nil
}

func setVal(el *etree.Element, val string) {
	el.CreateAttr("w:val", val)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func needsPreserve(s string) bool {
	return s != strings.TrimSpace(s)
}
