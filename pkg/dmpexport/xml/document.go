package xml

import (
	"fmt"

	"github.com/beevik/etree"
)

// Document is one parsed WordprocessingML part: the main document, a
// header or a footer.
type Document struct {
	doc *etree.Document
}

// Parse parses a WordprocessingML part.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse part: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse part: no root element")
	}
	return &Document{doc: doc}, nil
}

// Bytes serializes the part.
func (d *Document) Bytes() ([]byte, error) {
	return d.doc.WriteToBytes()
}

// Root returns the root element (w:document, w:hdr or w:ftr).
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Body returns the block container: w:body for the main document, the
// root element for headers and footers.
func (d *Document) Body() *etree.Element {
	root := d.doc.Root()
	if body := childW(root, "body"); body != nil {
		return body
	}
	return root
}

// Paragraphs returns every paragraph of the part in document order,
// including paragraphs nested in table cells and text boxes.
func (d *Document) Paragraphs() []*Paragraph {
	return wrapParagraphs(descendantsAllW(d.Body(), "p"))
}

// Tables returns the block-level tables of the body in document order,
// including tables wrapped in content controls (w:sdt) and custom XML
// blocks. Tables nested in table cells are not returned.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, el := range blockTables(d.Body()) {
		tables = append(tables, &Table{el: el})
	}
	return tables
}

func blockTables(container *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, c := range container.ChildElements() {
		switch {
		case isW(c, "tbl"):
			out = append(out, c)
		case isW(c, "sdt"):
			if content := childW(c, "sdtContent"); content != nil {
				out = append(out, blockTables(content)...)
			}
		case isW(c, "customXml"):
			out = append(out, blockTables(c)...)
		}
	}
	return out
}

// descendantsAllW is like descendantsW but keeps descending into matches,
// so paragraphs inside a text box inside a paragraph are found as well.
func descendantsAllW(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isW(c, tag) {
			out = append(out, c)
		}
		out = append(out, descendantsAllW(c, tag)...)
	}
	return out
}

func wrapParagraphs(els []*etree.Element) []*Paragraph {
	paras := make([]*Paragraph, 0, len(els))
	for _, el := range els {
		paras = append(paras, &Paragraph{el: el})
	}
	return paras
}
