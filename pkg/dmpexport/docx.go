package dmpexport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
)

// Well-known part names of a DOCX package.
const (
	DocumentPartName      = "word/document.xml"
	RelationshipsPartName = "word/_rels/document.xml.rels"
)

var headerFooterPattern = regexp.MustCompile(`^word/(header|footer)\d*\.xml$`)

// Package is an opened DOCX template. The main document, every header
// and footer, and the document relationships are parsed; all other parts
// are copied through unchanged on write.
type Package struct {
	reader  *zip.Reader
	parts   map[string]*zip.File
	order   []string
	closed  bool
	doc     *xml.Document
	extras  map[string]*xml.Document
	rels    *xml.Relationships
	newRels bool
}

// OpenPackage reads a DOCX package from r.
func OpenPackage(r io.Reader) (*Package, error) {
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return nil, NewDocumentError("read", "", err)
	}
	return openPackageBytes(buf.Bytes(), size)
}

func openPackageBytes(source []byte, size int64) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(source), size)
	if err != nil {
		return nil, NewDocumentError("parse", "DOCX", err)
	}

	pkg := &Package{
		reader: zr,
		parts:  make(map[string]*zip.File),
		extras: make(map[string]*xml.Document),
	}
	for _, file := range zr.File {
		pkg.parts[file.Name] = file
		pkg.order = append(pkg.order, file.Name)
	}

	if _, ok := pkg.parts[DocumentPartName]; !ok {
		return nil, NewDocumentError("parse", DocumentPartName, fmt.Errorf("not a valid DOCX file: missing %s", DocumentPartName))
	}

	pkg.doc, err = pkg.parsePart(DocumentPartName)
	if err != nil {
		return nil, err
	}
	for _, name := range pkg.order {
		if !headerFooterPattern.MatchString(name) {
			continue
		}
		doc, err := pkg.parsePart(name)
		if err != nil {
			return nil, err
		}
		pkg.extras[name] = doc
	}

	if _, ok := pkg.parts[RelationshipsPartName]; ok {
		data, err := pkg.readPart(RelationshipsPartName)
		if err != nil {
			return nil, err
		}
		pkg.rels, err = xml.ParseRelationships(data)
		if err != nil {
			return nil, NewDocumentError("parse", RelationshipsPartName, err)
		}
	} else {
		pkg.rels = xml.NewRelationships()
		pkg.newRels = true
	}

	return pkg, nil
}

func (p *Package) readPart(name string) ([]byte, error) {
	file, ok := p.parts[name]
	if !ok {
		return nil, NewDocumentError("extract", name, fmt.Errorf("part not found"))
	}
	rc, err := file.Open()
	if err != nil {
		return nil, NewDocumentError("open", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	return content, nil
}

func (p *Package) parsePart(name string) (*xml.Document, error) {
	data, err := p.readPart(name)
	if err != nil {
		return nil, err
	}
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, NewDocumentError("parse", name, err)
	}
	return doc, nil
}

// Document returns the main document part.
func (p *Package) Document() *xml.Document {
	return p.doc
}

// HeadersFooters returns the header and footer parts in name order.
func (p *Package) HeadersFooters() []*xml.Document {
	names := p.HeaderFooterNames()
	docs := make([]*xml.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, p.extras[name])
	}
	return docs
}

// HeaderFooterNames lists the header and footer part names, sorted.
func (p *Package) HeaderFooterNames() []string {
	names := make([]string, 0, len(p.extras))
	for name := range p.extras {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Relationships returns the relationships of the main document. A
// package without a relationships part gets an empty one, written out
// only when an entry is added.
func (p *Package) Relationships() *xml.Relationships {
	return p.rels
}

// Parts lists all part names in archive order.
func (p *Package) Parts() []string {
	return append([]string(nil), p.order...)
}

// WriteTo serializes the package to w. Parsed parts are written from
// their trees; all others are copied unchanged.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	if p.closed {
		return 0, NewDocumentError("write", "", fmt.Errorf("package is closed"))
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, file := range p.reader.File {
		var data []byte
		var err error
		switch {
		case file.Name == DocumentPartName:
			data, err = p.doc.Bytes()
		case file.Name == RelationshipsPartName:
			data, err = p.rels.Bytes()
		case p.extras[file.Name] != nil:
			data, err = p.extras[file.Name].Bytes()
		default:
			if err := copyPart(zw, file); err != nil {
				return 0, err
			}
			continue
		}
		if err != nil {
			return 0, NewDocumentError("serialize", file.Name, err)
		}
		if err := writePart(zw, file.Name, data); err != nil {
			return 0, err
		}
	}

	if p.newRels && len(p.rels.List()) > 0 {
		data, err := p.rels.Bytes()
		if err != nil {
			return 0, NewDocumentError("serialize", RelationshipsPartName, err)
		}
		if err := writePart(zw, RelationshipsPartName, data); err != nil {
			return 0, err
		}
	}

	if err := zw.Close(); err != nil {
		return 0, NewDocumentError("write", "", fmt.Errorf("failed to close zip writer: %w", err))
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, NewDocumentError("write", "", err)
	}
	return n, nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return NewDocumentError("write", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return NewDocumentError("write", name, err)
	}
	return nil
}

func copyPart(zw *zip.Writer, file *zip.File) error {
	fr, err := file.Open()
	if err != nil {
		return NewDocumentError("open", file.Name, err)
	}
	defer fr.Close()

	header := file.FileHeader
	fw, err := zw.CreateHeader(&header)
	if err != nil {
		return NewDocumentError("write", file.Name, err)
	}
	if _, err := io.Copy(fw, fr); err != nil {
		return NewDocumentError("copy", file.Name, err)
	}
	return nil
}

// Close releases the parsed trees. Closing twice is a no-op.
func (p *Package) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.doc = nil
	p.extras = nil
	p.rels = nil
	p.parts = nil
	return nil
}
