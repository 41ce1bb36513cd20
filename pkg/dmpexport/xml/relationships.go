package xml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Relationship types.
const (
	RelTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Relationship is one entry of a part's .rels file.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// Relationships is a parsed .rels part.
type Relationships struct {
	doc *etree.Document
}

// NewRelationships returns an empty relationships part.
func NewRelationships() *Relationships {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", NamespaceRelationships)
	return &Relationships{doc: doc}
}

// ParseRelationships parses a .rels part.
func ParseRelationships(data []byte) (*Relationships, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse relationships: %w", err)
	}
	if root := doc.Root(); root == nil || root.Tag != "Relationships" {
		return nil, fmt.Errorf("parse relationships: missing Relationships root")
	}
	return &Relationships{doc: doc}, nil
}

// Bytes serializes the part.
func (r *Relationships) Bytes() ([]byte, error) {
	return r.doc.WriteToBytes()
}

// List returns all relationships in document order.
func (r *Relationships) List() []Relationship {
	var rels []Relationship
	for _, el := range r.doc.Root().SelectElements("Relationship") {
		rels = append(rels, Relationship{
			ID:         el.SelectAttrValue("Id", ""),
			Type:       el.SelectAttrValue("Type", ""),
			Target:     el.SelectAttrValue("Target", ""),
			TargetMode: el.SelectAttrValue("TargetMode", ""),
		})
	}
	return rels
}

// NextID returns an unused id of the form rId<n>, one past the highest
// numeric rId in use.
func (r *Relationships) NextID() string {
	maxID := 0
	for _, rel := range r.List() {
		if !strings.HasPrefix(rel.ID, "rId") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	return "rId" + strconv.Itoa(maxID+1)
}

// AddExternal returns the id of an external relationship of the given
// type and target, adding one if none exists yet.
func (r *Relationships) AddExternal(relType, target string) string {
	for _, rel := range r.List() {
		if rel.Type == relType && rel.Target == target && rel.TargetMode == "External" {
			return rel.ID
		}
	}
	id := r.NextID()
	el := r.doc.Root().CreateElement("Relationship")
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", relType)
	el.CreateAttr("Target", target)
	el.CreateAttr("TargetMode", "External")
	return id
}
