// Package xml is the document object model the exporter mutates.
//
// It wraps WordprocessingML parts (word/document.xml, headers, footers)
// parsed with etree. Unlike a typed encoding/xml model, the tree keeps
// every element it does not understand, so cell merges, bookmarks,
// proofing marks and section properties survive a load/save round trip
// untouched.
//
// # Structure Organization
//
//   - types.go: namespaces, element matching and schema-ordered insertion
//   - document.go: Document (one XML part) and its paragraph/table views
//   - paragraph.go: Paragraph and alignment
//   - run.go: Run, Text and hyperlink wrapping
//   - table.go: Table, Row and Cell, row cloning and vertical merges
//   - relationships.go: part relationships (.rels) for hyperlink targets
//
// Wrappers are thin views over *etree.Element; they hold no state of
// their own and can be created and discarded freely.
//
// Parts are expected to use the conventional "w" prefix for the
// WordprocessingML namespace, as every Word version writes it.
package xml
