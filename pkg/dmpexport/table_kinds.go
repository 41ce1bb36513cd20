package dmpexport

import (
	"strings"
)

// TableKind identifies a dynamic table. The kind is read once per table
// from the sentinel token in its identifier cell.
type TableKind int

const (
	TableNewDatasets TableKind = iota + 1
	TableReusedDatasets
	TableDataAccess
	TablePublication
	TableRepository
	TableDeletion
	TableCosts
)

// TableKinds lists every dynamic table kind.
var TableKinds = []TableKind{
	TableNewDatasets, TableReusedDatasets, TableDataAccess, TablePublication,
	TableRepository, TableDeletion, TableCosts,
}

// Sentinel returns the token that marks a table of this kind.
func (k TableKind) Sentinel() string {
	switch k {
	case TableNewDatasets:
		return "[datasetTable]"
	case TableReusedDatasets:
		return "[reusedDatasetTable]"
	case TableDataAccess:
		return "[datasetAccessTable]"
	case TablePublication:
		return "[datasetPublicationTable]"
	case TableRepository:
		return "[datasetRepositoryTable]"
	case TableDeletion:
		return "[datasetDeleteTable]"
	case TableCosts:
		return "[costTable]"
	}
	return ""
}

func (k TableKind) String() string {
	if s := k.Sentinel(); s != "" {
		return strings.Trim(s, "[]")
	}
	return "unknown"
}

// Position of the identifier cell and of the row cloned for each item.
const (
	identifierRow  = 1
	identifierCell = 1
	templateRow    = 2
)

// ParseTableKind classifies the text of a table's identifier cell. Empty
// text and ordinary content mean a static table. Text shaped like a table
// sentinel ("[...Table]") that names no known kind is an error.
func ParseTableKind(text string) (kind TableKind, dynamic bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false, nil
	}
	for _, k := range TableKinds {
		if k.Sentinel() == text {
			return k, true, nil
		}
	}
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "Table]") && !strings.ContainsAny(text[1:len(text)-1], "[] ") {
		return 0, false, &UnknownTableError{Sentinel: text}
	}
	return 0, false, nil
}
