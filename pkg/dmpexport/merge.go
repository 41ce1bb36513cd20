package dmpexport

import (
	"fmt"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
)

// ApplyColumnMerge merges the cells of column across rows fromRow to
// toRow (inclusive) vertically. The first cell keeps its content; the
// others become empty continuation cells.
func ApplyColumnMerge(tbl *xml.Table, column, fromRow, toRow int) error {
	if fromRow < 0 || toRow < fromRow || toRow >= tbl.RowCount() {
		return fmt.Errorf("merge rows %d..%d: table has %d rows", fromRow, toRow, tbl.RowCount())
	}
	for i := fromRow; i <= toRow; i++ {
		row, _ := tbl.Row(i)
		cell, ok := row.Cell(column)
		if !ok {
			return fmt.Errorf("merge rows %d..%d: row %d has no column %d", fromRow, toRow, i, column)
		}
		if i == fromRow {
			cell.SetVMerge(xml.MergeRestart)
			continue
		}
		cell.SetVMerge(xml.MergeContinue)
		cell.SetText("")
	}
	return nil
}
