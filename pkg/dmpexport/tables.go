package dmpexport

import (
	"errors"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

// emptyPolicy says what happens to a dynamic table without items.
type emptyPolicy int

const (
	blankTemplateRow emptyPolicy = iota
	removeTableAndCaption
	// removeUnlessNoDatasets removes the table when the plan has datasets
	// of another kind and blanks it when the plan has none at all.
	removeUnlessNoDatasets
)

// tableRow is the content of one synthesized row.
type tableRow struct {
	cells []string
	// link turns the first run of cell linkColumn into a hyperlink to
	// linkURL when linkURL is non-empty.
	linkColumn int
	linkURL    string
}

// tableSpec describes how a table kind is filled.
type tableSpec struct {
	onEmpty emptyPolicy
	rows    func(s *synthesizer) []tableRow
	// finish runs after the pattern rows have been removed.
	finish func(s *synthesizer, tbl *xml.Table) error
}

// spec returns the fill rules of a table kind.
func (k TableKind) spec() tableSpec {
	switch k {
	case TableNewDatasets:
		return tableSpec{onEmpty: removeUnlessNoDatasets, rows: (*synthesizer).newDatasetRows}
	case TableReusedDatasets:
		return tableSpec{onEmpty: removeTableAndCaption, rows: (*synthesizer).reusedDatasetRows}
	case TableDataAccess:
		return tableSpec{onEmpty: blankTemplateRow, rows: (*synthesizer).dataAccessRows}
	case TablePublication:
		return tableSpec{onEmpty: blankTemplateRow, rows: (*synthesizer).publicationRows}
	case TableRepository:
		return tableSpec{onEmpty: blankTemplateRow, rows: (*synthesizer).repositoryRows, finish: mergeTargetAudience}
	case TableDeletion:
		return tableSpec{onEmpty: removeTableAndCaption, rows: (*synthesizer).deletionRows}
	case TableCosts:
		return tableSpec{onEmpty: blankTemplateRow, rows: (*synthesizer).costRows}
	}
	panic("dmpexport: no table spec for kind " + strconv.Itoa(int(k)))
}

// TableReport describes what happened to one dynamic table.
type TableReport struct {
	Index   int
	Kind    TableKind
	Rows    int
	Removed bool
}

// synthesizer expands the dynamic tables of one document.
type synthesizer struct {
	plan     *dmp.DMP
	ids      DisplayIDs
	loc      Localizer
	cfg      *Config
	rels     *xml.Relationships
	log      *Logger
	warnings *MultiError
	err      error
}

// Tables expands every dynamic table of doc. Static tables are skipped.
func (s *synthesizer) Tables(doc *xml.Document) ([]TableReport, error) {
	var reports []TableReport
	for idx, tbl := range doc.Tables() {
		kind, dynamic, err := identifyTable(tbl)
		if err != nil {
			var ute *UnknownTableError
			if errors.As(err, &ute) {
				ute.TableIndex = idx
			}
			return reports, err
		}
		if !dynamic {
			continue
		}
		report, err := s.fill(tbl, kind)
		if err != nil {
			return reports, WithContext(err, "filling table", map[string]interface{}{"table": kind.String(), "index": idx})
		}
		report.Index = idx
		reports = append(reports, report)
	}
	return reports, nil
}

// identifyTable reads the sentinel of a table.
func identifyTable(tbl *xml.Table) (TableKind, bool, error) {
	row, ok := tbl.Row(identifierRow)
	if !ok {
		return 0, false, nil
	}
	cell, ok := row.Cell(identifierCell)
	if !ok {
		return 0, false, nil
	}
	paras := cell.Paragraphs()
	if len(paras) == 0 {
		return 0, false, nil
	}
	return ParseTableKind(paras[0].Text())
}

func (s *synthesizer) fill(tbl *xml.Table, kind TableKind) (TableReport, error) {
	report := TableReport{Kind: kind}
	spec := kind.spec()
	log := s.log.WithField("table", kind.String())

	rows := spec.rows(s)
	if s.err != nil {
		return report, s.err
	}

	policy := spec.onEmpty
	if policy == removeUnlessNoDatasets {
		policy = removeTableAndCaption
		if len(s.plan.Datasets) == 0 {
			policy = blankTemplateRow
		}
	}

	template, hasTemplate := tbl.Row(templateRow)
	switch {
	case len(rows) > 0:
		for i, content := range rows {
			if err := s.insertRow(tbl, template, hasTemplate, i, content); err != nil {
				rowErr := &RowCloneError{Table: kind.String(), Item: i, Cause: err}
				log.WithField("row", i).WarnErr(err, "could not synthesize table row")
				s.warnings.Add(rowErr)
				continue
			}
			report.Rows++
		}
		if hasTemplate {
			if err := tbl.RemoveRow(template); err != nil {
				return report, err
			}
		}
	case policy == removeTableAndCaption:
		tbl.RemoveWithCaption()
		report.Removed = true
		log.Debug("removed empty table")
		return report, nil
	case hasTemplate:
		for _, cell := range template.Cells() {
			cell.SetText("")
		}
		report.Rows = 1
	}

	if err := tbl.RemoveRowAt(identifierRow); err != nil {
		return report, err
	}
	if spec.finish != nil {
		if err := spec.finish(s, tbl); err != nil {
			return report, err
		}
	}
	log.Debug("synthesized %d rows", report.Rows)
	return report, nil
}

// insertRow clones the template for item i and inserts it in front of
// the template, at templateRow+i.
func (s *synthesizer) insertRow(tbl *xml.Table, template *xml.Row, hasTemplate bool, i int, content tableRow) error {
	if !hasTemplate {
		return errors.New("table has no template row")
	}
	row := template.Clone()
	if err := tbl.InsertRow(row, templateRow+i); err != nil {
		return err
	}

	cells := row.Cells()
	for c, text := range content.cells {
		if c >= len(cells) {
			s.log.WithFields(Fields{"column": c, "columns": len(cells)}).Warn("template row has too few cells")
			break
		}
		cells[c].SetText(text)
	}

	if content.linkURL != "" && content.linkColumn < len(cells) {
		if run, ok := cells[content.linkColumn].FirstRun(); ok {
			TurnRunIntoHyperlink(s.rels, run, content.linkURL)
		}
	}
	return nil
}

func (s *synthesizer) t(key string) string {
	phrase, err := s.loc.Lookup(key)
	if err != nil && s.err == nil {
		s.err = err
	}
	return phrase
}

func (s *synthesizer) yesNo(v bool) string {
	if v {
		return s.t(i18n.KeyYes)
	}
	return s.t(i18n.KeyNo)
}

// repositoryTitles lists the repositories a dataset is published in.
func (s *synthesizer) repositoryTitles(ds *dmp.Dataset) string {
	var titles []string
	for _, h := range s.plan.HostsOf(ds) {
		if h.Kind == dmp.HostRepository {
			titles = append(titles, h.Title)
		}
	}
	return JoinWithComma(titles)
}

func (s *synthesizer) sizeCell(ds *dmp.Dataset) string {
	if ds.Size == nil {
		return ""
	}
	size, err := FormatByteSize(*ds.Size)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return ""
	}
	if *ds.Size < 1000 {
		return size + " B"
	}
	return size + "B"
}

func (s *synthesizer) newDatasetRows() []tableRow {
	var rows []tableRow
	for _, ds := range s.plan.NewDatasets() {
		rows = append(rows, tableRow{cells: []string{
			s.ids.Of(ds),
			ds.Title,
			JoinWithComma(ds.Types),
			"",
			s.sizeCell(ds),
			s.yesNo(ds.SensitiveData),
		}})
	}
	return rows
}

func (s *synthesizer) reusedDatasetRows() []tableRow {
	var rows []tableRow
	for _, ds := range s.plan.ReusedDatasets() {
		identifier := ""
		if ds.DatasetIdentifier != nil {
			identifier = ds.DatasetIdentifier.Identifier
		}
		rows = append(rows, tableRow{cells: []string{
			s.ids.Of(ds),
			ds.Title,
			identifier,
			"",
			s.yesNo(ds.SensitiveData),
		}})
	}
	return rows
}

// dataAccessRows lists new datasets first, then reused ones.
func (s *synthesizer) dataAccessRows() []tableRow {
	datasets := append(s.plan.NewDatasets(), s.plan.ReusedDatasets()...)
	var rows []tableRow
	for _, ds := range datasets {
		rows = append(rows, tableRow{cells: []string{
			s.ids.Of(ds),
			strings.ToLower(ds.SelectedProjectMembersAccess.Label()),
			strings.ToLower(ds.OtherProjectMembersAccess.Label()),
			strings.ToLower(ds.PublicAccess.Label()),
		}})
	}
	return rows
}

func (s *synthesizer) publicationRows() []tableRow {
	var rows []tableRow
	for _, ds := range s.plan.NewDatasets() {
		comment := ""
		if ds.LegalRestrictions {
			comment = s.plan.LegalRestrictionsComment
		}
		row := tableRow{cells: []string{
			s.ids.Of(ds),
			ds.DataAccess.Label(),
			comment,
			s.publicationDate(ds),
			s.repositoryTitles(ds),
			"",
			"",
		}, linkColumn: 6}
		if ds.License != nil && ds.DataAccess != dmp.AccessClosed {
			row.cells[6] = ds.License.Acronym
			row.linkURL = ds.License.URL
		}
		rows = append(rows, row)
	}
	return rows
}

// publicationDate is the dataset start, or a fixed number of months
// before the project ends.
func (s *synthesizer) publicationDate(ds *dmp.Dataset) string {
	if ds.Start != nil {
		return FormatDate(ds.Start)
	}
	if p := s.plan.Project; p != nil && p.End != nil {
		d := p.End.AddMonths(-s.cfg.publicationOffset())
		return FormatDate(&d)
	}
	return ""
}

func (s *synthesizer) repositoryRows() []tableRow {
	var rows []tableRow
	for _, ds := range s.plan.FilterDatasets(func(ds *dmp.Dataset) bool {
		return ds.Source == dmp.SourceNew && !ds.Delete
	}) {
		retention := ""
		if ds.RetentionPeriod != nil {
			retention = strconv.Itoa(*ds.RetentionPeriod) + " " + s.t(i18n.KeyRetentionYears)
		}
		rows = append(rows, tableRow{cells: []string{
			s.ids.Of(ds),
			s.repositoryTitles(ds),
			retention,
			s.plan.TargetAudience,
		}})
	}
	return rows
}

func (s *synthesizer) deletionRows() []tableRow {
	var rows []tableRow
	for _, ds := range s.plan.DeletedDatasets() {
		rows = append(rows, tableRow{cells: []string{
			s.ids.Of(ds),
			ds.Title,
			FormatDate(ds.DateOfDeletion),
			ds.ReasonForDeletion,
			ds.DeletionPerson.Name(),
		}})
	}
	return rows
}

func (s *synthesizer) costRows() []tableRow {
	var rows []tableRow
	for _, c := range s.plan.Costs {
		value := ""
		if c.Value != nil {
			value = FormatAmount(*c.Value)
		}
		rows = append(rows, tableRow{cells: []string{
			c.Title,
			c.Type.Label(),
			c.Description,
			c.CurrencyCode,
			value,
		}})
	}
	return rows
}

// targetAudienceColumn holds the value shared by every repository row.
const targetAudienceColumn = 3

// mergeTargetAudience merges the target audience column of all data rows
// below the header.
func mergeTargetAudience(_ *synthesizer, tbl *xml.Table) error {
	last := tbl.RowCount() - 1
	if last < 1 {
		return nil
	}
	return ApplyColumnMerge(tbl, targetAudienceColumn, 1, last)
}
