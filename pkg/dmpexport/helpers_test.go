package dmpexport

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`

const documentTail = `<w:sectPr/></w:body></w:document>`

const defaultRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

// p renders a paragraph with one run per text.
func p(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&sb, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, html.EscapeString(t))
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func row(cells ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:tr>")
	for _, c := range cells {
		if c == "" {
			sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="1200" w:type="dxa"/></w:tcPr><w:p/></w:tc>`)
			continue
		}
		fmt.Fprintf(&sb, `<w:tc><w:tcPr><w:tcW w:w="1200" w:type="dxa"/></w:tcPr>%s</w:tc>`, p(c))
	}
	sb.WriteString("</w:tr>")
	return sb.String()
}

// dynamicTable renders a caption paragraph and a table with a header
// row, the identifier row carrying sentinel, a pattern row of columns
// cells and any trailing rows.
func dynamicTable(caption, sentinel string, columns int, trailing ...string) string {
	header := make([]string, columns)
	ident := make([]string, columns)
	pattern := make([]string, columns)
	for i := range header {
		header[i] = fmt.Sprintf("H%d", i+1)
		pattern[i] = "x"
	}
	ident[1] = sentinel

	var sb strings.Builder
	sb.WriteString(p(caption))
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr>`)
	sb.WriteString(row(header...))
	sb.WriteString(row(ident...))
	sb.WriteString(row(pattern...))
	for _, r := range trailing {
		sb.WriteString(r)
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

func document(body ...string) string {
	return documentHead + strings.Join(body, "") + documentTail
}

// buildDocx zips a minimal package around documentXML. Extra parts are
// added as given; a nil value removes a default part.
func buildDocx(t *testing.T, documentXML string, extra map[string]*string) []byte {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"_rels/.rels":         `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
		"word/styles.xml":     `<?xml version="1.0" encoding="UTF-8"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`,
		RelationshipsPartName: defaultRels,
		DocumentPartName:      documentXML,
	}
	for name, content := range extra {
		if content == nil {
			delete(parts, name)
			continue
		}
		parts[name] = *content
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", DocumentPartName, RelationshipsPartName, "word/styles.xml"} {
		if content, ok := parts[name]; ok {
			writeZipPart(t, w, name, content)
			delete(parts, name)
		}
	}
	for name, content := range parts {
		writeZipPart(t, w, name, content)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeZipPart(t *testing.T, w *zip.Writer, name, content string) {
	t.Helper()
	fw, err := w.Create(name)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func openTestPackage(t *testing.T, data []byte) *Package {
	t.Helper()
	pkg, err := OpenPackage(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { pkg.Close() })
	return pkg
}

// readPart returns a part of a written package.
func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	bundle, err := i18n.Load("en")
	require.NoError(t, err)
	return bundle
}

func testExporter(t *testing.T, opts ...Option) *Exporter {
	t.Helper()
	opts = append([]Option{WithLogger(NewNopLogger())}, opts...)
	e, err := NewWithOptions(opts...)
	require.NoError(t, err)
	return e
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func amount(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

// testPlan returns a resolved DMP with two new and one reused dataset,
// an internal storage host, an external storage host and a repository.
func testPlan(t *testing.T) *dmp.DMP {
	t.Helper()
	plan := &dmp.DMP{
		ID:       42,
		Title:    "DMP",
		Created:  dmp.NewDate(2024, 1, 10),
		Modified: dmp.NewDate(2024, 3, 5),
		Project: &dmp.Project{
			UniversityID: "U-17",
			Title:        "Glacier Dynamics",
			Start:        dmp.NewDate(2024, 1, 1),
			End:          dmp.NewDate(2026, 12, 31),
			GrantID:      "GA-991",
		},
		Contact: &dmp.Person{
			FirstName: "Ada", LastName: "Lovelace", Mbox: "ada@example.org",
			PersonID:    &dmp.Identifier{Identifier: "0000-0001", Type: "orcid"},
			Affiliation: "TU Wien",
		},
		Contributors: []dmp.Contributor{
			{Person: dmp.Person{FirstName: "Alan", LastName: "Turing"}, Role: "Data Steward"},
			{Person: dmp.Person{FirstName: "Grace", LastName: "Hopper", Mbox: "grace@example.org"}, Role: "Project Leader"},
		},
		Datasets: []dmp.Dataset{
			{
				ID: 1, Title: "Ice cores", Types: []string{"Tabular", "Image"}, Size: int64Ptr(1500),
				Source: dmp.SourceNew, SensitiveData: true, DataAccess: dmp.AccessOpen,
				License:                      &dmp.License{Acronym: "CC-BY-4.0", URL: "https://creativecommons.org/licenses/by/4.0/"},
				RetentionPeriod:              intPtr(10),
				Distributions:                []dmp.Distribution{{HostID: 100}, {HostID: 300}},
				SelectedProjectMembersAccess: dmp.RightReadWrite,
				OtherProjectMembersAccess:    dmp.RightRead,
				PublicAccess:                 dmp.RightNone,
			},
			{
				ID: 2, Title: "Climate model", Source: dmp.SourceReused,
				DatasetIdentifier: &dmp.Identifier{Identifier: "10.5281/zenodo.1", Type: "doi"},
				Distributions:     []dmp.Distribution{{HostID: 200}},
			},
			{
				ID: 3, Title: "Field notes", Size: int64Ptr(2_500_000), Source: dmp.SourceNew,
				DataAccess:    dmp.AccessClosed,
				License:       &dmp.License{Acronym: "CC0", URL: "https://creativecommons.org/publicdomain/zero/1.0/"},
				Distributions: []dmp.Distribution{{HostID: 100}},
			},
		},
		Hosts: []dmp.Host{
			{ID: 100, Kind: dmp.HostInternalStorage, Title: "Institutional NAS", StorageID: "nas"},
			{ID: 200, Kind: dmp.HostExternalStorage, Title: "Partner cloud"},
			{ID: 300, Kind: dmp.HostRepository, Title: "Zenodo", RepositoryID: "r3d100010468"},
		},
		Costs: []dmp.Cost{
			{Title: "Storage", Type: dmp.CostStorage, CurrencyCode: "EUR", Value: amount(t, "1234.5")},
			{Title: "Curation", Type: dmp.CostPersonnel, Value: amount(t, "765.5")},
		},
		TargetAudience: "Glaciologists",
		CostsExist:     true,
	}
	require.NoError(t, plan.Resolve())
	return plan
}

// stubRegistry and friends answer lookups from fixed data.
type stubRegistry struct {
	info *ProjectInfo
	err  error
}

func (s stubRegistry) Project(context.Context, string) (*ProjectInfo, error) {
	return s.info, s.err
}

type stubStorage map[string]string

func (s stubStorage) StorageDescription(_ context.Context, id string) (string, error) {
	desc, ok := s[id]
	if !ok {
		return "", fmt.Errorf("no storage %q", id)
	}
	return desc, nil
}

type stubRepositories map[string]RepositoryInfo

func (s stubRepositories) Repository(_ context.Context, id string) (*RepositoryInfo, error) {
	info, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("no repository %q", id)
	}
	return &info, nil
}

func testLookups() Lookups {
	return Lookups{
		Projects: stubRegistry{info: &ProjectInfo{Acronym: "GLADY", FundingProgram: "FWF"}},
		Storage:  stubStorage{"nas": "a backed-up network share"},
		Repositories: stubRepositories{
			"r3d100010468": {Description: "Zenodo general repository", URL: "https://zenodo.org"},
		},
	}
}
