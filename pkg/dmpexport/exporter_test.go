package dmpexport

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

const headerWithAcronym = `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:p><w:r><w:t>[acronym] / [grantid]</w:t></w:r></w:p></w:hdr>`

func exportTemplate(t *testing.T, extra map[string]*string, body ...string) []byte {
	t.Helper()
	if extra == nil {
		extra = map[string]*string{}
	}
	if _, ok := extra["word/header1.xml"]; !ok {
		extra["word/header1.xml"] = strPtr(headerWithAcronym)
	}
	return buildDocx(t, document(body...), extra)
}

func TestExport(t *testing.T) {
	template := exportTemplate(t, nil,
		p("Title: ", "[projectname]"),
		p("Acronym [acronym], grant [grantid]"),
		dynamicTable("Publication", "[datasetPublicationTable]", 7),
		dynamicTable("Costs", "[costTable]", 5),
		dynamicTable("Deletion", "[datasetDeleteTable]", 5),
	)
	e := testExporter(t, WithLookups(testLookups()))

	var out bytes.Buffer
	result, err := e.Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
	require.NoError(t, err)

	pkg := openTestPackage(t, out.Bytes())
	texts := paragraphTexts(pkg.Document())
	assert.Contains(t, texts, "Title: Glacier Dynamics")
	assert.Contains(t, texts, "Acronym GLADY, grant FWF, GA-991")
	assert.NotContains(t, texts, "Deletion")

	require.Len(t, pkg.HeadersFooters(), 1)
	assert.Equal(t, "GLADY / FWF, GA-991", pkg.HeadersFooters()[0].Paragraphs()[0].Text())

	assert.Contains(t, readPart(t, out.Bytes(), RelationshipsPartName), "https://creativecommons.org/licenses/by/4.0/")

	require.Len(t, result.Tables, 3)
	assert.Equal(t, TablePublication, result.Tables[0].Kind)
	assert.Equal(t, 2, result.Tables[0].Rows)
	assert.Equal(t, TableCosts, result.Tables[1].Kind)
	assert.Equal(t, 2, result.Tables[1].Rows)
	assert.Equal(t, TableDeletion, result.Tables[2].Kind)
	assert.True(t, result.Tables[2].Removed)
	assert.Empty(t, result.Warnings)
	assert.GreaterOrEqual(t, result.Replaced, 5)
}

func TestExportStrictTokens(t *testing.T) {
	template := exportTemplate(t, nil, p("[project", "name] continues"))

	var out bytes.Buffer
	_, err := testExporter(t, WithLookups(testLookups())).Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
	var ute *UnresolvedTokenError
	require.True(t, errors.As(err, &ute), "got %v", err)
	assert.Equal(t, DocumentPartName, ute.Part)
	assert.Equal(t, []string{"[projectname]"}, ute.Tokens)
	assert.Zero(t, out.Len())

	lenient := testExporter(t, WithLookups(testLookups()), WithConfig(&Config{Lenient: true}))
	out.Reset()
	_, err = lenient.Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
	require.NoError(t, err)
	pkg := openTestPackage(t, out.Bytes())
	assert.Equal(t, "[projectname] continues", pkg.Document().Paragraphs()[0].Text())
}

func TestExportHeaderOnlyGetsFooterTokens(t *testing.T) {
	header := `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>[contact]</w:t></w:r></w:p></w:hdr>`
	template := exportTemplate(t, map[string]*string{"word/header1.xml": strPtr(header)}, p("[contact]"))

	lenient := testExporter(t, WithLookups(testLookups()), WithConfig(&Config{Lenient: true}))
	var out bytes.Buffer
	_, err := lenient.Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
	require.NoError(t, err)

	pkg := openTestPackage(t, out.Bytes())
	assert.NotContains(t, pkg.Document().Paragraphs()[0].Text(), "[contact]")
	assert.Equal(t, "[contact]", pkg.HeadersFooters()[0].Paragraphs()[0].Text())
}

func TestExportFailures(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		body     []string
		template []byte
		check    func(t *testing.T, err error)
	}{
		{
			name: "missing narrative key",
			opts: []Option{WithLocalizer(i18n.New(language.English, map[string]string{i18n.KeyAnd: "and"}))},
			body: []string{p("[projectname]")},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrMissingKey))
			},
		},
		{
			name: "unknown table sentinel",
			body: []string{p("[projectname]"), dynamicTable("?", "[mysteryTable]", 3)},
			check: func(t *testing.T, err error) {
				assert.True(t, IsUnknownTableError(err))
			},
		},
		{
			name:     "not a docx",
			template: []byte("hello"),
			check: func(t *testing.T, err error) {
				assert.True(t, IsDocumentError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := tt.template
			if template == nil {
				template = exportTemplate(t, nil, tt.body...)
			}
			opts := append([]Option{WithLookups(testLookups())}, tt.opts...)

			var out bytes.Buffer
			result, err := testExporter(t, opts...).Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Zero(t, out.Len(), "nothing is written on failure")
			tt.check(t, err)
		})
	}
}

func TestExportRejectsUnusablePlans(t *testing.T) {
	unindexed := func(t *testing.T) *dmp.DMP {
		plan := testPlan(t)
		return &dmp.DMP{ID: plan.ID, Project: plan.Project, Datasets: plan.Datasets, Hosts: plan.Hosts}
	}
	tests := []struct {
		name           string
		plan           func(t *testing.T) *dmp.DMP
		wantUnresolved bool
	}{
		{name: "nil", plan: func(*testing.T) *dmp.DMP { return nil }},
		{name: "never resolved", plan: unindexed, wantUnresolved: true},
		{
			name: "failed resolve",
			plan: func(t *testing.T) *dmp.DMP {
				plan := unindexed(t)
				plan.Hosts = append(plan.Hosts, plan.Hosts[0])
				require.Error(t, plan.Resolve())
				return plan
			},
			wantUnresolved: true,
		},
	}

	template := exportTemplate(t, nil, p("[storage]"), p("[repoinformation]"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testExporter(t, WithLookups(testLookups()))
			plan := tt.plan(t)

			var out bytes.Buffer
			_, err := e.Export(context.Background(), plan, bytes.NewReader(template), &out)
			require.Error(t, err)
			assert.Equal(t, tt.wantUnresolved, errors.Is(err, dmp.ErrUnresolved))
			assert.Zero(t, out.Len())

			_, err = e.BuildReplacements(context.Background(), plan)
			require.Error(t, err)
			assert.Equal(t, tt.wantUnresolved, errors.Is(err, dmp.ErrUnresolved))
		})
	}

	t.Run("resolved after the fact", func(t *testing.T) {
		plan := unindexed(t)
		require.NoError(t, plan.Resolve())
		set, err := testExporter(t, WithLookups(testLookups())).BuildReplacements(context.Background(), plan)
		require.NoError(t, err)
		for _, token := range []string{TokenStorage, TokenRepoInformation} {
			text, ok := set.Body.Get(token)
			require.True(t, ok, token)
			assert.NotEmpty(t, text, token)
		}
	})
}

func TestExportAddsRelationshipsPart(t *testing.T) {
	template := exportTemplate(t, map[string]*string{RelationshipsPartName: nil},
		dynamicTable("Publication", "[datasetPublicationTable]", 7))

	var out bytes.Buffer
	_, err := testExporter(t, WithLookups(testLookups())).Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
	require.NoError(t, err)

	rels := readPart(t, out.Bytes(), RelationshipsPartName)
	assert.Contains(t, rels, `Id="rId1"`)
	assert.Contains(t, rels, `TargetMode="External"`)
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.docx")
	require.NoError(t, os.WriteFile(templatePath, exportTemplate(t, nil, p("[projectname]")), 0o644))

	e := testExporter(t, WithLookups(testLookups()))

	outPath := filepath.Join(dir, "out.docx")
	_, err := e.ExportFile(context.Background(), testPlan(t), templatePath, outPath)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Glacier Dynamics", openTestPackage(t, data).Document().Paragraphs()[0].Text())

	bad := filepath.Join(dir, "bad.docx")
	require.NoError(t, os.WriteFile(bad, exportTemplate(t, nil, dynamicTable("?", "[mysteryTable]", 3)), 0o644))
	failedPath := filepath.Join(dir, "failed.docx")
	_, err = e.ExportFile(context.Background(), testPlan(t), bad, failedPath)
	require.Error(t, err)
	_, statErr := os.Stat(failedPath)
	assert.True(t, os.IsNotExist(statErr), "failed output is removed")

	_, err = e.ExportFile(context.Background(), testPlan(t), filepath.Join(dir, "missing.docx"), outPath)
	assert.True(t, IsDocumentError(err))
}

func TestNewWithOptionsRejectsInvalidConfig(t *testing.T) {
	_, err := NewWithOptions(WithConfig(&Config{LogLevel: "loud"}))
	assert.Error(t, err)

	_, err = NewWithOptions(WithConfig(&Config{Locale: "fr"}))
	assert.Error(t, err)

	e, err := NewWithOptions(WithLogger(NewNopLogger()), WithConfig(&Config{Locale: "de"}))
	require.NoError(t, err)
	assert.Equal(t, "de", e.Config().Locale)
	assert.False(t, e.Config().Lenient)
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	zero := 0
	tests := []struct {
		name     string
		config   *Config
		wantDate string
	}{
		{name: "locale only", config: &Config{Locale: "de"}, wantDate: "2026-10-31"},
		{name: "log level only", config: &Config{LogLevel: "warn"}, wantDate: "2026-10-31"},
		{name: "empty", config: &Config{}, wantDate: "2026-10-31"},
		{name: "explicit zero offset", config: &Config{PublicationOffsetMonths: &zero}, wantDate: "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testExporter(t, WithLookups(testLookups()), WithConfig(tt.config))

			split := exportTemplate(t, nil, p("[project", "name]"))
			var out bytes.Buffer
			_, err := e.Export(context.Background(), testPlan(t), bytes.NewReader(split), &out)
			var ute *UnresolvedTokenError
			require.True(t, errors.As(err, &ute), "known tokens must not ship unresolved, got %v", err)

			template := exportTemplate(t, nil, dynamicTable("Publication", "[datasetPublicationTable]", 7))
			out.Reset()
			_, err = e.Export(context.Background(), testPlan(t), bytes.NewReader(template), &out)
			require.NoError(t, err)

			rows := tableTexts(openTestPackage(t, out.Bytes()).Document().Tables()[0])
			require.Len(t, rows, 3)
			assert.Equal(t, tt.wantDate, rows[1][3])
			assert.Equal(t, tt.wantDate, rows[2][3])
		})
	}
}
