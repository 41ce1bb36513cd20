package dmpexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

var tracer = otel.Tracer("github.com/benjaminschreck/go-dmpexport/pkg/dmpexport")

// Exporter fills DOCX templates from DMPs. An Exporter holds no state
// between exports and may be used from several goroutines.
type Exporter struct {
	config  *Config
	log     *Logger
	loc     Localizer
	lookups Lookups
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithConfig sets the configuration. Unset fields take their defaults.
func WithConfig(config *Config) Option {
	return func(e *Exporter) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithLogger sets the logger.
func WithLogger(log *Logger) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// WithLocalizer sets the phrase source, overriding the bundle selected
// by Config.Locale.
func WithLocalizer(loc Localizer) Option {
	return func(e *Exporter) {
		e.loc = loc
	}
}

// WithLookups sets the external lookup services.
func WithLookups(lookups Lookups) Option {
	return func(e *Exporter) {
		e.lookups = lookups
	}
}

// New creates an exporter with the default configuration.
func New() (*Exporter, error) {
	return NewWithOptions()
}

// NewWithOptions creates an exporter with the given options. The
// configuration is validated and, unless a Localizer is given, the
// bundle for Config.Locale is loaded.
func NewWithOptions(opts ...Option) (*Exporter, error) {
	e := &Exporter{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if e.log == nil {
		e.log = GetLogger()
	}
	if e.loc == nil {
		bundle, err := i18n.Load(e.config.Locale)
		if err != nil {
			return nil, err
		}
		e.loc = bundle
	}
	return e, nil
}

// Config returns the exporter configuration.
func (e *Exporter) Config() *Config {
	return e.config
}

// Result describes a completed export.
type Result struct {
	// Warnings are recoverable problems, such as table rows that could
	// not be synthesized.
	Warnings []error
	// Tables reports every dynamic table in document order.
	Tables []TableReport
	// Replaced counts the token occurrences substituted.
	Replaced int
}

// checkPlan rejects a nil plan and one that Resolve has not indexed.
func checkPlan(plan *dmp.DMP) error {
	if plan == nil {
		return errors.New("dmpexport: nil DMP")
	}
	if !plan.Resolved() {
		return fmt.Errorf("dmpexport: DMP %d: %w", plan.ID, dmp.ErrUnresolved)
	}
	return nil
}

// BuildReplacements computes the body and footer mappings for plan
// without touching a template.
func (e *Exporter) BuildReplacements(ctx context.Context, plan *dmp.DMP) (*ReplacementSet, error) {
	return BuildReplacements(ctx, plan, e.loc, e.lookups, e.config, e.log)
}

// Export fills template with plan and writes the finished document to
// out. It fails without writing anything when a narrative key is
// missing, a table sentinel is unknown, or, in strict mode, a known
// token would be left in the document.
func (e *Exporter) Export(ctx context.Context, plan *dmp.DMP, template io.Reader, out io.Writer) (result *Result, err error) {
	if err := checkPlan(plan); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "dmpexport.Export", trace.WithAttributes(attribute.Int64("dmp.id", plan.ID)))
	defer func() { recordAnyErrorAndEndSpan(err, span) }()

	log := e.log.WithField("dmp_id", plan.ID)

	pkg, err := OpenPackage(template)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	defer func() {
		if r := recover(); r != nil {
			err = RecoverError(r)
			result = nil
			log.Error("export aborted: %v", err)
		}
	}()

	result = &Result{}

	_, phase := tracer.Start(ctx, "build-replacements")
	set, err := e.BuildReplacements(ctx, plan)
	recordAnyErrorAndEndSpan(err, phase)
	if err != nil {
		return nil, err
	}

	_, phase = tracer.Start(ctx, "substitute")
	body := NewSubstituter(set.Body, e.config.ListTokens)
	result.Replaced += body.Paragraphs(pkg.Document().Paragraphs())
	footer := NewSubstituter(set.Footer, nil)
	for _, part := range pkg.HeadersFooters() {
		result.Replaced += footer.Paragraphs(part.Paragraphs())
	}
	phase.End()

	warnings := NewMultiError()
	_, phase = tracer.Start(ctx, "synthesize-tables")
	synth := &synthesizer{
		plan:     plan,
		ids:      AssignDisplayIDs(plan),
		loc:      e.loc,
		cfg:      e.config,
		rels:     pkg.Relationships(),
		log:      log,
		warnings: warnings,
	}
	result.Tables, err = synth.Tables(pkg.Document())
	phase.SetAttributes(attribute.Int("tables", len(result.Tables)))
	recordAnyErrorAndEndSpan(err, phase)
	if err != nil {
		return nil, err
	}
	for _, tbl := range pkg.Document().Tables() {
		result.Replaced += body.Paragraphs(tbl.Paragraphs())
	}
	result.Warnings = warnings.Errors()

	if !e.config.Lenient {
		if err := checkUnresolved(pkg); err != nil {
			return nil, err
		}
	}

	_, phase = tracer.Start(ctx, "write-package")
	_, err = pkg.WriteTo(out)
	recordAnyErrorAndEndSpan(err, phase)
	if err != nil {
		return nil, err
	}

	log.WithFields(Fields{"tables": len(result.Tables), "replaced": result.Replaced, "warnings": len(result.Warnings)}).Info("export finished")
	return result, nil
}

// ExportFile fills the template at templatePath and writes the result
// to outPath. The output file is removed when the export fails.
func (e *Exporter) ExportFile(ctx context.Context, plan *dmp.DMP, templatePath, outPath string) (*Result, error) {
	in, err := os.Open(templatePath)
	if err != nil {
		return nil, NewDocumentError("open", templatePath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, NewDocumentError("create", outPath, err)
	}

	result, err := e.Export(ctx, plan, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = NewDocumentError("close", outPath, cerr)
	}
	if err != nil {
		os.Remove(outPath)
		return nil, err
	}
	return result, nil
}

func recordAnyErrorAndEndSpan(err error, span trace.Span) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
