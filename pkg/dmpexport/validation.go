package dmpexport

import (
	"errors"
	"io"
	"regexp"
	"sort"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
)

// tokenPattern matches anything shaped like a placeholder token.
var tokenPattern = regexp.MustCompile(`\[[A-Za-z][A-Za-z0-9]*\]`)

// knownTokens is every token and sentinel the exporter fills.
func knownTokens() map[string]bool {
	known := make(map[string]bool, len(BodyTokens)+len(TableKinds))
	for _, t := range BodyTokens {
		known[t] = true
	}
	for _, t := range FooterTokens {
		known[t] = true
	}
	for _, k := range TableKinds {
		known[k.Sentinel()] = true
	}
	return known
}

// findTokens returns the distinct placeholder tokens in paras, in order
// of first appearance. Only known tokens are returned when known is not
// nil.
func findTokens(paras []*xml.Paragraph, known map[string]bool) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, p := range paras {
		for _, token := range tokenPattern.FindAllString(p.Text(), -1) {
			if seen[token] || (known != nil && !known[token]) {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// checkUnresolved reports every known token still present in pkg.
func checkUnresolved(pkg *Package) error {
	known := knownTokens()
	errs := NewMultiError()
	if tokens := findTokens(pkg.Document().Paragraphs(), known); len(tokens) > 0 {
		errs.Add(&UnresolvedTokenError{Part: DocumentPartName, Tokens: tokens})
	}
	for _, name := range pkg.HeaderFooterNames() {
		doc := pkg.extras[name]
		if tokens := findTokens(doc.Paragraphs(), known); len(tokens) > 0 {
			errs.Add(&UnresolvedTokenError{Part: name, Tokens: tokens})
		}
	}
	return errs.Err()
}

// TemplateInfo describes the placeholders a template carries.
type TemplateInfo struct {
	// Tokens are the known placeholder tokens, sorted.
	Tokens []string
	// Unknown are bracketed words the exporter does not fill, sorted.
	Unknown []string
	// Tables lists the kinds of the dynamic tables in document order.
	Tables []TableKind
	// StaticTables counts tables without a sentinel.
	StaticTables int
}

// InspectTemplate lists the tokens and table sentinels of a template
// without modifying it.
func InspectTemplate(r io.Reader) (*TemplateInfo, error) {
	pkg, err := OpenPackage(r)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	paras := pkg.Document().Paragraphs()
	for _, doc := range pkg.HeadersFooters() {
		paras = append(paras, doc.Paragraphs()...)
	}

	known := knownTokens()
	info := &TemplateInfo{}
	for _, token := range findTokens(paras, nil) {
		if known[token] {
			info.Tokens = append(info.Tokens, token)
		} else {
			info.Unknown = append(info.Unknown, token)
		}
	}
	sort.Strings(info.Tokens)
	sort.Strings(info.Unknown)

	for idx, tbl := range pkg.Document().Tables() {
		kind, dynamic, err := identifyTable(tbl)
		if err != nil {
			var ute *UnknownTableError
			if errors.As(err, &ute) {
				ute.TableIndex = idx
			}
			return info, err
		}
		if dynamic {
			info.Tables = append(info.Tables, kind)
		} else {
			info.StaticTables++
		}
	}
	return info, nil
}
