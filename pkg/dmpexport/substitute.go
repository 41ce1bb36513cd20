package dmpexport

import (
	"strings"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport/xml"
)

// ListSeparator splits the value of a list token into lines.
const ListSeparator = ";"

// Substituter replaces placeholder tokens inside paragraph runs.
//
// Tokens are matched within the text of a single run; a token split
// across runs is left alone. Entries are applied in mapping order, and an
// entry sees the text produced by earlier entries. List tokens are
// expanded into one line per fragment instead.
type Substituter struct {
	repl       *Replacements
	listTokens map[string]bool
}

// NewSubstituter returns a Substituter for repl. Values of listTokens are
// split on ListSeparator and rendered as separate lines.
func NewSubstituter(repl *Replacements, listTokens []string) *Substituter {
	set := make(map[string]bool, len(listTokens))
	for _, t := range listTokens {
		set[t] = true
	}
	return &Substituter{repl: repl, listTokens: set}
}

// Paragraphs substitutes every paragraph and returns the number of token
// occurrences replaced.
func (s *Substituter) Paragraphs(paras []*xml.Paragraph) int {
	n := 0
	for _, p := range paras {
		n += s.Paragraph(p)
	}
	return n
}

// Paragraph substitutes one paragraph.
func (s *Substituter) Paragraph(p *xml.Paragraph) int {
	n := 0
	for _, run := range p.Runs() {
		n += s.run(p, run)
	}
	return n
}

func (s *Substituter) run(p *xml.Paragraph, run *xml.Run) int {
	n := 0
	for _, node := range run.TextNodes() {
		text := node.Value()
		changed := false
		for _, token := range s.repl.tokens {
			count := strings.Count(text, token)
			if count == 0 {
				continue
			}
			value := s.repl.text[token]
			if s.listTokens[token] {
				expandList(p, run, value)
				return n + 1
			}
			text = strings.ReplaceAll(text, token, value)
			changed = true
			n += count
		}
		if changed {
			node.SetValue(text)
		}
	}
	return n
}

// expandList left-aligns the paragraph and replaces the run content with
// each fragment of value followed by two line breaks. The run keeps no
// other text.
func expandList(p *xml.Paragraph, run *xml.Run, value string) {
	p.SetAlignment(xml.AlignLeft)
	run.Clear()
	for _, fragment := range strings.Split(value, ListSeparator) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		run.AppendText(fragment)
		run.AppendBreak()
		run.AppendBreak()
	}
}
