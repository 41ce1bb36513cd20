package dmpexport

// Replacements is an ordered mapping from placeholder token to text.
// Iteration follows first insertion; setting an existing token keeps its
// position.
type Replacements struct {
	tokens []string
	text   map[string]string
}

// NewReplacements returns an empty mapping.
func NewReplacements() *Replacements {
	return &Replacements{text: make(map[string]string)}
}

// Set maps token to text.
func (r *Replacements) Set(token, text string) {
	if _, ok := r.text[token]; !ok {
		r.tokens = append(r.tokens, token)
	}
	r.text[token] = text
}

// Get returns the text mapped to token.
func (r *Replacements) Get(token string) (string, bool) {
	text, ok := r.text[token]
	return text, ok
}

// Tokens returns the tokens in iteration order.
func (r *Replacements) Tokens() []string {
	return append([]string(nil), r.tokens...)
}

// Len returns the number of tokens.
func (r *Replacements) Len() int {
	return len(r.tokens)
}

// Map returns a copy of the mapping without order.
func (r *Replacements) Map() map[string]string {
	m := make(map[string]string, len(r.text))
	for k, v := range r.text {
		m[k] = v
	}
	return m
}
