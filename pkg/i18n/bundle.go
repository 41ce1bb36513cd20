// Package i18n provides the narrative phrases and number formatting used
// when a DMP is rendered into a document.
//
// Phrases live in embedded YAML bundles, one per language, keyed by a
// fixed set of narrative keys (see Keys). A missing key is an error,
// never an empty string.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// ErrMissingKey is matched by every MissingKeyError.
var ErrMissingKey = errors.New("missing narrative key")

// MissingKeyError reports a narrative key absent from a bundle.
type MissingKeyError struct {
	Key    string
	Locale string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing narrative key %q for locale %s", e.Key, e.Locale)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingKey
}

// Bundle maps narrative keys to phrases for one language.
type Bundle struct {
	tag     language.Tag
	phrases map[string]string
}

// Load returns the embedded bundle for a locale such as "en" or "de-AT".
// Regional variants fall back to their base language.
func Load(locale string) (*Bundle, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	base, _ := tag.Base()

	data, err := fs.ReadFile(locales, "locales/"+base.String()+".yaml")
	if err != nil {
		return nil, fmt.Errorf("no narrative bundle for locale %q (available: %v)", locale, Available())
	}
	return Parse(language.Make(base.String()), data)
}

// Parse decodes a flat YAML mapping of key to phrase.
func Parse(tag language.Tag, data []byte) (*Bundle, error) {
	phrases := make(map[string]string)
	if err := yaml.Unmarshal(data, &phrases); err != nil {
		return nil, fmt.Errorf("parse %s bundle: %w", tag, err)
	}
	return &Bundle{tag: tag, phrases: phrases}, nil
}

// New builds a bundle from an in-memory mapping.
func New(tag language.Tag, phrases map[string]string) *Bundle {
	copied := make(map[string]string, len(phrases))
	for k, v := range phrases {
		copied[k] = v
	}
	return &Bundle{tag: tag, phrases: copied}
}

// Available lists the embedded locales.
func Available() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if len(name) > len(".yaml") {
			names = append(names, name[:len(name)-len(".yaml")])
		}
	}
	sort.Strings(names)
	return names
}

// Tag returns the bundle's language.
func (b *Bundle) Tag() language.Tag {
	return b.tag
}

// Lookup returns the phrase for key.
func (b *Bundle) Lookup(key string) (string, error) {
	phrase, ok := b.phrases[key]
	if !ok {
		return "", &MissingKeyError{Key: key, Locale: b.tag.String()}
	}
	return phrase, nil
}

// Missing returns the keys of the given set that the bundle lacks.
func (b *Bundle) Missing(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := b.phrases[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
