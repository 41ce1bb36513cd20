package dmpexport

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"

	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

// EnvPrefix prefixes every environment variable read by ConfigFromEnvironment.
const EnvPrefix = "DMPEXPORT"

// DefaultPublicationOffsetMonths is the offset used when none is configured.
const DefaultPublicationOffsetMonths = 2

// Config contains all configuration options for an Exporter
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Locale selects the narrative bundle, e.g. "en" or "de"
	Locale string `envconfig:"LOCALE" default:"en"`
	// Lenient lets an export succeed with known tokens left unresolved.
	// By default such an export fails.
	Lenient bool `envconfig:"LENIENT_TOKENS" default:"false"`
	// ListTokens are rendered one fragment per line, split on ";"
	ListTokens []string `envconfig:"LIST_TOKENS" default:"[contributors],[storage],[legalrestriction],[repoinformation]"`
	// CoordinatorRoles are the contributor roles that identify the coordinator
	CoordinatorRoles []string `envconfig:"COORDINATOR_ROLES" default:"Project Leader,Project Manager"`
	// PublicationOffsetMonths is subtracted from the project end when a
	// dataset has no start date. Nil means DefaultPublicationOffsetMonths.
	PublicationOffsetMonths *int `envconfig:"PUBLICATION_OFFSET_MONTHS" default:"2"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	offset := DefaultPublicationOffsetMonths
	return &Config{
		LogLevel:                "info",
		Locale:                  "en",
		ListTokens:              []string{TokenContributors, TokenStorage, TokenLegalRestriction, TokenRepoInformation},
		CoordinatorRoles:        []string{"Project Leader", "Project Manager"},
		PublicationOffsetMonths: &offset,
	}
}

// ConfigFromEnvironment creates a configuration from DMPEXPORT_*
// environment variables, falling back to the defaults.
func ConfigFromEnvironment() (*Config, error) {
	var config Config
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return &config, nil
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Locale == "" {
		config.Locale = defaults.Locale
	}
	if config.ListTokens == nil {
		config.ListTokens = defaults.ListTokens
	}
	if config.CoordinatorRoles == nil {
		config.CoordinatorRoles = defaults.CoordinatorRoles
	}
	if config.PublicationOffsetMonths == nil {
		config.PublicationOffsetMonths = defaults.PublicationOffsetMonths
	} else {
		offset := *config.PublicationOffsetMonths
		config.PublicationOffsetMonths = &offset
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	base, _ := tag.Base()
	supported := false
	for _, l := range i18n.Available() {
		if l == base.String() {
			supported = true
		}
	}
	if !supported {
		return fmt.Errorf("unsupported locale %q (available: %v)", c.Locale, i18n.Available())
	}

	if c.PublicationOffsetMonths != nil && *c.PublicationOffsetMonths < 0 {
		return errors.New("publication offset cannot be negative")
	}

	return nil
}

// publicationOffset returns the configured offset, or the default when unset.
func (c *Config) publicationOffset() int {
	if c.PublicationOffsetMonths == nil {
		return DefaultPublicationOffsetMonths
	}
	return *c.PublicationOffsetMonths
}
