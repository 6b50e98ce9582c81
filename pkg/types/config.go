package types

import (
	"fmt"

	"golang.org/x/text/language"
)

// Config holds the settings used to build a Calendar and attach a Catalog.
type Config struct {
	// DataDir holds the era catalog (eras.jsonl and its SQLite index).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ErasFile is an era config file. When set it is the external era
	// source instead of the catalog.
	ErasFile string `json:"eras_file" yaml:"eras_file"`

	// Locale is the default BCP 47 tag for localized names. Empty means "ja".
	Locale string `json:"locale" yaml:"locale"`

	// ResourceDir optionally holds <tag>.yaml name bundles that override
	// the embedded ones.
	ResourceDir string `json:"resource_dir" yaml:"resource_dir"`
}

// DefaultLocale is used when Config.Locale is empty.
const DefaultLocale = "ja"

// Validate checks that the Config is well-formed. It returns ErrInvalidLocale
// when Locale is not a valid BCP 47 tag.
func (c Config) Validate() error {
	if c.Locale == "" {
		return nil
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLocale, c.Locale, err)
	}
	return nil
}

// LocaleTag returns the parsed default locale, falling back to DefaultLocale.
func (c Config) LocaleTag() language.Tag {
	if c.Locale == "" {
		return language.Make(DefaultLocale)
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Make(DefaultLocale)
	}
	return tag
}
