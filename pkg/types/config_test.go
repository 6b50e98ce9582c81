package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "empty config is valid",
			config: Config{},
		},
		{
			name:   "valid locale",
			config: Config{Locale: "en-US", DataDir: "/tmp/data"},
		},
		{
			name:    "malformed locale returns ErrInvalidLocale",
			config:  Config{Locale: "not a tag!"},
			wantErr: ErrInvalidLocale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration kind, got %v", err)
			}
		})
	}
}

func TestConfigLocaleTag(t *testing.T) {
	assert.Equal(t, "ja", Config{}.LocaleTag().String())
	assert.Equal(t, "en-US", Config{Locale: "en-US"}.LocaleTag().String())
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrInvalidEraConfig, ErrConfiguration},
		{ErrInvalidLocale, ErrConfiguration},
		{ErrInvalidResource, ErrConfiguration},
		{ErrInvalidEraValue, ErrDomain},
		{ErrInvalidEraName, ErrDomain},
		{ErrUnsupportedDate, ErrDomain},
		{ErrBeforeCalendarStart, ErrDomain},
		{ErrInvalidYearOfEra, ErrDomain},
		{ErrInvalidProlepticYear, ErrDomain},
		{ErrInvalidDate, ErrDomain},
		{ErrInvalidDisplay, ErrDomain},
		{ErrMissingLocalizedName, ErrResourceLookup},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			for _, other := range []error{ErrConfiguration, ErrDomain, ErrResourceLookup} {
				if other != tt.kind {
					assert.NotErrorIs(t, wrapped, other)
				}
			}
		})
	}
}

func TestParseNameTier(t *testing.T) {
	for _, s := range []string{"short", "medium", "long"} {
		tier, err := ParseNameTier(s)
		assert.NoError(t, err)
		assert.Equal(t, NameTier(s), tier)
	}
	_, err := ParseNameTier("tiny")
	assert.ErrorIs(t, err, ErrInvalidNameTier)
}
