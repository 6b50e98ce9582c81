package types

import "fmt"

// Era is one era of the Japanese calendar. Values are numbered from Meiji (1)
// upwards.
//
// Era is a plain value: the era table keeps its own copies, so a caller that
// modifies a returned Era cannot affect lookups.
type Era struct {
	Value int    `json:"value" yaml:"value"` // 1-based, contiguous.
	Name  string `json:"name" yaml:"name"`   // Canonical name, e.g. "Heisei".
	Abbr  string `json:"abbr" yaml:"abbr"`   // Display code, e.g. "H".
	Since Date   `json:"since" yaml:"since"` // First day the era is in effect.
}

// String returns the canonical name.
func (e Era) String() string {
	return e.Name
}

// GoString is used by %#v and in test failure output.
func (e Era) GoString() string {
	return fmt.Sprintf("types.Era{%d %s %s %s}", e.Value, e.Name, e.Abbr, e.Since)
}

// NameTier selects the length of a localized era name.
type NameTier string

// Name tiers, shortest first.
const (
	TierShort  NameTier = "short"
	TierMedium NameTier = "medium"
	TierLong   NameTier = "long"
)

var validNameTiers = map[NameTier]bool{
	TierShort:  true,
	TierMedium: true,
	TierLong:   true,
}

// ParseNameTier converts s to a NameTier. It returns ErrInvalidNameTier for
// anything other than short, medium or long.
func ParseNameTier(s string) (NameTier, error) {
	t := NameTier(s)
	if !validNameTiers[t] {
		return "", fmt.Errorf("%w: %q", ErrInvalidNameTier, s)
	}
	return t, nil
}
