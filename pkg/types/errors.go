package types

import "errors"

// Error kinds. Every error returned by this module unwraps to exactly one of
// these, so callers can branch on the kind with errors.Is.
var (
	// ErrConfiguration marks an era table or catalog that fails validation.
	// It is fatal for initialization and never partially applied.
	ErrConfiguration = errors.New("configuration error")

	// ErrDomain marks a rejected date operation: out-of-range values,
	// unknown eras, dates outside the calendar.
	ErrDomain = errors.New("domain error")

	// ErrResourceLookup marks missing presentation data, such as an era
	// name that no locale in the fallback chain provides.
	ErrResourceLookup = errors.New("resource lookup error")
)

// kindError is a sentinel error that belongs to one of the error kinds.
type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Configuration errors.
var (
	ErrInvalidEraConfig = newKindError(ErrConfiguration, "invalid era config")
	ErrInvalidLocale    = newKindError(ErrConfiguration, "invalid locale")
	ErrInvalidResource  = newKindError(ErrConfiguration, "invalid locale resource")
)

// Domain errors.
var (
	ErrInvalidEraValue      = newKindError(ErrDomain, "invalid era value")
	ErrInvalidEraName       = newKindError(ErrDomain, "invalid era name")
	ErrUnsupportedDate      = newKindError(ErrDomain, "unsupported date")
	ErrBeforeCalendarStart  = newKindError(ErrDomain, "date before calendar start")
	ErrInvalidYearOfEra     = newKindError(ErrDomain, "invalid year of era")
	ErrInvalidProlepticYear = newKindError(ErrDomain, "invalid proleptic year")
	ErrInvalidDate          = newKindError(ErrDomain, "invalid date")
	ErrInvalidDisplay       = newKindError(ErrDomain, "invalid display string")
	ErrInvalidNameTier      = newKindError(ErrDomain, "invalid name tier")
)

// Resource lookup errors.
var (
	ErrMissingLocalizedName = newKindError(ErrResourceLookup, "missing localized name")
)
