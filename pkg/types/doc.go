// Package types defines the era record, the civil date used as the proleptic
// calendar, the catalog interface, configuration and the standard error kinds
// for the wareki calendar.
package types
