// Package model defines the domain types and value objects for the
// referral CLI.
//
// This package contains pure data structures with no external dependencies.
// Geometry-carrying types live in internal/layer; everything here is the
// flat, tabular view of the domain: feature kinds, referral markings,
// enriched report rows, exit codes, and a custom error type (CLIError)
// that carries exit codes for proper OS process exit handling.
package model
