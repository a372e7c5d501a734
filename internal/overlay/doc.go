// Package overlay implements the referral overlay pipeline.
//
// The pipeline is a strictly sequential batch job over one invocation:
//
//	Validator → Locator → Enricher → Aggregator → (report writer)
//
// The Validator fails fast on input-contract violations. The Locator
// reduces the full consultative-areas layer to the subset intersecting
// the working boundary. The Enricher builds one row per input feature
// (attribution, size measure, elevation). The Aggregator appends one
// "required"/"n/r" column per discovered consultative-area name. The
// assembled Table is sorted by feature name and handed to the report
// writer. Any stage failure aborts the run; there are no partial
// reports.
package overlay
