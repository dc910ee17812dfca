// Package answer turns an authoritative document set into a grounded,
// citation-bearing answer.
//
// BuildContext renders each document in full with its metadata header; the
// Generator hands that block to a generative model and validates the
// returned citations against the documents actually supplied. Generation
// failures are hard errors: a degraded answer would be presented to the
// user as fact, so nothing is silently defaulted at this stage.
package answer
