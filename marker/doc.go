// Package marker classifies reconstructed text elements as construction
// markers (BP1, C-1, RW3a, ...).
//
// Classification uses a closed, ordered pattern table evaluated in fixed
// priority order; the first match wins. A text matches only when the
// entire trimmed string satisfies a pattern, never as a substring of a
// longer note, so "SPECIFICATION NOTES" is never flagged as "SC".
//
// Matched codes are normalized (upper-cased, whitespace-stripped) before
// they are used as mapping keys. Hits of the same code within
// [Config.DedupRadius] of each other on one page collapse to the first
// occurrence.
//
// Detection operates on clustered elements, never on raw fragments: a
// marker split across spans ("B" + "P1") only becomes matchable after
// clustering reassembles it.
package marker
