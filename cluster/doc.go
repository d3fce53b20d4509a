// Package cluster reconstructs logical text elements from fragmented
// text runs.
//
// CAD software routinely splits a single label into several spans, or even
// individual characters, when exporting to PDF. The [Clusterer] repairs
// this: fragments are sorted into reading order (baseline bands top to
// bottom, left to right within a band) and consecutive fragments are
// greedily merged when they share a baseline, sit within a font-size-scaled
// horizontal gap, and use a compatible font.
//
//	clusterer := cluster.New()
//	elements := clusterer.Cluster(page.Fragments)
//
// Gap thresholds are fractions of the font size ([Config.MergeGap],
// [Config.SpaceGap]); the baseline and font-size tolerances are absolute
// points. Validate a custom [Config] before use - non-positive values are
// a configuration error.
//
// Clustering is pure and per-page: it never fails on well-formed input,
// never merges across pages, and partitions the non-whitespace fragment
// set (every fragment lands in exactly one element).
package cluster
