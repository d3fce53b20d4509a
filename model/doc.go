// Package model provides the data types shared by the drawing-extraction
// pipeline.
//
// The input side is the [Fragment]: one raw positioned text run as emitted
// by a PDF content reader, grouped per page into [PageFragments] and per
// document into [DocumentFragments].
//
// The output side mirrors the wire contract:
//
//   - [TextElement] - a logical text unit reconstructed from fragments
//   - [MarkerOccurrence] - one detected construction marker instance
//   - [DrawingInfo] - recovered title-block fields, all optional
//   - [PageMetadata] - page dimensions, rotation, and failure flags
//   - [Result] / [Summary] - the complete per-document response
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - bounding box with union, containment, and intersection;
//     serializes as a [x0, y0, x1, y1] array
//   - [Point] - 2D point with distance calculation
//
// # Errors
//
// Two error kinds are defined: [ConfigurationError] (invalid tunables,
// fatal before any page is processed) and [MalformedFragmentError] (bad
// fragment geometry, fails only the owning page).
package model
