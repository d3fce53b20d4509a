// Package titleblock recovers drawing metadata (drawing number, revision,
// scale, date, sheet) from the title-block area of a construction sheet.
//
// Parsing is restricted to a configurable [Region] of the page, by default
// the bottom band where drawing templates place the title block. Inside the
// region an ordered set of independent rules runs over the clustered text
// elements; each rule reports tagged candidate values with a confidence,
// and the parser keeps the best candidate per field. Rules never depend on
// each other's results, so template-specific heuristics can be added
// without disturbing existing ones.
//
// Fields the rules cannot recover stay unset. The parser never fabricates
// values and an empty [model.DrawingInfo] is not an error; scanned or
// image-only sheets simply yield nothing.
package titleblock
