package titleblock

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/drawingx/model"
)

// Lexical patterns shared by the rules. All are anchored to whole element
// text; title blocks render one value per cell, so partial matches inside
// longer notes are meaningless.
var (
	reDrawingLabelled = regexp.MustCompile(`(?i)^(?:DWG|DRAWING)(?:\s*(?:NO|NUM|NUMBER))?\s*[.:#]?\s*([A-Z0-9][A-Z0-9-]*)$`)
	reDrawingShaped   = regexp.MustCompile(`^[A-Z0-9]+(?:-[A-Z0-9]+)+$`)

	reRevisionInline = regexp.MustCompile(`(?i)^REV(?:ISION)?\s*[.:]?\s*([A-Z0-9]{1,2})$`)
	reRevisionLabel  = regexp.MustCompile(`(?i)^REV(?:ISION)?\s*[.:]?$`)
	reRevisionToken  = regexp.MustCompile(`^[A-Z0-9]{1,2}$`)

	reScaleInline = regexp.MustCompile(`(?i)^SCALE\s*[.:]?\s*(\d+\s*[:/]\s*\d+)$`)
	reScaleLabel  = regexp.MustCompile(`(?i)^SCALE\s*[.:]?$`)
	reScaleRatio  = regexp.MustCompile(`^\d+\s*:\s*\d+$`)

	reDateNumeric = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	reDateMonth   = regexp.MustCompile(`(?i)^\d{1,2}[\s-](?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)[A-Z]*[\s-]\d{2,4}$`)

	reSheet = regexp.MustCompile(`(?i)^(?:SHEET|SHT)\s*[.:]?\s*(\d+)\s*(?:OF|/)\s*(\d+)$`)
)

// defaultRules returns the ordered rule set. Order is only cosmetic for
// reporting; rules are independent and the best confidence per field wins.
func defaultRules() []rule {
	return []rule{
		{tag: "drawing-number-labelled", extract: drawingNumberLabelled},
		{tag: "drawing-number-shaped", extract: drawingNumberShaped},
		{tag: "revision-inline", extract: revisionInline},
		{tag: "revision-adjacent", extract: revisionAdjacent},
		{tag: "scale-inline", extract: scaleInline},
		{tag: "scale-ratio", extract: scaleRatio},
		{tag: "scale-adjacent", extract: scaleAdjacent},
		{tag: "date-patterns", extract: datePatterns},
		{tag: "sheet-of", extract: sheetOf},
	}
}

// drawingNumberLabelled matches an explicit "DWG NO: X" cell
func drawingNumberLabelled(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		if m := reDrawingLabelled.FindStringSubmatch(strings.TrimSpace(el.Text)); m != nil {
			matches = append(matches, Match{
				Field:      FieldDrawingNumber,
				Value:      strings.ToUpper(m[1]),
				Confidence: 0.9,
				Element:    el,
			})
		}
	}
	return matches
}

// drawingNumberShaped matches unlabelled drawing-number-shaped tokens
// (mixed digits and hyphens, 5+ characters), scoring by proximity to the
// conventional title-block corner (bottom-right of the region).
func drawingNumberShaped(rc *ruleContext) []Match {
	corner := model.Point{X: rc.region.Right(), Y: rc.region.Bottom()}
	diag := rc.region.Width + rc.region.Height
	if diag == 0 {
		return nil
	}

	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		text := strings.TrimSpace(el.Text)
		if len(text) < 5 || !reDrawingShaped.MatchString(text) {
			continue
		}
		if !strings.ContainsAny(text, "0123456789") {
			continue
		}
		// Hyphenated dates (12-03-24) satisfy the shape too
		if reDateNumeric.MatchString(text) {
			continue
		}
		dist := el.Origin.Distance(corner)
		conf := 0.4 + 0.4*(1.0-dist/diag)
		if conf < 0.4 {
			conf = 0.4
		}
		matches = append(matches, Match{
			Field:      FieldDrawingNumber,
			Value:      text,
			Confidence: conf,
			Element:    el,
		})
	}
	return matches
}

// revisionInline matches a combined "REV B" cell
func revisionInline(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		if m := reRevisionInline.FindStringSubmatch(strings.TrimSpace(el.Text)); m != nil {
			matches = append(matches, Match{
				Field:      FieldRevision,
				Value:      strings.ToUpper(m[1]),
				Confidence: 0.9,
				Element:    el,
			})
		}
	}
	return matches
}

// revisionAdjacent finds a short token next to a bare "REV" label, the
// common layout when label and value render as separate cells.
func revisionAdjacent(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		label := &rc.candidates[i]
		if !reRevisionLabel.MatchString(strings.TrimSpace(label.Text)) {
			continue
		}
		token := nearestMatching(rc, label, func(text string) bool {
			return reRevisionToken.MatchString(text)
		})
		if token == nil {
			continue
		}
		matches = append(matches, Match{
			Field:      FieldRevision,
			Value:      strings.ToUpper(strings.TrimSpace(token.Text)),
			Confidence: 0.7,
			Element:    token,
		})
	}
	return matches
}

// scaleInline matches a combined "SCALE 1:100" cell
func scaleInline(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		if m := reScaleInline.FindStringSubmatch(strings.TrimSpace(el.Text)); m != nil {
			matches = append(matches, Match{
				Field:      FieldScale,
				Value:      compactRatio(m[1]),
				Confidence: 0.9,
				Element:    el,
			})
		}
	}
	return matches
}

// scaleRatio matches a bare ratio token like "1:50"
func scaleRatio(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		text := strings.TrimSpace(el.Text)
		if reScaleRatio.MatchString(text) {
			matches = append(matches, Match{
				Field:      FieldScale,
				Value:      compactRatio(text),
				Confidence: 0.6,
				Element:    el,
			})
		}
	}
	return matches
}

// scaleAdjacent finds a ratio token next to a bare "SCALE" label
func scaleAdjacent(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		label := &rc.candidates[i]
		if !reScaleLabel.MatchString(strings.TrimSpace(label.Text)) {
			continue
		}
		token := nearestMatching(rc, label, func(text string) bool {
			return reScaleRatio.MatchString(text)
		})
		if token == nil {
			continue
		}
		matches = append(matches, Match{
			Field:      FieldScale,
			Value:      compactRatio(strings.TrimSpace(token.Text)),
			Confidence: 0.7,
			Element:    token,
		})
	}
	return matches
}

// datePatterns matches numeric (12/03/2024) and month-name (12 MAR 2024)
// date forms. The recovered string is kept verbatim.
func datePatterns(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		text := strings.TrimSpace(el.Text)
		if reDateNumeric.MatchString(text) || reDateMonth.MatchString(text) {
			matches = append(matches, Match{
				Field:      FieldDate,
				Value:      text,
				Confidence: 0.8,
				Element:    el,
			})
		}
	}
	return matches
}

// sheetOf matches "SHEET 2 OF 5" style cells
func sheetOf(rc *ruleContext) []Match {
	var matches []Match
	for i := range rc.candidates {
		el := &rc.candidates[i]
		if m := reSheet.FindStringSubmatch(strings.TrimSpace(el.Text)); m != nil {
			matches = append(matches, Match{
				Field:      FieldSheet,
				Value:      fmt.Sprintf("%s/%s", m[1], m[2]),
				Confidence: 0.9,
				Element:    el,
			})
		}
	}
	return matches
}

// nearestMatching returns the candidate closest to the label whose trimmed
// text satisfies pred, within the adjacency radius. The label itself is
// never a candidate.
func nearestMatching(rc *ruleContext, label *model.TextElement, pred func(string) bool) *model.TextElement {
	var best *model.TextElement
	bestDist := rc.config.AdjacencyRadius

	for i := range rc.candidates {
		el := &rc.candidates[i]
		if el == label {
			continue
		}
		text := strings.TrimSpace(el.Text)
		if !pred(text) {
			continue
		}
		if dist := label.Origin.Distance(el.Origin); dist <= bestDist {
			best = el
			bestDist = dist
		}
	}
	return best
}

// compactRatio strips interior whitespace from "1 : 100" style values
func compactRatio(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), "\t", "")
}
