package marker

import (
	"regexp"
	"strings"

	"github.com/tsawler/drawingx/model"
)

// PatternKind identifies which marker pattern matched
type PatternKind int

const (
	PatternUnknown      PatternKind = iota
	PatternAlphaNumeric             // BP1, SC2, RW3a
	PatternHyphenated               // C-1, B-12
	PatternDigitSuffix              // A1, B12, C3A
	PatternBareCode                 // SC, BP, RW, FB, C, B, W
)

func (k PatternKind) String() string {
	switch k {
	case PatternAlphaNumeric:
		return "alpha-numeric"
	case PatternHyphenated:
		return "hyphenated"
	case PatternDigitSuffix:
		return "digit-suffix"
	case PatternBareCode:
		return "bare-code"
	default:
		return "unknown"
	}
}

// pattern is one entry of the closed, ordered classification table.
// Every expression is anchored: the whole token must match, so marker
// codes embedded in longer notes are never flagged.
type pattern struct {
	kind PatternKind
	re   *regexp.Regexp
}

// patternTable is evaluated top to bottom; the first match wins.
var patternTable = []pattern{
	{PatternAlphaNumeric, regexp.MustCompile(`^[A-Z]{1,4}[0-9]{1,3}[a-z]?$`)},
	{PatternHyphenated, regexp.MustCompile(`^[A-Z]{1,2}-[0-9]{1,3}$`)},
	{PatternDigitSuffix, regexp.MustCompile(`^[A-Z][0-9]{1,3}[A-Z]?$`)},
	{PatternBareCode, regexp.MustCompile(`^(?:SC|BP|RW|FB|C|B|W)$`)},
}

// Config holds the tunable parameters for marker detection
type Config struct {
	// DedupRadius is the distance (in points) within which two hits of
	// the same code on the same page count as one occurrence. This
	// absorbs duplicate renderings such as overlapping leader-line
	// labels without collapsing distinct instances elsewhere.
	DedupRadius float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{DedupRadius: 1.0}
}

// Validate fails fast on a non-positive dedup radius
func (c Config) Validate() error {
	if c.DedupRadius <= 0 {
		return &model.ConfigurationError{Param: "dedup_radius", Value: c.DedupRadius}
	}
	return nil
}

// Detector classifies text elements against the marker pattern table
type Detector struct {
	config Config
}

// New creates a detector with default configuration
func New() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewWithConfig creates a detector with custom configuration
func NewWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Match classifies a single text against the pattern table. It returns the
// normalized marker code (upper-cased, whitespace-stripped) and the kind of
// the first matching pattern. Matching requires the entire trimmed text to
// satisfy a pattern.
func Match(text string) (string, PatternKind, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", PatternUnknown, false
	}
	for _, p := range patternTable {
		if p.re.MatchString(trimmed) {
			return strings.ToUpper(trimmed), p.kind, true
		}
	}
	return "", PatternUnknown, false
}

// Detect scans the clustered elements of one page, tags matches with the
// marker kind, and returns the code to occurrences mapping. Occurrences
// keep the element processing order; near-identical hits of the same code
// are deduplicated, keeping the first seen. Elements that match nothing
// are skipped silently.
func (d *Detector) Detect(elements []model.TextElement) map[string][]model.MarkerOccurrence {
	markers := make(map[string][]model.MarkerOccurrence)

	for i := range elements {
		el := &elements[i]

		code, _, ok := Match(el.Text)
		if !ok {
			continue
		}

		el.Kind = model.KindMarker

		if d.isDuplicate(markers[code], el) {
			continue
		}

		markers[code] = append(markers[code], model.MarkerOccurrence{
			Code:    code,
			X:       el.Origin.X,
			Y:       el.Origin.Y,
			Page:    el.Page,
			Element: el,
		})
	}

	return markers
}

// isDuplicate reports whether an occurrence of the same code already exists
// within the dedup radius on the same page.
func (d *Detector) isDuplicate(existing []model.MarkerOccurrence, el *model.TextElement) bool {
	for _, occ := range existing {
		if occ.Page != el.Page {
			continue
		}
		at := model.Point{X: occ.X, Y: occ.Y}
		if at.Distance(el.Origin) < d.config.DedupRadius {
			return true
		}
	}
	return false
}
