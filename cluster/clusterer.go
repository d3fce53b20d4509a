package cluster

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/drawingx/model"
)

// Config holds the tunable parameters for text clustering.
//
// MergeGap and SpaceGap are expressed as fractions of the font size, since
// CAD exports use the working font size as the natural word-spacing unit.
type Config struct {
	// BaselineTolerance is the Y-distance (in points) within which two
	// fragments are considered to sit on the same text line.
	BaselineTolerance float64

	// MergeGap is the maximum horizontal gap, as a fraction of font size,
	// for two fragments to merge into one element.
	MergeGap float64

	// SpaceGap is the gap, as a fraction of font size, above which a
	// single space is inserted between merged fragments. Gaps at or
	// below it are treated as a split word and joined directly.
	SpaceGap float64

	// FontSizeTolerance is the maximum font size difference (in points)
	// for two fragments to merge.
	FontSizeTolerance float64
}

// DefaultConfig returns sensible defaults for CAD-exported drawings
func DefaultConfig() Config {
	return Config{
		BaselineTolerance: 2.0,
		MergeGap:          1.0,
		SpaceGap:          0.25,
		FontSizeTolerance: 0.5,
	}
}

// Validate fails fast on non-positive tolerances or gaps
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"baseline_tolerance", c.BaselineTolerance},
		{"merge_gap", c.MergeGap},
		{"space_gap", c.SpaceGap},
		{"font_size_tolerance", c.FontSizeTolerance},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return &model.ConfigurationError{Param: ch.name, Value: ch.value}
		}
	}
	return nil
}

// Clusterer merges fragmented text runs that a PDF writer split across
// multiple spans into logical text elements.
type Clusterer struct {
	config Config
}

// New creates a clusterer with default configuration
func New() *Clusterer {
	return &Clusterer{config: DefaultConfig()}
}

// NewWithConfig creates a clusterer with custom configuration
func NewWithConfig(config Config) *Clusterer {
	return &Clusterer{config: config}
}

// Config returns the clusterer's configuration
func (c *Clusterer) Config() Config {
	return c.config
}

// Cluster reconstructs logical text elements from the fragments of a single
// page. Whitespace-only fragments are dropped; every remaining fragment
// ends up in exactly one output element. The function is pure: the input
// slice is not modified.
func (c *Clusterer) Cluster(fragments []model.Fragment) []model.TextElement {
	kept := c.prepare(fragments)
	if len(kept) == 0 {
		return nil
	}

	bands := c.groupIntoBands(kept)

	var elements []model.TextElement
	for _, band := range bands {
		elements = append(elements, c.mergeBand(band)...)
	}
	return elements
}

// prepare drops whitespace-only fragments and normalizes text to NFC so
// that combining sequences emitted by CAD exporters compare canonically.
func (c *Clusterer) prepare(fragments []model.Fragment) []model.Fragment {
	kept := make([]model.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.IsWhitespace() {
			continue
		}
		f.Text = norm.NFC.String(f.Text)
		kept = append(kept, f)
	}
	return kept
}

// groupIntoBands sorts fragments into reading order and partitions them
// into baseline bands: top of the page first (descending Y in PDF user
// space), left to right within a band.
func (c *Clusterer) groupIntoBands(fragments []model.Fragment) [][]model.Fragment {
	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)

	// Sort by Y only, preserving stream order for fragments within the
	// baseline tolerance. X ordering happens per band below.
	sort.SliceStable(sorted, func(i, j int) bool {
		dy := sorted[i].Origin.Y - sorted[j].Origin.Y
		if absFloat64(dy) > c.config.BaselineTolerance {
			return dy > 0 // higher Y first (top of page)
		}
		return false
	})

	var bands [][]model.Fragment
	var current []model.Fragment

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}

		// Compare against the running average Y of the band, which is
		// more stable than the first fragment when baselines wobble.
		if absFloat64(frag.Origin.Y-averageBandY(current)) <= c.config.BaselineTolerance {
			current = append(current, frag)
		} else {
			bands = append(bands, current)
			current = []model.Fragment{frag}
		}
	}
	if len(current) > 0 {
		bands = append(bands, current)
	}

	for _, band := range bands {
		sort.SliceStable(band, func(i, j int) bool {
			return band[i].Origin.X < band[j].Origin.X
		})
	}

	return bands
}

// mergeBand greedily groups consecutive fragments of one baseline band
// into elements.
func (c *Clusterer) mergeBand(band []model.Fragment) []model.TextElement {
	var elements []model.TextElement

	builder := newElementBuilder(band[0])
	for _, frag := range band[1:] {
		gap := frag.BBox.Left() - builder.bbox.Right()

		if c.canMerge(builder.last, frag, gap) {
			builder.add(frag, gap > c.config.SpaceGap*builder.last.Size)
		} else {
			elements = append(elements, builder.build())
			builder = newElementBuilder(frag)
		}
	}
	elements = append(elements, builder.build())

	return elements
}

// canMerge reports whether the next fragment continues the current element:
// small enough horizontal gap and a compatible font.
func (c *Clusterer) canMerge(prev, next model.Fragment, gap float64) bool {
	if gap > c.config.MergeGap*prev.Size {
		return false
	}
	if prev.Font != next.Font {
		return false
	}
	return absFloat64(prev.Size-next.Size) <= c.config.FontSizeTolerance
}

// elementBuilder accumulates one cluster. The representative origin is the
// first (leftmost) fragment's; font and size come from the dominant
// constituent, the one contributing the most text.
type elementBuilder struct {
	text      strings.Builder
	bbox      model.BBox
	origin    model.Point
	page      int
	last      model.Fragment
	fragments []model.Fragment

	dominant    model.Fragment
	dominantLen int
}

func newElementBuilder(first model.Fragment) *elementBuilder {
	b := &elementBuilder{
		bbox:        first.BBox,
		origin:      first.Origin,
		page:        first.Page,
		last:        first,
		fragments:   []model.Fragment{first},
		dominant:    first,
		dominantLen: len([]rune(first.Text)),
	}
	b.text.WriteString(first.Text)
	return b
}

func (b *elementBuilder) add(frag model.Fragment, space bool) {
	if space {
		b.text.WriteString(" ")
	}
	b.text.WriteString(frag.Text)
	b.bbox = b.bbox.Union(frag.BBox)
	b.last = frag
	b.fragments = append(b.fragments, frag)

	if n := len([]rune(frag.Text)); n > b.dominantLen {
		b.dominant = frag
		b.dominantLen = n
	}
}

func (b *elementBuilder) build() model.TextElement {
	return model.TextElement{
		Text:      b.text.String(),
		Origin:    b.origin,
		BBox:      b.bbox,
		Font:      b.dominant.Font,
		Size:      b.dominant.Size,
		Page:      b.page,
		Kind:      model.KindText,
		Fragments: b.fragments,
	}
}

func averageBandY(fragments []model.Fragment) float64 {
	total := 0.0
	for _, f := range fragments {
		total += f.Origin.Y
	}
	return total / float64(len(fragments))
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
