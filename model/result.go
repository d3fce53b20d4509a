package model

// PageDrawingInfo pairs a sheet with the title-block fields recovered
// from it. Populated when per-page title-block parsing is enabled.
type PageDrawingInfo struct {
	Page int         `json:"page"`
	Info DrawingInfo `json:"info"`
}

// Summary holds aggregate counts over one extraction
type Summary struct {
	TotalPages        int      `json:"total_pages"`
	TotalMarkers      int      `json:"total_markers"` // distinct marker codes
	TotalTextElements int      `json:"total_text_elements"`
	MarkerTypes       []string `json:"marker_types"` // sorted distinct codes
}

// Result is the structured output for one document. It is always
// structurally complete: every field is present even when a page
// contributed nothing.
type Result struct {
	Metadata        []PageMetadata                `json:"metadata"`
	Markers         map[string][]MarkerOccurrence `json:"markers"`
	AllTextElements []TextElement                 `json:"all_text_elements"`
	DrawingInfo     DrawingInfo                   `json:"drawing_info"`
	TitleBlocks     []PageDrawingInfo             `json:"title_blocks"`
	Summary         Summary                       `json:"summary"`
}
