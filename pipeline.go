package drawingx

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/tsawler/drawingx/cluster"
	"github.com/tsawler/drawingx/marker"
	"github.com/tsawler/drawingx/model"
	"github.com/tsawler/drawingx/pdfsource"
	"github.com/tsawler/drawingx/titleblock"
)

// Extractor provides a fluent interface for extracting content from
// construction-drawing PDFs. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source (exactly one is used)
	filename string
	data     []byte
	source   PageSource
	doc      *model.DocumentFragments

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if a source is ready

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability: each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		source:       e.source,
		doc:          e.doc,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureSource opens the page source if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}

	switch {
	case e.filename != "":
		src, err := pdfsource.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		e.source = src
		e.ownsSource = true
		e.sourceOpened = true
		return nil

	case e.data != nil:
		src, err := pdfsource.FromBytes(e.data)
		if err != nil {
			return fmt.Errorf("failed to read PDF: %w", err)
		}
		e.source = src
		e.ownsSource = true
		e.sourceOpened = true
		return nil

	default:
		return fmt.Errorf("no input specified")
	}
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource {
		if c, ok := e.source.(interface{ Close() error }); ok {
			err := c.Close()
			e.source = nil
			e.ownsSource = false
			return err
		}
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// ClusterConfig replaces the text clustering parameters.
//
// Example:
//
//	cfg := cluster.DefaultConfig()
//	cfg.MergeGap = 0.5
//	result, err := drawingx.Open("plan.pdf").ClusterConfig(cfg).Extract()
func (e *Extractor) ClusterConfig(cfg cluster.Config) *Extractor {
	newExt := e.clone()
	newExt.options.cluster = cfg
	return newExt
}

// MarkerConfig replaces the marker detection parameters.
//
// Example:
//
//	result, err := drawingx.Open("plan.pdf").
//	    MarkerConfig(marker.Config{DedupRadius: 2.5}).
//	    Extract()
func (e *Extractor) MarkerConfig(cfg marker.Config) *Extractor {
	newExt := e.clone()
	newExt.options.marker = cfg
	return newExt
}

// TitleBlockConfig replaces the title-block parsing parameters.
//
// Example:
//
//	cfg := titleblock.DefaultConfig()
//	cfg.Region = titleblock.Region{Left: 0.6, Bottom: 0, Right: 1, Top: 0.25}
//	result, err := drawingx.Open("plan.pdf").TitleBlockConfig(cfg).Extract()
func (e *Extractor) TitleBlockConfig(cfg titleblock.Config) *Extractor {
	newExt := e.clone()
	newExt.options.titleBlock = cfg
	return newExt
}

// Workers sets the number of pages processed concurrently. Zero or a
// negative value selects one worker per CPU. Output is identical for
// every worker count.
//
// Example:
//
//	result, err := drawingx.Open("plan.pdf").Workers(4).Extract()
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// TitleBlocksPerPage configures the extractor to parse the title block of
// every sheet and report them individually in [model.Result.TitleBlocks].
// The document-level drawing info then comes from the first sheet whose
// title block yielded anything. Without this option only the first page
// is consulted, which is where multi-sheet sets conventionally carry the
// authoritative block.
//
// Example:
//
//	result, err := drawingx.Open("set.pdf").TitleBlocksPerPage().Extract()
func (e *Extractor) TitleBlocksPerPage() *Extractor {
	newExt := e.clone()
	newExt.options.perPageTitleBlocks = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract runs the full pipeline and returns the structured result.
// This is a terminal operation that closes any source the Extractor opened.
//
// Configuration errors surface immediately, before any page is read.
// A malformed page never fails the run: it is flagged in the page metadata
// and the remaining pages are processed normally.
//
// Example:
//
//	result, err := drawingx.Open("plan.pdf").Extract()
func (e *Extractor) Extract() (*model.Result, error) {
	if e.err != nil {
		return nil, e.err
	}

	if err := e.options.validate(); err != nil {
		return nil, err
	}

	if e.doc != nil {
		return e.run(*e.doc)
	}

	if err := e.ensureSource(); err != nil {
		return nil, err
	}
	defer e.Close()

	pages, err := e.source.Pages()
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}

	return e.run(model.DocumentFragments{Pages: pages})
}

// PageCount returns the number of pages the configured input holds.
// Note: this does NOT close the source, allowing further operations.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	if e.doc != nil {
		return len(e.doc.Pages), nil
	}

	if err := e.ensureSource(); err != nil {
		return 0, err
	}

	pages, err := e.source.Pages()
	if err != nil {
		return 0, fmt.Errorf("reading pages: %w", err)
	}
	return len(pages), nil
}

// ============================================================================
// Pipeline engine
// ============================================================================

// pageResult is one page's contribution, produced by a worker and merged
// in page order afterwards.
type pageResult struct {
	meta     model.PageMetadata
	elements []model.TextElement
	markers  map[string][]model.MarkerOccurrence
	info     model.DrawingInfo
	parsed   bool // title block was parsed for this page
}

// run executes the pipeline over pre-parsed fragments. Pages are
// processed independently by a bounded worker pool and merged in
// ascending page order, so the result does not depend on worker count
// or scheduling.
func (e *Extractor) run(doc model.DocumentFragments) (*model.Result, error) {
	clusterer := cluster.NewWithConfig(e.options.cluster)
	detector := marker.NewWithConfig(e.options.marker)
	parser := titleblock.NewWithConfig(e.options.titleBlock)

	n := len(doc.Pages)
	results := make([]pageResult, n)

	workers := e.options.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	if n > 0 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					parseTB := e.options.perPageTitleBlocks || i == 0
					results[i] = processPage(doc.Pages[i], clusterer, detector, parser, parseTB)
				}
			}()
		}
		for i := range doc.Pages {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	return e.merge(results), nil
}

// processPage runs the per-page stages: fragment validation, clustering,
// marker detection, and optionally title-block parsing. A malformed
// fragment fails its page only; the returned metadata carries the flag
// and the reason.
func processPage(page model.PageFragments, clusterer *cluster.Clusterer, detector *marker.Detector, parser *titleblock.Parser, parseTB bool) pageResult {
	meta := model.PageMetadata{
		Page:     page.Page,
		Width:    page.Width,
		Height:   page.Height,
		Rotation: page.Rotation,
	}

	for i, frag := range page.Fragments {
		if err := frag.Validate(); err != nil {
			var mfe *model.MalformedFragmentError
			if errors.As(err, &mfe) {
				mfe.Index = i
			}
			meta.Failed = true
			meta.Error = err.Error()
			return pageResult{meta: meta}
		}
	}

	elements := clusterer.Cluster(page.Fragments)
	markers := detector.Detect(elements)
	meta.Elements = len(elements)

	result := pageResult{
		meta:     meta,
		elements: elements,
		markers:  markers,
	}
	if parseTB {
		result.info = parser.Parse(elements, meta)
		result.parsed = true
	}
	return result
}

// merge assembles the final result from per-page contributions in
// ascending page order.
func (e *Extractor) merge(results []pageResult) *model.Result {
	out := &model.Result{
		Metadata:        make([]model.PageMetadata, 0, len(results)),
		Markers:         make(map[string][]model.MarkerOccurrence),
		AllTextElements: []model.TextElement{},
		TitleBlocks:     []model.PageDrawingInfo{},
	}

	for _, pr := range results {
		out.Metadata = append(out.Metadata, pr.meta)
		out.AllTextElements = append(out.AllTextElements, pr.elements...)

		for code, occs := range pr.markers {
			out.Markers[code] = append(out.Markers[code], occs...)
		}

		if e.options.perPageTitleBlocks && pr.parsed {
			out.TitleBlocks = append(out.TitleBlocks, model.PageDrawingInfo{
				Page: pr.meta.Page,
				Info: pr.info,
			})
		}
		if pr.parsed && out.DrawingInfo.Empty() && !pr.info.Empty() {
			out.DrawingInfo = pr.info
		}
	}

	codes := make([]string, 0, len(out.Markers))
	for code := range out.Markers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out.Summary = model.Summary{
		TotalPages:        len(results),
		TotalMarkers:      len(codes),
		TotalTextElements: len(out.AllTextElements),
		MarkerTypes:       codes,
	}
	return out
}
