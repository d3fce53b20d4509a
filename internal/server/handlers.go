// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/drawingx"
	"github.com/tsawler/drawingx/cluster"
	"github.com/tsawler/drawingx/internal/config"
	"github.com/tsawler/drawingx/marker"
	"github.com/tsawler/drawingx/model"
)

// Handler serves the extraction API.
type Handler struct {
	cfg config.Config
	log *logrus.Logger
}

// NewHandler creates a handler bound to the given configuration.
func NewHandler(cfg config.Config, log *logrus.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

type extractRequest struct {
	PDFBase64 string `json:"pdf_base64" binding:"required"`
}

// Extract handles POST /api/extract. The request body carries the PDF
// as base64; the response is the full structured extraction result.
func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pdf_base64 is required"})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pdf_base64 is not valid base64"})
		return
	}

	if int64(len(data)) > h.cfg.Server.MaxRequestBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "document exceeds the size limit",
			"limit": h.cfg.Server.MaxRequestBytes,
		})
		return
	}

	result, err := h.extract(data)
	if err != nil {
		h.log.WithError(err).WithField("request_id", requestID(c)).Warn("extraction failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to process document: " + err.Error()})
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"pages":      result.Summary.TotalPages,
		"markers":    result.Summary.TotalMarkers,
		"elements":   result.Summary.TotalTextElements,
	}).Info("extraction complete")

	c.JSON(http.StatusOK, result)
}

// extract runs the pipeline with the configured tunables.
func (h *Handler) extract(data []byte) (*model.Result, error) {
	p := h.cfg.Pipeline

	ext := drawingx.FromBytes(data).
		ClusterConfig(cluster.Config{
			BaselineTolerance: p.BaselineTolerance,
			MergeGap:          p.MergeGap,
			SpaceGap:          p.SpaceGap,
			FontSizeTolerance: p.FontSizeTolerance,
		}).
		MarkerConfig(marker.Config{DedupRadius: p.DedupRadius}).
		Workers(p.Workers)

	if p.TitleBlockScope == config.ScopePerPage {
		ext = ext.TitleBlocksPerPage()
	}

	return ext.Extract()
}

// Info handles GET /api/info, describing the service and its active
// pipeline settings.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "drawingxd",
		"pipeline": gin.H{
			"baseline_tolerance":  h.cfg.Pipeline.BaselineTolerance,
			"merge_gap":           h.cfg.Pipeline.MergeGap,
			"space_gap":           h.cfg.Pipeline.SpaceGap,
			"font_size_tolerance": h.cfg.Pipeline.FontSizeTolerance,
			"dedup_radius":        h.cfg.Pipeline.DedupRadius,
			"title_block_scope":   h.cfg.Pipeline.TitleBlockScope,
		},
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
