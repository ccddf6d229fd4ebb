package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seasalt-intel/webintel/internal/database"
	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
)

// SyncRunner triggers crawls.
type SyncRunner interface {
	Run(ctx context.Context, fast bool) (*domain.SyncSummary, error)
	ScanOne(ctx context.Context, code string, fast bool) (*domain.SiteReport, error)
	Inspect(ctx context.Context, host string) *domain.InspectReport
	Sites() []domain.SiteTarget
}

// ResultReader serves stored crawl results.
type ResultReader interface {
	GetByCode(ctx context.Context, code string) (*domain.IntelRecord, error)
	ListResults(ctx context.Context) ([]domain.IntelRecord, error)
}

// Handler holds the HTTP handlers.
type Handler struct {
	runner  SyncRunner
	results ResultReader
	log     logger.Interface
}

// NewHandler wires the handler set.
func NewHandler(runner SyncRunner, results ResultReader, log logger.Interface) *Handler {
	return &Handler{runner: runner, results: results, log: log.WithComponent("api")}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Sync runs a full roster crawl. ?fast=1 skips the performance audits.
func (h *Handler) Sync(c *gin.Context) {
	summary, err := h.runner.Run(c.Request.Context(), fastMode(c))
	if err != nil {
		h.log.Error("sync run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Scan re-crawls a single roster site by code.
func (h *Handler) Scan(c *gin.Context) {
	report, err := h.runner.ScanOne(c.Request.Context(), c.Param("code"), fastMode(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Inspect crawls an arbitrary site without persisting anything.
func (h *Handler) Inspect(c *gin.Context) {
	site := c.Query("site")
	if site == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "site query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, h.runner.Inspect(c.Request.Context(), site))
}

// Sites lists the configured roster.
func (h *Handler) Sites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sites": h.runner.Sites()})
}

// ListResults returns every stored result, newest first.
func (h *Handler) ListResults(c *gin.Context) {
	records, err := h.results.ListResults(c.Request.Context())
	if err != nil {
		h.log.Error("list results failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": records, "count": len(records)})
}

// GetResult returns the stored result for one site code.
func (h *Handler) GetResult(c *gin.Context) {
	record, err := h.results.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no result for site"})
			return
		}
		h.log.Error("get result failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get result"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func fastMode(c *gin.Context) bool {
	fast := c.Query("fast")
	return fast == "1" || fast == "true"
}
