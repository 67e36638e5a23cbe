package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftdeck/draftdeck/app/blotato"
	"github.com/draftdeck/draftdeck/app/content"
	"github.com/draftdeck/draftdeck/app/database"
	"github.com/draftdeck/draftdeck/app/discovery"
)

func NewHandler(pipeline *content.Pipeline, research *content.ResearchEngine,
	compliance *content.ComplianceGate, drafts database.DraftRepository,
	records database.PublishRecordRepository, orchestrator *blotato.Orchestrator,
	topics *discovery.TopicSource, extractor *discovery.Extractor, version string) *Handler {
	return &Handler{
		pipeline:     pipeline,
		research:     research,
		compliance:   compliance,
		drafts:       drafts,
		records:      records,
		orchestrator: orchestrator,
		topics:       topics,
		extractor:    extractor,
		version:      version,
	}
}

func (h *Handler) GenerateDraft(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}

	extra, ok := h.resolveContext(c, req.Context, req.ContextURL)
	if !ok {
		return
	}

	draft, err := h.pipeline.Run(c.Request.Context(), req.Topic, content.PipelineOptions{
		Context:    extra,
		Guidelines: req.BrandGuidelines,
		UseAlt:     req.UseClaude,
	})
	if err != nil {
		h.respondError(c, err, "generate_draft")
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *Handler) RunResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}

	extra, ok := h.resolveContext(c, req.Context, req.ContextURL)
	if !ok {
		return
	}

	research, err := h.research.Research(c.Request.Context(), req.Topic, extra)
	if err != nil {
		h.respondError(c, err, "run_research")
		return
	}

	c.JSON(http.StatusOK, research)
}

func (h *Handler) VerifyContent(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content and platform are required"})
		return
	}

	report, err := h.compliance.Verify(c.Request.Context(), req.Content, req.Platform)
	if err != nil {
		h.respondError(c, err, "verify_content")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) ListDrafts(c *gin.Context) {
	drafts, err := h.drafts.List(c.Query("status"))
	if err != nil {
		h.respondError(c, err, "list_drafts")
		return
	}

	c.JSON(http.StatusOK, drafts)
}

func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "get_draft")
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *Handler) ApproveDraft(c *gin.Context) {
	draft, err := h.drafts.Approve(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "approve_draft")
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *Handler) RejectDraft(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback is required"})
		return
	}

	draft, err := h.drafts.Reject(c.Param("id"), req.Feedback)
	if err != nil {
		h.respondError(c, err, "reject_draft")
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *Handler) UpdateDraftContent(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format and content are required"})
		return
	}

	draft, err := h.drafts.UpdateContent(c.Param("id"), req.Format, req.Content)
	if err != nil {
		h.respondError(c, err, "update_draft_content")
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *Handler) PublishDraft(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draftId, platforms and format are required"})
		return
	}

	result, err := h.orchestrator.PublishDraft(c.Request.Context(), blotato.PublishDraftInput{
		DraftID:     req.DraftID,
		Platforms:   req.Platforms,
		Format:      req.Format,
		ScheduledAt: req.ScheduledAt,
		MediaURLs:   req.MediaURLs,
	})
	if err != nil {
		h.respondError(c, err, "publish_draft")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) PublishDirect(c *gin.Context) {
	var req PublishDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content and platforms are required"})
		return
	}

	resp, err := h.orchestrator.PublishDirect(c.Request.Context(), req.Content, req.Platforms, req.ScheduledAt, req.MediaURLs)
	if err != nil {
		h.respondError(c, err, "publish_direct")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetQueue(c *gin.Context) {
	posts, err := h.orchestrator.Queue(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get_queue")
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetQueueItem(c *gin.Context) {
	post, err := h.orchestrator.PostStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "get_queue_item")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) CancelQueueItem(c *gin.Context) {
	ok, err := h.orchestrator.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "cancel_queue_item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.orchestrator.Accounts(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "list_accounts")
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) SuggestTopics(c *gin.Context) {
	feedURL := c.Query("feed")
	if feedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feed query parameter is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	suggestions, err := h.topics.Suggest(c.Request.Context(), feedURL, limit)
	if err != nil {
		h.respondError(c, err, "suggest_topics")
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if drafts, err := h.drafts.List(""); err == nil {
		health["drafts"] = len(drafts)
	}
	if open, err := h.records.ListOpen(); err == nil {
		health["scheduled_posts"] = len(open)
	}

	c.JSON(http.StatusOK, health)
}

// resolveContext merges inline context with text extracted from an optional
// context URL. Reports false after writing an error response.
func (h *Handler) resolveContext(c *gin.Context, inline string, contextURL string) (string, bool) {
	if contextURL == "" {
		return inline, true
	}

	extracted, err := h.extractor.FromURL(c.Request.Context(), contextURL)
	if err != nil {
		slog.Error("Context URL extraction failed", "url", contextURL, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to extract content from context_url"})
		return "", false
	}

	if inline == "" {
		return extracted, true
	}
	return inline + "\n\n" + extracted, true
}

func (h *Handler) respondError(c *gin.Context, err error, operation string) {
	var stateErr *blotato.InvalidDraftStateError
	var apiErr *blotato.APIError

	switch {
	case errors.Is(err, blotato.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	case errors.Is(err, database.ErrUnknownFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
	default:
		slog.Error("Request failed", "operation", operation, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
