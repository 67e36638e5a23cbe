package api

import (
	"time"

	"github.com/draftdeck/draftdeck/app/blotato"
	"github.com/draftdeck/draftdeck/app/content"
	"github.com/draftdeck/draftdeck/app/database"
	"github.com/draftdeck/draftdeck/app/discovery"
)

type Handler struct {
	pipeline     *content.Pipeline
	research     *content.ResearchEngine
	compliance   *content.ComplianceGate
	drafts       database.DraftRepository
	records      database.PublishRecordRepository
	orchestrator *blotato.Orchestrator
	topics       *discovery.TopicSource
	extractor    *discovery.Extractor
	version      string
}

type GenerateRequest struct {
	Topic           string `json:"topic" binding:"required"`
	Context         string `json:"context"`
	ContextURL      string `json:"context_url"`
	UseClaude       bool   `json:"useClaude"`
	BrandGuidelines string `json:"brandGuidelines"`
}

type ResearchRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Context    string `json:"context"`
	ContextURL string `json:"context_url"`
}

type RejectRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type UpdateContentRequest struct {
	Format  string `json:"format" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type VerifyRequest struct {
	Content  string `json:"content" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

type PublishRequest struct {
	DraftID     string     `json:"draftId" binding:"required"`
	Platforms   []string   `json:"platforms" binding:"required"`
	Format      string     `json:"format" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	MediaURLs   []string   `json:"mediaUrls"`
}

type PublishDirectRequest struct {
	Content     string     `json:"content" binding:"required"`
	Platforms   []string   `json:"platforms" binding:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	MediaURLs   []string   `json:"mediaUrls"`
}
