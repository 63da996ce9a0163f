// Package content generates marketing copy for the publisher panel. A live
// provider calls a generative-text API; the mock provider returns canned,
// deterministic output and is used whenever no API key is configured.
package content

import (
	"context"
	"errors"
	"strings"

	"socialstack/internal/config"
)

// ErrEmptyTopic is returned for caption requests without a topic.
var ErrEmptyTopic = errors.New("content: topic is required")

// CaptionRequest asks for one post caption.
type CaptionRequest struct {
	Topic    string `json:"topic" validate:"required,max=280"`
	Platform string `json:"platform" validate:"omitempty,oneof=instagram tiktok facebook x youtube linkedin"`
	Tone     string `json:"tone,omitempty" validate:"omitempty,max=40"`
}

// Caption is the structured result of a caption request.
type Caption struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags"`
	Source   string   `json:"source"`
}

// Provider generates content.
type Provider interface {
	GenerateCaption(ctx context.Context, req CaptionRequest) (Caption, error)
}

// NewProvider returns the live provider when an API key is configured and
// the mock provider otherwise.
func NewProvider(cfg config.AIConfig) Provider {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return MockProvider{}
	}
	return NewLiveProvider(cfg)
}

func normalize(req CaptionRequest) (CaptionRequest, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return req, ErrEmptyTopic
	}
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if req.Platform == "" {
		req.Platform = "instagram"
	}
	if req.Tone == "" {
		req.Tone = "upbeat"
	}
	return req, nil
}
