package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"socialstack/internal/config"
)

const maxRetryElapsed = 15 * time.Second

// LiveProvider calls a generateContent style text API.
type LiveProvider struct {
	cfg    config.AIConfig
	client *http.Client
	// newBackOff is swapped in tests to avoid real sleeps.
	newBackOff func() backoff.BackOff
}

// NewLiveProvider builds a provider with its own HTTP client.
func NewLiveProvider(cfg config.AIConfig) *LiveProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LiveProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxElapsedTime = maxRetryElapsed
			return b
		},
	}
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *LiveProvider) GenerateCaption(ctx context.Context, req CaptionRequest) (Caption, error) {
	req, err := normalize(req)
	if err != nil {
		return Caption{}, err
	}
	prompt := fmt.Sprintf(
		"Write one %s caption for %s about %q. Respond only with JSON: {\"text\": string, \"hashtags\": [string]}.",
		req.Tone, req.Platform, req.Topic)

	text, err := p.generate(ctx, prompt)
	if err != nil {
		return Caption{}, err
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return Caption{}, err
	}
	var c Caption
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Caption{}, fmt.Errorf("content: decode caption: %w", err)
	}
	if c.Hashtags == nil {
		c.Hashtags = []string{}
	}
	c.Source = "live"
	return c, nil
}

func (p *LiveProvider) generate(ctx context.Context, prompt string) (string, error) {
	var body generateRequest
	body.Contents = append(body.Contents, struct {
		Parts []part `json:"parts"`
	}{Parts: []part{{Text: prompt}}})
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.cfg.Endpoint, p.cfg.Model, url.QueryEscape(p.cfg.APIKey))

	var out generateResponse
	op := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := p.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("content: upstream status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("content: upstream status %d: %s", resp.StatusCode, bytes.TrimSpace(data)))
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("content: decode response: %w", err))
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("Content: generate failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(p.newBackOff(), ctx), notify); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoJSON
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
