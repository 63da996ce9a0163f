package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"socialstack/internal/content"
)

const captionTimeout = 30 * time.Second

func (s *Server) captionHandler(w http.ResponseWriter, r *http.Request) {
	var req content.CaptionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), captionTimeout)
	defer cancel()

	caption, err := s.Content.GenerateCaption(ctx, req)
	switch {
	case errors.Is(err, content.ErrEmptyTopic):
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
	case err != nil:
		log.Error().Err(err).Msg("Content: caption generation failed")
		writeError(w, r, http.StatusBadGateway, "content provider unavailable", nil)
	default:
		writeJSON(w, r, http.StatusOK, caption)
	}
}
