package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Dosewatch/internal/flux"
	"github.com/MikeSquared-Agency/Dosewatch/internal/hermes"
)

type FluxHandler struct {
	fetcher flux.Fetcher
	hermes  hermes.Client
	logger  *slog.Logger
}

func NewFluxHandler(f flux.Fetcher, h hermes.Client, logger *slog.Logger) *FluxHandler {
	return &FluxHandler{fetcher: f, hermes: h, logger: logger}
}

type FluxResponse struct {
	flux.Reading
	Context flux.Context `json:"context"`
	Notice  string       `json:"notice,omitempty"`
}

// Get returns the current ambient proton flux. The response is always 200;
// Live=false marks the fallback value.
// GET /api/v1/flux
func (h *FluxHandler) Get(w http.ResponseWriter, r *http.Request) {
	reading := h.fetcher.Fetch(r.Context())

	resp := FluxResponse{Reading: reading, Context: flux.Describe(reading.Value)}
	subject := hermes.SubjectFluxLive
	if !reading.Live {
		subject = hermes.SubjectFluxFallback
		resp.Notice = "Unable to fetch live data. Using default ambient flux."
	}

	if err := h.hermes.Publish(subject, hermes.FluxReadingEvent{
		Value:     reading.Value,
		Live:      reading.Live,
		Reason:    string(reading.Fallback),
		Timestamp: reading.FetchedAt,
	}); err != nil {
		h.logger.Warn("failed to publish flux event", "error", err)
	}

	writeJSON(w, http.StatusOK, resp)
}
