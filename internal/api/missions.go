package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Dosewatch/internal/assessment"
	"github.com/MikeSquared-Agency/Dosewatch/internal/flux"
	"github.com/MikeSquared-Agency/Dosewatch/internal/hermes"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
	"github.com/MikeSquared-Agency/Dosewatch/internal/store"
)

// sourceRequest marks a flux supplied by the caller rather than fetched.
const sourceRequest = "request"

type MissionsHandler struct {
	engine  *assessment.Engine
	fetcher flux.Fetcher
	store   store.Store
	hermes  hermes.Client
	logger  *slog.Logger
}

func NewMissionsHandler(e *assessment.Engine, f flux.Fetcher, s store.Store, h hermes.Client, logger *slog.Logger) *MissionsHandler {
	return &MissionsHandler{engine: e, fetcher: f, store: s, hermes: h, logger: logger}
}

type CreateMissionRequest struct {
	Material    string   `json:"material"`
	ThicknessCM float64  `json:"thickness_cm"`
	MissionDays float64  `json:"mission_days"`
	Flux        *float64 `json:"flux,omitempty"`
}

type MissionResponse struct {
	ID *string `json:"assessment_id,omitempty"`
	assessment.MissionResult
	FluxReading flux.Reading `json:"flux_reading"`
	FluxContext flux.Context `json:"flux_context"`
}

// Create runs the mission risk calculator. Without an explicit flux the
// current ambient reading is fetched, falling back to the static value.
// POST /api/v1/missions
func (h *MissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	material, err := shielding.ParseMaterial(req.Material)
	if err != nil {
		writeError(w, err)
		return
	}

	var reading flux.Reading
	if req.Flux != nil {
		reading = flux.Reading{Value: *req.Flux, Live: false, Source: sourceRequest, FetchedAt: nowUTC()}
	} else {
		reading = h.fetcher.Fetch(r.Context())
	}

	res, err := h.engine.Mission(assessment.MissionRequest{
		Flux:        reading.Value,
		Shielding:   shielding.Config{Material: material, ThicknessCM: req.ThicknessCM},
		MissionDays: req.MissionDays,
	})
	if err != nil {
		h.logger.Info("mission rejected", "error", err)
		writeError(w, err)
		return
	}
	missionsTotal.WithLabelValues(string(material), boolLabel(reading.Live)).Inc()

	resp := MissionResponse{
		MissionResult: res,
		FluxReading:   reading,
		FluxContext:   flux.Describe(reading.Value),
	}

	status := http.StatusOK
	payload, err := json.Marshal(res)
	if err != nil {
		h.logger.Error("failed to encode mission", "error", err)
		writeJSON(w, status, resp)
		return
	}
	fluxValue := reading.Value
	var fluxLive *bool
	if req.Flux == nil {
		live := reading.Live
		fluxLive = &live
	}
	a := &store.Assessment{
		Kind:         store.KindMission,
		Mode:         res.Classification.Table,
		RawDose:      res.TotalDose,
		AdjustedDose: res.TotalDose,
		TierIndex:    res.Classification.TierIndex,
		Effect:       res.Classification.Effect,
		Asset:        res.Classification.Asset,
		Flux:         &fluxValue,
		FluxLive:     fluxLive,
		Result:       payload,
	}
	if err := h.store.CreateAssessment(r.Context(), a); err != nil {
		h.logger.Error("failed to store mission", "error", err)
	} else {
		id := a.ID.String()
		resp.ID = &id
		status = http.StatusCreated
		if err := h.hermes.Publish(hermes.SubjectMissionComputed(id), hermes.MissionComputedEvent{
			AssessmentID: id,
			Flux:         reading.Value,
			FluxLive:     reading.Live,
			Material:     string(material),
			ThicknessCM:  req.ThicknessCM,
			MissionDays:  req.MissionDays,
			TotalDose:    res.TotalDose,
			RiskPercent:  res.RiskPercent,
			Timestamp:    nowUTC(),
		}); err != nil {
			h.logger.Warn("failed to publish mission event", "assessment_id", id, "error", err)
		}
	}

	writeJSON(w, status, resp)
}
