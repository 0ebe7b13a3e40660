package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Dosewatch/internal/assessment"
	"github.com/MikeSquared-Agency/Dosewatch/internal/assets"
	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
	"github.com/MikeSquared-Agency/Dosewatch/internal/hermes"
	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
	"github.com/MikeSquared-Agency/Dosewatch/internal/store"
)

type AssessmentsHandler struct {
	engine *assessment.Engine
	store  store.Store
	hermes hermes.Client
	assets *assets.Resolver
	logger *slog.Logger
}

func NewAssessmentsHandler(e *assessment.Engine, s store.Store, h hermes.Client, a *assets.Resolver, logger *slog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{engine: e, store: s, hermes: h, assets: a, logger: logger}
}

type ShieldingRequest struct {
	Material    string  `json:"material"`
	ThicknessCM float64 `json:"thickness_cm"`
}

type CreateAssessmentRequest struct {
	Age          *int              `json:"age"`
	Gender       string            `json:"gender"`
	Mode         string            `json:"mode,omitempty"`
	DoseMSv      *float64          `json:"dose_msv,omitempty"`
	DailyRateMSv *float64          `json:"daily_rate_msv,omitempty"`
	DurationDays *float64          `json:"duration_days,omitempty"`
	Shielding    *ShieldingRequest `json:"shielding,omitempty"`
}

// AssessmentResponse carries the computed result plus the illustration for
// its tier. Image is empty and Notice explains why when the file is missing.
type AssessmentResponse struct {
	ID *uuid.UUID `json:"assessment_id,omitempty"`
	assessment.Result
	Image  string `json:"image,omitempty"`
	Notice string `json:"notice,omitempty"`
}

// Create computes an assessment.
// POST /api/v1/assessments
func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Age == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "age required"})
		return
	}

	mode := risk.Mode("")
	if req.Mode != "" {
		m, err := risk.ParseMode(req.Mode)
		if err != nil {
			writeError(w, err)
			return
		}
		mode = m
	}

	calc := assessment.Request{
		Profile: dose.Profile{Age: *req.Age, Gender: dose.ParseGender(req.Gender)},
		Exposure: dose.Exposure{
			DoseMSv:      req.DoseMSv,
			DailyRateMSv: req.DailyRateMSv,
			DurationDays: req.DurationDays,
		},
		Mode: mode,
	}
	if req.Shielding != nil {
		material, err := shielding.ParseMaterial(req.Shielding.Material)
		if err != nil {
			writeError(w, err)
			return
		}
		calc.Shielding = &shielding.Config{Material: material, ThicknessCM: req.Shielding.ThicknessCM}
	}

	res, err := h.engine.Compute(calc)
	if err != nil {
		h.logger.Info("assessment rejected", "error", err)
		writeError(w, err)
		return
	}
	assessmentsTotal.WithLabelValues(string(res.Mode), res.Classification.Effect).Inc()

	resp := AssessmentResponse{Result: res}
	h.attachImage(&resp)

	status := http.StatusOK
	if id, ok := h.record(r, res); ok {
		resp.ID = &id
		status = http.StatusCreated
		if err := h.hermes.Publish(hermes.SubjectAssessmentComputed(id.String()), hermes.AssessmentComputedEvent{
			AssessmentID: id.String(),
			Mode:         string(res.Mode),
			AdjustedDose: res.AdjustedDose,
			TierIndex:    res.Classification.TierIndex,
			Effect:       res.Classification.Effect,
			Timestamp:    nowUTC(),
		}); err != nil {
			h.logger.Warn("failed to publish assessment event", "assessment_id", id, "error", err)
		}
	}

	writeJSON(w, status, resp)
}

func (h *AssessmentsHandler) attachImage(resp *AssessmentResponse) {
	path, err := h.assets.Resolve(resp.Classification.Asset)
	if err != nil {
		if !errors.Is(err, assets.ErrAssetMissing) {
			h.logger.Warn("asset lookup failed", "asset", resp.Classification.Asset, "error", err)
		}
		resp.Notice = "Image not found: " + assets.FileName(resp.Classification.Asset) + ". The illustration is omitted."
		return
	}
	resp.Image = "/" + path
}

// record stores the result. A storage failure is logged and the computed
// result is still returned to the caller.
func (h *AssessmentsHandler) record(r *http.Request, res assessment.Result) (uuid.UUID, bool) {
	payload, err := json.Marshal(res)
	if err != nil {
		h.logger.Error("failed to encode assessment", "error", err)
		return uuid.Nil, false
	}
	age := res.Profile.Age
	a := &store.Assessment{
		Kind:         store.KindAssessment,
		Mode:         string(res.Mode),
		Age:          &age,
		Gender:       string(res.Profile.Gender),
		RawDose:      res.RawDose,
		AdjustedDose: res.AdjustedDose,
		TierIndex:    res.Classification.TierIndex,
		Effect:       res.Classification.Effect,
		Asset:        res.Classification.Asset,
		Result:       payload,
	}
	if err := h.store.CreateAssessment(r.Context(), a); err != nil {
		h.logger.Error("failed to store assessment", "error", err)
		return uuid.Nil, false
	}
	return a.ID, true
}

// Get returns a stored assessment.
// GET /api/v1/assessments/{id}
func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assessment id"})
		return
	}

	a, err := h.store.GetAssessment(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "assessment not found"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// List returns stored assessments, newest first.
// GET /api/v1/assessments?kind=&mode=&limit=
func (h *AssessmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.AssessmentFilter{
		Kind:  store.Kind(r.URL.Query().Get("kind")),
		Mode:  r.URL.Query().Get("mode"),
		Limit: 50,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}

	list, err := h.store.ListAssessments(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []*store.Assessment{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Stats summarizes stored assessments.
// GET /api/v1/stats
func (h *AssessmentsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
