package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
)

type TablesHandler struct {
	tables risk.Tables
}

func NewTablesHandler(tables risk.Tables) *TablesHandler {
	return &TablesHandler{tables: tables}
}

type TableResponse struct {
	Mode        risk.Mode       `json:"mode"`
	Tiers       []risk.TierInfo `json:"tiers"`
	ChartCap    float64         `json:"chart_cap_msv"`
	ChartLabels []string        `json:"chart_labels"`
}

// Get describes one classification table.
// GET /api/v1/tables/{mode}
func (h *TablesHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode, err := risk.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.tables.For(mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TableResponse{
		Mode:        mode,
		Tiers:       t.Describe(),
		ChartCap:    t.ChartCap,
		ChartLabels: t.ChartLabels,
	})
}

type OrgansResponse struct {
	ThresholdMSv float64            `json:"threshold_msv"`
	Organs       []risk.OrganEffect `json:"organs"`
}

// Organs returns the organ susceptibility reference table.
// GET /api/v1/organs
func (h *TablesHandler) Organs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OrgansResponse{
		ThresholdMSv: risk.OrganEffectsThresholdMSv,
		Organs:       risk.OrganEffects(),
	})
}
