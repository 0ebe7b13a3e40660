package assessment

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
)

// MissionRequest drives the mission risk calculator. Flux is in
// protons·cm⁻²·s⁻¹·sr⁻¹.
type MissionRequest struct {
	Flux        float64
	Shielding   shielding.Config
	MissionDays float64
}

type MissionResult struct {
	Flux           float64             `json:"flux"`
	Shielding      shielding.Config    `json:"shielding"`
	MissionDays    float64             `json:"mission_days"`
	Transmission   float64             `json:"transmission"`
	DailyDose      float64             `json:"daily_dose_msv"`
	TotalDose      float64             `json:"total_dose_msv"`
	RiskPercent    float64             `json:"risk_percent"`
	Classification risk.Classification `json:"classification"`
}

// Mission computes daily = flux × FluxToDailyDose × transmission,
// total = daily × days and the derived risk percentage.
func (e *Engine) Mission(req MissionRequest) (MissionResult, error) {
	if math.IsNaN(req.Flux) || req.Flux < 0 {
		return MissionResult{}, fmt.Errorf("flux %g: %w", req.Flux, dose.ErrInvalidInput)
	}
	if math.IsNaN(req.MissionDays) || req.MissionDays < 0 {
		return MissionResult{}, fmt.Errorf("mission days %g: %w", req.MissionDays, dose.ErrInvalidInput)
	}
	t, err := e.Transmission(req.Shielding)
	if err != nil {
		return MissionResult{}, err
	}

	daily := req.Flux * e.rates.FluxToDailyDose * t
	if math.IsInf(daily, 0) || math.IsNaN(daily) {
		return MissionResult{}, fmt.Errorf("daily dose overflows for flux %g: %w", req.Flux, dose.ErrInvalidInput)
	}
	total := daily * req.MissionDays
	if math.IsInf(total, 0) {
		return MissionResult{}, fmt.Errorf("total dose overflows over %g days: %w", req.MissionDays, dose.ErrInvalidInput)
	}

	c, err := e.tables.Cumulative.Classify(total)
	if err != nil {
		return MissionResult{}, err
	}
	return MissionResult{
		Flux:           req.Flux,
		Shielding:      req.Shielding,
		MissionDays:    req.MissionDays,
		Transmission:   t,
		DailyDose:      daily,
		TotalDose:      total,
		RiskPercent:    risk.RiskPercent(total),
		Classification: c,
	}, nil
}
