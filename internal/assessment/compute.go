package assessment

import (
	"fmt"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
)

// Request is one recalculation. An empty Mode picks cumulative for
// accumulated exposures and acute otherwise.
type Request struct {
	Profile   dose.Profile
	Exposure  dose.Exposure
	Mode      risk.Mode
	Shielding *shielding.Config
}

type Result struct {
	Mode           risk.Mode           `json:"mode"`
	Profile        dose.Profile        `json:"profile"`
	RawDose        float64             `json:"raw_dose_msv"`
	DailyRate      *float64            `json:"daily_rate_msv,omitempty"`
	DurationDays   *float64            `json:"duration_days,omitempty"`
	Transmission   float64             `json:"transmission"`
	Modifiers      dose.Modifiers      `json:"modifiers"`
	AdjustedDose   float64             `json:"adjusted_dose_msv"`
	Classification risk.Classification `json:"classification"`
	Notes          []dose.Note         `json:"notes"`
	Chart          risk.Chart          `json:"chart"`
}

// Compute runs adjustment and classification for one request.
//
// Shielding only attenuates accumulated exposures: the daily rate, whether
// supplied or the configured base rate, is multiplied by the transmission
// fraction before being held for the duration.
func (e *Engine) Compute(req Request) (Result, error) {
	if err := req.Profile.Validate(); err != nil {
		return Result{}, err
	}
	if req.Profile.Gender == "" {
		req.Profile.Gender = dose.GenderUnspecified
	}

	res := Result{Profile: req.Profile, Transmission: 1.0}

	exposure := req.Exposure
	if req.Shielding != nil {
		if exposure.DoseMSv != nil {
			return Result{}, fmt.Errorf("shielding applies to accumulated exposure only: %w", dose.ErrInvalidInput)
		}
		t, err := e.Transmission(*req.Shielding)
		if err != nil {
			return Result{}, err
		}
		res.Transmission = t
	}
	if exposure.DoseMSv == nil && exposure.DurationDays != nil {
		rate := e.DailyRate(1.0)
		if exposure.DailyRateMSv != nil {
			rate = *exposure.DailyRateMSv
		}
		rate *= res.Transmission
		exposure.DailyRateMSv = &rate
		res.DailyRate = &rate
		res.DurationDays = exposure.DurationDays
	}

	raw, err := exposure.Raw()
	if err != nil {
		return Result{}, err
	}
	res.RawDose = raw

	mode := req.Mode
	if mode == "" {
		mode = risk.ModeAcute
		if exposure.IsAccumulated() {
			mode = risk.ModeCumulative
		}
	}
	table, err := e.tables.For(mode)
	if err != nil {
		return Result{}, err
	}
	res.Mode = mode

	adjusted, err := dose.Adjust(raw, req.Profile.Age, req.Profile.Gender)
	if err != nil {
		return Result{}, err
	}
	res.Modifiers = dose.ModifiersFor(req.Profile)
	res.AdjustedDose = adjusted

	c, err := table.Classify(adjusted)
	if err != nil {
		return Result{}, err
	}
	res.Classification = c
	res.Notes = dose.Notes(req.Profile)
	res.Chart = table.Chart(raw, adjusted)
	return res, nil
}
