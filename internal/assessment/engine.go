package assessment

import (
	"fmt"

	"github.com/MikeSquared-Agency/Dosewatch/internal/config"
	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
)

// Rates are the illustrative conversion constants.
type Rates struct {
	// FluxToDailyDose converts a proton flux into mSv/day.
	FluxToDailyDose float64
	// BaseDailyRateMSv is the unshielded daily rate used when an accumulated
	// exposure does not supply its own.
	BaseDailyRateMSv float64
}

func DefaultRates() Rates {
	return Rates{FluxToDailyDose: 0.00005, BaseDailyRateMSv: 0.00104}
}

// Engine turns inputs into adjusted doses and classifications. It holds no
// mutable state; every call computes from its arguments.
type Engine struct {
	tables       risk.Tables
	coefficients shielding.Coefficients
	rates        Rates
}

func New(tables risk.Tables, coefficients shielding.Coefficients, rates Rates) *Engine {
	return &Engine{tables: tables, coefficients: coefficients, rates: rates}
}

func NewFromConfig(cfg *config.Config) (*Engine, error) {
	tables, err := risk.TablesFromConfig(cfg.Classification)
	if err != nil {
		return nil, err
	}
	coefficients := shielding.DefaultCoefficients()
	for name, mu := range cfg.Shielding.Coefficients {
		m, err := shielding.ParseMaterial(name)
		if err != nil {
			return nil, fmt.Errorf("shielding coefficients: %w", err)
		}
		if m == shielding.MaterialNone {
			continue
		}
		coefficients[m] = mu
	}
	rates := Rates{
		FluxToDailyDose:  cfg.Dose.FluxToDailyDose,
		BaseDailyRateMSv: cfg.Dose.BaseDailyRateMSv,
	}
	return New(tables, coefficients, rates), nil
}

func (e *Engine) Tables() risk.Tables { return e.tables }

// Transmission applies the engine's attenuation coefficients.
func (e *Engine) Transmission(s shielding.Config) (float64, error) {
	return e.coefficients.Transmission(s.Material, s.ThicknessCM)
}

// DailyRate is the base accumulated-exposure rate after shielding, mSv/day.
func (e *Engine) DailyRate(transmission float64) float64 {
	return e.rates.BaseDailyRateMSv * transmission
}
