package shielding

import (
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
)

type Material string

const (
	MaterialNone         Material = "none"
	MaterialAluminum     Material = "aluminum"
	MaterialPolyethylene Material = "polyethylene"
)

// ParseMaterial is case-insensitive; an empty string means no shielding.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return MaterialNone, nil
	case "aluminum", "aluminium":
		return MaterialAluminum, nil
	case "polyethylene":
		return MaterialPolyethylene, nil
	default:
		return "", fmt.Errorf("unknown shielding material %q: %w", s, dose.ErrInvalidInput)
	}
}

// Coefficients maps a material to its attenuation coefficient in cm⁻¹.
// The values are tuned for display, not derived from physical data.
type Coefficients map[Material]float64

func DefaultCoefficients() Coefficients {
	return Coefficients{
		MaterialAluminum:     0.36,
		MaterialPolyethylene: 0.69,
	}
}

// Config is one shielding choice.
type Config struct {
	Material    Material `json:"material"`
	ThicknessCM float64  `json:"thickness_cm"`
}

// Transmission returns exp(-μ·thickness). No material or zero thickness
// yields exactly 1.
func (c Coefficients) Transmission(m Material, thicknessCM float64) (float64, error) {
	if math.IsNaN(thicknessCM) || thicknessCM < 0 {
		return 0, fmt.Errorf("shielding thickness %g cm: %w", thicknessCM, dose.ErrInvalidInput)
	}
	if m == MaterialNone || m == "" || thicknessCM == 0 {
		return 1.0, nil
	}
	mu, ok := c[m]
	if !ok {
		return 0, fmt.Errorf("no attenuation coefficient for %q: %w", m, dose.ErrInvalidInput)
	}
	return math.Exp(-mu * thicknessCM), nil
}

// Transmission uses the default coefficients.
func Transmission(m Material, thicknessCM float64) (float64, error) {
	return DefaultCoefficients().Transmission(m, thicknessCM)
}
