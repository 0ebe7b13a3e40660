package dose

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is returned for negative doses, ages or durations.
var ErrInvalidInput = errors.New("invalid input")

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

// ParseGender accepts the dashboard's selector values ("Male", "Female",
// "Prefer not to say") as well as the canonical lowercase names. Anything
// that is not male or female is treated as unspecified.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

// Profile describes the person a dose is evaluated for.
type Profile struct {
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

func (p Profile) Validate() error {
	if p.Age < 0 {
		return fmt.Errorf("age %d: %w", p.Age, ErrInvalidInput)
	}
	return nil
}

// Modifiers are the multiplicative sensitivity factors for a profile.
type Modifiers struct {
	Age    float64 `json:"age"`
	Gender float64 `json:"gender"`
}

// ModifiersFor returns both factors for p.
func ModifiersFor(p Profile) Modifiers {
	return Modifiers{
		Age:    AgeModifier(p.Age),
		Gender: GenderModifier(p.Gender),
	}
}

// AgeModifier bands are inclusive on their lower end: 10 is youth, 20 and 60
// are adult, 61 is older adult.
func AgeModifier(age int) float64 {
	switch {
	case age < 10:
		return 1.4
	case age < 20:
		return 1.2
	case age <= 60:
		return 1.0
	default:
		return 0.9
	}
}

func GenderModifier(g Gender) float64 {
	if g == GenderFemale {
		return 1.1
	}
	return 1.0
}

// Adjust scales a raw dose (mSv) by the age and gender modifiers.
func Adjust(raw float64, age int, gender Gender) (float64, error) {
	if raw < 0 {
		return 0, fmt.Errorf("raw dose %g mSv: %w", raw, ErrInvalidInput)
	}
	if age < 0 {
		return 0, fmt.Errorf("age %d: %w", age, ErrInvalidInput)
	}
	adjusted := raw * AgeModifier(age) * GenderModifier(gender)
	if math.IsInf(adjusted, 0) || math.IsNaN(adjusted) {
		return 0, fmt.Errorf("adjusted dose overflows for raw %g mSv: %w", raw, ErrInvalidInput)
	}
	return adjusted, nil
}

// Accumulate returns the raw dose for a constant daily rate over days.
func Accumulate(dailyRate, days float64) (float64, error) {
	if dailyRate < 0 {
		return 0, fmt.Errorf("daily rate %g mSv/day: %w", dailyRate, ErrInvalidInput)
	}
	if days < 0 {
		return 0, fmt.Errorf("duration %g days: %w", days, ErrInvalidInput)
	}
	total := dailyRate * days
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return 0, fmt.Errorf("%g mSv/day over %g days overflows: %w", dailyRate, days, ErrInvalidInput)
	}
	return total, nil
}
