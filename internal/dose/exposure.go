package dose

import "fmt"

// Exposure is either a single nominal dose or a daily rate held for a
// number of days. Exactly one form must be set.
type Exposure struct {
	DoseMSv      *float64 `json:"dose_msv,omitempty"`
	DailyRateMSv *float64 `json:"daily_rate_msv,omitempty"`
	DurationDays *float64 `json:"duration_days,omitempty"`
}

func SingleDose(mSv float64) Exposure {
	return Exposure{DoseMSv: &mSv}
}

func Accumulated(dailyRate, days float64) Exposure {
	return Exposure{DailyRateMSv: &dailyRate, DurationDays: &days}
}

// IsAccumulated reports whether the exposure uses the rate × duration form.
func (e Exposure) IsAccumulated() bool {
	return e.DoseMSv == nil && e.DurationDays != nil
}

// Raw returns the unadjusted dose in mSv.
func (e Exposure) Raw() (float64, error) {
	switch {
	case e.DoseMSv != nil && (e.DailyRateMSv != nil || e.DurationDays != nil):
		return 0, fmt.Errorf("exposure sets both dose and duration: %w", ErrInvalidInput)
	case e.DoseMSv != nil:
		if *e.DoseMSv < 0 {
			return 0, fmt.Errorf("dose %g mSv: %w", *e.DoseMSv, ErrInvalidInput)
		}
		return *e.DoseMSv, nil
	case e.DailyRateMSv != nil && e.DurationDays != nil:
		return Accumulate(*e.DailyRateMSv, *e.DurationDays)
	default:
		return 0, fmt.Errorf("exposure needs dose_msv or daily_rate_msv with duration_days: %w", ErrInvalidInput)
	}
}
