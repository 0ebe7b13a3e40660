package risk

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
)

// Tier is one bucket of a classification table. Threshold is the exclusive
// upper bound in mSv; the final tier of a table uses +Inf.
type Tier struct {
	Threshold float64
	Effect    string
	Detail    string
	Label     string
	Asset     string
}

// Bounded reports whether the tier has a finite upper bound.
func (t Tier) Bounded() bool {
	return !math.IsInf(t.Threshold, 1)
}

// Table is an ordered, exhaustive set of tiers.
type Table struct {
	Name  string
	Tiers []Tier

	// ChartCap is the last x-axis breakpoint drawn for the unbounded tier.
	ChartCap float64
	// ChartLabels has one entry per chart breakpoint (finite thresholds + 2).
	ChartLabels []string
}

// Classification is the result of placing a dose in a table.
type Classification struct {
	Table     string `json:"table"`
	TierIndex int    `json:"tier_index"`
	Effect    string `json:"effect"`
	Detail    string `json:"detail,omitempty"`
	Label     string `json:"label,omitempty"`
	Asset     string `json:"asset"`
}

var errEmptyTable = errors.New("table has no tiers")

// Validate checks that thresholds ascend strictly and only the final tier is
// unbounded.
func (t Table) Validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("%s: %w", t.Name, errEmptyTable)
	}
	prev := math.Inf(-1)
	for i, tier := range t.Tiers {
		last := i == len(t.Tiers)-1
		if last && tier.Bounded() {
			return fmt.Errorf("%s: final tier %q must be unbounded", t.Name, tier.Effect)
		}
		if !last && !tier.Bounded() {
			return fmt.Errorf("%s: tier %d %q is unbounded but not last", t.Name, i, tier.Effect)
		}
		if math.IsNaN(tier.Threshold) || tier.Threshold <= prev {
			return fmt.Errorf("%s: tier %d threshold %g not ascending", t.Name, i, tier.Threshold)
		}
		if tier.Asset == "" {
			return fmt.Errorf("%s: tier %d %q has no asset", t.Name, i, tier.Effect)
		}
		prev = tier.Threshold
	}
	if len(t.ChartLabels) > 0 && len(t.ChartLabels) != len(t.Tiers)+1 {
		return fmt.Errorf("%s: %d chart labels for %d breakpoints", t.Name, len(t.ChartLabels), len(t.Tiers)+1)
	}
	if len(t.Tiers) > 1 && t.ChartCap <= t.Tiers[len(t.Tiers)-2].Threshold {
		return fmt.Errorf("%s: chart cap %g must exceed the last finite threshold", t.Name, t.ChartCap)
	}
	return nil
}

// Classify selects the first tier whose threshold is strictly greater than
// the dose. A dose equal to a threshold belongs to the tier above it.
func (t Table) Classify(adjusted float64) (Classification, error) {
	if math.IsNaN(adjusted) || adjusted < 0 {
		return Classification{}, fmt.Errorf("adjusted dose %g mSv: %w", adjusted, dose.ErrInvalidInput)
	}
	if len(t.Tiers) == 0 {
		return Classification{}, fmt.Errorf("%s: %w", t.Name, errEmptyTable)
	}
	idx := len(t.Tiers) - 1
	for i, tier := range t.Tiers {
		if adjusted < tier.Threshold {
			idx = i
			break
		}
	}
	tier := t.Tiers[idx]
	return Classification{
		Table:     t.Name,
		TierIndex: idx,
		Effect:    tier.Effect,
		Detail:    tier.Detail,
		Label:     tier.Label,
		Asset:     tier.Asset,
	}, nil
}

// Mode selects which table a caller classifies against.
type Mode string

const (
	ModeAcute      Mode = "acute"
	ModeCumulative Mode = "cumulative"
)

// ParseMode defaults to acute for an empty string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeAcute):
		return ModeAcute, nil
	case string(ModeCumulative):
		return ModeCumulative, nil
	default:
		return "", fmt.Errorf("unknown mode %q: %w", s, dose.ErrInvalidInput)
	}
}

// Tables holds one table per mode.
type Tables struct {
	Acute      Table
	Cumulative Table
}

func DefaultTables() Tables {
	return Tables{Acute: AcuteTable(), Cumulative: CumulativeTable()}
}

func (ts Tables) For(m Mode) (Table, error) {
	switch m {
	case ModeAcute:
		return ts.Acute, nil
	case ModeCumulative:
		return ts.Cumulative, nil
	default:
		return Table{}, fmt.Errorf("unknown mode %q: %w", m, dose.ErrInvalidInput)
	}
}

func (ts Tables) Validate() error {
	if err := ts.Acute.Validate(); err != nil {
		return err
	}
	return ts.Cumulative.Validate()
}

// RiskPercent is the illustrative lifetime cancer-risk figure used by the
// mission calculator: 5% per 1000 mSv.
func RiskPercent(totalDose float64) float64 {
	return totalDose / 1000 * 5
}
