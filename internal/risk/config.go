package risk

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Dosewatch/internal/config"
)

// TablesFromConfig starts from the built-in tables and replaces any table
// the config defines tiers for.
func TablesFromConfig(cfg config.ClassificationConfig) (Tables, error) {
	ts := DefaultTables()
	if len(cfg.Acute.Tiers) > 0 {
		ts.Acute = tableFromConfig(string(ModeAcute), cfg.Acute)
	}
	if len(cfg.Cumulative.Tiers) > 0 {
		ts.Cumulative = tableFromConfig(string(ModeCumulative), cfg.Cumulative)
	}
	if err := ts.Validate(); err != nil {
		return Tables{}, fmt.Errorf("classification tables: %w", err)
	}
	return ts, nil
}

func tableFromConfig(name string, tc config.TableConfig) Table {
	t := Table{
		Name:        name,
		ChartCap:    tc.ChartCap,
		ChartLabels: tc.ChartLabels,
	}
	for _, def := range tc.Tiers {
		threshold := math.Inf(1)
		if def.UpperMSv != nil {
			threshold = *def.UpperMSv
		}
		t.Tiers = append(t.Tiers, Tier{
			Threshold: threshold,
			Effect:    def.Effect,
			Detail:    def.Detail,
			Label:     def.Label,
			Asset:     def.Asset,
		})
	}
	return t
}
