package risk

// Chart is the dose-vs-severity series a client plots, with vertical
// markers for the selected and adjusted dose.
type Chart struct {
	Breakpoints []float64 `json:"breakpoints"`
	Levels      []int     `json:"levels"`
	Labels      []string  `json:"labels,omitempty"`
	Markers     []Marker  `json:"markers"`
}

type Marker struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Chart builds the severity series for t. Breakpoints are 0, every finite
// threshold, then ChartCap; levels are their ordinal positions.
func (t Table) Chart(raw, adjusted float64) Chart {
	c := Chart{
		Breakpoints: []float64{0},
		Levels:      []int{0},
		Labels:      t.ChartLabels,
		Markers: []Marker{
			{Name: "selected", Value: raw},
			{Name: "adjusted", Value: adjusted},
		},
	}
	for _, tier := range t.Tiers {
		if !tier.Bounded() {
			break
		}
		c.Breakpoints = append(c.Breakpoints, tier.Threshold)
		c.Levels = append(c.Levels, len(c.Levels))
	}
	c.Breakpoints = append(c.Breakpoints, t.ChartCap)
	c.Levels = append(c.Levels, len(c.Levels))
	return c
}

// TierInfo is the JSON view of a tier. UpperMSv is nil for the final tier.
type TierInfo struct {
	Index    int      `json:"index"`
	UpperMSv *float64 `json:"upper_msv"`
	Effect   string   `json:"effect"`
	Detail   string   `json:"detail,omitempty"`
	Label    string   `json:"label,omitempty"`
	Asset    string   `json:"asset"`
}

func (t Table) Describe() []TierInfo {
	out := make([]TierInfo, 0, len(t.Tiers))
	for i, tier := range t.Tiers {
		info := TierInfo{Index: i, Effect: tier.Effect, Detail: tier.Detail, Label: tier.Label, Asset: tier.Asset}
		if tier.Bounded() {
			upper := tier.Threshold
			info.UpperMSv = &upper
		}
		out = append(out, info)
	}
	return out
}
