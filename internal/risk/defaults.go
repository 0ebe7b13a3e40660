package risk

import "math"

// Asset keys resolve to images/human_body_<key>.png.
const (
	AssetHealthy  = "healthy"
	AssetMinor    = "minor_damage"
	AssetModerate = "moderate_damage"
	AssetSevere   = "severe_damage"
	AssetCritical = "critical_damage"
)

// AcuteTable classifies a single acute dose.
func AcuteTable() Table {
	return Table{
		Name: string(ModeAcute),
		Tiers: []Tier{
			{Threshold: 100, Effect: "No observable effects", Detail: "Normal background exposure level.", Label: "None", Asset: AssetHealthy},
			{Threshold: 500, Effect: "Minor biological impact", Detail: "Slight increase in cancer risk.", Label: "Minor Risk", Asset: AssetMinor},
			{Threshold: 1000, Effect: "Possible ARS", Detail: "Possible nausea, vomiting. Risk of Acute Radiation Syndrome (ARS).", Label: "Mild ARS", Asset: AssetModerate},
			{Threshold: 3000, Effect: "Severe ARS", Detail: "Severe ARS symptoms. Temporary sterility possible.", Label: "Severe ARS", Asset: AssetSevere},
			{Threshold: 6000, Effect: "Life-threatening", Detail: "Life-threatening dose. Intensive treatment required.", Label: "Lethal Risk", Asset: AssetCritical},
			{Threshold: math.Inf(1), Effect: "Fatal in most cases", Detail: "Survival unlikely without immediate medical care.", Label: "Extreme Lethal", Asset: AssetCritical},
		},
		ChartCap:    10000,
		ChartLabels: []string{"None", "Minor Risk", "Mild ARS", "Severe ARS", "Lethal Risk", "Extreme Lethal", "Fatal"},
	}
}

// CumulativeTable classifies a dose accumulated over a duration.
func CumulativeTable() Table {
	return Table{
		Name: string(ModeCumulative),
		Tiers: []Tier{
			{Threshold: 1, Effect: "No observable effects", Label: "None", Asset: AssetHealthy},
			{Threshold: 5, Effect: "Minor biological impact", Label: "Minor Risk", Asset: AssetMinor},
			{Threshold: 15, Effect: "Mild ARS possible", Label: "Mild ARS", Asset: AssetModerate},
			{Threshold: 30, Effect: "Severe ARS symptoms", Label: "Severe ARS", Asset: AssetSevere},
			{Threshold: math.Inf(1), Effect: "Potentially life-threatening", Label: "Life-threatening", Asset: AssetCritical},
		},
		ChartCap:    50,
		ChartLabels: []string{"None", "Minor Risk", "Mild ARS", "Severe ARS", "Life-threatening", "Extreme"},
	}
}

// OrganEffect is one row of the generalized organ susceptibility table.
type OrganEffect struct {
	Organ  string `json:"organ"`
	Effect string `json:"effect"`
}

// OrganEffectsThresholdMSv is the dose the organ table describes.
const OrganEffectsThresholdMSv = 1000

func OrganEffects() []OrganEffect {
	return []OrganEffect{
		{Organ: "Bone Marrow", Effect: "Reduced blood cell count"},
		{Organ: "GI Tract", Effect: "Nausea, diarrhea"},
		{Organ: "Skin", Effect: "Burns, hair loss"},
		{Organ: "Brain", Effect: "Cognitive impairment"},
		{Organ: "Reproductive Organs", Effect: "Sterility"},
	}
}
