package hermes

import "time"

type AssessmentComputedEvent struct {
	AssessmentID string    `json:"assessment_id"`
	Mode         string    `json:"mode"`
	AdjustedDose float64   `json:"adjusted_dose_msv"`
	TierIndex    int       `json:"tier_index"`
	Effect       string    `json:"effect"`
	Timestamp    time.Time `json:"timestamp"`
}

type MissionComputedEvent struct {
	AssessmentID string    `json:"assessment_id"`
	Flux         float64   `json:"flux"`
	FluxLive     bool      `json:"flux_live"`
	Material     string    `json:"material"`
	ThicknessCM  float64   `json:"thickness_cm"`
	MissionDays  float64   `json:"mission_days"`
	TotalDose    float64   `json:"total_dose_msv"`
	RiskPercent  float64   `json:"risk_percent"`
	Timestamp    time.Time `json:"timestamp"`
}

type FluxReadingEvent struct {
	Value     float64   `json:"value"`
	Live      bool      `json:"live"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
