package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAssessment Kind = "assessment"
	KindMission    Kind = "mission"
)

// Assessment is one computed result kept so it can be fetched by id. It
// records outputs only; no client session state is stored.
type Assessment struct {
	ID   uuid.UUID `json:"assessment_id"`
	Kind Kind      `json:"kind"`
	Mode string    `json:"mode"`

	// Inputs
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`

	// Outputs
	RawDose      float64 `json:"raw_dose_msv"`
	AdjustedDose float64 `json:"adjusted_dose_msv"`
	TierIndex    int     `json:"tier_index"`
	Effect       string  `json:"effect"`
	Asset        string  `json:"asset"`

	// Flux provenance, mission assessments only
	Flux     *float64 `json:"flux,omitempty"`
	FluxLive *bool    `json:"flux_live,omitempty"`

	Result json.RawMessage `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type AssessmentFilter struct {
	Kind  Kind
	Mode  string
	Limit int
}

type AssessmentStats struct {
	Total         int            `json:"total"`
	Missions      int            `json:"missions"`
	FluxFallbacks int            `json:"flux_fallbacks"`
	ByEffect      map[string]int `json:"by_effect"`
}

type Store interface {
	CreateAssessment(ctx context.Context, a *Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error)
	GetStats(ctx context.Context) (*AssessmentStats, error)
	Close() error
}
