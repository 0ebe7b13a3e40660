package hermes

const (
	SubjectFluxLive     = "dosewatch.flux.live"
	SubjectFluxFallback = "dosewatch.flux.fallback"

	StreamName   = "DOSEWATCH_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectAssessmentComputed(id string) string { return "dosewatch.assessment." + id + ".computed" }
func SubjectMissionComputed(id string) string    { return "dosewatch.mission." + id + ".computed" }
