package dose

// NoteLevel controls how a client should present a note.
type NoteLevel string

const (
	NoteInfo    NoteLevel = "info"
	NoteWarning NoteLevel = "warning"
)

// Note is an informational message tied to a profile attribute.
type Note struct {
	Level  NoteLevel `json:"level"`
	Topic  string    `json:"topic"`
	Text   string    `json:"text"`
	Source string    `json:"source,omitempty"`
}

// Notes returns the sensitivity notes for a profile: at most one for the age
// band (adults get none) followed by exactly one for gender.
func Notes(p Profile) []Note {
	var notes []Note

	switch {
	case p.Age < 10:
		notes = append(notes, Note{
			Level:  NoteWarning,
			Topic:  "age",
			Text:   "Children under 10 are significantly more radiosensitive due to rapidly dividing cells and a longer potential lifespan for cancer manifestation. The displayed effect considers this increased sensitivity.",
			Source: "ICRP, UNSCEAR",
		})
	case p.Age < 20:
		notes = append(notes, Note{
			Level:  NoteInfo,
			Topic:  "age",
			Text:   "Younger individuals (under 20) are generally more radiosensitive than adults. The displayed effect considers this increased sensitivity.",
			Source: "ICRP, UNSCEAR",
		})
	case p.Age > 60:
		notes = append(notes, Note{
			Level:  NoteInfo,
			Topic:  "age",
			Text:   "For older adults, the long-term cancer risk from radiation may be slightly lower due to a shorter remaining lifespan. Pre-existing health conditions can still influence resilience to acute effects.",
			Source: "General radiobiological principles",
		})
	}

	switch p.Gender {
	case GenderFemale:
		notes = append(notes, Note{
			Level:  NoteInfo,
			Topic:  "gender",
			Text:   "Females generally have a slightly higher lifetime cancer risk from radiation exposure, particularly for breast and thyroid cancers. The displayed effect considers this increased sensitivity.",
			Source: "ICRP, EPA",
		})
	case GenderMale:
		notes = append(notes, Note{
			Level:  NoteInfo,
			Topic:  "gender",
			Text:   "Males have a baseline sensitivity to radiation exposure.",
			Source: "ICRP",
		})
	default:
		notes = append(notes, Note{
			Level:  NoteInfo,
			Topic:  "gender",
			Text:   "Individual biological responses to radiation can vary. Younger individuals and females generally have slightly higher sensitivities to radiation-induced cancer risks.",
			Source: "ICRP, WHO",
		})
	}

	return notes
}
