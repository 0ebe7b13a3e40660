package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError maps calculation errors onto status codes. Invalid input is the
// caller's fault; anything else is ours.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, dose.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var nowUTC = func() time.Time { return time.Now().UTC() }
