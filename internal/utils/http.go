package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/postdesk/models"
)

// WriteJSON serializes data and writes it with the given status code and
// an application/json content type. If marshaling fails the response is a
// plain 500 and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes the API error shape {"error": msg, "details": details}.
// details is omitted when empty.
func WriteError(w http.ResponseWriter, statusCode int, msg, details string) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: msg, Details: details}, statusCode)
}
