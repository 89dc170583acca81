package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/carlosfiori/weather-app/weather"
)

func WriteJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

func WriteError(w http.ResponseWriter, msg string, code int) {
	WriteJSON(w, ErrorResponse{Message: msg}, code)
}

// StatusFor maps a failure to the status returned by the JSON endpoint.
func StatusFor(f *weather.Failure) int {
	switch f.Reason {
	case weather.EmptyInput:
		return http.StatusBadRequest
	case weather.NotFound:
		return http.StatusNotFound
	case weather.MissingCredential:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
