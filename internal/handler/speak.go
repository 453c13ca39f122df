package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GET /speak/{text}
//
// Echo stub for the kiosk's text-to-speech button; no audio is produced.
func (h *Handler) Speak(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "en"
	}
	writeJSON(w, http.StatusOK, SpeakResponse{
		Text:     chi.URLParam(r, "text"),
		Language: language,
		Status:   "success",
	})
}
