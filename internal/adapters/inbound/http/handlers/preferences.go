package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/usecases/commands"
	"github.com/architeacher/gadgets/internal/usecases/queries"
)

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.app.Queries.GetPreferences.Execute(r.Context(), queries.GetPreferencesQuery{})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, prefs)
}

func (h *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs model.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	saved, err := h.app.Commands.SavePreferences.Handle(r.Context(), commands.SavePreferencesCommand{Preferences: prefs})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, saved)
}
