package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/usecases"
	"github.com/architeacher/gadgets/internal/usecases/commands"
	"github.com/architeacher/gadgets/internal/usecases/queries"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const rootMessage = "API is running successfully!"

type Handler struct {
	app            *usecases.WebApplication
	logger         logger.Logger
	maxUploadBytes int64
	startTime      time.Time
}

func NewHandler(app *usecases.WebApplication, log logger.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		app:            app,
		logger:         log,
		maxUploadBytes: maxUploadBytes,
		startTime:      time.Now().UTC(),
	}
}

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, messageResponse{Message: rootMessage})
}

func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, nonNil(devices))
}

func (h *Handler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	attrs, ok := decodeDevice(w, r)
	if !ok {
		return
	}

	device, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{Attributes: attrs})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("/devices/%s", device.ID))
	writeJSONResponse(w, http.StatusCreated, device)
}

func (h *Handler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceID(w, r)
	if !ok {
		return
	}

	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, device)
}

func (h *Handler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceID(w, r)
	if !ok {
		return
	}

	attrs, ok := decodeDevice(w, r)
	if !ok {
		return
	}

	device, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{ID: id, Attributes: attrs})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, device)
}

func (h *Handler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceID(w, r)
	if !ok {
		return
	}

	if _, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id}); err != nil {
		h.handleError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDeviceSpecs(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceID(w, r)
	if !ok {
		return
	}

	detail, err := h.app.Queries.GetDeviceSpecs.Execute(r.Context(), queries.GetDeviceSpecsQuery{ID: id})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, detail)
}

func (h *Handler) ListPairingCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := deviceID(w, r)
	if !ok {
		return
	}

	candidates, err := h.app.Queries.ListPairingCandidates.Execute(r.Context(), queries.ListPairingCandidatesQuery{
		ID:    id,
		Query: r.URL.Query().Get("query"),
	})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, nonNil(candidates))
}

func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	key, err := catalog.ParseSortKey(params.Get("sort"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, err.Error())

		return
	}

	order, err := catalog.ParseSortOrder(params.Get("order"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, err.Error())

		return
	}

	devices, err := h.app.Queries.GetCollection.Execute(r.Context(), queries.GetCollectionQuery{
		Query:    params.Get("query"),
		Category: params.Get("category"),
		Status:   params.Get("status"),
		Sort:     key,
		Order:    order,
	})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, nonNil(devices))
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.Queries.GetStats.Execute(r.Context(), queries.GetStatsQuery{})
	if err != nil {
		h.handleError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, stats)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs *model.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		issues := make([]ValidationIssue, 0, len(validationErrs.Errors))
		for _, e := range validationErrs.Errors {
			issues = append(issues, ValidationIssue(e))
		}

		writeJSONResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:      codeValidationFailed,
			Message:   validationErrs.Error(),
			Details:   issues,
			Timestamp: time.Now().UTC(),
		})
	case errors.Is(err, model.ErrDeviceNotFound):
		writeErrorResponse(w, http.StatusNotFound, codeNotFound, msgDeviceNotFound)
	case errors.Is(err, model.ErrPhotoNotFound):
		writeErrorResponse(w, http.StatusNotFound, codeNotFound, msgPhotoNotFound)
	case errors.Is(err, model.ErrInvalidDeviceID):
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidDeviceID)
	case errors.Is(err, model.ErrSelfPairing),
		errors.Is(err, model.ErrTooManyPairings),
		errors.Is(err, model.ErrInvalidDeviceType),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidPhoto),
		errors.Is(err, model.ErrPhotoTooLarge):
		writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, model.ErrStorageUnavailable):
		writeErrorResponse(w, http.StatusServiceUnavailable, codeUnavailable, msgStorageUnavailable)
	default:
		reqLogger := h.logger.WithContext(r.Context())
		reqLogger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")

		writeErrorResponse(w, http.StatusInternalServerError, codeInternalError, msgInternalError)
	}
}

func deviceID(w http.ResponseWriter, r *http.Request) (model.DeviceID, bool) {
	id, err := model.ParseDeviceID(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidDeviceID)

		return "", false
	}

	return id, true
}

// decodeDevice reads a full device document. Date errors are reported as
// validation failures, everything else as malformed JSON.
func decodeDevice(w http.ResponseWriter, r *http.Request) (model.DeviceAttributes, bool) {
	var device model.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		if errors.Is(err, model.ErrInvalidDate) {
			writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, err.Error())

			return model.DeviceAttributes{}, false
		}

		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return model.DeviceAttributes{}, false
	}

	return device.DeviceAttributes, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
