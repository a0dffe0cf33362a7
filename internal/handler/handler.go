package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gestimo/rent-service/internal/integrations/insee"
	"github.com/gestimo/rent-service/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler exposes the payment lifecycle over HTTP
type Handler struct {
	svc      *service.Service
	index    *insee.Client
	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, index *insee.Client, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		index:    index,
		validate: validator.New(),
		log:      log,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return h.checkValid(w, dst)
}

// decodeOptional decodes a request whose body may be absent. An empty body
// leaves dst at its zero value; this also covers chunked requests, whose
// length is unknown up front.
func (h *Handler) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return h.checkValid(w, dst)
}

func (h *Handler) checkValid(w http.ResponseWriter, dst any) bool {
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.respondError(w, http.StatusBadRequest, "invalid field: "+verrs[0].Field())
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain error kinds to HTTP status codes
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrLeaseNotFound),
		errors.Is(err, service.ErrConfigNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}
