package handler

import (
	"net/http"

	"github.com/gestimo/rent-service/internal/middleware"
	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/service"
	"github.com/gorilla/mux"
)

type configRequest struct {
	MonthlyRent    float64 `json:"monthly_rent" validate:"gte=0"`
	MonthlyCharges float64 `json:"monthly_charges" validate:"gte=0"`
	PaymentDay     int     `json:"payment_day" validate:"required,min=1,max=31"`
	PaymentMethod  string  `json:"payment_method" validate:"required,oneof=virement cheque especes prelevement"`
	IsActive       *bool   `json:"is_active"`
}

// SaveConfig creates or updates the payment config of a lease
func (h *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if !h.decode(w, r, &req) {
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	cfg, err := h.svc.SaveConfig(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"], service.ConfigInput{
		MonthlyRent:    req.MonthlyRent,
		MonthlyCharges: req.MonthlyCharges,
		PaymentDay:     req.PaymentDay,
		PaymentMethod:  models.PaymentMethod(req.PaymentMethod),
		IsActive:       active,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cfg)
}

// LeaseConfig returns the payment config of a lease
func (h *Handler) LeaseConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.LeaseConfig(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cfg)
}

type reviseRequest struct {
	ReferenceIndex float64 `json:"reference_index" validate:"required,gt=0"`
}

// ReviseRent revises the rent of a lease against a new reference index
func (h *Handler) ReviseRent(w http.ResponseWriter, r *http.Request) {
	var req reviseRequest
	if !h.decode(w, r, &req) {
		return
	}

	adj, err := h.svc.ReviseRent(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"], req.ReferenceIndex)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, adj)
}

type adjustRequest struct {
	MonthlyCharges float64 `json:"monthly_charges" validate:"gte=0"`
}

// AdjustCharges updates the monthly charges of a lease
func (h *Handler) AdjustCharges(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !h.decode(w, r, &req) {
		return
	}

	adj, err := h.svc.AdjustCharges(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"], req.MonthlyCharges)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, adj)
}
