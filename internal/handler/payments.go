package handler

import (
	"net/http"
	"time"

	"github.com/gestimo/rent-service/internal/middleware"
	"github.com/gestimo/rent-service/internal/models"
	"github.com/gestimo/rent-service/internal/service"
	"github.com/gorilla/mux"
)

type generateRequest struct {
	Month string `json:"month" validate:"omitempty,len=7"` // YYYY-MM, current month when empty
}

// GeneratePayments creates the monthly payments of the owner's active leases
func (h *Handler) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	created, err := h.svc.GenerateForOwner(r.Context(), middleware.OwnerID(r.Context()), req.Month)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if created == nil {
		created = []models.Payment{}
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{
		"generated": len(created),
		"payments":  created,
	})
}

type validateRequest struct {
	Status        string     `json:"status" validate:"required,oneof=paid unpaid"`
	PaymentDate   *time.Time `json:"payment_date"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,oneof=virement cheque especes prelevement"`
	Notes         string     `json:"notes"`
}

// ValidatePayment marks a payment as paid or reverts it to unpaid
func (h *Handler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.svc.ValidatePayment(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"], service.ValidateInput{
		Status:        req.Status,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// PaymentHistory returns a payment with its receipt and reminder trail
func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.PaymentHistory(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, history)
}

type reminderRequest struct {
	ReminderType  string `json:"reminder_type" validate:"required,oneof=first second final"`
	CustomMessage string `json:"custom_message"`
}

// SendReminder appends an escalation reminder to a non-paid payment
func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.svc.SendReminder(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"], service.ReminderInput{
		Type:          models.ReminderType(req.ReminderType),
		CustomMessage: req.CustomMessage,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}

// LeasePayments lists the payment history of a lease
func (h *Handler) LeasePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.LeasePayments(r.Context(), middleware.OwnerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	h.respondJSON(w, http.StatusOK, payments)
}
