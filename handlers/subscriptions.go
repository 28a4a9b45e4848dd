package handlers

import (
	"net/http"

	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type SubscriptionsHandler struct {
	Subscriptions *service.SubscriptionService
	Validate      *validator.Validate
}

func (h *SubscriptionsHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Subscriptions.ListPlans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *SubscriptionsHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePlanInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	plan, err := h.Subscriptions.CreatePlan(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *SubscriptionsHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "planId"), "Subscription plan not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.UpdatePlanInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	plan, err := h.Subscriptions.UpdatePlan(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *SubscriptionsHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "planId"), "Subscription plan not found")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Subscriptions.DeletePlan(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Subscription plan deleted successfully")
}

func (h *SubscriptionsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	planID, err := objectID(chi.URLParam(r, "planId"), "Subscription plan not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.SubscribeInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.Subscriptions.Subscribe(r.Context(), userID, planID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionsHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	sub, err := h.Subscriptions.Unsubscribe(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
