package handlers

import (
	"net/http"

	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ReviewsHandler struct {
	Reviews  *service.ReviewService
	Validate *validator.Validate
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	bookID, err := objectID(chi.URLParam(r, "id"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.CreateReviewInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	review, err := h.Reviews.Create(r.Context(), userID, bookID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewsHandler) ByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := objectID(chi.URLParam(r, "id"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	reviews, err := h.Reviews.ByBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "id"), "No review found")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Reviews.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Review deleted successfully")
}
