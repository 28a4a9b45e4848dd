package handlers

import (
	"net/http"

	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CollectionsHandler struct {
	Collections *service.CollectionService
	Validate    *validator.Validate
}

func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	collections, err := h.Collections.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	var in service.CreateCollectionInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	collection, err := h.Collections.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, collection)
}

func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.ownerAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Collections.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Collection deleted successfully")
}

func (h *CollectionsHandler) Books(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "collectionId"), "Collection not found")
	if err != nil {
		writeError(w, err)
		return
	}
	books, err := h.Collections.ListBooks(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *CollectionsHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.ownerAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.AddCollectionBookInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	collection, err := h.Collections.AddBook(r.Context(), id, userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (h *CollectionsHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.ownerAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookID, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	collection, err := h.Collections.RemoveBook(r.Context(), id, userID, bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (h *CollectionsHandler) ownerAndID(r *http.Request) (primitive.ObjectID, primitive.ObjectID, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, primitive.NilObjectID, service.Forbidden("Token is required")
	}
	id, err := objectID(chi.URLParam(r, "collectionId"), "Collection not found or not authorized")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return userID, id, nil
}
