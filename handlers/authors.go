package handlers

import (
	"net/http"

	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AuthorsHandler struct {
	Authors  *service.AuthorService
	Validate *validator.Validate
}

func (h *AuthorsHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Authors.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

func (h *AuthorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "authorId"), "Author not found")
	if err != nil {
		writeError(w, err)
		return
	}
	author, err := h.Authors.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateAuthorInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	author, err := h.Authors.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

func (h *AuthorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "authorId"), "Author not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.UpdateAuthorInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	author, err := h.Authors.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (h *AuthorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "authorId"), "Author not found")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Authors.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Author deleted successfully")
}

type addBooksRequest struct {
	Books []string `json:"books" validate:"required,min=1"`
}

func (h *AuthorsHandler) AddBooks(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "authorId"), "Author not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addBooksRequest
	if err := decodeValid(r, h.Validate, &req); err != nil {
		writeError(w, service.Validation("Please provide an array of book IDs"))
		return
	}
	author, err := h.Authors.AddBooks(r.Context(), id, req.Books)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (h *AuthorsHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "authorId"), "Author not found")
	if err != nil {
		writeError(w, err)
		return
	}
	bookID, err := objectID(chi.URLParam(r, "bookId"), "Book not found in author's list")
	if err != nil {
		writeError(w, err)
		return
	}
	author, err := h.Authors.RemoveBook(r.Context(), id, bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}
