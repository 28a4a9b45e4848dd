package handlers

import (
	"net/http"

	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type GenresHandler struct {
	Genres   *service.GenreService
	Validate *validator.Validate
}

func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Genres.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *GenresHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "genreId"), "Genre not found")
	if err != nil {
		writeError(w, err)
		return
	}
	genre, err := h.Genres.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateGenreInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	genre, err := h.Genres.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, genre)
}

func (h *GenresHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "genreId"), "Genre not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.UpdateGenreInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	genre, err := h.Genres.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (h *GenresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "genreId"), "Genre not found")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Genres.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Genre deleted successfully")
}

func (h *GenresHandler) AddBooks(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "genreId"), "Genre not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addBooksRequest
	if err := decodeValid(r, h.Validate, &req); err != nil {
		writeError(w, service.Validation("Please provide an array of book IDs"))
		return
	}
	genre, err := h.Genres.AddBooks(r.Context(), id, req.Books)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}
