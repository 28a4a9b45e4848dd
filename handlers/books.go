package handlers

import (
	"net/http"
	"strconv"

	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxCoverSize caps multipart cover uploads at 10 MiB.
const maxCoverSize = 10 << 20

type BooksHandler struct {
	Books    *service.BookService
	Content  *service.ContentService
	Covers   *service.CoverService
	Validate *validator.Validate
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.Books.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BooksHandler) TopTen(w http.ResponseWriter, r *http.Request) {
	books, err := h.Books.RandomTen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	book, err := h.Books.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Chapters(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	chapters, err := h.Books.Chapters(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	books, err := h.Books.Search(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	book, err := h.Books.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.UpdateBookInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	book, err := h.Books.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Books.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Book deleted successfully")
}

type addGenresRequest struct {
	Genres []string `json:"genres" validate:"required,min=1"`
}

func (h *BooksHandler) AddGenres(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addGenresRequest
	if err := decodeValid(r, h.Validate, &req); err != nil {
		writeError(w, service.Validation("Please provide an array of genre IDs"))
		return
	}
	book, err := h.Books.AddGenres(r.Context(), id, req.Genres)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// UploadCover accepts a multipart form with an "image" file field.
func (h *BooksHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if h.Covers == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Cover uploads are not configured")
		return
	}
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		writeError(w, service.Validation("Invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, service.Validation("Cover image file is required"))
		return
	}
	defer file.Close()

	book, err := h.Covers.UploadCover(r.Context(), id, header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BooksHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.CreateChapterInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	content, err := h.Content.CreateChapter(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, content)
}

// ReadChapter serves chapter text and advances the caller's reading
// cursor. Without a chapter number in the path it resumes where the
// user left off.
func (h *BooksHandler) ReadChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	id, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		writeError(w, err)
		return
	}
	var chapterNo *int
	if raw := chi.URLParam(r, "chapterNo"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, service.Validation("Invalid chapter number"))
			return
		}
		chapterNo = &n
	}
	content, err := h.Content.Read(r.Context(), userID, id, chapterNo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (h *BooksHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	id, chapterNo, err := chapterParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.UpdateChapterInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	content, err := h.Content.UpdateChapter(r.Context(), id, chapterNo, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (h *BooksHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, chapterNo, err := chapterParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Content.DeleteChapter(r.Context(), id, chapterNo); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Chapter deleted successfully")
}

func chapterParams(r *http.Request) (primitive.ObjectID, int, error) {
	bookID, err := objectID(chi.URLParam(r, "bookId"), "Book not found")
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	chapterNo, err := strconv.Atoi(chi.URLParam(r, "chapterNo"))
	if err != nil || chapterNo < 1 {
		return primitive.NilObjectID, 0, service.Validation("Invalid chapter number")
	}
	return bookID, chapterNo, nil
}
