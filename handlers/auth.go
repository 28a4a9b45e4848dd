package handlers

import (
	"net/http"

	"github.com/boogo/backend/middleware"
	"github.com/boogo/backend/models"
	"github.com/boogo/backend/service"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Validate *validator.Validate
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	user, token, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "Registration successful",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decodeValid(r, h.Validate, &in); err != nil {
		writeError(w, err)
		return
	}
	user, token, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	user, err := h.Auth.UserInfo(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		writeError(w, service.Forbidden("Token is required"))
		return
	}
	if err := h.Auth.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out successfully")
}
