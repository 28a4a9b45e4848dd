package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/boogo/backend/service"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, err error) {
	writeMessage(w, statusOf(err), service.MessageOf(err))
}

func statusOf(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeValid decodes the JSON body into v and runs struct validation.
// The returned error is already a service error ready for writeError.
func decodeValid(r *http.Request, validate *validator.Validate, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.Validation("Invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return service.Validation(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		if e.Tag() == "required" {
			return "Field '" + e.Field() + "' is required"
		}
		return "Invalid value for field '" + e.Field() + "'"
	}
	return "Validation failed"
}

// objectID parses a path parameter; malformed ids read as not-found so
// probing with junk ids looks the same as probing with unknown ones.
func objectID(raw, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, service.NotFound(notFoundMsg)
	}
	return id, nil
}
