package handlers

import (
	"net/http"
	"testing"

	"github.com/boogo/backend/service"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusOf(service.Validation("bad")))
	assert.Equal(t, http.StatusUnauthorized, statusOf(service.Unauthorized("no")))
	assert.Equal(t, http.StatusForbidden, statusOf(service.Forbidden("no")))
	assert.Equal(t, http.StatusNotFound, statusOf(service.NotFound("missing")))
	assert.Equal(t, http.StatusConflict, statusOf(service.Conflict("dup")))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}

func TestObjectID_MalformedReadsAsNotFound(t *testing.T) {
	_, err := objectID("definitely-not-hex", "Book not found")
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
	assert.Equal(t, "Book not found", service.MessageOf(err))
}

func TestObjectID_Valid(t *testing.T) {
	id, err := objectID("507f1f77bcf86cd799439011", "Book not found")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.Hex())
}
