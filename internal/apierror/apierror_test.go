package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation.Status())
	assert.Equal(t, http.StatusNotFound, NotFound.Status())
	assert.Equal(t, http.StatusUnauthorized, Authentication.Status())
	assert.Equal(t, http.StatusForbidden, Authorization.Status())
	assert.Equal(t, http.StatusInternalServerError, BackendUnavailable.Status())
}

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Respond(c, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondValidation(t *testing.T) {
	rec, body := respondWith(t, New(Validation, "name is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", body["message"])
}

func TestRespondHidesBackendDetail(t *testing.T) {
	cause := errors.New("gocql: no hosts available in the pool")
	rec, body := respondWith(t, Wrap(BackendUnavailable, "catalog scan failed", cause))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", body["message"])
	assert.NotContains(t, body["message"], "gocql")
}

func TestRespondUnknownErrorIsGeneric(t *testing.T) {
	rec, body := respondWith(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", body["message"])
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(BackendUnavailable, "wrapped", cause)

	assert.ErrorIs(t, err, cause)
}
