package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tourdesk/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad")), code: http.StatusBadRequest, msg: "bad"},
		{name: "bad request from string", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, msg: "bad"},
		{name: "unauthorized", err: failure.Unauthorized("who"), code: http.StatusUnauthorized, msg: "who"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, msg: "boom"},
		{name: "not found", err: failure.NotFound("property not found"), code: http.StatusNotFound, msg: "property not found"},
		{name: "conflict", err: failure.Conflict("exists"), code: http.StatusConflict, msg: "exists"},
		{name: "forbidden", err: failure.Forbidden("no"), code: http.StatusForbidden, msg: "no"},
		{name: "unprocessable", err: failure.Unprocessable("reference is required"), code: http.StatusUnprocessableEntity, msg: "reference is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestNilWrappersStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", failure.NotFound("document not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
}

func TestIsFailure(t *testing.T) {
	assert.True(t, failure.IsFailure(fmt.Errorf("compose: %w", failure.NotFound("activity not found"))))
	assert.True(t, failure.IsFailure(failure.InternalError(errors.New("boom"))))
	assert.False(t, failure.IsFailure(errors.New("pq: connection refused")))
	assert.False(t, failure.IsFailure(nil))
}
