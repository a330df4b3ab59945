package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", NewValidationError("name", MsgWrongProperty), http.StatusBadRequest, "wrong property"},
		{"not found", NewNotFoundError("user", MsgNotFound), http.StatusNotFound, "Not found"},
		{"conflict", NewConflictError("user", MsgUserExist), http.StatusBadRequest, "user exist"},
		{"persistence", NewPersistenceError(stderrors.New("disk I/O error")), http.StatusInternalServerError, "error disk I/O error"},
		{"wrapped not found", fmt.Errorf("get user: %w", NewNotFoundError("user", MsgNotFound)), http.StatusNotFound, "Not found"},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, "error boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Equal(t, tt.msg, Message(tt.err))
		})
	}
}

func TestNotFoundError_DefaultMessage(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "user already exists", NewConflictError("user", "").Error())
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := stderrors.New("commit failed")
	err := NewPersistenceError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error", NewPersistenceError(nil).Error())
}
