package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponseWithDetail(t *testing.T) {
	err := FromResponse(http.StatusUnauthorized, []byte(`{"detail":"Invalid credentials"}`))
	require.NotNil(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, CodeBackend, err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
}

func TestFromResponseUnparseableBody(t *testing.T) {
	err := FromResponse(http.StatusInternalServerError, []byte("<html>boom</html>"))
	require.NotNil(t, err)
	assert.Equal(t, "an error occurred", err.Error())
}

func TestFromResponseEmptyDetail(t *testing.T) {
	err := FromResponse(http.StatusBadGateway, []byte(`{}`))
	require.NotNil(t, err)
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeTransport, 0, "backend unreachable")
	assert.Equal(t, "backend unreachable", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestFromErrorPassthrough(t *testing.T) {
	orig := New(CodeDecode, http.StatusOK, "unexpected response shape")
	got := FromError(fmt.Errorf("fetch analytics: %w", orig))
	require.NotNil(t, got)
	assert.Equal(t, CodeDecode, got.Code)
	assert.Equal(t, "unexpected response shape", got.Message)
}

func TestIsCode(t *testing.T) {
	err := New(CodeBackend, http.StatusNotFound, "Student not found")
	assert.True(t, IsCode(err, CodeBackend))
	assert.False(t, IsCode(err, CodeTransport))
	assert.False(t, IsCode(nil, CodeBackend))
}
