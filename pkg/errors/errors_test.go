package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPropagation(t *testing.T) {
	base := New("store.Get", "not found", nil).Code(http.StatusNotFound).Kind(KIND_NOT_FOUND)

	assert.Equal(t, http.StatusNotFound, base.GetCode())
	assert.Equal(t, KIND_NOT_FOUND, base.GetKind())

	// wrapping keeps the inner code and kind
	wrapped := Wrap(base, "logic.Load", "failed to load")
	assert.Equal(t, http.StatusNotFound, wrapped.GetCode())
	assert.True(t, Is(wrapped, KIND_NOT_FOUND))
	assert.False(t, Is(wrapped, KIND_CONFLICT))
}

func TestIsOnPlainError(t *testing.T) {
	assert.False(t, Is(fmt.Errorf("plain"), KIND_INTERNAL))
	assert.False(t, Is(nil, KIND_INTERNAL))
}

func TestTraceAccumulates(t *testing.T) {
	err := New("a", "boom", nil).Trace("b").Trace("c")
	assert.Contains(t, err.Error(), "a->b->c")
}

func TestMessageFallsBackToCause(t *testing.T) {
	err := New("t", "", fmt.Errorf("root cause"))
	assert.Equal(t, "root cause", err.Message())
}
