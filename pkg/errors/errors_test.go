package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestCloneKeepsIdentity(t *testing.T) {
	cloned := Clone(ErrNotFound, "announcement not found")
	assert.Equal(t, "announcement not found", cloned.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.True(t, stderrors.Is(cloned, ErrNotFound))
	assert.False(t, stderrors.Is(cloned, ErrValidation))
}

func TestWrapUnwraps(t *testing.T) {
	base := stderrors.New("redis down")
	wrapped := Wrap(base, ErrInternal.Code, ErrInternal.Status, "cache failed")
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "cache failed: redis down", wrapped.Error())
}
