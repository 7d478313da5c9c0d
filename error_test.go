package newsrelay_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/newsrelay"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newsrelay.Errorf(newsrelay.ENOTFOUND, "run %q not found", "test")

	assert.Equal(t, newsrelay.ENOTFOUND, newsrelay.ErrorCode(err))
	assert.Equal(t, "run \"test\" not found", newsrelay.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	err := newsrelay.WrapError(newsrelay.EFETCH, context.DeadlineExceeded, "fetch %s", "https://example.com")

	assert.Equal(t, newsrelay.EFETCH, newsrelay.ErrorCode(err))
	assert.Equal(t, "fetch https://example.com", newsrelay.ErrorMessage(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "fetch https://example.com: context deadline exceeded", err.Error())
}

func TestErrorCode_WrappedByFmt(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", newsrelay.Errorf(newsrelay.EPARSE, "bad markup"))

	assert.Equal(t, newsrelay.EPARSE, newsrelay.ErrorCode(err))
	assert.Equal(t, "bad markup", newsrelay.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, newsrelay.EINTERNAL, newsrelay.ErrorCode(err))
	assert.Equal(t, "Internal error", newsrelay.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsrelay.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsrelay.ErrorMessage(nil))
}
