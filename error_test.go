package helpdesk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/helpdesk"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := helpdesk.Errorf(helpdesk.ENOTFOUND, "source %q not found", "faq")

	assert.Equal(t, helpdesk.ENOTFOUND, helpdesk.ErrorCode(err))
	assert.Equal(t, "source \"faq\" not found", helpdesk.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, helpdesk.ErrorCode(nil))
	})

	t.Run("non-application error is internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, helpdesk.EINTERNAL, helpdesk.ErrorCode(errors.New("boom")))
	})

	t.Run("unwraps wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("loading: %w", helpdesk.Errorf(helpdesk.EUNAVAILABLE, "down"))

		assert.Equal(t, helpdesk.EUNAVAILABLE, helpdesk.ErrorCode(err))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, helpdesk.ErrorMessage(nil))
	})

	t.Run("non-application error is hidden", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", helpdesk.ErrorMessage(errors.New("secret detail")))
	})
}
