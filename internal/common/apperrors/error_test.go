package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("hierarchy", func(t *testing.T) {
		ErrBaseErr := New("base error")
		assert.Equal(t, "base error", ErrBaseErr.Error())
		assert.Equal(t, "msg", ErrBaseErr.New("msg").Error())
		assert.ErrorIs(t, ErrBaseErr, ErrBaseErr)

		ErrFirstLevel := ErrBaseErr.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBaseErr)

		ErrAnotherErr := New("another error")
		ErrWrappedErr := ErrFirstLevel.Err(ErrAnotherErr)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErr)

		err := errors.New("error")
		ErrWrappedErr = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)
	})

	t.Run("status code inheritance", func(t *testing.T) {
		ErrBaseErr := New("base error").SetStatusCode(http.StatusInternalServerError)
		ErrChild := ErrBaseErr.New("child")
		assert.Equal(t, http.StatusInternalServerError, ErrChild.StatusCode())

		ErrConflict := ErrBaseErr.New("conflict").SetStatusCode(http.StatusConflict)
		assert.Equal(t, http.StatusConflict, ErrConflict.StatusCode())
		// parent unchanged
		assert.Equal(t, http.StatusInternalServerError, ErrBaseErr.StatusCode())
	})

	t.Run("sentinels stay immutable", func(t *testing.T) {
		ErrSentinel := New("sentinel").SetStatusCode(http.StatusNotFound)
		derived := ErrSentinel.Msg("user not found")
		assert.Equal(t, "sentinel", ErrSentinel.Error())
		assert.Equal(t, "user not found", derived.Error())
		assert.ErrorIs(t, derived, ErrSentinel)
		assert.Empty(t, ErrSentinel.Unwrap())

		wrapped := ErrSentinel.Err(errors.New("driver failure"))
		assert.Empty(t, ErrSentinel.Unwrap())
		assert.Len(t, wrapped.Unwrap(), 1)
	})

	t.Run("expand error", func(t *testing.T) {
		err := New("top").Err(errors.New("inner one"), errors.New("inner two"))
		assert.Equal(t, "top", err.ErrorAll())
		err = err.SetExpandError(true)
		assert.Equal(t, "top: inner one;inner two", err.ErrorAll())
	})
}
