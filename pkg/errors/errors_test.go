package errors_test

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/anxiangsir/homepage/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "publication",
			ID:       "Unicom",
		}
		assert.Equal(t, `publication "Unicom" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("page", "index.html")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("message", 123, "must be a non-empty string")
		assert.Equal(t, "validation failed for field message: must be a non-empty string", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty body"}
		assert.Equal(t, "validation failed: empty body", err.Error())
	})
}

func TestDuplicateError(t *testing.T) {
	err := pkgerrors.NewDuplicateError("publication titles", []string{"A", "B"})
	assert.Equal(t, "duplicate publication titles: A, B", err.Error())
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         *pkgerrors.APIError
		rateLimited bool
		unavailable bool
		notFound    bool
	}{
		{name: "too many requests", err: &pkgerrors.APIError{Service: "github", StatusCode: http.StatusTooManyRequests}, rateLimited: true},
		{name: "quota exhausted", err: &pkgerrors.APIError{Service: "github", StatusCode: http.StatusForbidden, QuotaExhausted: true}, rateLimited: true},
		{name: "server error", err: &pkgerrors.APIError{Service: "github", StatusCode: http.StatusBadGateway}, unavailable: true},
		{name: "missing repo", err: &pkgerrors.APIError{Service: "github", StatusCode: http.StatusNotFound}, notFound: true},
		{name: "plain forbidden", err: &pkgerrors.APIError{Service: "github", StatusCode: http.StatusForbidden}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(tt.err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsServiceUnavailable(tt.err))
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(tt.err))
		})
	}

	t.Run("message", func(t *testing.T) {
		err := pkgerrors.NewAPIError("scholar", 503, "busy")
		assert.Contains(t, err.Error(), "scholar")
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.WrapAPI("github", 0, base)
		assert.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "publications.yaml", "bad indent", nil)
		assert.Equal(t, "parse error in yaml file publications.yaml: bad indent", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "html", Message: "unexpected EOF"}
		assert.Equal(t, "html parse error: unexpected EOF", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("json", "selected.json", base)
		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(wrapped, &parseErr))
		assert.Equal(t, "json", parseErr.Format)
		assert.ErrorIs(t, wrapped, base)
	})
}

func TestIOAndResourceErrors(t *testing.T) {
	base := errors.New("permission denied")

	ioErr := pkgerrors.WrapIO("read", "/srv/site/index.html", base)
	assert.Contains(t, ioErr.Error(), "/srv/site/index.html")
	assert.ErrorIs(t, ioErr, base)

	resErr := pkgerrors.WrapResource("render", "page", "index.html", ioErr)
	assert.Contains(t, resErr.Error(), "failed to render page index.html")
	assert.ErrorIs(t, resErr, base)
}

func TestWrapHelpersNil(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
	assert.Nil(t, pkgerrors.WrapResource("load", "catalog", "", nil))
	assert.Nil(t, pkgerrors.WrapParse("json", "", nil))
	assert.Nil(t, pkgerrors.WrapAPI("github", 0, nil))
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown policy")
	err := pkgerrors.NewConfigError("stars", "star_policy must be parallel or sequential", base)
	assert.Contains(t, err.Error(), "configuration error in stars")
	assert.ErrorIs(t, err, base)
}
