package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	t.Run("explicit kind survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("generate: %w", New(ContentRejected, "gemini.GenerateImage", "blocked"))
		assert.Equal(t, ContentRejected, Classify(err))
		assert.True(t, Is(err, ContentRejected))
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := fmt.Errorf("call: %w", context.DeadlineExceeded)
		assert.Equal(t, Timeout, Classify(err))
	})

	t.Run("upstream auth failure asks for a credential", func(t *testing.T) {
		err := fmt.Errorf("call: %w", genai.APIError{Code: 403, Message: "permission denied"})
		assert.Equal(t, CredentialMissing, Classify(err))

		err = fmt.Errorf("call: %w", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."})
		assert.Equal(t, CredentialMissing, Classify(err))
	})

	t.Run("anything else is unknown", func(t *testing.T) {
		assert.Equal(t, Unknown, Classify(errors.New("boom")))
		assert.Equal(t, Unknown, Classify(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(ReadFailed, "ingest", errors.New("permission denied"))
	assert.Equal(t, "ingest: permission denied", err.Error())
	assert.Nil(t, Wrap(ReadFailed, "ingest", nil))

	err = &Error{Kind: MalformedResponse, Op: "gemini.AnalyzeDefects", Msg: "not an array", Err: errors.New("eof")}
	assert.Equal(t, "gemini.AnalyzeDefects: not an array: eof", err.Error())
	assert.Equal(t, "malformed_response", MalformedResponse.String())
}
