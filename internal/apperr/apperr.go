package apperr

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

type Kind int

const (
	Unknown Kind = iota
	CredentialMissing
	ContentRejected
	ValidationFailed
	UnsupportedFormat
	ConversionFailed
	ReadFailed
	MalformedResponse
	StorageQuotaExceeded
	Timeout
	Busy
)

var kindNames = map[Kind]string{
	Unknown:              "unknown",
	CredentialMissing:    "credential_missing",
	ContentRejected:      "content_rejected",
	ValidationFailed:     "validation_failed",
	UnsupportedFormat:    "unsupported_format",
	ConversionFailed:     "conversion_failed",
	ReadFailed:           "read_failed",
	MalformedResponse:    "malformed_response",
	StorageQuotaExceeded: "storage_quota_exceeded",
	Timeout:              "timeout",
	Busy:                 "busy",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error carries a Kind through wrapping so callers can branch on it
// without string matching.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return err != nil && Classify(err) == kind
}

// Classify resolves any error to a Kind. Explicit kinds win; deadline and
// upstream auth failures are recognized from their concrete types.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}
	if k := KindOf(err); k != Unknown {
		return k
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return CredentialMissing
		}
		if isInvalidKeyMessage(apiErr.Message) {
			return CredentialMissing
		}
		return Unknown
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		if apiErrPtr.Code == http.StatusUnauthorized || apiErrPtr.Code == http.StatusForbidden {
			return CredentialMissing
		}
		if isInvalidKeyMessage(apiErrPtr.Message) {
			return CredentialMissing
		}
	}
	if isInvalidKeyMessage(err.Error()) {
		return CredentialMissing
	}
	return Unknown
}

func isInvalidKeyMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "api key not valid") || strings.Contains(msg, "api_key_invalid")
}
