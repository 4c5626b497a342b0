package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"google.golang.org/genai"
)

//go:generate mockgen -source=./text_generator.go -package=svcmocks -destination=./mocks/text_generator.mock.go TextGenerator

// ErrNoCredential is returned by transport constructors when the provider has
// no API key configured.
var ErrNoCredential = errors.New("model credential not configured")

type GenerateRequest struct {
	Operation   string
	System      string
	Prompt      string
	Temperature float32
}

// TextGenerator sends one prompt to a language model and returns the raw text
// reply. Implementations do not retry.
type TextGenerator interface {
	Provider() string
	Model() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// statusError carries an HTTP status from a provider that is not reached
// through a typed SDK error.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// classifyTransportError maps a transport failure onto the errs kinds used by
// the gateway's callers.
func classifyTransportError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.UpstreamTimeout(op, err)
	}
	if errors.Is(err, context.Canceled) {
		return errs.Upstream(op, false, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return errs.Upstream(op, retryableStatus(apiErr.Code), err)
	}
	var se *statusError
	if errors.As(err, &se) {
		return errs.Upstream(op, retryableStatus(se.Code), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.UpstreamTimeout(op, err)
	}

	msg := err.Error()
	transient := strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "EOF")
	return errs.Upstream(op, transient, err)
}
