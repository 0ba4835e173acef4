package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"wikimark/app/internal/article"
)

const errorFallbackMessage = "we couldn't process your request right now"

// classifyError maps domain errors onto stable HTTP status/message pairs.
// Store error text never reaches the caller; anything unrecognised becomes
// a generic 500.
func classifyError(err error) (int, string) {
	switch {
	case eris.Is(err, article.ErrUnauthenticated):
		return stdhttp.StatusUnauthorized, "you must be signed in to do that"
	case eris.Is(err, article.ErrValidation):
		return stdhttp.StatusBadRequest, "title and content are required"
	case eris.Is(err, article.ErrDuplicateTitle):
		return stdhttp.StatusBadRequest, "an article with this title already exists"
	case eris.Is(err, article.ErrNotFound):
		return stdhttp.StatusNotFound, "article not found"
	default:
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}
}

// apiError classifies the failure, records unexpected ones, and returns the
// error Huma renders to the caller.
func (s *Server) apiError(ctx context.Context, err error, message string, fields logrus.Fields) error {
	status, clientMessage := classifyError(err)

	if status >= stdhttp.StatusInternalServerError {
		s.recordError(ctx, err, message, fields)
	} else if s.logger != nil {
		entry := s.logger.WithError(err)
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Warn(message)
	}

	return huma.NewError(status, clientMessage)
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithError(err)
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
