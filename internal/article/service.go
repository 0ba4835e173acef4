package article

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Service defines the mutating article operations. Every call is stateless
// and carries the caller identity explicitly; reads go straight to the
// repository.
type Service interface {
	Create(ctx context.Context, callerID string, input Input) (*Article, error)
	Update(ctx context.Context, callerID, slug string, input Input) (*Article, error)
	Delete(ctx context.Context, callerID, slug string) error
}

// Input carries the caller-supplied article fields for create and update.
type Input struct {
	Title   string
	Content string
	Summary string
}

// Validate enforces the required fields before any write occurs.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
		validation.Field(&in.Content, validation.Required.Error("content is required")),
	)
}

type service struct {
	repo      Repository
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// NewService wires the article service with its dependencies.
func NewService(repo Repository, logger *logrus.Logger, hub *sentry.Hub) (Service, error) {
	if repo == nil {
		return nil, eris.New("article repository is required")
	}

	return &service{
		repo:      repo,
		logger:    logger,
		sentryHub: hub,
	}, nil
}

// Create validates the input, derives the slug from the title, and writes
// the article row together with its version 1 ledger entry. The slug is
// fixed here for the article's lifetime; later edits never regenerate it.
func (s *service) Create(ctx context.Context, callerID string, input Input) (*Article, error) {
	if strings.TrimSpace(callerID) == "" {
		return nil, eris.Wrap(ErrUnauthenticated, "creating article")
	}

	if err := input.Validate(); err != nil {
		return nil, eris.Wrap(ErrValidation, err.Error())
	}

	art := &Article{
		Slug:     GenerateSlug(input.Title),
		Title:    input.Title,
		Content:  input.Content,
		Summary:  input.Summary,
		AuthorID: callerID,
	}

	if _, err := s.repo.CreateWithVersion(ctx, art); err != nil {
		if !eris.Is(err, ErrDuplicateTitle) {
			s.recordError(logrus.Fields{"slug": art.Slug}, err, "creating article")
		}
		return nil, eris.Wrapf(err, "creating article: %s", art.Slug)
	}

	return art, nil
}

// Update overwrites the article's mutable fields and appends the next
// ledger entry. Any authenticated user may update any article; ownership is
// deliberately not checked here.
func (s *service) Update(ctx context.Context, callerID, slug string, input Input) (*Article, error) {
	if strings.TrimSpace(callerID) == "" {
		return nil, eris.Wrap(ErrUnauthenticated, "updating article")
	}

	if err := input.Validate(); err != nil {
		return nil, eris.Wrap(ErrValidation, err.Error())
	}

	fields := UpdateFields{
		Title:   input.Title,
		Content: input.Content,
		Summary: input.Summary,
	}

	art, _, err := s.repo.UpdateWithVersion(ctx, slug, fields, callerID)
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"slug": slug}, err, "updating article")
		}
		return nil, eris.Wrapf(err, "updating article: %s", slug)
	}

	return art, nil
}

// Delete removes the article row. Ledger entries are left in place, so the
// article's history outlives it.
func (s *service) Delete(ctx context.Context, callerID, slug string) error {
	if strings.TrimSpace(callerID) == "" {
		return eris.Wrap(ErrUnauthenticated, "deleting article")
	}

	if err := s.repo.Delete(ctx, slug); err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"slug": slug}, err, "deleting article")
		}
		return eris.Wrapf(err, "deleting article: %s", slug)
	}

	return nil
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
