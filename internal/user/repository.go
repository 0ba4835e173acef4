package user

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	applog "wikimark/app/internal/log"
)

// Repository defines read-only persistence operations for user accounts.
// Account creation and credentials belong to the authentication
// collaborator, never to this core.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// GormRepository reads users through a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

// GetByID returns the user for the provided identifier or nil when not
// found.
func (r *GormRepository) GetByID(ctx context.Context, id string) (*User, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, eris.New("user id is required")
	}

	var account User
	err := r.db.WithContext(ctx).First(&account, "id = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if r.logger != nil {
			r.logger.WithField("error", err.Error()).WithField("user_id", trimmed).Error("fetching user by id")
		}
		return nil, eris.Wrapf(err, "fetching user by id: %s", trimmed)
	}

	return &account, nil
}

// Migrate applies the user schema using Gorm's AutoMigrate.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	var entry *logrus.Entry
	if logger != nil {
		entry = applog.WithComponent(logger, "user.migrate")
	}

	if err := db.WithContext(ctx).AutoMigrate(&User{}); err != nil {
		if entry != nil {
			entry.WithField("error", err.Error()).Error("user schema migration failed")
		}
		return eris.Wrap(err, "auto migrating user schema")
	}

	return nil
}
