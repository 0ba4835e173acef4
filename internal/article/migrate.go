package article

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	applog "wikimark/app/internal/log"
)

// Migrate applies the article schema using Gorm's AutoMigrate and logs
// progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	var entry *logrus.Entry
	if logger != nil {
		entry = applog.WithComponent(logger, "article.migrate")
		entry.Info("applying article schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(&Article{}, &Version{}); err != nil {
		if entry != nil {
			entry.WithField("error", err.Error()).Error("article schema migration failed")
		}
		return eris.Wrap(err, "auto migrating article schema")
	}

	if entry != nil {
		entry.Info("article schema migration complete")
	}

	return nil
}
