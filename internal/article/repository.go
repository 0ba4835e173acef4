package article

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repository defines persistence operations for articles and their version
// ledger. Both live behind one interface because create and update must
// write the article row and the ledger entry inside a single transaction.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context) ([]Article, error)
	ListRecent(ctx context.Context, limit int) ([]Article, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Article, error)
	Search(ctx context.Context, query string, limit int) ([]Article, error)
	Delete(ctx context.Context, slug string) error

	CreateWithVersion(ctx context.Context, art *Article) (*Version, error)
	UpdateWithVersion(ctx context.Context, slug string, fields UpdateFields, authorID string) (*Article, *Version, error)

	LatestVersionNumber(ctx context.Context, articleID uint) (int, error)
	ListVersions(ctx context.Context, articleID uint) ([]Version, error)
	GetVersion(ctx context.Context, id uint) (*Version, error)
}

// UpdateFields carries the mutable article fields replaced on update. The
// slug is deliberately absent: it is fixed at creation time.
type UpdateFields struct {
	Title   string
	Content string
	Summary string
}

// GormRepository persists articles and versions using a Gorm database
// connection.
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

// GetBySlug returns the article for the provided slug or nil when not found.
func (r *GormRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	trimmed := strings.TrimSpace(slug)

	var art Article
	err := r.db.WithContext(ctx).First(&art, "slug = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching article by slug")
		return nil, eris.Wrapf(err, "fetching article by slug: %s", trimmed)
	}

	return &art, nil
}

// List returns every article ordered by most recently updated first.
func (r *GormRepository) List(ctx context.Context) ([]Article, error) {
	var articles []Article

	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&articles).Error; err != nil {
		r.logError(nil, err, "listing articles")
		return nil, eris.Wrap(err, "listing articles")
	}

	return articles, nil
}

// ListRecent returns the most recently created articles, newest first,
// bounded by limit.
func (r *GormRepository) ListRecent(ctx context.Context, limit int) ([]Article, error) {
	if limit <= 0 {
		return []Article{}, nil
	}

	var articles []Article

	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&articles).Error; err != nil {
		r.logError(logrus.Fields{"limit": limit}, err, "listing recent articles")
		return nil, eris.Wrap(err, "listing recent articles")
	}

	return articles, nil
}

// ListByAuthor returns the author's articles ordered by most recently
// updated first.
func (r *GormRepository) ListByAuthor(ctx context.Context, authorID string) ([]Article, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, eris.New("author id is required")
	}

	var articles []Article

	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("updated_at DESC").
		Find(&articles).Error
	if err != nil {
		r.logError(logrus.Fields{"author_id": authorID}, err, "listing articles by author")
		return nil, eris.Wrapf(err, "listing articles by author: %s", authorID)
	}

	return articles, nil
}

// Search returns articles whose title, summary, or content contains the
// query, bounded by limit. A blank query short-circuits to an empty result
// rather than scanning the whole store.
func (r *GormRepository) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if query == "" || limit <= 0 {
		return []Article{}, nil
	}

	pattern := "%" + escapeLikePattern(query) + "%"

	var articles []Article

	err := r.db.WithContext(ctx).
		Where("title LIKE ? ESCAPE '\\' OR summary LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\'", pattern, pattern, pattern).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		r.logError(logrus.Fields{"query": query}, err, "searching articles")
		return nil, eris.Wrap(err, "searching articles")
	}

	return articles, nil
}

// Delete removes the article row entirely. Ledger rows for the article are
// left in place and stay retrievable by their own identifiers.
func (r *GormRepository) Delete(ctx context.Context, slug string) error {
	trimmed := strings.TrimSpace(slug)

	result := r.db.WithContext(ctx).Where("slug = ?", trimmed).Delete(&Article{})
	if result.Error != nil {
		r.logError(logrus.Fields{"slug": trimmed}, result.Error, "deleting article")
		return eris.Wrapf(result.Error, "deleting article: %s", trimmed)
	}

	if result.RowsAffected == 0 {
		return eris.Wrapf(ErrNotFound, "deleting article: %s", trimmed)
	}

	return nil
}

// CreateWithVersion inserts the article row and its version 1 ledger entry
// inside one transaction. The store's unique index on slug is the sole
// collision arbiter: a duplicate surfaces as ErrDuplicateTitle and nothing
// is written.
func (r *GormRepository) CreateWithVersion(ctx context.Context, art *Article) (*Version, error) {
	if art == nil {
		return nil, eris.New("article is nil")
	}

	var version *Version

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(art).Error; err != nil {
			if eris.Is(err, gorm.ErrDuplicatedKey) {
				return eris.Wrapf(ErrDuplicateTitle, "creating article: %s", art.Slug)
			}
			return eris.Wrapf(err, "creating article: %s", art.Slug)
		}

		version = &Version{
			ArticleID: art.ID,
			Number:    1,
			Title:     art.Title,
			Content:   art.Content,
			Summary:   art.Summary,
			AuthorID:  art.AuthorID,
		}

		if err := tx.Create(version).Error; err != nil {
			return eris.Wrapf(err, "appending version 1 for article: %s", art.Slug)
		}

		return nil
	})
	if err != nil {
		if !eris.Is(err, ErrDuplicateTitle) {
			r.logError(logrus.Fields{"slug": art.Slug}, err, "creating article with initial version")
		}
		return nil, err
	}

	return version, nil
}

// UpdateWithVersion overwrites the article's mutable fields and appends the
// next ledger entry inside one transaction. The slug is never recomputed.
// The version number is read from the ledger's own last entry so retries
// cannot introduce gaps.
func (r *GormRepository) UpdateWithVersion(ctx context.Context, slug string, fields UpdateFields, authorID string) (*Article, *Version, error) {
	trimmed := strings.TrimSpace(slug)

	var (
		art     Article
		version *Version
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&art, "slug = ?", trimmed).Error; err != nil {
			if eris.Is(err, gorm.ErrRecordNotFound) {
				return eris.Wrapf(ErrNotFound, "updating article: %s", trimmed)
			}
			return eris.Wrapf(err, "loading article for update: %s", trimmed)
		}

		latest, err := latestVersionNumber(tx, art.ID)
		if err != nil {
			return err
		}

		art.Title = fields.Title
		art.Content = fields.Content
		art.Summary = fields.Summary

		if err := tx.Save(&art).Error; err != nil {
			return eris.Wrapf(err, "saving article: %s", trimmed)
		}

		version = &Version{
			ArticleID: art.ID,
			Number:    latest + 1,
			Title:     fields.Title,
			Content:   fields.Content,
			Summary:   fields.Summary,
			AuthorID:  authorID,
		}

		if err := tx.Create(version).Error; err != nil {
			return eris.Wrapf(err, "appending version %d for article: %s", version.Number, trimmed)
		}

		return nil
	})
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			r.logError(logrus.Fields{"slug": trimmed}, err, "updating article with version")
		}
		return nil, nil, err
	}

	return &art, version, nil
}

// LatestVersionNumber returns the highest version number recorded for the
// article, or 0 when the ledger has no entries yet.
func (r *GormRepository) LatestVersionNumber(ctx context.Context, articleID uint) (int, error) {
	return latestVersionNumber(r.db.WithContext(ctx), articleID)
}

// ListVersions returns the article's ledger entries in ascending version
// order.
func (r *GormRepository) ListVersions(ctx context.Context, articleID uint) ([]Version, error) {
	var versions []Version

	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("number ASC").
		Find(&versions).Error
	if err != nil {
		r.logError(logrus.Fields{"article_id": articleID}, err, "listing article versions")
		return nil, eris.Wrapf(err, "listing versions for article %d", articleID)
	}

	return versions, nil
}

// GetVersion returns a ledger entry by its own identifier or nil when not
// found. Entries survive deletion of their parent article.
func (r *GormRepository) GetVersion(ctx context.Context, id uint) (*Version, error) {
	var version Version

	err := r.db.WithContext(ctx).First(&version, id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"version_id": id}, err, "fetching article version")
		return nil, eris.Wrapf(err, "fetching article version %d", id)
	}

	return &version, nil
}

// escapeLikePattern neutralises SQL LIKE wildcards so the query matches as
// a literal substring.
func escapeLikePattern(query string) string {
	return likeEscaper.Replace(query)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func latestVersionNumber(tx *gorm.DB, articleID uint) (int, error) {
	var version Version

	err := tx.Where("article_id = ?", articleID).Order("number DESC").First(&version).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, eris.Wrapf(err, "reading latest version number for article %d", articleID)
	}

	return version.Number, nil
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
