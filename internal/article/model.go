package article

import "time"

// Article represents the mutable current state of a wiki article.
// Historical snapshots live in the version ledger, one Version per edit.
type Article struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"size:255;uniqueIndex:idx_articles_slug;not null"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`
	Summary   string `gorm:"type:text"`
	AuthorID  string `gorm:"size:64;index:idx_articles_author;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName defines the table name for the Article model.
func (Article) TableName() string {
	return "articles"
}

// Version is an immutable snapshot of an article taken on every create or
// update. Numbers form a gapless ascending sequence per article, starting
// at 1; rows are never updated or deleted once written.
type Version struct {
	ID        uint   `gorm:"primarykey"`
	ArticleID uint   `gorm:"uniqueIndex:idx_article_versions_number;not null"`
	Number    int    `gorm:"uniqueIndex:idx_article_versions_number;not null"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`
	Summary   string `gorm:"type:text"`
	AuthorID  string `gorm:"size:64;index:idx_article_versions_author;not null"`
	CreatedAt time.Time
}

// TableName defines the table name for the Version model.
func (Version) TableName() string {
	return "article_versions"
}
