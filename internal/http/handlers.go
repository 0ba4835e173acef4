package http

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"wikimark/app/internal/article"
	"wikimark/app/internal/db"
)

const (
	searchResultsLimit  = 20
	recentArticlesLimit = 8
)

type articleSummary struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type articleView struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type versionView struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"articleId"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// articleRequest keeps title and content schema-optional so that missing
// fields reach the service's own validation and come back as a stable 400
// rather than a schema-level 422.
type articleRequest struct {
	Title   string `json:"title" required:"false"`
	Content string `json:"content" required:"false"`
	Summary string `json:"summary,omitempty"`
}

type slugInput struct {
	Slug string `path:"slug"`
}

type searchInput struct {
	Query string `query:"q"`
}

type userArticlesInput struct {
	ID string `path:"id"`
}

type createArticleInput struct {
	Body articleRequest
}

type updateArticleInput struct {
	Slug string `path:"slug"`
	Body articleRequest
}

type articleListResponse struct {
	Body struct {
		Articles []articleSummary `json:"articles"`
	}
}

type articleResponse struct {
	Body articleView
}

type articleDetailResponse struct {
	Body struct {
		Article articleView `json:"article"`
		Author  *authorView `json:"author,omitempty"`
		HTML    string      `json:"html"`
	}
}

type versionListResponse struct {
	Body struct {
		Versions []versionView `json:"versions"`
	}
}

type deleteArticleResponse struct {
	Body struct {
		Success bool `json:"success"`
	}
}

type healthResponse struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
}

func (s *Server) registerListArticlesRoute() {
	huma.Get(s.api, "/api/articles", s.listArticlesHandler, func(op *huma.Operation) {
		op.Summary = "List articles"
	})
}

func (s *Server) registerRecentArticlesRoute() {
	huma.Get(s.api, "/api/articles/recent", s.recentArticlesHandler, func(op *huma.Operation) {
		op.Summary = "List recently created articles"
	})
}

func (s *Server) registerGetArticleRoute() {
	huma.Get(s.api, "/api/articles/{slug}", s.getArticleHandler, func(op *huma.Operation) {
		op.Summary = "Fetch an article with its author and rendered HTML"
	})
}

func (s *Server) registerCreateArticleRoute() {
	huma.Post(s.api, "/api/articles", s.createArticleHandler, func(op *huma.Operation) {
		op.Summary = "Create an article"
	})
}

func (s *Server) registerUpdateArticleRoute() {
	huma.Put(s.api, "/api/articles/{slug}", s.updateArticleHandler, func(op *huma.Operation) {
		op.Summary = "Update an article"
	})
}

func (s *Server) registerDeleteArticleRoute() {
	huma.Delete(s.api, "/api/articles/{slug}", s.deleteArticleHandler, func(op *huma.Operation) {
		op.Summary = "Delete an article"
	})
}

func (s *Server) registerArticleVersionsRoute() {
	huma.Get(s.api, "/api/articles/{slug}/versions", s.articleVersionsHandler, func(op *huma.Operation) {
		op.Summary = "List an article's version history"
	})
}

func (s *Server) registerSearchRoute() {
	huma.Get(s.api, "/api/search", s.searchHandler, func(op *huma.Operation) {
		op.Summary = "Search articles by substring"
	})
}

func (s *Server) registerUserArticlesRoute() {
	huma.Get(s.api, "/api/users/{id}/articles", s.userArticlesHandler, func(op *huma.Operation) {
		op.Summary = "List a user's articles"
	})
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) listArticlesHandler(ctx context.Context, _ *struct{}) (*articleListResponse, error) {
	articles, err := s.repository.List(ctx)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing articles", nil)
	}

	resp := &articleListResponse{}
	resp.Body.Articles = toSummaries(articles)
	return resp, nil
}

func (s *Server) recentArticlesHandler(ctx context.Context, _ *struct{}) (*articleListResponse, error) {
	articles, err := s.repository.ListRecent(ctx, recentArticlesLimit)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing recent articles", nil)
	}

	resp := &articleListResponse{}
	resp.Body.Articles = toSummaries(articles)
	return resp, nil
}

func (s *Server) getArticleHandler(ctx context.Context, input *slugInput) (*articleDetailResponse, error) {
	art, err := s.repository.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading article", logrus.Fields{"slug": input.Slug})
	}
	if art == nil {
		return nil, s.apiError(ctx, eris.Wrapf(article.ErrNotFound, "loading article: %s", input.Slug), "loading article", logrus.Fields{"slug": input.Slug})
	}

	html, err := s.renderer.Render(art.Content)
	if err != nil {
		return nil, s.apiError(ctx, err, "rendering article markdown", logrus.Fields{"slug": input.Slug})
	}

	resp := &articleDetailResponse{}
	resp.Body.Article = toView(*art)
	resp.Body.HTML = html

	author, err := s.users.GetByID(ctx, art.AuthorID)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading article author", logrus.Fields{"slug": input.Slug})
	}
	if author != nil {
		resp.Body.Author = &authorView{ID: author.ID, Name: author.Name, Image: author.Image}
	}

	return resp, nil
}

func (s *Server) createArticleHandler(ctx context.Context, input *createArticleInput) (*articleResponse, error) {
	art, err := s.articles.Create(ctx, CallerFromContext(ctx), article.Input{
		Title:   input.Body.Title,
		Content: input.Body.Content,
		Summary: input.Body.Summary,
	})
	if err != nil {
		return nil, s.apiError(ctx, err, "creating article", logrus.Fields{"title": input.Body.Title})
	}

	return &articleResponse{Body: toView(*art)}, nil
}

func (s *Server) updateArticleHandler(ctx context.Context, input *updateArticleInput) (*articleResponse, error) {
	art, err := s.articles.Update(ctx, CallerFromContext(ctx), input.Slug, article.Input{
		Title:   input.Body.Title,
		Content: input.Body.Content,
		Summary: input.Body.Summary,
	})
	if err != nil {
		return nil, s.apiError(ctx, err, "updating article", logrus.Fields{"slug": input.Slug})
	}

	return &articleResponse{Body: toView(*art)}, nil
}

func (s *Server) deleteArticleHandler(ctx context.Context, input *slugInput) (*deleteArticleResponse, error) {
	if err := s.articles.Delete(ctx, CallerFromContext(ctx), input.Slug); err != nil {
		return nil, s.apiError(ctx, err, "deleting article", logrus.Fields{"slug": input.Slug})
	}

	resp := &deleteArticleResponse{}
	resp.Body.Success = true
	return resp, nil
}

func (s *Server) articleVersionsHandler(ctx context.Context, input *slugInput) (*versionListResponse, error) {
	art, err := s.repository.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading article for versions", logrus.Fields{"slug": input.Slug})
	}
	if art == nil {
		return nil, s.apiError(ctx, eris.Wrapf(article.ErrNotFound, "loading article: %s", input.Slug), "loading article for versions", logrus.Fields{"slug": input.Slug})
	}

	versions, err := s.repository.ListVersions(ctx, art.ID)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing article versions", logrus.Fields{"slug": input.Slug})
	}

	resp := &versionListResponse{}
	resp.Body.Versions = make([]versionView, 0, len(versions))
	for _, version := range versions {
		resp.Body.Versions = append(resp.Body.Versions, versionView{
			ID:        version.ID,
			ArticleID: version.ArticleID,
			Number:    version.Number,
			Title:     version.Title,
			Summary:   version.Summary,
			Content:   version.Content,
			AuthorID:  version.AuthorID,
			CreatedAt: version.CreatedAt,
		})
	}

	return resp, nil
}

func (s *Server) searchHandler(ctx context.Context, input *searchInput) (*articleListResponse, error) {
	articles, err := s.repository.Search(ctx, input.Query, searchResultsLimit)
	if err != nil {
		return nil, s.apiError(ctx, err, "searching articles", logrus.Fields{"query": input.Query})
	}

	resp := &articleListResponse{}
	resp.Body.Articles = toSummaries(articles)
	return resp, nil
}

func (s *Server) userArticlesHandler(ctx context.Context, input *userArticlesInput) (*articleListResponse, error) {
	articles, err := s.repository.ListByAuthor(ctx, input.ID)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing user articles", logrus.Fields{"user_id": input.ID})
	}

	resp := &articleListResponse{}
	resp.Body.Articles = toSummaries(articles)
	return resp, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = 503
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = 503
	}

	if resp.Status == 0 {
		resp.Status = 200
	}

	return resp, nil
}

func toSummaries(articles []article.Article) []articleSummary {
	summaries := make([]articleSummary, 0, len(articles))
	for _, art := range articles {
		summaries = append(summaries, articleSummary{
			ID:        art.ID,
			Slug:      art.Slug,
			Title:     art.Title,
			Summary:   art.Summary,
			AuthorID:  art.AuthorID,
			CreatedAt: art.CreatedAt,
			UpdatedAt: art.UpdatedAt,
		})
	}
	return summaries
}

func toView(art article.Article) articleView {
	return articleView{
		ID:        art.ID,
		Slug:      art.Slug,
		Title:     art.Title,
		Summary:   art.Summary,
		Content:   art.Content,
		AuthorID:  art.AuthorID,
		CreatedAt: art.CreatedAt,
		UpdatedAt: art.UpdatedAt,
	}
}
