package services

import (
	"context"
	"strings"

	"github.com/mkalinin/healthportal/internal/client/models"
)

// ArticleAPI is the slice of the portal client the article service needs.
type ArticleAPI interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

type ArticleService struct {
	api ArticleAPI
}

func NewArticleService(api ArticleAPI) *ArticleService {
	return &ArticleService{api: api}
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	return s.api.ListArticles(ctx)
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteArticle(ctx, id)
}

// FilterArticles keeps the articles whose title or category contains term,
// case-insensitively. An empty term keeps everything.
func FilterArticles(list []models.Article, term string) []models.Article {
	if term == "" {
		return list
	}
	q := strings.ToLower(term)
	out := make([]models.Article, 0, len(list))
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Category), q) {
			out = append(out, a)
		}
	}
	return out
}
