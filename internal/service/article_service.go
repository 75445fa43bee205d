package service

import (
	"context"
	"strings"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

type ArticleService struct {
	repo repo.ArticleRepo
}

func NewArticleService(r repo.ArticleRepo) *ArticleService {
	return &ArticleService{repo: r}
}

// Create stores an article; tags is a comma separated list.
func (s *ArticleService) Create(ctx context.Context, userID, title, content, tags string) (dom.Article, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return dom.Article{}, ErrEmptyTitle
	}
	if content == "" {
		return dom.Article{}, ErrEmptyContent
	}
	a, err := s.repo.Create(ctx, dom.Article{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    SplitTags(tags),
	})
	if err != nil {
		return dom.Article{}, storeErr(err)
	}
	return a, nil
}

func (s *ArticleService) List(ctx context.Context) ([]dom.Article, error) {
	return s.repo.List(ctx)
}

// Search matches q against title, content and tags. An empty query lists everything.
func (s *ArticleService) Search(ctx context.Context, q string) ([]dom.Article, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, q)
}

// SplitTags splits on commas, trims, and drops empty and repeated tags.
func SplitTags(s string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
