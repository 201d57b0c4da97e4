package service

import (
	"fmt"
	"time"

	"codezetta/internal/content"
	"codezetta/internal/domain"
)

// ArticleSuggester picks reading material for a wrongly answered question.
// Stored learning resources win, then the topic table, then the subject
// table.
type ArticleSuggester struct {
	catalog *content.ArticleCatalog
	now     func() time.Time
}

func NewArticleSuggester(catalog *content.ArticleCatalog) *ArticleSuggester {
	return &ArticleSuggester{catalog: catalog, now: time.Now}
}

func (s *ArticleSuggester) Suggest(q *domain.Question, subject string, level domain.QuizLevel) []domain.ArticleRecommendation {
	if len(q.LearningResources) > 0 {
		stamp := s.now().UnixMilli()
		out := make([]domain.ArticleRecommendation, 0, len(q.LearningResources))
		for i, r := range q.LearningResources {
			id := r.ID
			if id == "" {
				id = fmt.Sprintf("article-%d-%d", stamp, i)
			}
			provider := r.Provider
			if provider == "" {
				provider = domain.ProviderBlog
			}
			out = append(out, domain.ArticleRecommendation{
				ID:                          id,
				Title:                       r.Title,
				URL:                         r.URL,
				Provider:                    provider,
				EstimatedReadingTimeMinutes: r.EstimatedReadingTimeMinutes,
				Subject:                     r.Subject,
				Level:                       r.Level,
			})
		}
		return out
	}

	if q.TopicSlug != "" {
		if articles, ok := s.catalog.ByTopic(q.TopicSlug, level); ok {
			return articles
		}
	}
	return s.catalog.BySubject(subject, level)
}
