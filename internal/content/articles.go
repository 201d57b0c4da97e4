// Package content holds the read-only reference tables the services are
// built with: reading suggestions and random-question templates.
package content

import (
	"fmt"
	"strings"

	"codezetta/internal/domain"
)

// articleSeed is a catalog entry before the quiz level is stamped on it.
type articleSeed struct {
	idPrefix string
	title    string
	url      string
	provider domain.ArticleProvider
	minutes  int
	subject  string
}

// ArticleCatalog answers topic and subject lookups. It is immutable after
// construction and safe for concurrent use.
type ArticleCatalog struct {
	byTopic   map[string][]articleSeed
	bySubject map[string][]articleSeed
}

// NewArticleCatalog builds the built-in reading list.
func NewArticleCatalog() *ArticleCatalog {
	return &ArticleCatalog{
		byTopic: map[string][]articleSeed{
			"html-forms": {
				{"mdn-html-forms", "HTML Forms - MDN Web Docs", "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/form", domain.ProviderMDN, 15, "HTML"},
				{"fcc-html-forms", "Learn HTML Forms - FreeCodeCamp", "https://www.freecodecamp.org/learn/2022/responsive-web-design/learn-html-forms-by-building-a-registration-form/", domain.ProviderFreeCodeCamp, 30, "HTML"},
			},
			"css-flexbox": {
				{"mdn-flexbox", "CSS Flexbox - MDN Web Docs", "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Flexible_Box_Layout", domain.ProviderMDN, 20, "CSS"},
				{"fcc-flexbox", "Learn CSS Flexbox - FreeCodeCamp", "https://www.freecodecamp.org/news/flexbox-the-ultimate-css-flex-cheatsheet/", domain.ProviderFreeCodeCamp, 25, "CSS"},
			},
			"js-closures": {
				{"mdn-closures", "Closures - MDN Web Docs", "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Closures", domain.ProviderMDN, 15, "JavaScript"},
				{"fcc-closures", "Understanding JavaScript Closures - FreeCodeCamp", "https://www.freecodecamp.org/news/javascript-closures-explained/", domain.ProviderFreeCodeCamp, 20, "JavaScript"},
			},
			"angular-signals": {
				{"angular-signals-docs", "Angular Signals - Official Documentation", "https://angular.dev/guide/signals", domain.ProviderBlog, 30, "Angular"},
				{"angular-signals-blog", "Understanding Angular Signals - Angular Blog", "https://blog.angular.io/introducing-angular-signals-4a5b4a8c3c5a", domain.ProviderBlog, 25, "Angular"},
			},
		},
		// Subject entries get "-<level>-1" appended to their prefix.
		bySubject: map[string][]articleSeed{
			"HTML": {
				{"mdn-html", "HTML: HyperText Markup Language - MDN", "https://developer.mozilla.org/en-US/docs/Web/HTML", domain.ProviderMDN, 20, "HTML"},
				{"fcc-html", "Learn HTML - FreeCodeCamp", "https://www.freecodecamp.org/learn/2022/responsive-web-design/", domain.ProviderFreeCodeCamp, 40, "HTML"},
				{"w3-html", "HTML Tutorial - W3Schools", "https://www.w3schools.com/html/", domain.ProviderW3Schools, 30, "HTML"},
			},
			"CSS": {
				{"mdn-css", "CSS: Cascading Style Sheets - MDN", "https://developer.mozilla.org/en-US/docs/Web/CSS", domain.ProviderMDN, 25, "CSS"},
				{"fcc-css", "Learn CSS - FreeCodeCamp", "https://www.freecodecamp.org/news/css-basics-everything-you-need-to-know/", domain.ProviderFreeCodeCamp, 35, "CSS"},
				{"w3-css", "CSS Tutorial - W3Schools", "https://www.w3schools.com/css/", domain.ProviderW3Schools, 30, "CSS"},
			},
			"JavaScript": {
				{"mdn-js", "JavaScript - MDN Web Docs", "https://developer.mozilla.org/en-US/docs/Web/JavaScript", domain.ProviderMDN, 30, "JavaScript"},
				{"fcc-js", "Learn JavaScript - FreeCodeCamp", "https://www.freecodecamp.org/learn/javascript-algorithms-and-data-structures/", domain.ProviderFreeCodeCamp, 50, "JavaScript"},
				{"w3-js", "JavaScript Tutorial - W3Schools", "https://www.w3schools.com/js/", domain.ProviderW3Schools, 40, "JavaScript"},
			},
			"Angular": {
				{"angular-docs", "Angular Documentation", "https://angular.dev", domain.ProviderBlog, 45, "Angular"},
				{"angular-tutorial", "Angular Tutorial - Official Guide", "https://angular.dev/tutorials/first-app", domain.ProviderBlog, 60, "Angular"},
			},
			"React": {
				{"react-docs", "React Documentation", "https://react.dev", domain.ProviderBlog, 40, "React"},
				{"react-tutorial", "Learn React - Official Tutorial", "https://react.dev/learn", domain.ProviderBlog, 50, "React"},
			},
			"NextJS": {
				{"nextjs-docs", "Next.js Documentation", "https://nextjs.org/docs", domain.ProviderBlog, 50, "NextJS"},
				{"nextjs-learn", "Learn Next.js", "https://nextjs.org/learn", domain.ProviderBlog, 60, "NextJS"},
			},
			"NestJS": {
				{"nestjs-docs", "NestJS Documentation", "https://docs.nestjs.com", domain.ProviderBlog, 45, "NestJS"},
				{"nestjs-overview", "NestJS Overview", "https://docs.nestjs.com/first-steps", domain.ProviderBlog, 30, "NestJS"},
			},
			"NodeJS": {
				{"nodejs-docs", "Node.js Documentation", "https://nodejs.org/docs", domain.ProviderBlog, 40, "NodeJS"},
				{"nodejs-guide", "The Node.js Guide", "https://nodejs.org/en/docs/guides/", domain.ProviderBlog, 50, "NodeJS"},
			},
		},
	}
}

// ByTopic returns the fixed set for a topic slug.
func (c *ArticleCatalog) ByTopic(slug string, level domain.QuizLevel) ([]domain.ArticleRecommendation, bool) {
	seeds, ok := c.byTopic[slug]
	if !ok {
		return nil, false
	}
	out := make([]domain.ArticleRecommendation, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.recommendation(s.idPrefix, level))
	}
	return out, true
}

// BySubject returns the subject reading list, or a single generic pointer
// when the subject is not in the table.
func (c *ArticleCatalog) BySubject(subject string, level domain.QuizLevel) []domain.ArticleRecommendation {
	seeds, ok := c.bySubject[subject]
	if !ok {
		return []domain.ArticleRecommendation{{
			ID:                          fmt.Sprintf("generic-%s-%s-1", strings.ToLower(subject), level),
			Title:                       fmt.Sprintf("Learn %s - General Resources", subject),
			URL:                         "https://developer.mozilla.org",
			Provider:                    domain.ProviderMDN,
			EstimatedReadingTimeMinutes: 30,
			Subject:                     subject,
			Level:                       string(level),
		}}
	}
	out := make([]domain.ArticleRecommendation, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.recommendation(fmt.Sprintf("%s-%s-1", s.idPrefix, level), level))
	}
	return out
}

func (s articleSeed) recommendation(id string, level domain.QuizLevel) domain.ArticleRecommendation {
	return domain.ArticleRecommendation{
		ID:                          id,
		Title:                       s.title,
		URL:                         s.url,
		Provider:                    s.provider,
		EstimatedReadingTimeMinutes: s.minutes,
		Subject:                     s.subject,
		Level:                       string(level),
	}
}
