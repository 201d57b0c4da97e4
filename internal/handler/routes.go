package handler

import (
	"codezetta/internal/domain"
	"codezetta/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Subject *SubjectHandler
	Quiz    *QuizHandler
	Share   *ShareHandler
	AI      *AIHandler
	Health  *HealthHandler
}

// RouteLimits holds the rate limiters for sensitive endpoints. A nil
// limiter disables limiting for that route.
type RouteLimits struct {
	Login  fiber.Handler
	Submit fiber.Handler
}

// RegisterRoutes mounts the API on router. protected authenticates the
// caller; it is usually middleware.Protected.
func RegisterRoutes(router fiber.Router, h Handlers, protected fiber.Handler, limits RouteLimits) {
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	limited := func(limiter fiber.Handler, handler fiber.Handler) []fiber.Handler {
		if limiter == nil {
			return []fiber.Handler{handler}
		}
		return []fiber.Handler{limiter, handler}
	}

	router.Get("/health", h.Health.Health)

	// Auth routes
	authGroup := router.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", limited(limits.Login, h.Auth.Login)...)
	authGroup.Get("/me", protected, h.Auth.Me)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Get("/google", h.Auth.GoogleLogin)
	authGroup.Get("/google/callback", h.Auth.GoogleCallback)
	authGroup.Get("/linkedin", h.Auth.LinkedInLogin)
	authGroup.Get("/linkedin/callback", h.Auth.LinkedInCallback)

	// Subject routes
	subjectGroup := router.Group("/subjects")
	subjectGroup.Get("/", h.Subject.List)
	subjectGroup.Get("/:id", h.Subject.Get)
	subjectGroup.Post("/", protected, adminOnly, h.Subject.Create)

	// Quiz routes (all protected). Literal paths are registered before :id.
	quizGroup := router.Group("/quizzes", protected)
	quizGroup.Get("/", h.Quiz.List)
	quizGroup.Post("/", adminOnly, h.Quiz.Create)
	quizGroup.Get("/attempts/my", h.Quiz.MyAttempts)
	quizGroup.Get("/attempts/:attemptId", h.Quiz.AttemptDetail)
	quizGroup.Get("/level/:level/completion", h.Quiz.LevelCompletion)
	quizGroup.Post("/generate-random-questions", h.Quiz.GenerateRandomQuestions)
	quizGroup.Post("/sessions/:sessionId/heartbeat", h.Quiz.Heartbeat)
	quizGroup.Get("/:id", h.Quiz.Get)
	quizGroup.Put("/:id", adminOnly, h.Quiz.Update)
	quizGroup.Delete("/:id", adminOnly, h.Quiz.Delete)
	quizGroup.Post("/:id/submit", limited(limits.Submit, h.Quiz.Submit)...)
	quizGroup.Post("/:id/sessions", h.Quiz.StartSession)

	router.Get("/attempts/:attemptId", protected, h.Quiz.AttemptDetail)

	// Share routes
	router.Post("/share/quiz-attempt", protected, h.Share.CreateShareLink)
	router.Get("/share/attempt/:slug", h.Share.SharePage)
	router.Post("/social/linkedin/post", protected, h.Share.PostToLinkedIn)

	// User routes (all protected). /me routes come before /:id.
	userGroup := router.Group("/users", protected)
	userGroup.Get("/me", h.User.GetMe)
	userGroup.Patch("/me", h.User.UpdateMe)
	userGroup.Patch("/me/password", h.User.UpdatePassword)
	userGroup.Put("/me/password", h.User.UpdatePassword)
	userGroup.Get("/me/stats", h.User.GetStats)
	userGroup.Get("/me/profile-stats", h.User.GetProfileStats)
	userGroup.Get("/me/points", h.User.GetPoints)
	userGroup.Get("/me/profile", h.User.GetProfile)
	userGroup.Put("/me/profile", h.User.UpdateProfile)
	userGroup.Put("/me/subjects", h.User.UpdateSelectedSubjects)
	userGroup.Get("/me/leaderboard-position", h.User.GetLeaderboardPosition)
	userGroup.Get("/me/attempts", h.User.GetAttempts)
	userGroup.Post("/me/sync-points", h.User.SyncPoints)
	userGroup.Get("/:id", h.User.GetByID)

	router.Get("/leaderboard", protected, h.User.GetLeaderboard)

	router.Post("/ai/generate-quiz", protected, h.AI.GenerateQuiz)
}
