package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// QuizLevel is the difficulty tier quizzes and questions are grouped by.
type QuizLevel string

const (
	LevelBeginner     QuizLevel = "beginner"
	LevelMiddle       QuizLevel = "middle"
	LevelIntermediate QuizLevel = "intermediate"
)

var QuizLevels = []QuizLevel{LevelBeginner, LevelMiddle, LevelIntermediate}

func ParseQuizLevel(s string) (QuizLevel, bool) {
	for _, l := range QuizLevels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// SubjectNames is the fixed set of subjects the catalog is seeded from.
var SubjectNames = []string{
	"HTML",
	"CSS",
	"JavaScript",
	"Angular",
	"React",
	"NextJS",
	"NestJS",
	"NodeJS",
}

func IsKnownSubject(name string) bool {
	for _, n := range SubjectNames {
		if n == name {
			return true
		}
	}
	return false
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionSubmitted SessionStatus = "submitted"
	SessionAbandoned SessionStatus = "abandoned"
)

const (
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
)

type ArticleProvider string

const (
	ProviderMDN           ArticleProvider = "MDN"
	ProviderFreeCodeCamp  ArticleProvider = "FreeCodeCamp"
	ProviderBlog          ArticleProvider = "Blog"
	ProviderW3Schools     ArticleProvider = "W3Schools"
	ProviderStackOverflow ArticleProvider = "StackOverflow"
)

const (
	// PointsPerCorrectAnswer is awarded for each correctly answered question.
	PointsPerCorrectAnswer = 10
	DefaultTimerMinutes    = 20
	QuestionTypeMCQ        = "mcq"
)
