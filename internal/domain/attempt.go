package domain

import "time"

// QuizAttempt is the persisted record of one graded submission.
type QuizAttempt struct {
	ID                  string
	UserID              string
	QuizID              string
	Score               int
	TotalQuestions      int
	CorrectAnswersCount int
	PointsEarned        int
	PublicSlug          string
	StartedAt           time.Time
	FinishedAt          time.Time
	Answers             []AttemptAnswer
}

// Percentage is the rounded share of correct answers, 0 when there were no
// questions.
func (a *QuizAttempt) Percentage() int {
	return RoundPercent(a.CorrectAnswersCount, a.TotalQuestions)
}

// AnswerFor returns the stored answer for questionID, if one was submitted.
func (a *QuizAttempt) AnswerFor(questionID string) (AttemptAnswer, bool) {
	for _, ans := range a.Answers {
		if ans.QuestionID == questionID {
			return ans, true
		}
	}
	return AttemptAnswer{}, false
}

type AttemptAnswer struct {
	QuestionID       string
	SelectedOptionID string
	IsCorrect        bool
}

// AttemptWithQuiz joins an attempt with the catalog data needed by listings
// and statistics. QuizTitle is empty when the quiz was deleted.
type AttemptWithQuiz struct {
	QuizAttempt
	QuizTitle   string
	SubjectName string
	Level       QuizLevel
}

type QuizSession struct {
	ID         string
	UserID     string
	QuizID     string
	Status     SessionStatus
	StartedAt  time.Time
	LastSeenAt time.Time
	ExpiresAt  time.Time
	AttemptID  string
}

// RoundPercent returns round(part/total*100) with halves rounded up, or 0 for
// an empty total.
func RoundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

// QuizExists is false when the attempted quiz has been deleted.
func (a *AttemptWithQuiz) QuizExists() bool {
	return a.Level != ""
}
