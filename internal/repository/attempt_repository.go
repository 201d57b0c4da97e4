package repository

import (
	"context"
	"fmt"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/repository/models"
	"codezetta/internal/util"

	"github.com/jmoiron/sqlx"
)

const attemptColumns = `id, user_id, quiz_id, score, total_questions, correct_answers_count, points_earned, public_slug, started_at, finished_at`

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db DBTX
}

func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:                  m.ID,
		UserID:              m.UserID,
		QuizID:              m.QuizID,
		Score:               m.Score,
		TotalQuestions:      m.TotalQuestions,
		CorrectAnswersCount: m.CorrectAnswersCount,
		PointsEarned:        m.PointsEarned,
		PublicSlug:          m.PublicSlug.String,
		StartedAt:           m.StartedAt,
		FinishedAt:          m.FinishedAt,
	}
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	return &models.QuizAttempt{
		ID:                  a.ID,
		UserID:              a.UserID,
		QuizID:              a.QuizID,
		Score:               a.Score,
		TotalQuestions:      a.TotalQuestions,
		CorrectAnswersCount: a.CorrectAnswersCount,
		PointsEarned:        a.PointsEarned,
		PublicSlug:          util.StringToNullString(a.PublicSlug),
		StartedAt:           a.StartedAt,
		FinishedAt:          a.FinishedAt,
	}
}

// Create inserts the attempt and its answers.
func (r *sqlxAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	now := time.Now()
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = now
	}
	if attempt.FinishedAt.IsZero() {
		attempt.FinishedAt = now
	}

	exec := GetExecutor(ctx, r.db)
	query := `INSERT INTO quiz_attempts (id, user_id, quiz_id, score, total_questions, correct_answers_count, points_earned, public_slug, started_at, finished_at)
	          VALUES (:ID, :USER_ID, :QUIZ_ID, :SCORE, :TOTAL_QUESTIONS, :CORRECT_ANSWERS_COUNT, :POINTS_EARNED, :PUBLIC_SLUG, :STARTED_AT, :FINISHED_AT)`
	if _, err := exec.NamedExecContext(ctx, query, fromDomainAttempt(attempt)); err != nil {
		return writeError("create quiz attempt", err)
	}

	for _, ans := range attempt.Answers {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO quiz_attempt_answers (attempt_id, question_id, selected_option_id, is_correct) VALUES (:1, :2, :3, :4)`,
			attempt.ID, ans.QuestionID, ans.SelectedOptionID, util.BoolToNumber(ans.IsCorrect))
		if err != nil {
			return fmt.Errorf("failed to insert attempt answer: %w", err)
		}
	}
	return nil
}

func (r *sqlxAttemptRepository) getOne(ctx context.Context, where, arg string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.QuizAttempt
	if err := exec.GetContext(ctx, &m, `SELECT `+attemptColumns+` FROM quiz_attempts WHERE `+where, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt: %w", err)
	}
	attempt := toDomainAttempt(&m)

	var answers []models.AttemptAnswer
	err := exec.SelectContext(ctx, &answers,
		`SELECT attempt_id, question_id, selected_option_id, is_correct FROM quiz_attempt_answers WHERE attempt_id = :1`, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt answers: %w", err)
	}
	attempt.Answers = make([]domain.AttemptAnswer, 0, len(answers))
	for _, a := range answers {
		attempt.Answers = append(attempt.Answers, domain.AttemptAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        a.IsCorrect != 0,
		})
	}
	return attempt, nil
}

func (r *sqlxAttemptRepository) GetByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	return r.getOne(ctx, `id = :1`, id)
}

func (r *sqlxAttemptRepository) GetBySlug(ctx context.Context, slug string) (*domain.QuizAttempt, error) {
	return r.getOne(ctx, `public_slug = :1`, slug)
}

// ListByUser returns the user's attempts newest first without answers.
func (r *sqlxAttemptRepository) ListByUser(ctx context.Context, userID string) ([]*domain.AttemptWithQuiz, error) {
	query := `SELECT a.id, a.user_id, a.quiz_id, a.score, a.total_questions, a.correct_answers_count, a.points_earned,
	                 a.public_slug, a.started_at, a.finished_at,
	                 q.title AS quiz_title, s.name AS subject_name, q.quiz_level
	          FROM quiz_attempts a
	          LEFT JOIN quizzes q ON q.id = a.quiz_id
	          LEFT JOIN subjects s ON s.id = q.subject_id
	          WHERE a.user_id = :1
	          ORDER BY a.finished_at DESC`
	var rows []models.AttemptWithQuiz
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	out := make([]*domain.AttemptWithQuiz, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.AttemptWithQuiz{
			QuizAttempt: *toDomainAttempt(&rows[i].QuizAttempt),
			QuizTitle:   rows[i].QuizTitle.String,
			SubjectName: rows[i].SubjectName.String,
			Level:       domain.QuizLevel(rows[i].QuizLevel.String),
		})
	}
	return out, nil
}

func (r *sqlxAttemptRepository) ListQuizIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids, `SELECT DISTINCT quiz_id FROM quiz_attempts WHERE user_id = :1`, userID); err != nil {
		return nil, fmt.Errorf("failed to list attempted quizzes: %w", err)
	}
	return ids, nil
}

func (r *sqlxAttemptRepository) CountDistinctQuizzesByLevel(ctx context.Context, userID string, level domain.QuizLevel) (int, error) {
	query := `SELECT COUNT(DISTINCT a.quiz_id)
	          FROM quiz_attempts a JOIN quizzes q ON q.id = a.quiz_id
	          WHERE a.user_id = :1 AND q.quiz_level = :2`
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, query, userID, string(level)); err != nil {
		return 0, fmt.Errorf("failed to count completed quizzes: %w", err)
	}
	return n, nil
}

func (r *sqlxAttemptRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM quiz_attempts WHERE public_slug = :1`, slug); err != nil {
		return false, fmt.Errorf("failed to check share slug: %w", err)
	}
	return n > 0, nil
}

func (r *sqlxAttemptRepository) SetPublicSlug(ctx context.Context, attemptID, slug string) (bool, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_attempts SET public_slug = :1 WHERE id = :2 AND public_slug IS NULL`, slug, attemptID)
	if err != nil {
		return false, writeError("set share slug", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

type pointsSum struct {
	Points   int `db:"POINTS"`
	Attempts int `db:"ATTEMPTS"`
}

func (r *sqlxAttemptRepository) SumPointsByUser(ctx context.Context, userID string) (int, int, error) {
	var sum pointsSum
	query := `SELECT NVL(SUM(points_earned), 0) AS points, COUNT(*) AS attempts FROM quiz_attempts WHERE user_id = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &sum, query, userID); err != nil {
		return 0, 0, fmt.Errorf("failed to sum points: %w", err)
	}
	return sum.Points, sum.Attempts, nil
}
