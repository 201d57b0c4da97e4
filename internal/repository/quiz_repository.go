package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/repository/models"
	"codezetta/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizSelect = `SELECT q.id, q.subject_id, s.name AS subject_name, q.quiz_level, q.title, q.timer_minutes, q.created_by, q.created_at, q.updated_at`

// sqlxQuizRepository stores quizzes across the quizzes, questions and
// answer_options tables. Multi-statement writes expect the caller to supply a
// transaction through ctx.
type sqlxQuizRepository struct {
	db DBTX
}

func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:           m.ID,
		SubjectID:    m.SubjectID,
		SubjectName:  m.SubjectName.String,
		Level:        domain.QuizLevel(m.Level),
		Title:        m.Title,
		TimerMinutes: m.TimerMinutes,
		CreatedBy:    m.CreatedBy.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) (domain.Question, error) {
	q := domain.Question{
		ID:          m.ID,
		QuizID:      m.QuizID,
		Position:    m.Position,
		Text:        m.Text,
		Type:        m.Type,
		TopicSlug:   m.TopicSlug.String,
		Explanation: m.Explanation.String,
	}
	if m.LearningResources.Valid && m.LearningResources.String != "" {
		if err := json.Unmarshal([]byte(m.LearningResources.String), &q.LearningResources); err != nil {
			return domain.Question{}, fmt.Errorf("failed to decode learning resources of question %s: %w", m.ID, err)
		}
	}
	return q, nil
}

func encodeResources(resources []domain.LearningResource) (interface{}, error) {
	if len(resources) == 0 {
		return util.StringToNullString(""), nil
	}
	b, err := json.Marshal(resources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode learning resources: %w", err)
	}
	return string(b), nil
}

// Create inserts the quiz header followed by its questions and options.
func (r *sqlxQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	if quiz.TimerMinutes <= 0 {
		quiz.TimerMinutes = domain.DefaultTimerMinutes
	}

	exec := GetExecutor(ctx, r.db)
	query := `INSERT INTO quizzes (id, subject_id, quiz_level, title, timer_minutes, created_by, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	_, err := exec.ExecContext(ctx, query,
		quiz.ID, quiz.SubjectID, string(quiz.Level), quiz.Title, quiz.TimerMinutes,
		util.StringToNullString(quiz.CreatedBy), quiz.CreatedAt, quiz.UpdatedAt)
	if err != nil {
		return writeError("create quiz", err)
	}

	return r.insertQuestions(ctx, exec, quiz.ID, quiz.Questions)
}

func (r *sqlxQuizRepository) insertQuestions(ctx context.Context, exec DBTX, quizID string, questions []domain.Question) error {
	now := time.Now()
	for i := range questions {
		q := &questions[i]
		q.ID = util.NewULID()
		q.QuizID = quizID
		q.Position = i
		if q.Type == "" {
			q.Type = domain.QuestionTypeMCQ
		}
		resources, err := encodeResources(q.LearningResources)
		if err != nil {
			return err
		}

		_, err = exec.ExecContext(ctx,
			`INSERT INTO questions (id, quiz_id, position, question_text, question_type, topic_slug, explanation, learning_resources, created_at)
			 VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`,
			q.ID, quizID, q.Position, q.Text, q.Type,
			util.StringToNullString(q.TopicSlug), util.StringToNullString(q.Explanation), resources, now)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}

		for j := range q.Options {
			o := &q.Options[j]
			o.ID = util.NewULID()
			o.QuestionID = q.ID
			o.Position = j
			_, err = exec.ExecContext(ctx,
				`INSERT INTO answer_options (id, question_id, position, option_text, is_correct) VALUES (:1, :2, :3, :4, :5)`,
				o.ID, q.ID, o.Position, o.Text, util.BoolToNumber(o.IsCorrect))
			if err != nil {
				return fmt.Errorf("failed to insert answer option: %w", err)
			}
		}
	}
	return nil
}

// GetByID returns the quiz with questions and options in stored order.
func (r *sqlxQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)

	var header models.Quiz
	query := quizSelect + ` FROM quizzes q LEFT JOIN subjects s ON s.id = q.subject_id WHERE q.id = :1`
	if err := exec.GetContext(ctx, &header, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	quiz := toDomainQuiz(&header)

	var questionRows []models.Question
	err := exec.SelectContext(ctx, &questionRows,
		`SELECT id, quiz_id, position, question_text, question_type, topic_slug, explanation, learning_resources, created_at
		 FROM questions WHERE quiz_id = :1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions of quiz %s: %w", id, err)
	}

	var optionRows []models.AnswerOption
	err = exec.SelectContext(ctx, &optionRows,
		`SELECT o.id, o.question_id, o.position, o.option_text, o.is_correct
		 FROM answer_options o JOIN questions qu ON qu.id = o.question_id
		 WHERE qu.quiz_id = :1 ORDER BY o.question_id, o.position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer options of quiz %s: %w", id, err)
	}

	optionsByQuestion := make(map[string][]domain.AnswerOption, len(questionRows))
	for _, o := range optionRows {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], domain.AnswerOption{
			ID:         o.ID,
			QuestionID: o.QuestionID,
			Position:   o.Position,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect != 0,
		})
	}

	quiz.Questions = make([]domain.Question, 0, len(questionRows))
	for i := range questionRows {
		q, err := toDomainQuestion(&questionRows[i])
		if err != nil {
			return nil, err
		}
		q.Options = optionsByQuestion[q.ID]
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz, nil
}

// List returns catalog rows newest first.
func (r *sqlxQuizRepository) List(ctx context.Context, filter domain.QuizFilter) ([]*domain.QuizSummary, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		conds = append(conds, fmt.Sprintf("q.subject_id = :%d", len(args)))
	}
	if filter.Level != "" {
		args = append(args, string(filter.Level))
		conds = append(conds, fmt.Sprintf("q.quiz_level = :%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(quizSelect)
	sb.WriteString(`, (SELECT COUNT(*) FROM questions qu WHERE qu.quiz_id = q.id) AS question_count
	 FROM quizzes q LEFT JOIN subjects s ON s.id = q.subject_id`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY q.created_at DESC")

	var rows []models.QuizSummary
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	out := make([]*domain.QuizSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.QuizSummary{
			ID:            row.ID,
			SubjectID:     row.SubjectID,
			SubjectName:   row.SubjectName.String,
			Level:         domain.QuizLevel(row.Level),
			Title:         row.Title,
			TimerMinutes:  row.TimerMinutes,
			QuestionCount: row.QuestionCount,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func (r *sqlxQuizRepository) UpdateHeader(ctx context.Context, quiz *domain.Quiz) error {
	quiz.UpdatedAt = time.Now()
	query := `UPDATE quizzes SET subject_id = :1, quiz_level = :2, title = :3, timer_minutes = :4, updated_at = :5 WHERE id = :6`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		quiz.SubjectID, string(quiz.Level), quiz.Title, quiz.TimerMinutes, quiz.UpdatedAt, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) deleteQuestions(ctx context.Context, exec DBTX, quizID string) error {
	_, err := exec.ExecContext(ctx,
		`DELETE FROM answer_options WHERE question_id IN (SELECT id FROM questions WHERE quiz_id = :1)`, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete answer options: %w", err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = :1`, quizID); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) ReplaceQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	exec := GetExecutor(ctx, r.db)
	if err := r.deleteQuestions(ctx, exec, quizID); err != nil {
		return err
	}
	return r.insertQuestions(ctx, exec, quizID, questions)
}

func (r *sqlxQuizRepository) Delete(ctx context.Context, id string) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	if err := r.deleteQuestions(ctx, exec, id); err != nil {
		return false, err
	}
	res, err := exec.ExecContext(ctx, `DELETE FROM quizzes WHERE id = :1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *sqlxQuizRepository) CountByLevel(ctx context.Context, level domain.QuizLevel) (int, error) {
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM quizzes WHERE quiz_level = :1`, string(level)); err != nil {
		return 0, fmt.Errorf("failed to count quizzes by level: %w", err)
	}
	return n, nil
}
