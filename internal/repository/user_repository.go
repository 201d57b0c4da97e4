package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/repository/models"
	"codezetta/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, password_hash, role, avatar_url, bio, total_points, preferences, selected_subjects, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db DBTX
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) (*domain.User, error) {
	if m == nil {
		return nil, nil
	}
	u := &domain.User{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email.String,
		PasswordHash:     m.PasswordHash.String,
		Role:             domain.Role(m.Role),
		AvatarURL:        m.AvatarURL.String,
		Bio:              m.Bio.String,
		TotalPoints:      m.TotalPoints,
		SelectedSubjects: []string(m.SelectedSubjects),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Preferences.Valid && m.Preferences.String != "" {
		if err := json.Unmarshal([]byte(m.Preferences.String), &u.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences of user %s: %w", m.ID, err)
		}
	}
	return u, nil
}

func fromDomainUser(u *domain.User) (*models.User, error) {
	if u == nil {
		return nil, nil
	}
	m := &models.User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            util.StringToNullString(u.Email),
		PasswordHash:     util.StringToNullString(u.PasswordHash),
		Role:             string(u.Role),
		AvatarURL:        util.StringToNullString(u.AvatarURL),
		Bio:              util.StringToNullString(u.Bio),
		TotalPoints:      u.TotalPoints,
		SelectedSubjects: models.StringSlice(u.SelectedSubjects),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if !u.Preferences.IsZero() {
		b, err := json.Marshal(u.Preferences)
		if err != nil {
			return nil, fmt.Errorf("failed to encode preferences: %w", err)
		}
		m.Preferences = util.StringToNullString(string(b))
	}
	return m, nil
}

// Create inserts a new user. ID and timestamps are filled in when empty.
func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}

	m, err := fromDomainUser(user)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, name, email, password_hash, role, avatar_url, bio, total_points, preferences, selected_subjects, created_at, updated_at)
	          VALUES (:ID, :NAME, :EMAIL, :PASSWORD_HASH, :ROLE, :AVATAR_URL, :BIO, :TOTAL_POINTS, :PREFERENCES, :SELECTED_SUBJECTS, :CREATED_AT, :UPDATED_AT)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, m); err != nil {
		return writeError("create user", err)
	}
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var m models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m)
}

func (r *sqlxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `id = :1`, id)
}

func (r *sqlxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `email = :1`, email)
}

// GetByIDs returns the users that exist among ids, in no particular order.
func (r *sqlxUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	exec := GetExecutor(ctx, r.db)
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}
	var rows []models.User
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return toDomainUsers(rows)
}

func toDomainUsers(rows []models.User) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		u, err := toDomainUser(&rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *sqlxUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m, err := fromDomainUser(user)
	if err != nil {
		return err
	}

	query := `UPDATE users SET
	            name = :1,
	            email = :2,
	            avatar_url = :3,
	            bio = :4,
	            preferences = :5,
	            selected_subjects = :6,
	            updated_at = :7
	          WHERE id = :8`
	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.Name, m.Email, m.AvatarURL, m.Bio, m.Preferences, m.SelectedSubjects, m.UpdatedAt, m.ID)
	if err != nil {
		return writeError("update user", err)
	}
	return nil
}

func (r *sqlxUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = :1, updated_at = :2 WHERE id = :3`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, passwordHash, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// IncrementPoints adds delta in a single UPDATE and reads the total back on
// the same executor.
func (r *sqlxUserRepository) IncrementPoints(ctx context.Context, id string, delta int) (int, error) {
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx, `UPDATE users SET total_points = total_points + :1, updated_at = :2 WHERE id = :3`, delta, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to increment points: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("failed to increment points: user %s not found", id)
	}

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT total_points FROM users WHERE id = :1`, id); err != nil {
		return 0, fmt.Errorf("failed to read points: %w", err)
	}
	return total, nil
}

func (r *sqlxUserRepository) SetPoints(ctx context.Context, id string, points int) error {
	query := `UPDATE users SET total_points = :1, updated_at = :2 WHERE id = :3`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, points, time.Now(), id); err != nil {
		return fmt.Errorf("failed to set points: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *sqlxUserRepository) CountWithPointsAbove(ctx context.Context, points int) (int, error) {
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE total_points > :1`, points); err != nil {
		return 0, fmt.Errorf("failed to count users above points: %w", err)
	}
	return n, nil
}

func (r *sqlxUserRepository) ListTopByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          ORDER BY total_points DESC, created_at ASC
	          FETCH FIRST :1 ROWS ONLY`
	var rows []models.User
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	return toDomainUsers(rows)
}

func (r *sqlxUserRepository) ListAllScores(ctx context.Context) ([]domain.LeaderboardScore, error) {
	var rows []models.UserScore
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, `SELECT id, total_points FROM users`); err != nil {
		return nil, fmt.Errorf("failed to list user scores: %w", err)
	}
	scores := make([]domain.LeaderboardScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, domain.LeaderboardScore{UserID: row.ID, Points: row.TotalPoints})
	}
	return scores, nil
}
