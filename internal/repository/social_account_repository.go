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

type sqlxSocialAccountRepository struct {
	db DBTX
}

func NewSQLXSocialAccountRepository(db *sqlx.DB) domain.SocialAccountRepository {
	return &sqlxSocialAccountRepository{db: db}
}

func (r *sqlxSocialAccountRepository) FindByProvider(ctx context.Context, provider, providerUserID string) (*domain.SocialAccount, error) {
	var m models.SocialAccount
	query := `SELECT id, user_id, provider, provider_user_id, email, created_at
	          FROM social_accounts WHERE provider = :1 AND provider_user_id = :2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, provider, providerUserID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find social account: %w", err)
	}
	return &domain.SocialAccount{
		ID:             m.ID,
		UserID:         m.UserID,
		Provider:       m.Provider,
		ProviderUserID: m.ProviderUserID,
		Email:          m.Email.String,
		CreatedAt:      m.CreatedAt,
	}, nil
}

func (r *sqlxSocialAccountRepository) Create(ctx context.Context, account *domain.SocialAccount) error {
	if account.ID == "" {
		account.ID = util.NewULID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	query := `INSERT INTO social_accounts (id, user_id, provider, provider_user_id, email, created_at)
	          VALUES (:1, :2, :3, :4, :5, :6)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		account.ID, account.UserID, account.Provider, account.ProviderUserID,
		util.StringToNullString(account.Email), account.CreatedAt)
	if err != nil {
		return writeError("create social account", err)
	}
	return nil
}

func (r *sqlxSocialAccountRepository) Delete(ctx context.Context, id string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM social_accounts WHERE id = :1`, id); err != nil {
		return fmt.Errorf("failed to delete social account: %w", err)
	}
	return nil
}
