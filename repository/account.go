package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/xche909/Galactica/domain"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) FindByDeviceID(ctx context.Context, deviceID string) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, "device_id = ?", deviceID).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	return translateError(r.db.WithContext(ctx).Create(account).Error)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	return translateError(r.db.WithContext(ctx).Save(account).Error)
}

func (r *accountRepository) Transaction(ctx context.Context, fn func(repo domain.AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&accountRepository{db: tx})
	})
}

// translateError maps database errors to domain errors. The unique indexes on
// email and device_id are the authoritative enforcement of the one-account-per
// email/device invariants; pre-checks in the service are best effort, and the
// race loser lands here with SQLSTATE 23505.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrAccountExists
	}

	return err
}
