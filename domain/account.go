package domain

import (
	"context"
	"time"
)

type AccountType string

const (
	AccountTypeEmail  AccountType = "EMAIL"
	AccountTypeDevice AccountType = "DEVICE"
)

// Account is a single authenticable identity. It is created either by an email
// registration or a device registration, and a device account can later be
// linked to email credentials. Password and RefreshToken are never serialized,
// which also keeps them out of signed token payloads.
type Account struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        *string     `gorm:"uniqueIndex" json:"email,omitempty"`
	DeviceID     *string     `gorm:"uniqueIndex" json:"deviceId,omitempty"`
	Password     *string     `json:"-"`
	FirstName    string      `json:"firstName,omitempty"`
	LastName     string      `json:"lastName,omitempty"`
	Type         AccountType `gorm:"not null" json:"type"`
	RefreshToken *string     `json:"-"`
	LastActiveAt time.Time   `json:"lastActiveAt"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByDeviceID(ctx context.Context, deviceID string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	// Transaction runs fn against a repository bound to a single database
	// transaction, closing the check-then-act window in multi-step flows.
	Transaction(ctx context.Context, fn func(repo AccountRepository) error) error
}
