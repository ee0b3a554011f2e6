package domain

import "context"

// EmailRegistration is the resolved input of an email registration. DeviceID,
// when set, triggers the device-link flow before a plain registration is tried.
type EmailRegistration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	DeviceID  *string
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthUseCase interface {
	RegisterWithEmail(ctx context.Context, reg EmailRegistration) (*AuthTokens, error)
	RegisterWithDevice(ctx context.Context, deviceID string) (*AuthTokens, error)
	Login(ctx context.Context, email, password, deviceID string) (*AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Me(ctx context.Context, id uint) (*Account, error)
}
