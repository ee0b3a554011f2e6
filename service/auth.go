package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xche909/Galactica/domain"
	"github.com/xche909/Galactica/utils"
)

// deviceEmailDomain is the domain of the placeholder email synthesized for
// device-only accounts, which keeps the email unique index satisfied.
const deviceEmailDomain = "galacticadevice.com"

type authService struct {
	accounts domain.AccountRepository
	access   *utils.JWTManager
	refresh  *utils.JWTManager
}

func NewAuthService(accounts domain.AccountRepository, access, refresh *utils.JWTManager) domain.AuthUseCase {
	return &authService{
		accounts: accounts,
		access:   access,
		refresh:  refresh,
	}
}

// RegisterWithEmail creates an email account, or links email credentials onto
// an existing device account when the request carries its device ID.
func (s *authService) RegisterWithEmail(ctx context.Context, reg domain.EmailRegistration) (*domain.AuthTokens, error) {
	log.Info().Str("email", reg.Email).Msg("attempting email registration")

	hashed, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	err = s.accounts.Transaction(ctx, func(repo domain.AccountRepository) error {
		if reg.DeviceID != nil && *reg.DeviceID != "" {
			existing, err := repo.FindByDeviceID(ctx, *reg.DeviceID)
			switch {
			case err == nil:
				account = existing
				return s.linkEmailCredentials(ctx, repo, existing, reg, hashed)
			case !errors.Is(err, domain.ErrAccountNotFound):
				return err
			}
			// Unknown device ID: fall through to a plain registration that
			// claims the device ID as well.
		}

		if _, err := repo.FindByEmail(ctx, reg.Email); err == nil {
			log.Warn().Str("email", reg.Email).Msg("email registration rejected, account exists")
			return domain.ErrAccountExists
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		account = &domain.Account{
			Email:        &reg.Email,
			DeviceID:     reg.DeviceID,
			Password:     &hashed,
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			Type:         domain.AccountTypeEmail,
			LastActiveAt: time.Now(),
		}
		return repo.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// linkEmailCredentials attaches email, password and profile to an existing
// device account. The account type becomes EMAIL, which from then on refuses
// device-only logins for this account.
func (s *authService) linkEmailCredentials(ctx context.Context, repo domain.AccountRepository, account *domain.Account, reg domain.EmailRegistration, hashed string) error {
	owner, err := repo.FindByEmail(ctx, reg.Email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	if owner != nil && owner.ID != account.ID {
		log.Warn().Str("email", reg.Email).Msg("device link rejected, email already in use")
		return domain.ErrEmailTaken
	}

	account.Email = &reg.Email
	account.Password = &hashed
	account.FirstName = reg.FirstName
	account.LastName = reg.LastName
	account.Type = domain.AccountTypeEmail

	return repo.Update(ctx, account)
}

// RegisterWithDevice creates a device-only account with a synthesized
// placeholder email.
func (s *authService) RegisterWithDevice(ctx context.Context, deviceID string) (*domain.AuthTokens, error) {
	log.Info().Str("deviceId", deviceID).Msg("attempting device registration")

	var account *domain.Account
	err := s.accounts.Transaction(ctx, func(repo domain.AccountRepository) error {
		if _, err := repo.FindByDeviceID(ctx, deviceID); err == nil {
			log.Warn().Str("deviceId", deviceID).Msg("device registration rejected, account exists")
			return domain.ErrAccountExists
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		placeholder := deviceID + "@" + deviceEmailDomain
		account = &domain.Account{
			Email:        &placeholder,
			DeviceID:     &deviceID,
			Type:         domain.AccountTypeDevice,
			LastActiveAt: time.Now(),
		}
		return repo.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Login dispatches on the supplied credentials. Email and password take
// precedence when a device ID is also present.
func (s *authService) Login(ctx context.Context, email, password, deviceID string) (*domain.AuthTokens, error) {
	switch {
	case deviceID != "" && email != "":
		return s.loginWithEmailAndPassword(ctx, email, password, deviceID)
	case deviceID != "":
		return s.loginWithDeviceID(ctx, deviceID)
	default:
		return s.loginWithEmailAndPassword(ctx, email, password, "")
	}
}

func (s *authService) loginWithDeviceID(ctx context.Context, deviceID string) (*domain.AuthTokens, error) {
	log.Info().Str("deviceId", deviceID).Msg("attempting device login")

	account, err := s.accounts.FindByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Warn().Str("deviceId", deviceID).Msg("device login failed, unknown device ID")
			return nil, domain.ErrInvalidDeviceID
		}
		return nil, err
	}

	// Accounts linked to email credentials must log in with them.
	if account.Type != domain.AccountTypeDevice {
		log.Warn().Str("deviceId", deviceID).Msg("device login not allowed for this account")
		return nil, domain.ErrDeviceLoginNotAllowed
	}

	account.LastActiveAt = time.Now()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

func (s *authService) loginWithEmailAndPassword(ctx context.Context, email, password, deviceID string) (*domain.AuthTokens, error) {
	log.Info().Str("email", email).Msg("attempting email login")

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Warn().Str("email", email).Msg("email login failed")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if account.Password == nil || !utils.CheckPassword(password, *account.Password) {
		log.Warn().Str("email", email).Msg("email login failed")
		return nil, domain.ErrInvalidCredentials
	}

	account.LastActiveAt = time.Now()
	if deviceID != "" {
		// Re-associate the account with the device it logs in from; the last
		// writer wins.
		account.DeviceID = &deviceID
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

// Refresh rotates the token pair. The presented token must both verify and
// match the single stored slot; anything issued earlier is already invalid.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	subject, err := s.refresh.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, subject.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Warn().Uint("accountId", subject.ID).Msg("refresh rejected, account not found")
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	if account.RefreshToken == nil || *account.RefreshToken != refreshToken {
		log.Warn().Uint("accountId", account.ID).Msg("refresh rejected, stored token mismatch")
		return nil, domain.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, account)
}

func (s *authService) Me(ctx context.Context, id uint) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// issueTokens is the only path that mints and persists tokens, which keeps the
// stored refresh token the single valid one for the account.
func (s *authService) issueTokens(ctx context.Context, account *domain.Account) (*domain.AuthTokens, error) {
	subject := *account
	subject.RefreshToken = nil

	accessToken, err := s.access.GenerateToken(&subject)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.GenerateToken(&subject)
	if err != nil {
		return nil, err
	}

	account.RefreshToken = &refreshToken
	account.LastActiveAt = time.Now()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return &domain.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
