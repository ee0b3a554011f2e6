package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xche909/Galactica/domain"
)

const (
	testAccessSecret  = "access-secret-0123456789abcdefghijklmn"
	testRefreshSecret = "refresh-secret-0123456789abcdefghijklm"
)

func testAccount() *domain.Account {
	email := "kara.thrace@example.com"
	return &domain.Account{
		ID:        42,
		Email:     &email,
		FirstName: "Kara",
		LastName:  "Thrace",
		Type:      domain.AccountTypeEmail,
	}
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	manager := NewAccessTokenManager(testAccessSecret)

	token, err := manager.GenerateToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := manager.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("subject ID = %d, want 42", got.ID)
	}
	if got.Email == nil || *got.Email != "kara.thrace@example.com" {
		t.Errorf("subject email = %v, want kara.thrace@example.com", got.Email)
	}
	if got.Type != domain.AccountTypeEmail {
		t.Errorf("subject type = %q, want EMAIL", got.Type)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	expired := NewJWTManager(testAccessSecret, -time.Minute, domain.ErrTokenExpired, domain.ErrTokenInvalid)

	token, err := expired.GenerateToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := expired.VerifyToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("VerifyToken error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	manager := NewAccessTokenManager(testAccessSecret)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := manager.VerifyToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("VerifyToken(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestTokenKindsUseDistinctSecrets(t *testing.T) {
	access := NewAccessTokenManager(testAccessSecret)
	refresh := NewRefreshTokenManager(testRefreshSecret)

	accessToken, err := access.GenerateToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// An access token presented as a refresh token must fail as invalid,
	// with the refresh flavored error.
	if _, err := refresh.VerifyToken(accessToken); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Errorf("VerifyToken error = %v, want ErrRefreshTokenInvalid", err)
	}
}

func TestTokenPayloadOmitsSecrets(t *testing.T) {
	account := testAccount()
	digest, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	stored := "previously-issued-refresh-token"
	account.Password = &digest
	account.RefreshToken = &stored

	manager := NewAccessTokenManager(testAccessSecret)
	token, err := manager.GenerateToken(account)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decoding payload: %v", err)
	}

	if strings.Contains(string(payload), digest) {
		t.Error("token payload leaks the password digest")
	}
	if strings.Contains(string(payload), stored) {
		t.Error("token payload leaks the stored refresh token")
	}
}
