package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xche909/Galactica/domain"
)

// AccountClaims embeds the account as the token subject. Account fields tagged
// json:"-" (password hash, refresh token slot) never make it into the payload.
type AccountClaims struct {
	Account domain.Account `json:"user"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies one kind of token. Access and refresh tokens
// each get their own manager with a distinct secret, so a token of one kind
// can never be replayed as the other, and their own expired/invalid error
// values so failures surface with the right message.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	errExpired    error
	errInvalid    error
}

func NewJWTManager(secretKey string, duration time.Duration, errExpired, errInvalid error) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: duration,
		errExpired:    errExpired,
		errInvalid:    errInvalid,
	}
}

func NewAccessTokenManager(secretKey string) *JWTManager {
	return NewJWTManager(secretKey, 15*time.Minute, domain.ErrTokenExpired, domain.ErrTokenInvalid)
}

func NewRefreshTokenManager(secretKey string) *JWTManager {
	return NewJWTManager(secretKey, 7*24*time.Hour, domain.ErrRefreshTokenExpired, domain.ErrRefreshTokenInvalid)
}

func (j *JWTManager) GenerateToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := AccountClaims{
		Account: *account,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken checks signature and expiry in one pass and returns the embedded
// account on success.
func (j *JWTManager) VerifyToken(tokenStr string) (*domain.Account, error) {
	claims := &AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, j.errExpired
		}
		return nil, j.errInvalid
	}
	if !token.Valid {
		return nil, j.errInvalid
	}

	return &claims.Account, nil
}
