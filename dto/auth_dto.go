package dto

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xche909/Galactica/domain"
)

type EmailRegistrationRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,password"`
	DeviceID  string `json:"deviceId" binding:"omitempty"`
}

type DeviceRegistrationRequest struct {
	DeviceID string `json:"deviceId" binding:"required"`
}

// LoginRequest accepts email/password credentials, a device ID, or both.
// The required_without pairs enforce that at least one complete credential
// set is present.
type LoginRequest struct {
	Email    string `json:"email" binding:"required_without=DeviceID,omitempty,email"`
	Password string `json:"password" binding:"required_without=DeviceID"`
	DeviceID string `json:"deviceId" binding:"required_without=Email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

var nameTitler = cases.Title(language.English)

func MapEmailRegistration(req *EmailRegistrationRequest) domain.EmailRegistration {
	reg := domain.EmailRegistration{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		FirstName: nameTitler.String(strings.TrimSpace(req.FirstName)),
		LastName:  nameTitler.String(strings.TrimSpace(req.LastName)),
	}
	if req.DeviceID != "" {
		deviceID := req.DeviceID
		reg.DeviceID = &deviceID
	}
	return reg
}
