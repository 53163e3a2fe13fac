package handler

import (
	"time"

	"github.com/dispatchiq/backend/internal/application/identity"
)

// UserResponse is the user view returned by auth endpoints
type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Role          string  `json:"role"`
	CompanyID     *string `json:"company_id"`
	EmailVerified bool    `json:"email_verified"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// SigninResponse is returned on successful sign in
type SigninResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

func toUserResponse(u identity.UserInfo) UserResponse {
	resp := UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
	if u.CompanyID != nil {
		companyID := u.CompanyID.String()
		resp.CompanyID = &companyID
	}
	return resp
}
