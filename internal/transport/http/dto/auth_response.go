package dto

import (
	"time"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/domain"
)

// UserView is the wire representation of an account. The password hash
// never leaves the service.
type UserView struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Profile   map[string]any `json:"profile"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Profile:   u.Profile,
		Settings:  u.Settings,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		LastLogin: u.LastLogin,
	}
}

type TokensView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func NewTokensView(t auth.AuthTokens) TokensView {
	return TokensView{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresIn:    t.ExpiresIn,
	}
}

type RegisterData struct {
	User UserView `json:"user"`
}

type LoginData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

type RefreshData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type MeData struct {
	User UserView `json:"user"`
}
