package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"storeops.com/console/pkg/shared/client"
)

// TokenSaver persists the bearer token returned by login. Token issuance
// itself belongs to the backend; this side only stores and clears it.
type TokenSaver interface {
	Save(token string) error
	Clear() error
}

type AdminProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthService struct {
	client *client.Client
	tokens TokenSaver
}

func NewAuthService(c *client.Client, tokens TokenSaver) *AuthService {
	return &AuthService{client: c, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AdminProfile, error) {
	var data struct {
		Token string          `json:"token"`
		Admin json.RawMessage `json:"admin"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := s.client.Post(ctx, basePath+"/auth/login", body, &data); err != nil {
		return nil, err
	}
	if data.Token == "" {
		return nil, fmt.Errorf("login succeeded but no token was returned")
	}
	if err := s.tokens.Save(data.Token); err != nil {
		return nil, fmt.Errorf("storing auth token: %w", err)
	}

	profile := &AdminProfile{}
	if len(data.Admin) > 0 {
		// Profile shape is backend-defined; ignore what does not fit.
		_ = json.Unmarshal(data.Admin, profile)
	}
	log.Info().Str("email", email).Msg("Super admin logged in")
	return profile, nil
}

func (s *AuthService) Logout() error {
	return s.tokens.Clear()
}
