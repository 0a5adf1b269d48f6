package remote

import (
	"context"

	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

// AuthGateway implements ports.AuthGateway against the upstream auth
// endpoints. Payload field names (e_mail_id and friends) follow the
// upstream contract.
type AuthGateway struct {
	client *Client
}

var _ ports.AuthGateway = (*AuthGateway)(nil)

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"e_mail_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var resp loginResponse
	err := g.client.post(ctx, "auth.login", "/auth/login", loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, &domain.RemoteError{Kind: domain.ErrKindNetwork, Err: errMalformedLogin}
	}
	return resp.Token, resp.User, nil
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"e_mail_id"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

func (g *AuthGateway) Register(ctx context.Context, input ports.RegisterInput) error {
	req := registerRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
	}
	return g.client.post(ctx, "auth.register", "/auth/register", req, nil, false)
}

type profileResponse struct {
	User *domain.User `json:"user"`
}

func (g *AuthGateway) Profile(ctx context.Context) (*domain.User, error) {
	var resp profileResponse
	if err := g.client.get(ctx, "auth.profile", "/auth/profile", nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &domain.RemoteError{Kind: domain.ErrKindNetwork, Err: errMalformedProfile}
	}
	return resp.User, nil
}
