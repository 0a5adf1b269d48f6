package remote

import (
	"context"
	"errors"

	"github.com/diycomponents/storefront/internal/core/ports"
)

var errMalformedLogin = errors.New("login response missing token or user")
var errMalformedProfile = errors.New("profile response missing user")

// NoCredentials is a CredentialStore for clients that only issue public
// calls (catalog). Load always reports an absent credential.
type NoCredentials struct{}

var _ ports.CredentialStore = NoCredentials{}

func (NoCredentials) Load(context.Context) (ports.Credentials, error) { return ports.Credentials{}, nil }
func (NoCredentials) Save(context.Context, ports.Credentials) error   { return nil }
func (NoCredentials) Clear(context.Context) error                     { return nil }

