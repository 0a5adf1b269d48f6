package ports

import "context"

// Credentials is the persisted client state: the opaque bearer token and
// the user e-mail carried in the legacy utoken header. It survives process
// restarts until explicit logout or server-side rejection.
type Credentials struct {
	Token string
	Email string
}

// Present reports whether a credential has been stored.
func (c Credentials) Present() bool {
	return c.Token != ""
}

// CredentialStore is durable key-value storage for the credential pair.
// Load returns zero-value Credentials (not an error) when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
