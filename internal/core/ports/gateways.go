package ports

import (
	"context"

	"github.com/diycomponents/storefront/internal/core/domain"
)

// RegisterInput carries the profile fields for account creation. The
// account requires e-mail verification before first login, so registration
// never yields a session.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// AuthGateway talks to the remote authentication endpoints.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Register(ctx context.Context, input RegisterInput) error
	// Profile fetches the profile for the currently stored credential.
	Profile(ctx context.Context) (*domain.User, error)
}

// CartGateway talks to the remote cart endpoints. All calls require the
// stored bearer credential.
type CartGateway interface {
	Fetch(ctx context.Context) ([]domain.CartItem, error)
	Add(ctx context.Context, sku string, quantity int) error
	UpdateQuantity(ctx context.Context, sku string, quantity int) error
	Remove(ctx context.Context, sku string) error
	Clear(ctx context.Context) error
}

// CatalogGateway talks to the public product/category endpoints.
type CatalogGateway interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, sku string) (*domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	FilteredCategories(ctx context.Context) ([]domain.Category, error)
}
