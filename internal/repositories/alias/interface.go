package alias

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/chair/internal/repositories/alias Repository

import (
	"context"

	"github.com/KirkDiggler/chair/internal/models"
)

// Repository defines the interface for the facade role alias table
type Repository interface {
	// SaveAlias adds or replaces the alias for a facade role
	SaveAlias(ctx context.Context, input *SaveAliasInput) error

	// GetAlias retrieves the alias for a facade role
	GetAlias(ctx context.Context, input *GetAliasInput) (*models.RoleAlias, error)

	// DeleteAlias removes the alias for a facade role
	DeleteAlias(ctx context.Context, input *DeleteAliasInput) error

	// ListAliases retrieves every alias
	ListAliases(ctx context.Context, input *ListAliasesInput) (*ListAliasesOutput, error)
}
