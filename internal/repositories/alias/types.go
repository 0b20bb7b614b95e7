package alias

import "github.com/KirkDiggler/chair/internal/models"

// SaveAliasInput contains the alias to store
type SaveAliasInput struct {
	Alias *models.RoleAlias
}

// GetAliasInput contains parameters for retrieving an alias
type GetAliasInput struct {
	FacadeRoleID string
}

// DeleteAliasInput contains parameters for removing an alias
type DeleteAliasInput struct {
	FacadeRoleID string
}

// ListAliasesInput contains parameters for listing aliases
type ListAliasesInput struct{}

// ListAliasesOutput contains every alias, ordered by facade role ID
type ListAliasesOutput struct {
	Aliases []*models.RoleAlias
}
