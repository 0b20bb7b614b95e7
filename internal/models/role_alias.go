package models

// RoleAlias maps a publicly pinged facade role to the real role it stands in for
type RoleAlias struct {
	// FacadeRoleID is the role users mention to trigger a ping
	FacadeRoleID string

	// ActualRoleID is the role the facade resolves to
	ActualRoleID string
}
