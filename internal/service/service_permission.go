package service

import (
	"github.com/MKhiriev/go-upload-desk/models"
)

// rolePermissions is the capability table. Every permission listed here is
// checked by at least one route.
var rolePermissions = map[models.Role][]models.Permission{
	models.RoleAdmin: {
		models.PermManageUsers,
		models.PermViewAnalytics,
		models.PermUploadFiles,
	},
	models.RoleContributor: {
		models.PermUploadFiles,
	},
	models.RoleViewer: {},
}

type permissionService struct{}

func NewPermissionService() PermissionService {
	return &permissionService{}
}

func (p *permissionService) Role(user models.User) models.Role {
	if user.IsSuperuser {
		return models.RoleAdmin
	}
	if !user.Role.Valid() {
		return models.RoleViewer
	}
	return user.Role
}

func (p *permissionService) Permissions(user models.User) []models.Permission {
	perms := rolePermissions[p.Role(user)]
	out := make([]models.Permission, len(perms))
	copy(out, perms)
	return out
}

func (p *permissionService) HasPermission(user models.User, perm models.Permission) bool {
	for _, granted := range rolePermissions[p.Role(user)] {
		if granted == perm {
			return true
		}
	}
	return false
}
