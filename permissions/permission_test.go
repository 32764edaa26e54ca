package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/permissions"
	"folio/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	if assert.NotNil(t, data) {
		assert.NotEmpty(t, data.Endpoints)
		assert.False(t, data.Skip)
	}
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "login is public", path: "/v1/auth/login", method: http.MethodPost, wantSkip: true},
		{name: "homepage is public", path: "/v1/homepage", method: http.MethodGet, wantSkip: true},
		{name: "album group root", path: "/v1/albums/", method: http.MethodGet, wantSkip: true},
		{name: "album detail", path: "/v1/albums/{id}", method: http.MethodGet, wantSkip: true},
		{name: "post by slug", path: "/v1/posts/{slug}", method: http.MethodGet, wantSkip: true},
		{name: "image listing needs admin", path: "/v1/images/", method: http.MethodGet, wantRoles: []string{constant.RoleAdmin}},
		{name: "image upload needs admin", path: "/v1/images/upload", method: http.MethodPost, wantRoles: []string{constant.RoleAdmin}},
		{name: "admin album update", path: "/v1/admin/albums/{id}", method: http.MethodPatch, wantRoles: []string{constant.RoleAdmin}},
		{name: "admin group root", path: "/v1/admin/settings/", method: http.MethodPut, wantRoles: []string{constant.RoleAdmin}},
		{name: "change password for any user", path: "/v1/auth/change-password", method: http.MethodPost, wantRoles: []string{constant.RoleAdmin, constant.RoleUser}},
		{name: "me for any user", path: "/v1/auth/me", method: http.MethodGet, wantRoles: []string{constant.RoleAdmin, constant.RoleUser}},
		{name: "logout for any user", path: "/v1/auth/logout", method: http.MethodPost, wantRoles: []string{constant.RoleAdmin, constant.RoleUser}},
		{name: "user detail needs admin", path: "/v1/admin/users/{id}/", method: http.MethodDelete, wantRoles: []string{constant.RoleAdmin}},
		{name: "writes to public paths need admin", path: "/v1/albums/", method: http.MethodPost, wantRoles: []string{constant.RoleAdmin}},
		{name: "unknown v1 route needs admin", path: "/v1/unknown", method: http.MethodGet, wantRoles: []string{constant.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.ElementsMatch(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestFindPermissions_NoMatch(t *testing.T) {
	data := permissions.PermissionData{
		Endpoints: []permissions.Permission{{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true}},
	}

	permission := data.FindPermissions("/health", http.MethodGet)

	assert.False(t, permission.Skip)
	assert.True(t, permission.Allows(constant.RoleUser))
}

func TestPermission_Allows(t *testing.T) {
	permission := permissions.Permission{Permissions: []string{constant.RoleAdmin}}

	assert.True(t, permission.Allows(constant.RoleAdmin))
	assert.False(t, permission.Allows(constant.RoleUser))
	assert.False(t, permission.Allows(""))
}
