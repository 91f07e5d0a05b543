package permissions_test

import (
	"hotelpms/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedMatrix(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		skip     bool
		roles    []string
		notRoles []string
	}{
		{name: "login is public", path: "/api/auth/login", method: http.MethodPost, skip: true},
		{name: "refresh is public", path: "/api/auth/refresh-token", method: http.MethodPost, skip: true},
		{name: "register is admin only", path: "/api/auth/register", method: http.MethodPost, roles: []string{"admin"}, notRoles: []string{"manager", "frontdesk", "cashier"}},
		{name: "cashier export", path: "/api/cashier/export", method: http.MethodGet, roles: []string{"admin", "manager", "cashier"}, notRoles: []string{"frontdesk"}},
		{name: "payments open to cashier", path: "/api/bookings/{id}/payment", method: http.MethodPost, roles: []string{"cashier", "frontdesk"}},
		{name: "checkout not for cashier", path: "/api/bookings/{id}/checkout", method: http.MethodPost, roles: []string{"frontdesk"}, notRoles: []string{"cashier"}},
		{name: "room delete for managers", path: "/api/rooms/{id}", method: http.MethodDelete, roles: []string{"admin", "manager"}, notRoles: []string{"frontdesk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)

			for _, role := range tt.roles {
				assert.Contains(t, permission.Permissions, role)
			}

			for _, role := range tt.notRoles {
				assert.NotContains(t, permission.Permissions, role)
			}
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/unknown", http.MethodGet))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "valid", data: `{"endpoints":[{"path":"/api/rooms/","method":"POST","permissions":["admin","manager"]}]}`},
		{name: "unknown role", data: `{"endpoints":[{"path":"/api/rooms/","method":"POST","permissions":["owner"]}]}`, wantErr: `unknown role "owner" on POST /api/rooms/`},
		{
			name:    "duplicate route",
			data:    `{"endpoints":[{"path":"/api/rooms/","method":"POST"},{"path":"/api/rooms/","method":"post"}]}`,
			wantErr: "duplicate permission for POST /api/rooms/",
		},
		{name: "malformed", data: `{"endpoints":`, wantErr: "decoding permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.data))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, data.FindPermissions("/api/rooms/", http.MethodPost).Allows("manager"))
			assert.False(t, data.FindPermissions("/api/rooms/", http.MethodPost).Allows("cashier"))
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	assert.True(t, permissions.Permission{}.Allows("cashier"))
	assert.True(t, permissions.Permission{Skip: true, Permissions: []string{"admin"}}.Allows(""))
	assert.False(t, permissions.Permission{Permissions: []string{"admin"}}.Allows("frontdesk"))
}
