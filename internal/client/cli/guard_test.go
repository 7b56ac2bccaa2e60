package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/client/session"
)

func TestDecide(t *testing.T) {
	admin := &models.User{ID: 5, Username: "root", Role: models.RoleAdmin}
	regular := &models.User{ID: 7, Username: "bob"}
	legacyAdmin := &models.User{ID: 1, Username: "first"}

	tests := []struct {
		name      string
		state     session.State
		adminOnly bool
		want      Decision
	}{
		{
			name:  "loading wins over everything",
			state: session.State{Loading: true},
			want:  ShowLoading,
		},
		{
			name:      "loading wins even for admin routes",
			state:     session.State{User: admin, Authenticated: true, Loading: true},
			adminOnly: true,
			want:      ShowLoading,
		},
		{
			name:  "unauthenticated goes to login",
			state: session.State{},
			want:  RedirectLogin,
		},
		{
			name:      "unauthenticated admin route still goes to login",
			state:     session.State{},
			adminOnly: true,
			want:      RedirectLogin,
		},
		{
			name:  "authenticated user renders",
			state: session.State{User: regular, Authenticated: true},
			want:  Render,
		},
		{
			name:      "non-admin bounced home from admin route",
			state:     session.State{User: regular, Authenticated: true},
			adminOnly: true,
			want:      RedirectHome,
		},
		{
			name:      "role field grants admin route",
			state:     session.State{User: admin, Authenticated: true},
			adminOnly: true,
			want:      Render,
		},
		{
			name:      "id 1 shim grants admin route when role absent",
			state:     session.State{User: legacyAdmin, Authenticated: true},
			adminOnly: true,
			want:      Render,
		},
		{
			name:      "explicit non-admin role beats id 1 shim",
			state:     session.State{User: &models.User{ID: 1, Role: "user"}, Authenticated: true},
			adminOnly: true,
			want:      RedirectHome,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(tc.state, tc.adminOnly))
		})
	}
}
