package access_test

import (
	"testing"

	"littlelemon/internal/access"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalRoles(t *testing.T) {
	tests := []struct {
		name     string
		groups   []string
		role     access.Role
		customer bool
		roles    []string
	}{
		{"no groups", nil, access.Customer, true, []string{"customer"}},
		{"unrelated group", []string{"Waiters"}, access.Customer, true, []string{"customer"}},
		{"manager", []string{access.GroupManager}, access.Manager, false, []string{"manager"}},
		{"crew", []string{access.GroupDeliveryCrew}, access.DeliveryCrew, false, []string{"delivery_crew"}},
		{"both", []string{access.GroupDeliveryCrew, access.GroupManager}, access.Manager, false, []string{"manager", "delivery_crew"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := access.NewPrincipal("u1", "alice", tt.groups)
			assert.Equal(t, tt.role, p.Role())
			assert.Equal(t, tt.customer, p.IsCustomer())
			assert.Equal(t, tt.roles, p.Roles())
		})
	}
}
