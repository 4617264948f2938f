package auth

import (
	"littlelemon/internal/domain"
	"net/http"
	"testing"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{"anyone reads menu", RoleCustomer, ResourceMenu, ActionRead, true},
		{"crew reads menu", RoleDeliveryCrew, ResourceMenu, ActionRead, true},
		{"customer cannot write menu", RoleCustomer, ResourceMenu, ActionCreate, false},
		{"crew cannot write menu", RoleDeliveryCrew, ResourceMenu, ActionUpdate, false},
		{"manager writes menu", RoleManager, ResourceMenu, ActionCreate, true},
		{"manager deletes menu", RoleManager, ResourceMenu, ActionDelete, true},

		{"customer cannot read rosters", RoleCustomer, ResourceGroups, ActionRead, false},
		{"crew cannot read rosters", RoleDeliveryCrew, ResourceGroups, ActionRead, false},
		{"manager reads rosters", RoleManager, ResourceGroups, ActionRead, true},
		{"manager writes rosters", RoleManager, ResourceGroups, ActionCreate, true},

		{"customer owns the cart", RoleCustomer, ResourceCart, ActionRead, true},
		{"customer writes the cart", RoleCustomer, ResourceCart, ActionCreate, true},
		{"customer clears the cart", RoleCustomer, ResourceCart, ActionDelete, true},
		{"manager has no cart", RoleManager, ResourceCart, ActionRead, false},
		{"crew has no cart", RoleDeliveryCrew, ResourceCart, ActionCreate, false},

		{"customer lists orders", RoleCustomer, ResourceOrders, ActionRead, true},
		{"crew lists orders", RoleDeliveryCrew, ResourceOrders, ActionRead, true},
		{"manager lists orders", RoleManager, ResourceOrders, ActionRead, true},
		{"only customers place orders", RoleCustomer, ResourceOrders, ActionCreate, true},
		{"crew cannot place orders", RoleDeliveryCrew, ResourceOrders, ActionCreate, false},
		{"manager cannot place orders", RoleManager, ResourceOrders, ActionCreate, false},
		{"crew updates orders", RoleDeliveryCrew, ResourceOrders, ActionUpdate, true},
		{"manager updates orders", RoleManager, ResourceOrders, ActionUpdate, true},
		{"customer cannot update orders", RoleCustomer, ResourceOrders, ActionUpdate, false},
		{"only managers delete orders", RoleManager, ResourceOrders, ActionDelete, true},
		{"crew cannot delete orders", RoleDeliveryCrew, ResourceOrders, ActionDelete, false},
		{"customer cannot delete orders", RoleCustomer, ResourceOrders, ActionDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allow(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Allow(%v, %v, %v) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestActionForMethod(t *testing.T) {
	tests := []struct {
		method string
		want   Action
	}{
		{http.MethodGet, ActionRead},
		{http.MethodHead, ActionRead},
		{http.MethodPost, ActionCreate},
		{http.MethodPut, ActionUpdate},
		{http.MethodPatch, ActionUpdate},
		{http.MethodDelete, ActionDelete},
	}
	for _, tt := range tests {
		if got := ActionForMethod(tt.method); got != tt.want {
			t.Errorf("ActionForMethod(%s) = %v, want %v", tt.method, got, tt.want)
		}
	}
}

func TestDenyMessage(t *testing.T) {
	tests := []struct {
		resource Resource
		action   Action
		want     string
	}{
		{ResourceOrders, ActionCreate, "Not a customer"},
		{ResourceOrders, ActionUpdate, "Only staff can update orders"},
		{ResourceOrders, ActionDelete, "Only managers can delete orders"},
		{ResourceCart, ActionRead, "You do not have permission to perform this action."},
		{ResourceMenu, ActionCreate, "Manager access required"},
		{ResourceGroups, ActionRead, "Manager access required"},
	}
	for _, tt := range tests {
		if got := DenyMessage(tt.resource, tt.action); got != tt.want {
			t.Errorf("DenyMessage(%v, %v) = %q, want %q", tt.resource, tt.action, got, tt.want)
		}
	}
}

func TestRoleOf(t *testing.T) {
	manager := domain.Group{Name: domain.GroupManager}
	crew := domain.Group{Name: domain.GroupDeliveryCrew}

	tests := []struct {
		name string
		user domain.User
		want Role
	}{
		{"no groups is a customer", domain.User{}, RoleCustomer},
		{"manager group", domain.User{Groups: []domain.Group{manager}}, RoleManager},
		{"delivery crew group", domain.User{Groups: []domain.Group{crew}}, RoleDeliveryCrew},
		{"manager wins over crew", domain.User{Groups: []domain.Group{crew, manager}}, RoleManager},
		{"unrelated group is a customer", domain.User{Groups: []domain.Group{{Name: "Cooks"}}}, RoleCustomer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleOf(&tt.user); got != tt.want {
				t.Errorf("RoleOf = %v, want %v", got, tt.want)
			}
		})
	}
}
