package services

import (
	"testing"

	"roboquin-http-service/models"
)

func TestPolicyForAdmin(t *testing.T) {
	policy := PolicyFor(models.RoleAdmin)
	actor := Actor{ID: 1, Role: models.RoleAdmin}
	unit := &models.Unit{ID: 10}

	if !policy.CanView(actor, unit) {
		t.Error("Expected admin to view any unit")
	}
	if !policy.CanManage(actor, unit) {
		t.Error("Expected admin to manage any unit")
	}
	if !policy.HasPermission(actor, "view:own-mannequins") {
		t.Error("Expected admin to hold any permission")
	}
}

func TestPolicyForManager(t *testing.T) {
	policy := PolicyFor(models.RoleManager)
	actor := Actor{ID: 2, Role: models.RoleManager, ClientIDs: []uint{5, 6}}

	managed := &models.Unit{ID: 10, ClientID: uintPtr(5)}
	foreign := &models.Unit{ID: 11, ClientID: uintPtr(7)}
	unassigned := &models.Unit{ID: 12}

	if !policy.CanView(actor, managed) {
		t.Error("Expected manager to view unit of a managed client")
	}
	if !policy.CanManage(actor, managed) {
		t.Error("Expected manager to manage unit of a managed client")
	}
	if policy.CanView(actor, foreign) {
		t.Error("Expected manager not to view unit of a foreign client")
	}
	// 未分配的设备对经理不可见
	if policy.CanView(actor, unassigned) {
		t.Error("Expected manager not to view unassigned unit")
	}

	if !policy.HasPermission(actor, "edit:assigned-mannequins") {
		t.Error("Expected manager permission 'edit:assigned-mannequins'")
	}
	if policy.HasPermission(actor, "view:own-mannequins") {
		t.Error("Did not expect manager to hold client permission")
	}
}

func TestPolicyForClient(t *testing.T) {
	policy := PolicyFor(models.RoleClient)
	actor := Actor{ID: 5, Role: models.RoleClient}

	own := &models.Unit{ID: 10, ClientID: uintPtr(5)}
	foreign := &models.Unit{ID: 11, ClientID: uintPtr(6)}
	unassigned := &models.Unit{ID: 12}

	if !policy.CanView(actor, own) {
		t.Error("Expected client to view own unit")
	}
	if !policy.CanManage(actor, own) {
		t.Error("Expected client to manage own unit")
	}
	if policy.CanView(actor, foreign) {
		t.Error("Expected client not to view foreign unit")
	}
	if policy.CanView(actor, unassigned) {
		t.Error("Expected client not to view unassigned unit")
	}

	if !policy.HasPermission(actor, "view:own-mannequins") {
		t.Error("Expected client permission 'view:own-mannequins'")
	}
	if policy.HasPermission(actor, "edit:assigned-mannequins") {
		t.Error("Did not expect client to hold manager permission")
	}
}

func TestPolicyForUnknownRole(t *testing.T) {
	policy := PolicyFor(models.UserRole("intruder"))
	actor := Actor{ID: 1, Role: "intruder"}
	unit := &models.Unit{ID: 10, ClientID: uintPtr(1)}

	if policy.CanView(actor, unit) || policy.CanManage(actor, unit) {
		t.Error("Expected unknown role to be denied everything")
	}
	if policy.HasPermission(actor, "view:own-mannequins") {
		t.Error("Expected unknown role to hold no permissions")
	}
}

func TestPolicyNilUnit(t *testing.T) {
	actor := Actor{ID: 5, Role: models.RoleClient}
	if PolicyFor(models.RoleClient).CanView(actor, nil) {
		t.Error("Expected nil unit to be invisible to client")
	}
	if PolicyFor(models.RoleManager).CanView(actor, nil) {
		t.Error("Expected nil unit to be invisible to manager")
	}
}
