package services

import (
	"errors"
	"testing"

	"roboquin-http-service/models"
)

func TestCreateUnit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnitService(db, testConfig())

	unit := models.Unit{Name: "Window Model", SerialNumber: "MQ-001"}
	if err := svc.CreateUnit(&unit); err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	if unit.Status != models.UnitStatusOffline {
		t.Errorf("Expected default status 'offline', got '%s'", unit.Status)
	}
	if unit.ClientID != nil {
		t.Errorf("Expected new unit unassigned, got client %v", *unit.ClientID)
	}
}

func TestCreateUnitDuplicateSerial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnitService(db, testConfig())

	createTestUnit(t, db, "Window Model", "MQ-001", nil)

	dup := models.Unit{Name: "Other Model", SerialNumber: "MQ-001"}
	if err := svc.CreateUnit(&dup); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for duplicate serial, got %v", err)
	}
}

func TestGetUnitByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnitService(db, testConfig())

	if _, err := svc.GetUnitByID(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetVisibleUnits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnitService(db, testConfig())

	admin := createTestUser(t, db, "Alice", "admin@demo.com", models.RoleAdmin)
	manager := createTestUser(t, db, "Mandy", "mandy@demo.com", models.RoleManager)
	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)
	carl := createTestUser(t, db, "Carl", "carl@demo.com", models.RoleClient)

	createTestUnit(t, db, "Window Model A", "MQ-001", uintPtr(clara.ID))
	createTestUnit(t, db, "Window Model B", "MQ-002", uintPtr(carl.ID))
	createTestUnit(t, db, "Warehouse Model", "MQ-003", nil)

	all, err := svc.GetVisibleUnits(actorFor(admin))
	if err != nil {
		t.Fatalf("GetVisibleUnits(admin) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected admin to see 3 units, got %d", len(all))
	}

	managed, err := svc.GetVisibleUnits(actorFor(manager, clara.ID))
	if err != nil {
		t.Fatalf("GetVisibleUnits(manager) failed: %v", err)
	}
	if len(managed) != 1 || managed[0].SerialNumber != "MQ-001" {
		t.Errorf("Expected manager to see only MQ-001, got %v", managed)
	}

	none, err := svc.GetVisibleUnits(actorFor(manager))
	if err != nil {
		t.Fatalf("GetVisibleUnits(manager without clients) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected empty list, got %d units", len(none))
	}

	own, err := svc.GetVisibleUnits(actorFor(carl))
	if err != nil {
		t.Fatalf("GetVisibleUnits(client) failed: %v", err)
	}
	if len(own) != 1 || own[0].SerialNumber != "MQ-002" {
		t.Errorf("Expected client to see only MQ-002, got %v", own)
	}
}

func TestUpdateUnitIgnoresClientID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnitService(db, testConfig())

	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)
	unit := createTestUnit(t, db, "Window Model", "MQ-001", uintPtr(clara.ID))

	// 基础信息更新不允许顺带改动分配关系
	updated, err := svc.UpdateUnit(unit.ID, map[string]interface{}{
		"name":      "Lobby Model",
		"status":    "maintenance",
		"client_id": nil,
	})
	if err != nil {
		t.Fatalf("UpdateUnit failed: %v", err)
	}
	if updated.Name != "Lobby Model" {
		t.Errorf("Expected name 'Lobby Model', got '%s'", updated.Name)
	}
	if updated.Status != models.UnitStatusMaintenance {
		t.Errorf("Expected status 'maintenance', got '%s'", updated.Status)
	}
	if updated.ClientID == nil || *updated.ClientID != clara.ID {
		t.Errorf("Expected assignment unchanged, got %v", updated.ClientID)
	}
}
