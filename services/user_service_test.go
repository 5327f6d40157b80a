package services

import (
	"errors"
	"testing"

	"roboquin-http-service/models"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := models.User{
		Name:     "Clara Client",
		Email:    "clara@demo.com",
		Role:     models.RoleClient,
		Password: "password",
	}
	if err := svc.CreateUser(&user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// 密码经过哈希后存储
	if user.Password == "password" {
		t.Error("Expected password to be hashed before storage")
	}

	retrieved, err := svc.GetUserByEmail("clara@demo.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if retrieved.Role != models.RoleClient {
		t.Errorf("Expected role 'client', got '%s'", retrieved.Role)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)

	dup := models.User{Name: "Other", Email: "clara@demo.com", Role: models.RoleClient, Password: "password"}
	if err := svc.CreateUser(&dup); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for duplicate email, got %v", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := models.User{Name: "Eve", Email: "eve@demo.com", Role: "superuser", Password: "password"}
	if err := svc.CreateUser(&user); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for invalid role, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)

	user, err := svc.VerifyPassword("clara@demo.com", "password")
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if user.Email != "clara@demo.com" {
		t.Errorf("Expected user clara@demo.com, got %s", user.Email)
	}

	if _, err := svc.VerifyPassword("clara@demo.com", "wrong"); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for wrong password, got %v", err)
	}
	if _, err := svc.VerifyPassword("ghost@demo.com", "password"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestSetManagedClients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	manager := createTestUser(t, db, "Mandy", "mandy@demo.com", models.RoleManager)
	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)
	carl := createTestUser(t, db, "Carl", "carl@demo.com", models.RoleClient)

	if err := svc.SetManagedClients(manager.ID, []uint{clara.ID, carl.ID}); err != nil {
		t.Fatalf("SetManagedClients failed: %v", err)
	}

	clientIDs, err := svc.GetManagedClientIDs(manager.ID)
	if err != nil {
		t.Fatalf("GetManagedClientIDs failed: %v", err)
	}
	if len(clientIDs) != 2 {
		t.Fatalf("Expected 2 managed clients, got %d", len(clientIDs))
	}

	// 重设为更小的集合会替换而不是追加
	if err := svc.SetManagedClients(manager.ID, []uint{clara.ID}); err != nil {
		t.Fatalf("SetManagedClients (replace) failed: %v", err)
	}
	clientIDs, err = svc.GetManagedClientIDs(manager.ID)
	if err != nil {
		t.Fatalf("GetManagedClientIDs failed: %v", err)
	}
	if len(clientIDs) != 1 || clientIDs[0] != clara.ID {
		t.Errorf("Expected managed clients [%d], got %v", clara.ID, clientIDs)
	}
}

func TestSetManagedClientsRoleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	manager := createTestUser(t, db, "Mandy", "mandy@demo.com", models.RoleManager)
	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)
	other := createTestUser(t, db, "Molly", "molly@demo.com", models.RoleManager)

	// 目标必须是经理角色
	if err := svc.SetManagedClients(clara.ID, []uint{clara.ID}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for non-manager target, got %v", err)
	}

	// 集合中的每个用户都必须是客户角色
	if err := svc.SetManagedClients(manager.ID, []uint{other.ID}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for non-client member, got %v", err)
	}
}

func TestDeleteUserCleansRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	manager := createTestUser(t, db, "Mandy", "mandy@demo.com", models.RoleManager)
	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)

	if err := svc.SetManagedClients(manager.ID, []uint{clara.ID}); err != nil {
		t.Fatalf("SetManagedClients failed: %v", err)
	}

	if err := svc.DeleteUser(clara.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var count int64
	db.Model(&models.ManagerClientRelation{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected relations cleaned up, got %d rows", count)
	}

	if _, err := svc.GetUserByID(clara.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetActorContext(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	manager := createTestUser(t, db, "Mandy", "mandy@demo.com", models.RoleManager)
	clara := createTestUser(t, db, "Clara", "clara@demo.com", models.RoleClient)

	if err := svc.SetManagedClients(manager.ID, []uint{clara.ID}); err != nil {
		t.Fatalf("SetManagedClients failed: %v", err)
	}

	actor, err := svc.GetActorContext(manager.ID)
	if err != nil {
		t.Fatalf("GetActorContext failed: %v", err)
	}
	if actor.Role != models.RoleManager {
		t.Errorf("Expected role manager, got %s", actor.Role)
	}
	if len(actor.ClientIDs) != 1 || actor.ClientIDs[0] != clara.ID {
		t.Errorf("Expected ClientIDs [%d], got %v", clara.ID, actor.ClientIDs)
	}

	// 客户角色不携带监管集合
	clientActor, err := svc.GetActorContext(clara.ID)
	if err != nil {
		t.Fatalf("GetActorContext failed: %v", err)
	}
	if len(clientActor.ClientIDs) != 0 {
		t.Errorf("Expected empty ClientIDs for client, got %v", clientActor.ClientIDs)
	}
}
