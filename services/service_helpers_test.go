package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roboquin-http-service/config"
	"roboquin-http-service/models"
)

// setupTestDB 创建一个内存数据库并完成迁移。
// 单连接保证并发测试中事务按顺序排队，而不是各自打开独立的内存库。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.ManagerClientRelation{},
		&models.Unit{},
		&models.Schedule{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{MonthlyScheduleLimit: 1}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.UserRole) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: "password",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createTestUnit(t *testing.T, db *gorm.DB, name, serial string, clientID *uint) *models.Unit {
	t.Helper()

	unit := models.Unit{
		Name:         name,
		SerialNumber: serial,
		Status:       models.UnitStatusOnline,
		Store:        "Downtown Flagship",
		Location:     "Window Display",
		ClientID:     clientID,
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to create unit %s: %v", serial, err)
	}
	return &unit
}

func createTestSchedule(t *testing.T, db *gorm.DB, unitID uint, date string, status models.ScheduleStatus) *models.Schedule {
	t.Helper()

	schedule := models.Schedule{
		UnitID:     unitID,
		PresetID:   "welcome",
		Date:       date,
		Time:       "09:00",
		Recurrence: models.RecurrenceOnce,
		Status:     status,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("failed to create schedule: %v", err)
	}
	return &schedule
}

// newTestScheduleService 返回绑定固定时钟的日程服务，配额窗口由 now 决定
func newTestScheduleService(db *gorm.DB, now time.Time) *ScheduleService {
	cfg := testConfig()
	svc := NewScheduleService(db, cfg, NewUnitService(db, cfg)).(*ScheduleService)
	svc.Now = func() time.Time { return now }
	return svc
}

func actorFor(user *models.User, clientIDs ...uint) Actor {
	return Actor{ID: user.ID, Role: user.Role, ClientIDs: clientIDs}
}

func uintPtr(v uint) *uint {
	return &v
}
