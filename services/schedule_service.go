package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"roboquin-http-service/config"
	"roboquin-http-service/models"
)

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
)

// InterfaceScheduleService defines the motion schedule service interface
type InterfaceScheduleService interface {
	ListSchedules(actor Actor) ([]models.Schedule, error)
	GetScheduleByID(actor Actor, id uint) (*models.Schedule, error)
	CreateSchedule(actor Actor, schedule *models.Schedule) error
	UpdateSchedule(actor Actor, id uint, updates map[string]interface{}) (*models.Schedule, error)
	DeleteSchedule(actor Actor, id uint) error
}

// ScheduleService 提供动作日程相关的服务：
// 按角色过滤可见性、校验引用完整性，并对非管理员执行每月配额限制
type ScheduleService struct {
	DB     *gorm.DB
	Config *config.Config

	unitService InterfaceUnitService

	// Now 可注入的时钟，配额按该时钟的当前自然月计算
	Now func() time.Time

	// actorLocks 以操作者ID为粒度串行化"查配额-写入"，
	// 防止同一操作者的并发创建同时通过配额检查
	actorLocks sync.Map
}

// NewScheduleService 创建一个新的日程服务
func NewScheduleService(db *gorm.DB, cfg *config.Config, unitService InterfaceUnitService) InterfaceScheduleService {
	return &ScheduleService{
		DB:          db,
		Config:      cfg,
		unitService: unitService,
		Now:         time.Now,
	}
}

// 1 ListSchedules 获取操作者可见的日程列表。
// 管理员可见全部；经理可见其监管客户名下设备上的日程；客户仅可见自己设备上的日程
func (s *ScheduleService) ListSchedules(actor Actor) ([]models.Schedule, error) {
	var schedules []models.Schedule

	query, empty := s.visibleSchedulesQuery(actor)
	if empty {
		return []models.Schedule{}, nil
	}

	if err := query.Preload("Unit").Order("schedules.id").Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

// 2 GetScheduleByID 根据ID获取日程，操作者必须对日程所在设备可见
func (s *ScheduleService) GetScheduleByID(actor Actor, id uint) (*models.Schedule, error) {
	schedule, unit, err := s.loadScheduleWithUnit(id)
	if err != nil {
		return nil, err
	}

	if !PolicyFor(actor.Role).CanView(actor, unit) {
		return nil, fmt.Errorf("%w: 无权查看该日程", ErrAuthorization)
	}

	return schedule, nil
}

// 3 CreateSchedule 创建新日程：
// 依次校验设备存在、操作者对设备的管理权限、字段合法性，
// 非管理员再检查当月配额。配额检查与写入在同一事务内完成，
// 并以操作者为粒度加锁，保证并发创建不会突破配额
func (s *ScheduleService) CreateSchedule(actor Actor, schedule *models.Schedule) error {
	unit, err := s.unitService.GetUnitByID(schedule.UnitID)
	if err != nil {
		return err
	}

	if !PolicyFor(actor.Role).CanManage(actor, unit) {
		return fmt.Errorf("%w: 无权在该设备上创建日程", ErrAuthorization)
	}

	if err := validateScheduleFields(schedule); err != nil {
		return err
	}

	schedule.Status = models.ScheduleStatusActive
	if schedule.Recurrence == "" {
		schedule.Recurrence = models.RecurrenceOnce
	}

	// 管理员不受配额限制
	if actor.Role == models.RoleAdmin {
		return s.DB.Create(schedule).Error
	}

	lock := s.lockForActor(actor.ID)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		count, err := s.countMonthSchedules(tx, actor)
		if err != nil {
			return err
		}

		limit := s.monthlyLimit()
		if count >= int64(limit) {
			return fmt.Errorf("%w: 当月已有 %d 条日程，上限为 %d", ErrQuotaExceeded, count, limit)
		}

		return tx.Create(schedule).Error
	})
}

// 4 UpdateSchedule 部分更新日程，未提供的字段保持原值。
// 注意：更新不会重新检查月度配额，也不会对变更后的设备重新鉴权，
// 该行为与既有线上表现保持一致
func (s *ScheduleService) UpdateSchedule(actor Actor, id uint, updates map[string]interface{}) (*models.Schedule, error) {
	schedule, unit, err := s.loadScheduleWithUnit(id)
	if err != nil {
		return nil, err
	}

	if !PolicyFor(actor.Role).CanManage(actor, unit) {
		return nil, fmt.Errorf("%w: 无权修改该日程", ErrAuthorization)
	}

	if err := validateScheduleUpdates(schedule, updates); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.DB.Model(schedule).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Schedule
	if err := s.DB.Preload("Unit").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// 5 DeleteSchedule 永久删除日程。重复删除同一ID返回记录不存在，而不是静默成功
func (s *ScheduleService) DeleteSchedule(actor Actor, id uint) error {
	schedule, unit, err := s.loadScheduleWithUnit(id)
	if err != nil {
		return err
	}

	if !PolicyFor(actor.Role).CanManage(actor, unit) {
		return fmt.Errorf("%w: 无权删除该日程", ErrAuthorization)
	}

	return s.DB.Delete(schedule).Error
}

// visibleSchedulesQuery 构造按角色过滤后的日程查询。
// empty 为 true 表示可见集合必然为空，调用方无需真正查询
func (s *ScheduleService) visibleSchedulesQuery(actor Actor) (query *gorm.DB, empty bool) {
	base := s.DB.Model(&models.Schedule{}).
		Joins("JOIN units ON units.id = schedules.unit_id")

	switch actor.Role {
	case models.RoleAdmin:
		return base, false
	case models.RoleManager:
		if len(actor.ClientIDs) == 0 {
			return nil, true
		}
		return base.Where("units.client_id IN ?", actor.ClientIDs), false
	case models.RoleClient:
		return base.Where("units.client_id = ?", actor.ID), false
	default:
		return nil, true
	}
}

// countMonthSchedules 统计操作者可见设备上、日期落在当前自然月内的活跃日程数量。
// 月份窗口在调用时刻求值，而不是按日程自身的日期归属
func (s *ScheduleService) countMonthSchedules(tx *gorm.DB, actor Actor) (int64, error) {
	monthPrefix := s.Now().Format("2006-01")

	query := tx.Model(&models.Schedule{}).
		Joins("JOIN units ON units.id = schedules.unit_id").
		Where("schedules.date LIKE ?", monthPrefix+"-%").
		Where("schedules.status = ?", models.ScheduleStatusActive)

	switch actor.Role {
	case models.RoleManager:
		if len(actor.ClientIDs) == 0 {
			return 0, nil
		}
		query = query.Where("units.client_id IN ?", actor.ClientIDs)
	case models.RoleClient:
		query = query.Where("units.client_id = ?", actor.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// loadScheduleWithUnit 加载日程及其所在设备
func (s *ScheduleService) loadScheduleWithUnit(id uint) (*models.Schedule, *models.Unit, error) {
	var schedule models.Schedule
	if err := s.DB.Preload("Unit").First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: 日程不存在", ErrNotFound)
		}
		return nil, nil, err
	}

	return &schedule, schedule.Unit, nil
}

// lockForActor 返回操作者专属的互斥锁
func (s *ScheduleService) lockForActor(actorID uint) *sync.Mutex {
	lock, _ := s.actorLocks.LoadOrStore(actorID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// monthlyLimit 返回非管理员的月度配额
func (s *ScheduleService) monthlyLimit() int {
	if s.Config != nil && s.Config.MonthlyScheduleLimit > 0 {
		return s.Config.MonthlyScheduleLimit
	}
	return 1
}

// validateScheduleFields 校验创建日程的必填字段和格式
func validateScheduleFields(schedule *models.Schedule) error {
	if schedule.PresetID == "" {
		return fmt.Errorf("%w: 动作预设为必填项", ErrValidation)
	}
	if schedule.Date == "" {
		return fmt.Errorf("%w: 日期为必填项", ErrValidation)
	}
	if _, err := time.Parse(scheduleDateLayout, schedule.Date); err != nil {
		return fmt.Errorf("%w: 日期格式应为 %s", ErrValidation, scheduleDateLayout)
	}
	if schedule.Time == "" {
		return fmt.Errorf("%w: 时间为必填项", ErrValidation)
	}
	if _, err := time.Parse(scheduleTimeLayout, schedule.Time); err != nil {
		return fmt.Errorf("%w: 时间格式应为 %s", ErrValidation, scheduleTimeLayout)
	}
	if schedule.Recurrence != "" && !schedule.Recurrence.IsValid() {
		return fmt.Errorf("%w: 不支持的重复类型 %q", ErrValidation, schedule.Recurrence)
	}
	return nil
}

// validateScheduleUpdates 校验部分更新的字段格式。
// 日程一旦进入终态（completed/cancelled），不允许再变更状态
func validateScheduleUpdates(existing *models.Schedule, updates map[string]interface{}) error {
	if presetID, ok := updates["preset_id"].(string); ok && presetID == "" {
		return fmt.Errorf("%w: 动作预设不能为空", ErrValidation)
	}
	if date, ok := updates["date"].(string); ok {
		if _, err := time.Parse(scheduleDateLayout, date); err != nil {
			return fmt.Errorf("%w: 日期格式应为 %s", ErrValidation, scheduleDateLayout)
		}
	}
	if t, ok := updates["time"].(string); ok {
		if _, err := time.Parse(scheduleTimeLayout, t); err != nil {
			return fmt.Errorf("%w: 时间格式应为 %s", ErrValidation, scheduleTimeLayout)
		}
	}
	if recurrence, ok := updates["recurrence"].(string); ok {
		if !models.RecurrenceType(recurrence).IsValid() {
			return fmt.Errorf("%w: 不支持的重复类型 %q", ErrValidation, recurrence)
		}
	}
	if status, ok := updates["status"]; ok {
		statusValue, isString := status.(string)
		if !isString {
			return fmt.Errorf("%w: 状态必须为字符串", ErrValidation)
		}
		next := models.ScheduleStatus(statusValue)
		if next != models.ScheduleStatusActive && !next.IsTerminal() {
			return fmt.Errorf("%w: 不支持的日程状态 %q", ErrValidation, statusValue)
		}
		if existing.Status.IsTerminal() && next != existing.Status {
			return fmt.Errorf("%w: 日程已处于终态 %q", ErrValidation, existing.Status)
		}
	}
	return nil
}
