package models

import (
	"time"
)

// ScheduleStatus represents the lifecycle status of a motion schedule
type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// IsTerminal 判断状态是否为终态，终态的日程不允许再被改回
func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCancelled
}

// RecurrenceType represents how often a scheduled motion repeats.
// 仅作为描述性元数据存储，本服务不负责展开为具体的执行实例
type RecurrenceType string

const (
	RecurrenceOnce     RecurrenceType = "Once"
	RecurrenceDaily    RecurrenceType = "Daily"
	RecurrenceWeekdays RecurrenceType = "Weekdays"
	RecurrenceWeekly   RecurrenceType = "Weekly"
	RecurrenceMonthly  RecurrenceType = "Monthly"
)

// IsValid 检查是否为受支持的重复类型
func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Schedule represents one scheduled motion routine on a mannequin unit
type Schedule struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UnitID     uint           `gorm:"not null;index" json:"unit_id"`
	PresetID   string         `gorm:"type:varchar(50);not null" json:"preset_id"`  // 动作预设标识，仅校验非空
	Date       string         `gorm:"type:varchar(10);not null;index" json:"date"` // 格式: 2006-01-02
	Time       string         `gorm:"type:varchar(5);not null" json:"time"`        // 格式: 15:04
	Recurrence RecurrenceType `gorm:"type:varchar(20);default:'Once'" json:"recurrence"`
	Status     ScheduleStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
