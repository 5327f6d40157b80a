package models

import (
	"time"
)

// UnitStatus represents the operational status of a mannequin unit
type UnitStatus string

const (
	UnitStatusOnline      UnitStatus = "online"
	UnitStatusOffline     UnitStatus = "offline"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// Unit represents a networked mannequin display unit
type Unit struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(50);not null" json:"name"`
	SerialNumber string     `gorm:"type:varchar(50);unique;not null" json:"serial_number"`
	Status       UnitStatus `gorm:"type:varchar(20);default:'offline'" json:"status"`
	Store        string     `gorm:"type:varchar(100)" json:"store"`
	Location     string     `gorm:"type:varchar(100)" json:"location"`
	// ClientID 为空表示设备未分配给任何客户
	ClientID  *uint     `gorm:"index" json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Client    *User      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Schedules []Schedule `gorm:"foreignKey:UnitID" json:"schedules,omitempty"`
}
