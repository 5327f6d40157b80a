package models

import "time"

// ManagerClientRelation 表示经理和客户之间的多对多监管关系
type ManagerClientRelation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ManagerID uint      `gorm:"not null;index" json:"manager_id"` // 经理ID
	ClientID  uint      `gorm:"not null;index" json:"client_id"`  // 客户ID
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Manager *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Client  *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
