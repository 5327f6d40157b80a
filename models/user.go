package models

import (
	"time"

	"gorm.io/gorm"

	"roboquin-http-service/utils"
)

// UserRole represents the role of a system user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleClient  UserRole = "client"
)

// User represents system users: administrators, store managers and clients
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);unique;not null" json:"email"`
	Role      UserRole  `gorm:"type:varchar(20);not null" json:"role"` // admin, manager, client
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`   // Password not exposed in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系 - 经理通过关系表管理的客户列表
	Clients []User `gorm:"many2many:manager_client_relations;joinForeignKey:ManagerID;joinReferences:ClientID" json:"clients,omitempty"`
	// 分配给客户的设备列表
	Units []Unit `gorm:"foreignKey:ClientID" json:"units,omitempty"`
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
