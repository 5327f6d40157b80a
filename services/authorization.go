package services

import (
	"roboquin-http-service/models"
)

// Actor 表示一次请求中已经解析完成的操作者上下文。
// 身份认证在外部边界完成，服务层只消费这里的字段，不做任何隐藏查询。
type Actor struct {
	ID   uint            `json:"id"`
	Role models.UserRole `json:"role"`
	// ClientIDs 仅对经理角色有意义：其监管的客户ID集合
	ClientIDs []uint `json:"client_ids,omitempty"`
}

// InterfaceAuthorizationPolicy 定义授权策略接口。
// 按角色的标签变体实现，调用方只依赖该抽象，绝不直接比较角色字符串。
type InterfaceAuthorizationPolicy interface {
	CanView(actor Actor, unit *models.Unit) bool
	CanManage(actor Actor, unit *models.Unit) bool
	HasPermission(actor Actor, permission string) bool
}

// PolicyFor 返回指定角色对应的策略变体
func PolicyFor(role models.UserRole) InterfaceAuthorizationPolicy {
	switch role {
	case models.RoleAdmin:
		return adminPolicy{}
	case models.RoleManager:
		return managerPolicy{}
	case models.RoleClient:
		return clientPolicy{}
	default:
		return denyPolicy{}
	}
}

// 各角色的权限名称表
var rolePermissions = map[models.UserRole][]string{
	models.RoleClient: {
		"view:own-mannequins",
		"view:own-analytics",
		"view:own-settings",
	},
	models.RoleManager: {
		"view:assigned-mannequins",
		"view:assigned-analytics",
		"edit:assigned-mannequins",
		"view:assigned-settings",
	},
}

// adminPolicy 管理员：所有检查无条件通过
type adminPolicy struct{}

func (adminPolicy) CanView(_ Actor, _ *models.Unit) bool   { return true }
func (adminPolicy) CanManage(_ Actor, _ *models.Unit) bool { return true }
func (adminPolicy) HasPermission(_ Actor, _ string) bool   { return true }

// managerPolicy 经理：仅当设备归属其监管客户之一时可见、可管理
type managerPolicy struct{}

func (managerPolicy) CanView(actor Actor, unit *models.Unit) bool {
	if unit == nil || unit.ClientID == nil {
		return false
	}
	for _, clientID := range actor.ClientIDs {
		if clientID == *unit.ClientID {
			return true
		}
	}
	return false
}

func (p managerPolicy) CanManage(actor Actor, unit *models.Unit) bool {
	return p.CanView(actor, unit)
}

func (managerPolicy) HasPermission(_ Actor, permission string) bool {
	return hasRolePermission(models.RoleManager, permission)
}

// clientPolicy 客户：仅当设备分配给自己时可见、可管理
type clientPolicy struct{}

func (clientPolicy) CanView(actor Actor, unit *models.Unit) bool {
	if unit == nil || unit.ClientID == nil {
		return false
	}
	return *unit.ClientID == actor.ID
}

func (p clientPolicy) CanManage(actor Actor, unit *models.Unit) bool {
	return p.CanView(actor, unit)
}

func (clientPolicy) HasPermission(_ Actor, permission string) bool {
	return hasRolePermission(models.RoleClient, permission)
}

// denyPolicy 未知角色：一律拒绝
type denyPolicy struct{}

func (denyPolicy) CanView(_ Actor, _ *models.Unit) bool   { return false }
func (denyPolicy) CanManage(_ Actor, _ *models.Unit) bool { return false }
func (denyPolicy) HasPermission(_ Actor, _ string) bool   { return false }

func hasRolePermission(role models.UserRole, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
