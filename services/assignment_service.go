package services

import (
	"fmt"

	"gorm.io/gorm"

	"roboquin-http-service/config"
	"roboquin-http-service/models"
)

// InterfaceAssignmentService defines the unit assignment service interface
type InterfaceAssignmentService interface {
	AssignUnit(unitID uint, clientID *uint) (*models.Unit, error)
	UnassignUnit(unitID uint) (*models.Unit, error)
}

// AssignmentService 负责设备与客户之间归属关系的变更。
// 这里不包含任何配额或日程逻辑，它只是归属关系的唯一变更入口。
type AssignmentService struct {
	DB     *gorm.DB
	Config *config.Config

	unitService InterfaceUnitService
	userService InterfaceUserService
}

// NewAssignmentService 创建一个新的分配服务
func NewAssignmentService(db *gorm.DB, cfg *config.Config, unitService InterfaceUnitService, userService InterfaceUserService) InterfaceAssignmentService {
	return &AssignmentService{
		DB:          db,
		Config:      cfg,
		unitService: unitService,
		userService: userService,
	}
}

// 1 AssignUnit 将设备分配给客户；clientID 为 nil 表示取消分配。
// 校验全部通过之前不会写入任何数据
func (s *AssignmentService) AssignUnit(unitID uint, clientID *uint) (*models.Unit, error) {
	unit, err := s.unitService.GetUnitByID(unitID)
	if err != nil {
		return nil, err
	}

	if clientID != nil {
		user, err := s.userService.GetUserByID(*clientID)
		if err != nil {
			// 目标用户不存在属于参数错误，设备分配状态保持不变
			return nil, fmt.Errorf("%w: 客户 %d 不存在", ErrValidation, *clientID)
		}
		if user.Role != models.RoleClient {
			return nil, fmt.Errorf("%w: 用户 %d 不是客户角色", ErrValidation, *clientID)
		}
	}

	if err := s.DB.Model(unit).Update("client_id", clientID).Error; err != nil {
		return nil, err
	}

	return s.unitService.GetUnitByID(unitID)
}

// 2 UnassignUnit 取消设备的客户分配，等价于 AssignUnit(unitID, nil)
func (s *AssignmentService) UnassignUnit(unitID uint) (*models.Unit, error) {
	return s.AssignUnit(unitID, nil)
}
