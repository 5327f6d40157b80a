package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roboquin-http-service/config"
	"roboquin-http-service/models"
)

// InterfaceUnitService defines the unit registry service interface
type InterfaceUnitService interface {
	GetAllUnits() ([]models.Unit, error)
	GetUnitByID(id uint) (*models.Unit, error)
	GetUnitsByClient(clientID uint) ([]models.Unit, error)
	GetVisibleUnits(actor Actor) ([]models.Unit, error)
	CreateUnit(unit *models.Unit) error
	UpdateUnit(id uint, updates map[string]interface{}) (*models.Unit, error)
}

// UnitService 提供人台设备相关的服务
type UnitService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUnitService 创建一个新的设备服务
func NewUnitService(db *gorm.DB, cfg *config.Config) InterfaceUnitService {
	return &UnitService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllUnits 获取所有设备列表
func (s *UnitService) GetAllUnits() ([]models.Unit, error) {
	var units []models.Unit
	if err := s.DB.Preload("Client").Find(&units).Error; err != nil {
		return nil, err
	}

	return units, nil
}

// 2 GetUnitByID 根据ID获取设备
func (s *UnitService) GetUnitByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 设备不存在", ErrNotFound)
		}
		return nil, err
	}

	return &unit, nil
}

// 3 GetUnitsByClient 获取分配给指定客户的设备列表
func (s *UnitService) GetUnitsByClient(clientID uint) ([]models.Unit, error) {
	var units []models.Unit
	if err := s.DB.Where("client_id = ?", clientID).Find(&units).Error; err != nil {
		return nil, err
	}

	return units, nil
}

// 4 GetVisibleUnits 获取操作者可见的设备列表：
// 管理员可见全部；经理可见其监管客户名下的设备；客户仅可见分配给自己的设备
func (s *UnitService) GetVisibleUnits(actor Actor) ([]models.Unit, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.GetAllUnits()
	case models.RoleManager:
		if len(actor.ClientIDs) == 0 {
			return []models.Unit{}, nil
		}
		var units []models.Unit
		if err := s.DB.Where("client_id IN ?", actor.ClientIDs).Find(&units).Error; err != nil {
			return nil, err
		}
		return units, nil
	case models.RoleClient:
		return s.GetUnitsByClient(actor.ID)
	default:
		return []models.Unit{}, nil
	}
}

// 5 CreateUnit 登记新设备
func (s *UnitService) CreateUnit(unit *models.Unit) error {
	if unit.Name == "" || unit.SerialNumber == "" {
		return fmt.Errorf("%w: 设备名称和序列号为必填项", ErrValidation)
	}

	// 验证序列号唯一性
	var count int64
	if err := s.DB.Model(&models.Unit{}).Where("serial_number = ?", unit.SerialNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: 设备序列号已存在", ErrValidation)
	}

	// 设置默认状态
	if unit.Status == "" {
		unit.Status = models.UnitStatusOffline
	}

	return s.DB.Create(unit).Error
}

// 6 UpdateUnit 更新设备基础信息（名称、门店、位置、状态）
func (s *UnitService) UpdateUnit(id uint, updates map[string]interface{}) (*models.Unit, error) {
	unit, err := s.GetUnitByID(id)
	if err != nil {
		return nil, err
	}

	// 分配关系只能通过分配服务变更
	delete(updates, "client_id")

	if err := s.DB.Model(unit).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUnitByID(id)
}
