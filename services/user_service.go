package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roboquin-http-service/config"
	"roboquin-http-service/models"
	"roboquin-http-service/utils"
)

// InterfaceUserService defines the user directory service interface
type InterfaceUserService interface {
	GetAllUsers() ([]models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	DeleteUser(id uint) error
	VerifyPassword(email, password string) (*models.User, error)
	GetManagedClientIDs(managerID uint) ([]uint, error)
	SetManagedClients(managerID uint, clientIDs []uint) error
	GetActorContext(userID uint) (Actor, error)
}

// UserService 提供用户目录相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllUsers 获取所有用户列表
func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Clients").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// 2 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}

	return &user, nil
}

// 3 GetUserByEmail 根据邮箱获取用户
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}

	return &user, nil
}

// 4 CreateUser 创建新用户
func (s *UserService) CreateUser(user *models.User) error {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return fmt.Errorf("%w: 用户名、邮箱和密码为必填项", ErrValidation)
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleManager && user.Role != models.RoleClient {
		return fmt.Errorf("%w: 不支持的用户角色 %q", ErrValidation, user.Role)
	}

	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: 邮箱已被注册", ErrValidation)
	}

	return s.DB.Create(user).Error
}

// 5 DeleteUser 删除用户，同时清理其监管关系
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager_id = ? OR client_id = ?", id, id).
			Delete(&models.ManagerClientRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// 6 VerifyPassword 校验邮箱和密码，成功则返回用户
func (s *UserService) VerifyPassword(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: 密码错误", ErrValidation)
	}

	return user, nil
}

// 7 GetManagedClientIDs 获取经理监管的客户ID集合
func (s *UserService) GetManagedClientIDs(managerID uint) ([]uint, error) {
	var relations []models.ManagerClientRelation
	if err := s.DB.Where("manager_id = ?", managerID).Find(&relations).Error; err != nil {
		return nil, err
	}

	clientIDs := make([]uint, 0, len(relations))
	for _, relation := range relations {
		clientIDs = append(clientIDs, relation.ClientID)
	}
	return clientIDs, nil
}

// 8 SetManagedClients 重设经理监管的客户集合
func (s *UserService) SetManagedClients(managerID uint, clientIDs []uint) error {
	manager, err := s.GetUserByID(managerID)
	if err != nil {
		return err
	}
	if manager.Role != models.RoleManager {
		return fmt.Errorf("%w: 用户 %d 不是经理角色", ErrValidation, managerID)
	}

	// 每个目标用户都必须是客户角色
	for _, clientID := range clientIDs {
		client, err := s.GetUserByID(clientID)
		if err != nil {
			return err
		}
		if client.Role != models.RoleClient {
			return fmt.Errorf("%w: 用户 %d 不是客户角色", ErrValidation, clientID)
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager_id = ?", managerID).
			Delete(&models.ManagerClientRelation{}).Error; err != nil {
			return err
		}
		for _, clientID := range clientIDs {
			relation := models.ManagerClientRelation{ManagerID: managerID, ClientID: clientID}
			if err := tx.Create(&relation).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// 9 GetActorContext 加载操作者上下文：角色及（经理角色的）监管客户集合
func (s *UserService) GetActorContext(userID uint) (Actor, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return Actor{}, err
	}

	actor := Actor{
		ID:   user.ID,
		Role: user.Role,
	}

	if user.Role == models.RoleManager {
		clientIDs, err := s.GetManagedClientIDs(user.ID)
		if err != nil {
			return Actor{}, err
		}
		actor.ClientIDs = clientIDs
	}

	return actor, nil
}
