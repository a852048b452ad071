package service

import (
	"errors"
	"fmt"

	"ledger/database"
	"ledger/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户注册与认证
// 密码哈希/校验通过 bcrypt 完成，上层只拿到不透明的哈希字符串
type UserService struct{}

// NewUserService 创建用户服务
func NewUserService() *UserService {
	return &UserService{}
}

// Register 注册新用户
// 用户名重复返回 *ConflictError
func (s *UserService) Register(username, password, email string) (*models.User, error) {
	var existing models.User
	err := database.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, &ConflictError{Resource: "username", Message: "用户名已存在"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := models.User{
		Username: username,
		Password: string(hashed),
		Email:    email,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return &user, nil
}

// Authenticate 校验用户名和密码
// 用户不存在与密码错误统一返回 ErrInvalidCredentials
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", username, username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID 按 ID 查询用户
func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// ChangePassword 修改密码，需要校验原密码
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}
	if err := database.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}
