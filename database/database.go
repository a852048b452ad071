package database

import (
	"fmt"
	"log"

	"ledger/config"
	"ledger/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	logMode := logger.Warn
	if cfg.Server.Mode == "debug" {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	if err := seedCategories(); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// seedCategories 初始化默认消费类别（仅当表为空时）
// 类别为静态参考数据，预置后运行期只读
func seedCategories() error {
	var count int64
	if err := DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("查询类别数量失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Category{
		{Name: "餐饮", Color: "#ef4444", Sort: 10}, // 红色
		{Name: "交通", Color: "#3b82f6", Sort: 20}, // 蓝色
		{Name: "购物", Color: "#a855f7", Sort: 30}, // 紫色
		{Name: "娱乐", Color: "#ec4899", Sort: 40}, // 粉色
		{Name: "医疗", Color: "#10b981", Sort: 50}, // 绿色
		{Name: "教育", Color: "#f59e0b", Sort: 60}, // 橙色
		{Name: "住房", Color: "#14b8a6", Sort: 70}, // 青色
		{Name: "其他", Color: "#64748b", Sort: 80}, // 灰色
	}

	if err := DB.Create(&defaults).Error; err != nil {
		return fmt.Errorf("初始化默认类别失败: %w", err)
	}
	log.Printf("已初始化 %d 个默认消费类别", len(defaults))
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
