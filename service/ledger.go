package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledger/database"
	"ledger/models"

	"gorm.io/gorm"
)

// LedgerService 消费记录读写服务
// 所有操作都以显式的 userID 为参数，所有权校验在本层完成，不依赖会话等环境状态
type LedgerService struct{}

// NewLedgerService 创建消费记录服务
func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// CreateExpenseInput 创建消费记录的输入
type CreateExpenseInput struct {
	CategoryID  uint   // 必填，必须指向已存在的类别
	Amount      string // 必须解析为正数金额
	Description string // 必填，非空
	Date        string // 格式 2006-01-02，留空默认今天
}

// ExpenseDetail 消费记录及其类别信息，供展示层直接使用
type ExpenseDetail struct {
	ID            uint      `json:"id"`
	CategoryID    uint      `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

// Create 创建一条消费记录
// 校验顺序固定为 类别 → 金额 → 描述 → 日期，返回第一个失败字段的 *ValidationError；
// 校验全部通过后才写库，校验失败不产生任何写入
func (s *LedgerService) Create(userID uint, input CreateExpenseInput) (*ExpenseDetail, error) {
	// 类别必须存在（预置的参考数据）
	if input.CategoryID == 0 {
		return nil, &ValidationError{Field: "category", Message: "必须选择类别"}
	}
	var category models.Category
	if err := database.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "category", Message: "无效的消费类别"}
		}
		return nil, fmt.Errorf("查询类别失败: %w", err)
	}

	// 金额必须为正数
	amountStr := strings.TrimSpace(input.Amount)
	if amountStr == "" {
		return nil, &ValidationError{Field: "amount", Message: "必须提供金额"}
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "金额必须为正数"}
	}

	// 描述非空
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, &ValidationError{Field: "description", Message: "必须提供描述"}
	}

	// 日期留空默认今天
	var date time.Time
	if strings.TrimSpace(input.Date) == "" {
		now := time.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	} else {
		date, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(input.Date), time.Local)
		if err != nil {
			return nil, &ValidationError{Field: "date", Message: "日期格式错误，应为: 2006-01-02"}
		}
	}

	expense := models.Expense{
		UserID:      userID,
		CategoryID:  category.ID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("创建消费记录失败: %w", err)
	}

	return &ExpenseDetail{
		ID:            expense.ID,
		CategoryID:    category.ID,
		CategoryName:  category.Name,
		CategoryColor: category.Color,
		Amount:        expense.Amount,
		Description:   expense.Description,
		Date:          expense.Date,
		CreatedAt:     expense.CreatedAt,
	}, nil
}

// Delete 删除一条消费记录（物理删除）
// id 与 userID 在一条语句中同时匹配，记录不存在与不属于当前用户统一返回 ErrNotFound
func (s *LedgerService) Delete(expenseID, userID uint) error {
	result := database.DB.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("删除消费记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll 返回用户的全部消费记录（含类别名称和颜色）
// 按消费日期倒序，同一天按录入时间倒序
func (s *LedgerService) ListAll(userID uint) ([]ExpenseDetail, error) {
	var list []ExpenseDetail
	if err := expenseDetailQuery(userID).Scan(&list).Error; err != nil {
		return nil, fmt.Errorf("查询消费记录失败: %w", err)
	}
	return list, nil
}

// ListRange 返回日期范围内的消费记录（含类别信息），排序与 ListAll 一致
// 供导出等按时间段读取的场景使用
func (s *LedgerService) ListRange(userID uint, from, to time.Time) ([]ExpenseDetail, error) {
	var list []ExpenseDetail
	err := expenseDetailQuery(userID).
		Where("expenses.date >= ? AND expenses.date <= ?", from, to).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("查询消费记录失败: %w", err)
	}
	return list, nil
}

// expenseDetailQuery 构建带类别信息的消费记录查询，供列表和最近记录共用
func expenseDetailQuery(userID uint) *gorm.DB {
	return database.DB.Model(&models.Expense{}).
		Select("expenses.id, expenses.category_id, categories.name AS category_name, categories.color AS category_color, expenses.amount, expenses.description, expenses.date, expenses.created_at").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", userID).
		Order("expenses.date DESC, expenses.created_at DESC")
}
