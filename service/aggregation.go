package service

import (
	"fmt"

	"ledger/database"
	"ledger/models"
)

const (
	// DefaultRecentLimit 最近消费记录默认条数
	DefaultRecentLimit = 10
	// DefaultTrendMonths 月度趋势默认统计月数
	DefaultTrendMonths = 6
)

// AggregationService 消费统计服务
// 只读查询，汇总计算全部下推给数据库（SUM/GROUP BY），不在应用层累加整行数据
type AggregationService struct{}

// NewAggregationService 创建消费统计服务
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// CategoryTotal 按类别汇总的消费金额
type CategoryTotal struct {
	CategoryName string  `json:"category_name"`
	Color        string  `json:"color"`
	Total        float64 `json:"total"`
}

// MonthTotal 按月汇总的消费金额
type MonthTotal struct {
	Month string  `json:"month"` // 格式 YYYY-MM
	Total float64 `json:"total"`
}

// Total 用户全部消费总额，无记录时返回 0 而非 NULL
func (s *AggregationService) Total(userID uint) (float64, error) {
	var total float64
	err := database.DB.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("统计消费总额失败: %w", err)
	}
	return total, nil
}

// ByCategory 按类别汇总消费金额，按总额倒序
// 没有消费记录的类别不出现在结果中
func (s *AggregationService) ByCategory(userID uint) ([]CategoryTotal, error) {
	var list []CategoryTotal
	err := database.DB.Model(&models.Expense{}).
		Select("categories.name AS category_name, categories.color AS color, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", userID).
		Group("categories.id, categories.name, categories.color").
		Order("total DESC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("按类别统计失败: %w", err)
	}
	return list, nil
}

// Recent 最近的消费记录，排序与 ListAll 一致，limit 不合法时取默认值
func (s *AggregationService) Recent(userID uint, limit int) ([]ExpenseDetail, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var list []ExpenseDetail
	if err := expenseDetailQuery(userID).Limit(limit).Scan(&list).Error; err != nil {
		return nil, fmt.Errorf("查询最近消费记录失败: %w", err)
	}
	return list, nil
}

// MonthlyTrend 最近 months 个有消费记录的月份的支出趋势
// SQL 按月份倒序取最近 N 个月，再在内存中反转为时间升序便于展示；
// 没有任何消费的月份直接缺席，不做零值填充
func (s *AggregationService) MonthlyTrend(userID uint, months int) ([]MonthTotal, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	var list []MonthTotal
	err := database.DB.Model(&models.Expense{}).
		Select("DATE_FORMAT(date, '%Y-%m') AS month, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("month").
		Order("month DESC").
		Limit(months).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("按月统计失败: %w", err)
	}

	// 反转为时间升序，最近的月份在最后
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}
