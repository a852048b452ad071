package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationService_Total(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(35.50))

	total, err := NewAggregationService().Total(1)
	require.NoError(t, err)
	assert.Equal(t, 35.50, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_Total_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 没有任何记录时 COALESCE 保证返回 0 而不是 NULL
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `expenses`").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))

	total, err := NewAggregationService().Total(42)
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_ByCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 数据库按总额倒序返回，无记录的类别不出现
	rows := sqlmock.NewRows([]string{"category_name", "color", "total"}).
		AddRow("交通", "#3b82f6", 20.00).
		AddRow("餐饮", "#ef4444", 15.50)
	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .* GROUP BY .*").
		WithArgs(1).
		WillReturnRows(rows)

	list, err := NewAggregationService().ByCategory(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "交通", list[0].CategoryName)
	assert.Equal(t, 20.00, list[0].Total)
	assert.Equal(t, "餐饮", list[1].CategoryName)
	assert.Equal(t, 15.50, list[1].Total)

	// 各类别之和等于总额
	var sum float64
	for _, c := range list {
		sum += c.Total
	}
	assert.Equal(t, 35.50, sum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_Recent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows([]string{"id", "category_id", "category_name", "category_color", "amount", "description", "date", "created_at"}).
		AddRow(3, 2, "交通", "#3b82f6", 20.00, "打车", d, time.Now()).
		AddRow(2, 1, "餐饮", "#ef4444", 5.50, "零食", d, time.Now())
	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .* LIMIT .*").
		WithArgs(1).
		WillReturnRows(rows)

	list, err := NewAggregationService().Recent(1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 新日期在前，同日按录入时间倒序
	assert.Equal(t, "打车", list[0].Description)
	assert.Equal(t, "零食", list[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_Recent_DefaultLimit(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .*").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "category_name", "category_color", "amount", "description", "date", "created_at"}))

	_, err := NewAggregationService().Recent(1, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_MonthlyTrend(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// SQL 按月份倒序取最近 N 个月
	rows := sqlmock.NewRows([]string{"month", "total"}).
		AddRow("2024-03", 120.00).
		AddRow("2024-02", 80.50).
		AddRow("2023-12", 45.00) // 2024-01 没有消费，缺席而非补零
	mock.ExpectQuery("SELECT DATE_FORMAT\\(date, '%Y-%m'\\) AS month, SUM\\(amount\\) AS total FROM `expenses`").
		WithArgs(1).
		WillReturnRows(rows)

	list, err := NewAggregationService().MonthlyTrend(1, 6)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// 结果反转为时间升序，最近的月份在最后
	assert.Equal(t, "2023-12", list[0].Month)
	assert.Equal(t, "2024-02", list[1].Month)
	assert.Equal(t, "2024-03", list[2].Month)
	assert.Equal(t, 120.00, list[2].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregationService_MonthlyTrend_DefaultMonths(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DATE_FORMAT\\(date, '%Y-%m'\\) AS month, SUM\\(amount\\) AS total FROM `expenses`").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"month", "total"}))

	list, err := NewAggregationService().MonthlyTrend(7, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}
