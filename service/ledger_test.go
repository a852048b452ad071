package service

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "color", "sort", "created_at", "updated_at"}).
		AddRow(1, "餐饮", "#ef4444", 10, time.Now(), time.Now())
}

func TestLedgerService_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(1).
		WillReturnRows(categoryRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	detail, err := NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  1,
		Amount:      "99.50",
		Description: "午餐",
		Date:        "2024-01-15",
	})
	require.NoError(t, err)

	// 输入值原样保留
	assert.Equal(t, uint(7), detail.ID)
	assert.Equal(t, uint(1), detail.CategoryID)
	assert.Equal(t, "餐饮", detail.CategoryName)
	assert.Equal(t, "#ef4444", detail.CategoryColor)
	assert.Equal(t, 99.50, detail.Amount)
	assert.Equal(t, "午餐", detail.Description)
	assert.Equal(t, 2024, detail.Date.Year())
	assert.Equal(t, time.January, detail.Date.Month())
	assert.Equal(t, 15, detail.Date.Day())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Create_DefaultDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(1).
		WillReturnRows(categoryRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	detail, err := NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  1,
		Amount:      "10",
		Description: "早餐",
	})
	require.NoError(t, err)

	// 日期缺省为当天
	now := time.Now()
	assert.Equal(t, now.Year(), detail.Date.Year())
	assert.Equal(t, now.Month(), detail.Date.Month())
	assert.Equal(t, now.Day(), detail.Date.Day())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Create_MissingCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// CategoryID 为 0 时不触碰数据库
	_, err := NewLedgerService().Create(1, CreateExpenseInput{
		Amount:      "10",
		Description: "午餐",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Create_UnknownCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color"}))

	_, err := NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  999,
		Amount:      "10",
		Description: "午餐",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Create_InvalidAmount(t *testing.T) {
	// 非法金额一律报 amount 字段错误，且不产生任何写入
	for _, amount := range []string{"", "0", "-5", "abc", "1.2.3"} {
		t.Run("amount="+amount, func(t *testing.T) {
			mock, cleanup := setupMockDB(t)
			defer cleanup()

			mock.ExpectQuery("SELECT .* FROM `categories`").
				WithArgs(1).
				WillReturnRows(categoryRows())

			_, err := NewLedgerService().Create(1, CreateExpenseInput{
				CategoryID:  1,
				Amount:      amount,
				Description: "午餐",
			})
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "amount", vErr.Field)
			// 没有 INSERT 期望，ExpectationsWereMet 能确认未发生写入
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLedgerService_Create_EmptyDescription(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(1).
		WillReturnRows(categoryRows())

	_, err := NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  1,
		Amount:      "10",
		Description: "   ",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "description", vErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Create_ValidationOrder(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 多个字段同时非法时，按 类别 → 金额 → 描述 的顺序报第一个
	_, err := NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  0,
		Amount:      "-1",
		Description: "",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(1).
		WillReturnRows(categoryRows())
	_, err = NewLedgerService().Create(1, CreateExpenseInput{
		CategoryID:  1,
		Amount:      "-1",
		Description: "",
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewLedgerService().Delete(5, 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 记录不存在或属于他人时影响行数为 0，统一返回 ErrNotFound
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WithArgs(9999, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewLedgerService().Delete(9999, 1)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_ListAll(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d1 := time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows([]string{"id", "category_id", "category_name", "category_color", "amount", "description", "date", "created_at"}).
		AddRow(3, 2, "交通", "#3b82f6", 20.00, "打车", d1, time.Now()).
		AddRow(2, 1, "餐饮", "#ef4444", 5.50, "零食", d1, time.Now()).
		AddRow(1, 1, "餐饮", "#ef4444", 10.00, "午餐", d2, time.Now())
	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .*").
		WithArgs(1).
		WillReturnRows(rows)

	list, err := NewLedgerService().ListAll(1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "打车", list[0].Description)
	assert.Equal(t, "零食", list[1].Description)
	assert.Equal(t, "午餐", list[2].Description)
	assert.Equal(t, "#3b82f6", list[0].CategoryColor)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_ListRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .*").
		WithArgs(1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "category_name", "category_color", "amount", "description", "date", "created_at"}).
			AddRow(1, 1, "餐饮", "#ef4444", 10.00, "午餐", d, time.Now()))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)
	list, err := NewLedgerService().ListRange(1, from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "午餐", list[0].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerService_ListAll_Idempotent(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT .* FROM `expenses` JOIN categories .*").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "category_name", "category_color", "amount", "description", "date", "created_at"}).
				AddRow(1, 1, "餐饮", "#ef4444", 10.00, "午餐", time.Now(), time.Now()))
	}

	first, err := NewLedgerService().ListAll(1)
	require.NoError(t, err)
	second, err := NewLedgerService().ListAll(1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NoError(t, mock.ExpectationsWereMet())
}
