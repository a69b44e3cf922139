package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ispend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func expenseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "category", "expense_date", "created_at", "updated_at"})
}

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpenseRepo_Insert(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	repo := NewExpenseRepo(db)
	expense := &models.Expense{
		UserID:      1,
		Title:       "Coffee",
		Amount:      4.5,
		Category:    models.CategoryFood,
		ExpenseDate: day("2024-03-10"),
	}
	require.NoError(t, repo.Insert(context.Background(), expense))
	// 回填自增 ID
	assert.Equal(t, uint(7), expense.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_Insert_StorageError(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	repo := NewExpenseRepo(db)
	err := repo.Insert(context.Background(), &models.Expense{
		UserID: 1, Title: "Coffee", Amount: 4.5,
		Category: models.CategoryFood, ExpenseDate: day("2024-03-10"),
	})
	require.Error(t, err)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "insert", se.Op)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListInRange(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	from, to := day("2024-03-01"), day("2024-03-15")
	// 除了 SQL 形状，还钉住传进存储层的窗口边界本身
	mock.ExpectQuery("SELECT .* FROM `expenses` WHERE user_id = .* AND expense_date >= .* AND expense_date <= .* ORDER BY expense_date DESC, id ASC").
		WithArgs(uint(1), from, to).
		WillReturnRows(expenseRows().
			AddRow(2, 1, "Dinner", 32.0, "Food", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), now, now).
			AddRow(1, 1, "Coffee", 4.5, "Food", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), now, now))

	repo := NewExpenseRepo(db)
	expenses, err := repo.ListInRange(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Dinner", expenses[0].Title)
	assert.Equal(t, "2024-03-12", expenses[0].ExpenseDate.String())
	assert.Equal(t, models.CategoryFood, expenses[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_ListInRange_Empty(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(uint(1), day("2024-03-01"), day("2024-03-15")).
		WillReturnRows(expenseRows())

	repo := NewExpenseRepo(db)
	expenses, err := repo.ListInRange(context.Background(), 1, day("2024-03-01"), day("2024-03-15"))
	// 空窗口是正常结果，不是错误
	require.NoError(t, err)
	assert.Empty(t, expenses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_CategoryDailyTotals(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT category, expense_date, SUM\\(amount\\) AS total FROM `expenses` WHERE .* GROUP BY .* ORDER BY category ASC, expense_date ASC").
		WithArgs(uint(1), day("2024-02-01"), day("2024-03-15")).
		WillReturnRows(sqlmock.NewRows([]string{"category", "expense_date", "total"}).
			AddRow("Food", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 36.5).
			AddRow("Food", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), 12.0).
			AddRow("Home", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 99.9))

	repo := NewExpenseRepo(db)
	buckets, err := repo.CategoryDailyTotals(context.Background(), 1, day("2024-02-01"), day("2024-03-15"))
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	food := buckets[models.CategoryFood]
	require.Len(t, food, 2)
	assert.Equal(t, "2024-03-10", food[0].Date.String())
	assert.Equal(t, 36.5, food[0].Total)
	assert.Equal(t, "2024-03-12", food[1].Date.String())

	home := buckets[models.CategoryHome]
	require.Len(t, home, 1)
	assert.Equal(t, 99.9, home[0].Total)

	// 窗口内没有记录的类别不出现
	_, present := buckets[models.CategoryCar]
	assert.False(t, present)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_TopByCategory(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	from, to := day("2024-03-01"), day("2024-03-15")

	// 先查各类别全量总额
	mock.ExpectQuery("SELECT category, SUM\\(amount\\) AS total FROM `expenses` WHERE .* GROUP BY `category`").
		WithArgs(uint(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("Food", 150.0).
			AddRow("Car", 80.0))

	// 再查明细，按 category ASC, amount DESC, id ASC
	mock.ExpectQuery("SELECT .* FROM `expenses` WHERE .* ORDER BY category ASC, amount DESC, id ASC").
		WithArgs(uint(1), from, to).
		WillReturnRows(expenseRows().
			AddRow(5, 1, "Gas", 80.0, "Car", d, now, now).
			AddRow(3, 1, "Steak", 70.0, "Food", d, now, now).
			AddRow(1, 1, "Pizza", 50.0, "Food", d, now, now).
			AddRow(2, 1, "Coffee", 20.0, "Food", d, now, now).
			AddRow(4, 1, "Snack", 10.0, "Food", d, now, now))

	repo := NewExpenseRepo(db)
	result, err := repo.TopByCategory(context.Background(), 1, day("2024-03-01"), day("2024-03-15"), 2)
	require.NoError(t, err)
	require.Len(t, result, 2)

	food := result[models.CategoryFood]
	// 小计统计全部 4 条，明细只取最大的 2 条
	assert.Equal(t, 150.0, food.Total)
	require.Len(t, food.TopExpenses, 2)
	assert.Equal(t, "Steak", food.TopExpenses[0].Title)
	assert.Equal(t, "Pizza", food.TopExpenses[1].Title)

	car := result[models.CategoryCar]
	assert.Equal(t, 80.0, car.Total)
	require.Len(t, car.TopExpenses, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_TopByCategory_SkipsCategoryMissingFromTotals(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// 总额查询之后、明细查询之前并发写入了一条 Hobbies，
	// 明细里多出的类别必须被丢弃，而不是凭空造出 Total=0 的条目
	mock.ExpectQuery("SELECT category, SUM\\(amount\\) AS total FROM `expenses` WHERE .* GROUP BY `category`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("Food", 50.0))
	mock.ExpectQuery("SELECT .* FROM `expenses` WHERE .* ORDER BY category ASC, amount DESC, id ASC").
		WillReturnRows(expenseRows().
			AddRow(1, 1, "Pizza", 50.0, "Food", d, now, now).
			AddRow(9, 1, "Lego", 30.0, "Hobbies", d, now, now))

	repo := NewExpenseRepo(db)
	result, err := repo.TopByCategory(context.Background(), 1, day("2024-03-01"), day("2024-03-15"), 2)
	require.NoError(t, err)
	require.Len(t, result, 1)

	food := result[models.CategoryFood]
	assert.Equal(t, 50.0, food.Total)
	require.Len(t, food.TopExpenses, 1)

	_, present := result[models.CategoryHobbies]
	assert.False(t, present)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_TopByCategory_StorageError(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT category, SUM\\(amount\\) AS total FROM `expenses`").
		WillReturnError(errors.New("server has gone away"))

	repo := NewExpenseRepo(db)
	_, err := repo.TopByCategory(context.Background(), 1, day("2024-03-01"), day("2024-03-15"), 3)
	require.Error(t, err)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	require.NoError(t, mock.ExpectationsWereMet())
}
