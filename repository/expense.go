package repository

import (
	"context"

	"ispend/models"

	"gorm.io/gorm"
)

// ExpenseRepo 消费记录存储契约（定义接口，方便测试 Mock）
// 三个读查询都以 (user_id, from, to) 为作用域，上下界均为闭区间；
// 窗口内无记录时返回空结果而不是错误
type ExpenseRepo interface {
	// Insert 追加一条记录并回填生成的 ID，内容允许重复
	Insert(ctx context.Context, expense *models.Expense) error
	// ListInRange 窗口内全部记录，按日期降序，同日按 ID 升序保证结果确定
	ListInRange(ctx context.Context, userID uint, from, to models.Date) ([]models.Expense, error)
	// CategoryDailyTotals 窗口内各类别按日汇总，每类别内按日期升序；
	// 窗口内没有记录的类别不会出现在结果里
	CategoryDailyTotals(ctx context.Context, userID uint, from, to models.Date) (map[models.Category][]models.HistoryPoint, error)
	// TopByCategory 窗口内各类别的总额（统计全部记录，不只前 N 条）
	// 以及金额最大的前 n 条明细；金额相同时按 ID 升序取，属于实现定义的平局规则
	TopByCategory(ctx context.Context, userID uint, from, to models.Date, n int) (map[models.Category]models.CategoryTotals, error)
}

// expenseRepo GORM 实现
type expenseRepo struct {
	db *gorm.DB
}

// NewExpenseRepo 构造函数，数据库连接由外部注入，本层不管理其生命周期
func NewExpenseRepo(db *gorm.DB) ExpenseRepo {
	return &expenseRepo{db: db}
}

// inWindow 统一的窗口过滤条件，expense_date 是 DATE 列，<= to 即包含 to 当天整天
func (r *expenseRepo) inWindow(ctx context.Context, userID uint, from, to models.Date) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ? AND expense_date >= ? AND expense_date <= ?", userID, from, to)
}

func (r *expenseRepo) Insert(ctx context.Context, expense *models.Expense) error {
	// WithContext 确保请求超时能传递到数据库层
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return storageErr("insert", err)
	}
	return nil
}

func (r *expenseRepo) ListInRange(ctx context.Context, userID uint, from, to models.Date) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.inWindow(ctx, userID, from, to).
		Order("expense_date DESC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, storageErr("list_in_range", err)
	}
	return expenses, nil
}

// dailyTotalRow 按日聚合查询的扫描目标
type dailyTotalRow struct {
	Category    models.Category
	ExpenseDate models.Date
	Total       float64
}

func (r *expenseRepo) CategoryDailyTotals(ctx context.Context, userID uint, from, to models.Date) (map[models.Category][]models.HistoryPoint, error) {
	var rows []dailyTotalRow
	if err := r.inWindow(ctx, userID, from, to).
		Select("category, expense_date, SUM(amount) AS total").
		Group("category, expense_date").
		Order("category ASC, expense_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, storageErr("category_daily_totals", err)
	}

	result := make(map[models.Category][]models.HistoryPoint, len(rows))
	for _, row := range rows {
		result[row.Category] = append(result[row.Category], models.HistoryPoint{
			Date:  row.ExpenseDate,
			Total: row.Total,
		})
	}
	return result, nil
}

// categoryTotalRow 类别总额查询的扫描目标
type categoryTotalRow struct {
	Category models.Category
	Total    float64
}

func (r *expenseRepo) TopByCategory(ctx context.Context, userID uint, from, to models.Date, n int) (map[models.Category]models.CategoryTotals, error) {
	// 先 GROUP BY 拿各类别全量总额，再取明细在内存里按类别截断前 n 条；
	// MySQL 没有顺手的 per-group LIMIT 写法，窗口内是单人单月数据，全量拉取可接受
	var totals []categoryTotalRow
	if err := r.inWindow(ctx, userID, from, to).
		Select("category, SUM(amount) AS total").
		Group("category").
		Scan(&totals).Error; err != nil {
		return nil, storageErr("top_by_category", err)
	}

	var expenses []models.Expense
	if err := r.inWindow(ctx, userID, from, to).
		Order("category ASC, amount DESC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, storageErr("top_by_category", err)
	}

	result := make(map[models.Category]models.CategoryTotals, len(totals))
	for _, row := range totals {
		result[row.Category] = models.CategoryTotals{Total: row.Total}
	}
	for _, e := range expenses {
		// 两次查询之间新写入的类别只会出现在明细里，丢弃这种行，
		// 保证返回的每个类别 Total 不小于所列明细之和
		ct, ok := result[e.Category]
		if !ok {
			continue
		}
		if len(ct.TopExpenses) < n {
			ct.TopExpenses = append(ct.TopExpenses, e)
			result[e.Category] = ct
		}
	}
	return result, nil
}
