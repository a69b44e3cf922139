package service

import (
	"context"
	"time"

	"ispend/models"
	"ispend/repository"
)

// Ledger 消费记录写入服务：校验、规范化后写入存储层
type Ledger struct {
	repo    repository.ExpenseRepo
	timeout time.Duration
}

// NewLedger 构造函数，timeout 为单次存储调用的上限
func NewLedger(repo repository.ExpenseRepo, timeout time.Duration) *Ledger {
	return &Ledger{repo: repo, timeout: timeout}
}

// Submit 记录一笔消费并返回持久化后的完整记录（含生成的 ID）
// 不做去重：相同内容提交两次会产生两条独立记录
func (l *Ledger) Submit(ctx context.Context, userID uint, title string, amount float64, date models.Date, category models.Category) (models.Expense, error) {
	if !category.Valid() {
		return models.Expense{}, validationErr("category", "未知的消费类别: "+string(category))
	}

	expense := models.Expense{
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Category:    category,
		ExpenseDate: models.DateOf(date.Time), // 消费日期只保留日历日
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if err := l.repo.Insert(ctx, &expense); err != nil {
		return models.Expense{}, err
	}
	return expense, nil
}
