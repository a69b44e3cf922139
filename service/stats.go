package service

import (
	"context"
	"sort"
	"time"

	"ispend/models"
	"ispend/repository"
)

// StatsService 统计聚合引擎
// 每次调用都是对存储层的全量查询，无缓存、无跨调用状态；
// 并发写入下结果是查询发起时刻的尽力一致视图，不保证快照隔离
type StatsService struct {
	repo    repository.ExpenseRepo
	timeout time.Duration
}

// NewStatsService 构造函数，timeout 为单次存储调用的上限
func NewStatsService(repo repository.ExpenseRepo, timeout time.Duration) *StatsService {
	return &StatsService{repo: repo, timeout: timeout}
}

// Recent 本月到 toDate 为止的消费记录，最新的在前
// 窗口为 [toDate 当月 1 号, toDate]，闭区间
func (s *StatsService) Recent(ctx context.Context, userID uint, toDate models.Date) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.ListInRange(ctx, userID, toDate.FirstOfMonth(), toDate)
}

// History 最近 months 个月各类别按日聚合的消费历史
// 窗口为 [toDate 减 months 个日历月, toDate]，月底减月按短月收缩
func (s *StatsService) History(ctx context.Context, userID uint, toDate models.Date, months int) ([]models.CategoryHistory, error) {
	if months <= 0 {
		return nil, validationErr("months", "必须为正整数")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	buckets, err := s.repo.CategoryDailyTotals(ctx, userID, toDate.AddMonths(-months), toDate)
	if err != nil {
		return nil, err
	}

	history := make([]models.CategoryHistory, 0, len(buckets))
	for category, points := range buckets {
		// 存储层的排序当作尽力而为，这里重排一次兜底日期升序的契约
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date.Time)
		})
		history = append(history, models.CategoryHistory{
			CategoryName: category,
			History:      points,
		})
	}
	// 类别按名称升序，保证输出可复现
	sort.Slice(history, func(i, j int) bool {
		return history[i].CategoryName < history[j].CategoryName
	})
	return history, nil
}

// MonthStats 本月到 toDate 为止的统计：月总额 + 各类别小计与金额最大的 top 条明细
// 月总额统计窗口内全部记录，与 top 的取值无关
func (s *StatsService) MonthStats(ctx context.Context, userID uint, toDate models.Date, top int) (models.MonthlyStats, error) {
	if top <= 0 {
		return models.MonthlyStats{}, validationErr("top", "必须为正整数")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	byCategory, err := s.repo.TopByCategory(ctx, userID, toDate.FirstOfMonth(), toDate, top)
	if err != nil {
		return models.MonthlyStats{}, err
	}

	stats := models.MonthlyStats{
		CategoryStats: make([]models.CategoryStats, 0, len(byCategory)),
	}
	for category, totals := range byCategory {
		stats.MonthTotal += totals.Total
		expenses := totals.TopExpenses
		if expenses == nil {
			expenses = []models.Expense{}
		}
		stats.CategoryStats = append(stats.CategoryStats, models.CategoryStats{
			CategoryName: category,
			Total:        totals.Total,
			ExpenseList:  expenses,
		})
	}
	sort.Slice(stats.CategoryStats, func(i, j int) bool {
		return stats.CategoryStats[i].CategoryName < stats.CategoryStats[j].CategoryName
	})
	return stats, nil
}
