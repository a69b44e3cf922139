package api

import (
	"strconv"

	"ispend/config"
	"ispend/database"
	"ispend/middleware"
	"ispend/models"
	"ispend/repository"
	"ispend/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	ledger *service.Ledger
	stats  *service.StatsService
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(cfg *config.Config) *ExpenseHandler {
	repo := repository.NewExpenseRepo(database.DB)
	return &ExpenseHandler{
		ledger: service.NewLedger(repo, cfg.Database.QueryTimeout),
		stats:  service.NewStatsService(repo, cfg.Database.QueryTimeout),
	}
}

// CreateExpenseRequest 创建消费记录请求
type CreateExpenseRequest struct {
	Title    string  `json:"title" binding:"required" example:"Coffee"`
	Amount   float64 `json:"amount" binding:"required" example:"4.50"`
	Date     string  `json:"date" binding:"required" example:"2024-03-10"`
	Category string  `json:"category" binding:"required" example:"Food"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 记录一笔消费。不做去重，相同内容提交两次会产生两条记录。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	expense, err := h.ledger.Submit(c.Request.Context(), userID, req.Title, req.Amount, date, models.Category(req.Category))
	if err != nil {
		ErrorFrom(c, err, "创建消费记录失败")
		return
	}

	SuccessWithMessage(c, "创建成功", expense)
}

// Recent 获取本月消费记录
// @Summary 获取本月消费记录
// @Description 返回 [to_date 当月 1 号, to_date] 窗口内的消费记录，最新的在前
// @Tags 消费统计
// @Produce json
// @Security BearerAuth
// @Param to_date query string true "截止日期 (2024-03-15)"
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/recent [get]
func (h *ExpenseHandler) Recent(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	toDate, ok := parseDateQuery(c, "to_date")
	if !ok {
		return
	}

	expenses, err := h.stats.Recent(c.Request.Context(), userID, toDate)
	if err != nil {
		ErrorFrom(c, err, "查询失败")
		return
	}

	Success(c, expenses)
}

// History 获取消费历史
// @Summary 获取消费历史
// @Description 返回最近 months 个月各类别按日聚合的消费历史。
// @Description 窗口下界为 to_date 减 months 个日历月，月底减月收缩到短月的最后一天。
// @Tags 消费统计
// @Produce json
// @Security BearerAuth
// @Param to_date query string true "截止日期 (2024-03-31)"
// @Param months query int true "回溯月数，正整数"
// @Success 200 {object} Response{data=[]models.CategoryHistory} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/history [get]
func (h *ExpenseHandler) History(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	toDate, ok := parseDateQuery(c, "to_date")
	if !ok {
		return
	}
	months, err := strconv.Atoi(c.Query("months"))
	if err != nil {
		BadRequest(c, "months 参数必须为整数")
		return
	}

	history, err := h.stats.History(c.Request.Context(), userID, toDate, months)
	if err != nil {
		ErrorFrom(c, err, "查询失败")
		return
	}

	Success(c, history)
}

// MonthStats 获取月度统计
// @Summary 获取月度统计
// @Description 返回 [to_date 当月 1 号, to_date] 窗口内的月总额、各类别小计及金额最大的 top 条明细。
// @Description 月总额和类别小计统计窗口内全部记录，与 top 的取值无关。
// @Tags 消费统计
// @Produce json
// @Security BearerAuth
// @Param to_date query string true "截止日期 (2024-03-15)"
// @Param top query int true "每类别返回的最大明细条数，正整数"
// @Success 200 {object} Response{data=models.MonthlyStats} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/month-stats [get]
func (h *ExpenseHandler) MonthStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	toDate, ok := parseDateQuery(c, "to_date")
	if !ok {
		return
	}
	top, err := strconv.Atoi(c.Query("top"))
	if err != nil {
		BadRequest(c, "top 参数必须为整数")
		return
	}

	stats, err := h.stats.MonthStats(c.Request.Context(), userID, toDate, top)
	if err != nil {
		ErrorFrom(c, err, "查询失败")
		return
	}

	Success(c, stats)
}

// GetCategories 获取消费类别列表
// @Summary 获取消费类别列表
// @Description 返回固定的消费类别集合，提交消费记录时 category 必须取自其中
// @Tags 消费记录
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	Success(c, models.Categories())
}

// parseDateQuery 解析必填的日期 query 参数，失败时直接写 400 响应
func parseDateQuery(c *gin.Context, name string) (models.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		BadRequest(c, name+" 参数必填 (2006-01-02)")
		return models.Date{}, false
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		BadRequest(c, name+" 格式错误，应为: 2006-01-02")
		return models.Date{}, false
	}
	return date, true
}
