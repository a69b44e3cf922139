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

// MonthlyReportMailer 报告邮件发送方，方便测试替换真实 SMTP
type MonthlyReportMailer interface {
	SendMonthlyReport(toEmail, displayName, month string, stats models.MonthlyStats) error
}

// ReportHandler 月度报告处理器
type ReportHandler struct {
	cfg    *config.Config
	stats  *service.StatsService
	users  repository.UserRepo
	mailer MonthlyReportMailer
}

// NewReportHandler 创建月度报告处理器
func NewReportHandler(cfg *config.Config) *ReportHandler {
	stats := service.NewStatsService(repository.NewExpenseRepo(database.DB), cfg.Database.QueryTimeout)
	return NewReportHandlerWith(cfg, stats, repository.NewUserRepo(database.DB), service.NewEmailService(&cfg.Email))
}

// NewReportHandlerWith 注入依赖的构造函数
func NewReportHandlerWith(cfg *config.Config, stats *service.StatsService, users repository.UserRepo, mailer MonthlyReportMailer) *ReportHandler {
	return &ReportHandler{
		cfg:    cfg,
		stats:  stats,
		users:  users,
		mailer: mailer,
	}
}

// SendMonthlyReport 发送月度消费报告邮件
// @Summary 发送月度消费报告邮件
// @Description 汇总 [to_date 当月 1 号, to_date] 窗口的统计并发送到账号邮箱。
// @Description 账号没有邮箱或邮件服务未启用时返回 400。
// @Tags 报告
// @Produce json
// @Security BearerAuth
// @Param to_date query string true "截止日期 (2024-03-31)"
// @Param top query int true "每类别列出的最大支出条数，正整数"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误或邮件不可用"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reports/email [post]
func (h *ReportHandler) SendMonthlyReport(c *gin.Context) {
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

	if !h.cfg.Email.Enabled {
		BadRequest(c, "邮件服务未启用")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}
	if user == nil {
		NotFound(c, "用户不存在")
		return
	}
	if user.Email == "" {
		BadRequest(c, "当前账号未设置邮箱")
		return
	}

	stats, err := h.stats.MonthStats(c.Request.Context(), userID, toDate, top)
	if err != nil {
		ErrorFrom(c, err, "统计失败")
		return
	}

	month := toDate.Format("2006-01")
	if err := h.mailer.SendMonthlyReport(user.Email, user.DisplayName, month, stats); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送邮件失败"))
		return
	}

	SuccessWithMessage(c, "报告已发送", gin.H{"to": user.Email, "month": month})
}
