package service

import (
	"fmt"
	"strings"

	"ispend/config"
	"ispend/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendMonthlyReport 发送月度消费报告邮件
// month 为报告月份标签（如 2024-03），stats 为该月统计结果
func (s *EmailService) SendMonthlyReport(toEmail, displayName, month string, stats models.MonthlyStats) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := fmt.Sprintf("【iSpend】%s 月度消费报告", month)
	body := s.generateMonthlyReportBody(displayName, month, stats)

	return s.sendEmail(toEmail, subject, body)
}

// generateMonthlyReportBody 生成月度报告邮件内容
func (s *EmailService) generateMonthlyReportBody(displayName, month string, stats models.MonthlyStats) string {
	var rows strings.Builder
	for _, cs := range stats.CategoryStats {
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td class="cat">%s</td>
                <td class="num">%.2f</td>
                <td>`, cs.CategoryName, cs.Total))
		for i, e := range cs.ExpenseList {
			if i > 0 {
				rows.WriteString("<br>")
			}
			rows.WriteString(fmt.Sprintf("%s（%.2f）", e.Title, e.Amount))
		}
		rows.WriteString(`</td>
            </tr>`)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .total-box { background: linear-gradient(135deg, #eff6ff, #dbeafe); border: 2px dashed #2563eb; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .total { font-size: 36px; font-weight: bold; color: #1d4ed8; font-family: 'Courier New', monospace; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        th { background: #f8f9fa; text-align: left; padding: 10px; border-bottom: 2px solid #e5e7eb; color: #374151; }
        td { padding: 10px; border-bottom: 1px solid #e5e7eb; color: #333; font-size: 14px; }
        td.cat { font-weight: 600; }
        td.num { font-family: 'Courier New', monospace; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 iSpend</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>这是您 <strong>%s</strong> 的消费报告，本月累计支出：</p>
            <div class="total-box">
                <span class="total">%.2f</span>
            </div>
            <table>
                <tr><th>类别</th><th>小计</th><th>最大支出</th></tr>%s
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© iSpend - 您的个人消费管理助手</p>
        </div>
    </div>
</body>
</html>
`, displayName, month, stats.MonthTotal, rows.String())
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【iSpend】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— iSpend</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
