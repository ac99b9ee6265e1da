package service

import (
	"artshare-backend/config"
	"artshare-backend/internal/util"
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

type EmailService struct {
	smtpHost        string
	smtpPort        int
	username        string
	password        string
	moderationEmail string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost:        config.AppConfig.SMTPHost,
		smtpPort:        config.AppConfig.SMTPPort,
		username:        config.AppConfig.SMTPUsername,
		password:        config.AppConfig.SMTPPassword,
		moderationEmail: config.AppConfig.ModerationEmail,
	}
}

// SendWelcomeEmail 给新注册用户发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, nickname string) {
	subject := "欢迎加入"
	body := fmt.Sprintf(`
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>欢迎，%s！</h2>
		<p>你的账号已经创建成功，现在可以开始发布文章、上传作品并参与讨论了。</p>
		<p><a href="%s">立即开始</a></p>
	</div>
	`, nickname, config.AppConfig.FrontendURL)

	s.sendEmailAsync(email, subject, body)
}

// SendReportAlert 文章举报数达到下架阈值时通知运营邮箱
func (s *EmailService) SendReportAlert(articleID, reportCount int, latestReason string) {
	if s.moderationEmail == "" {
		util.Logger.Warn("未配置运营邮箱，跳过举报告警", zap.Int("article_id", articleID))
		return
	}

	subject := fmt.Sprintf("文章 #%d 因举报被下架", articleID)
	body := fmt.Sprintf(`
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>举报告警</h2>
		<p>文章 <strong>#%d</strong> 的举报数已达到 <strong>%d</strong>，已从所有列表中下架。</p>
		<p>最近一次举报原因：%s</p>
		<p><a href="%s/articles/%d">查看文章</a></p>
	</div>
	`, articleID, reportCount, latestReason, config.AppConfig.FrontendURL, articleID)

	s.sendEmailAsync(s.moderationEmail, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	if err := d.DialAndSend(m); err != nil {
		util.Logger.Error("发送邮件失败", zap.Error(err))
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
