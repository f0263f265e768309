// file: services/email_service.go
package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kuznetsova-anastasiia/next-level/config"
)

// Notifier 事务性邮件通知。所有调用点都按"尽力而为"处理：
// 失败只记日志，绝不影响主库写入
type Notifier interface {
	NotifyCreated(email string, number int64, category, songName string, participants []string) error
	NotifyStatusChanged(email string, number int64, oldStatus, newStatus, oldLevel, newLevel string) error
	NotifyCommentAdded(email string, number int64, comment, author string) error
	NotifyPasswordReset(email, token string) error
	NotifyContactMessage(name, fromEmail, message string) error
}

type smtpNotifier struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPNotifier() Notifier {
	return &smtpNotifier{
		addr: config.SMTPHost + ":" + config.SMTPPort,
		auth: smtp.PlainAuth("", config.SMTPUser, config.SMTPPass, config.SMTPHost),
		from: config.MailFrom,
	}
}

func (n *smtpNotifier) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: Next Level Party <" + n.from + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg))
}

func (n *smtpNotifier) NotifyCreated(email string, number int64, category, songName string, participants []string) error {
	subject := fmt.Sprintf("报名确认 #%d - Next Level Party", number)
	body := fmt.Sprintf(
		"你的报名已收到！\n\n报名编号: #%d\n类别: %s\n曲目: %s\n参赛者: %s\n\n审核结果会另行邮件通知。",
		number, category, songName, strings.Join(participants, ", "))
	return n.send(email, subject, body)
}

func (n *smtpNotifier) NotifyStatusChanged(email string, number int64, oldStatus, newStatus, oldLevel, newLevel string) error {
	subject := fmt.Sprintf("报名 #%d 状态更新 - Next Level Party", number)
	var b strings.Builder
	fmt.Fprintf(&b, "你的报名 #%d 有更新：\n\n", number)
	if oldStatus != newStatus {
		fmt.Fprintf(&b, "状态: %s → %s\n", oldStatus, newStatus)
	}
	if oldLevel != newLevel {
		if oldLevel == "" {
			oldLevel = "-"
		}
		if newLevel == "" {
			newLevel = "-"
		}
		fmt.Fprintf(&b, "组别: %s → %s\n", oldLevel, newLevel)
	}
	return n.send(email, subject, b.String())
}

func (n *smtpNotifier) NotifyCommentAdded(email string, number int64, comment, author string) error {
	subject := fmt.Sprintf("报名 #%d 收到新留言 - Next Level Party", number)
	body := fmt.Sprintf("工作人员 %s 给你的报名 #%d 留言：\n\n%s", author, number, comment)
	return n.send(email, subject, body)
}

func (n *smtpNotifier) NotifyPasswordReset(email, token string) error {
	subject := "密码重置 - Next Level Party"
	body := fmt.Sprintf(
		"有人（希望是你本人）请求重置密码。\n\n重置令牌: %s\n\n令牌 1 小时内有效，且只能使用一次。若非本人操作请忽略此邮件。",
		token)
	return n.send(email, subject, body)
}

func (n *smtpNotifier) NotifyContactMessage(name, fromEmail, message string) error {
	subject := fmt.Sprintf("网站留言：%s", name)
	body := fmt.Sprintf("来自 %s <%s>：\n\n%s", name, fromEmail, message)
	return n.send(config.ContactInbox, subject, body)
}
