// file: services/validation_service.go
package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kuznetsova-anastasiia/next-level/dto"
	"github.com/kuznetsova-anastasiia/next-level/models"
)

// ValidationError 带业务错误码的校验失败原因，直接作为响应返回给用户
type ValidationError struct {
	Code int
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// 校验失败的业务错误码
const (
	ErrCodeMissingField        = 2101
	ErrCodeBadContactFormat    = 2102
	ErrCodeBadCategory         = 2103
	ErrCodeBadVideoLink        = 2104
	ErrCodeBadDuration         = 2105
	ErrCodeTooFewParticipants  = 2106
	ErrCodeTooManyParticipants = 2107
	ErrCodeBadEntryCount       = 2108
	ErrCodeArrayMismatch       = 2109
	ErrCodeQuotaExceeded       = 2110
	ErrCodeSubmissionsClosed   = 2111
)

var (
	// 旧版：0 开头的 10 位本地手机号
	phoneRe = regexp.MustCompile(`^0\d{9}$`)
	// 当前版：Telegram @用户名 或 t.me / telegram.me 链接
	telegramHandleRe = regexp.MustCompile(`^@[a-zA-Z0-9_]{5,32}$`)
	telegramLinkRe   = regexp.MustCompile(`^(https?://)?(t\.me|telegram\.me)/[a-zA-Z0-9_]{5,32}/?$`)

	youtubeRe = regexp.MustCompile(`^https://(www\.)?youtube\.com/watch\?v=.+`)
	shortYtRe = regexp.MustCompile(`^https://youtu\.be/.+`)
	driveRe   = regexp.MustCompile(`^https://(drive|docs)\.google\.com/.+`)
)

// ValidateContact 按本届赛事的联系方式模式校验
func ValidateContact(contact, mode string) bool {
	if mode == "phone" {
		return phoneRe.MatchString(contact)
	}
	return telegramHandleRe.MatchString(contact) || telegramLinkRe.MatchString(contact)
}

// ValidateVideoLink 节目视频链接：YouTube 或 Google Drive
func ValidateVideoLink(link string) bool {
	return youtubeRe.MatchString(link) || shortYtRe.MatchString(link) || driveRe.MatchString(link)
}

// ValidateSubmission 报名表单的全部校验规则。纯函数：现有报名数由调用方查好传入，
// deadline 为零值表示不限报名时间。按固定顺序逐条检查，返回第一个失败原因
func ValidateSubmission(req *dto.CreateSubmissionReq, existingCount int64, contactMode string, deadline, now time.Time) *ValidationError {
	if !deadline.IsZero() && now.After(deadline) {
		return &ValidationError{ErrCodeSubmissionsClosed, "报名已截止"}
	}

	if req.Name == "" || req.Nickname == "" || req.Contact == "" || req.Category == "" ||
		req.SongName == "" || req.VideoLink == "" {
		return &ValidationError{ErrCodeMissingField, "必填字段不能为空"}
	}

	if !ValidateContact(req.Contact, contactMode) {
		if contactMode == "phone" {
			return &ValidationError{ErrCodeBadContactFormat, "手机号格式应为 0 开头的 10 位数字，例如 0971856972"}
		}
		return &ValidationError{ErrCodeBadContactFormat, "联系方式应为 Telegram 用户名（@name）或 t.me 链接"}
	}

	category := models.SubmissionCategory(req.Category)
	minParticipants, ok := models.CategoryMinParticipants[category]
	if !ok {
		return &ValidationError{ErrCodeBadCategory, "无效的参赛类别"}
	}

	if !ValidateVideoLink(req.VideoLink) {
		return &ValidationError{ErrCodeBadVideoLink, "视频链接应为 YouTube（https://www.youtube.com/watch?v=...）或 Google Drive 链接"}
	}

	if req.SongMinutes < 0 || req.SongSeconds < 0 || req.SongSeconds >= 60 {
		return &ValidationError{ErrCodeBadDuration, "无效的歌曲时长"}
	}

	if len(req.Participants) < minParticipants {
		return &ValidationError{ErrCodeTooFewParticipants,
			fmt.Sprintf("该类别至少需要 %d 名参赛者", minParticipants)}
	}
	if len(req.Participants) > models.MaxParticipants {
		return &ValidationError{ErrCodeTooManyParticipants,
			fmt.Sprintf("参赛者最多 %d 人", models.MaxParticipants)}
	}

	for _, n := range req.ParticipantEntryCounts {
		if n < 0 || n > models.MaxEntriesPerParticipant {
			return &ValidationError{ErrCodeBadEntryCount,
				fmt.Sprintf("单个参赛者的节目数不能超过 %d", models.MaxEntriesPerParticipant)}
		}
	}

	if len(req.ParticipantEntryCounts) != 0 && len(req.ParticipantEntryCounts) != len(req.Participants) {
		return &ValidationError{ErrCodeArrayMismatch, "参赛者节目数列表必须与参赛者名单一一对应"}
	}

	if existingCount >= models.MaxSubmissionsPerUser {
		return &ValidationError{ErrCodeQuotaExceeded,
			fmt.Sprintf("每个账号最多提交 %d 份报名", models.MaxSubmissionsPerUser)}
	}

	return nil
}
