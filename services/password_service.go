// file: services/password_service.go
package services

import (
	"errors"
	"log"
	"time"

	"github.com/kuznetsova-anastasiia/next-level/models"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// 密码重置令牌的业务错误码
const (
	ErrCodeTokenInvalid  = 2201
	ErrCodeTokenExpired  = 2202
	ErrCodeTokenUsed     = 2203
	ErrCodePasswordShort = 2204
)

const resetTokenTTL = time.Hour
const minPasswordLength = 6

// PasswordService 密码重置流程：签发令牌（同时作废旧令牌）、校验、
// 重置（改密码 + 标记已用在一个事务里）
type PasswordService struct {
	store    AuthStore
	notifier Notifier
}

func NewPasswordService(store AuthStore, notifier Notifier) *PasswordService {
	return &PasswordService{store: store, notifier: notifier}
}

// RequestReset 签发新令牌。账号不存在时静默成功，不向调用方暴露账号是否存在。
// 签发前先把该用户所有未使用的旧令牌标记为已用，保证同时只有一个活令牌
func (s *PasswordService) RequestReset(email string) error {
	user, err := s.store.GetUserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.store.InvalidateResetTokens(user.ID); err != nil {
		return err
	}
	if err := s.store.CreateResetToken(&models.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	// 邮件发送失败不影响令牌签发；用户看到的始终是同一句成功提示
	if err := s.notifier.NotifyPasswordReset(user.Email, token); err != nil {
		log.Printf("Password reset email failed for %s: %v", user.Email, err)
	}
	return nil
}

// ValidateToken 校验令牌是否可用（存在、未过期、未使用）
func (s *PasswordService) ValidateToken(token string) (*models.PasswordResetToken, *ValidationError) {
	t, err := s.store.GetResetToken(token)
	if errors.Is(err, ErrNotFound) {
		return nil, &ValidationError{ErrCodeTokenInvalid, "无效的密码重置令牌"}
	}
	if err != nil {
		return nil, &ValidationError{ErrCodeTokenInvalid, "无效的密码重置令牌"}
	}
	if t.Expired() {
		return nil, &ValidationError{ErrCodeTokenExpired, "密码重置令牌已过期，请重新申请"}
	}
	if t.Used {
		return nil, &ValidationError{ErrCodeTokenUsed, "密码重置令牌已被使用，请重新申请"}
	}
	return t, nil
}

// Reset 用令牌重置密码。改密码和标记令牌已用由存储层在同一事务里提交
func (s *PasswordService) Reset(token, newPassword string) *ValidationError {
	if len(newPassword) < minPasswordLength {
		return &ValidationError{ErrCodePasswordShort, "密码至少 6 个字符"}
	}

	t, verr := s.ValidateToken(token)
	if verr != nil {
		return verr
	}

	if err := s.store.CompleteReset(t.UserID, newPassword, t.ID); err != nil {
		log.Printf("Password reset transaction failed for user %d: %v", t.UserID, err)
		return &ValidationError{ErrCodeTokenInvalid, "密码重置失败，请稍后重试"}
	}
	return nil
}
