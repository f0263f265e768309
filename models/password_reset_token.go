// file: models/password_reset_token.go
package models

import (
	"time"
)

// PasswordResetToken 密码重置令牌；同一用户同时最多存在一个未使用的令牌，
// 签发新令牌时会把旧的全部标记为已使用
type PasswordResetToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"size:64;unique;not null" json:"-"`
	UserID    uint32    `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string {
	return "nextlevel_password_reset_token"
}

// Expired 令牌是否已过期
func (t *PasswordResetToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}
