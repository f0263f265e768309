// file: utils/token_generator.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateResetToken 生成 64 位十六进制的密码重置令牌（32 字节随机数）
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateTicketID 生成联系表单的短工单号
func GenerateTicketID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)[:12]
}
