// file: config/config.go
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// 全局配置，启动时由 Load() 填充
var (
	DBDSN string

	RedisAddr     string
	RedisPassword string

	JWTSecret []byte

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// 外部镜像表（Airtable 风格的 REST API）
	MirrorBaseURL string
	MirrorAPIKey  string
	MirrorBaseID  string
	MirrorTable   string

	// 本届赛事的联系方式模式: "phone"（旧版，0 开头 10 位手机号）或 "telegram"
	ContactMode string

	// 报名截止时间，RFC3339 格式；为空则不限制
	SubmissionsDeadline time.Time

	// 定时从镜像全量拉取的 cron 表达式；为空则不启动调度器
	ResyncCron string

	// PullAll 从镜像凭空建档时挂靠的兜底账号邮箱
	FallbackCuratorEmail string

	// 联系表单转发到的组织者邮箱
	ContactInbox string
)

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	DBDSN = GetEnv("DB_DSN", "root:123456@tcp(localhost:3306)/nextlevel?charset=utf8mb4&parseTime=True&loc=Local")

	RedisAddr = GetEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = GetEnv("REDIS_PASSWORD", "")

	JWTSecret = []byte(GetEnv("JWT_SECRET", ""))
	if len(JWTSecret) == 0 {
		log.Println("WARNING: JWT_SECRET is not set")
	}

	SMTPHost = GetEnv("SMTP_HOST", "smtp.gmail.com")
	SMTPPort = GetEnv("SMTP_PORT", "587")
	SMTPUser = GetEnv("SMTP_USER", "")
	SMTPPass = GetEnv("SMTP_PASS", "")
	MailFrom = GetEnv("MAIL_FROM", "nextlevel.party.ua@gmail.com")

	MirrorBaseURL = GetEnv("MIRROR_BASE_URL", "https://api.airtable.com/v0")
	MirrorAPIKey = GetEnv("MIRROR_API_KEY", "")
	MirrorBaseID = GetEnv("MIRROR_BASE_ID", "")
	MirrorTable = GetEnv("MIRROR_TABLE_NAME", "Submissions")

	ContactMode = GetEnv("CONTACT_MODE", "telegram")

	if raw := GetEnv("SUBMISSIONS_DEADLINE", ""); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Printf("Invalid SUBMISSIONS_DEADLINE %q: %v", raw, err)
		} else {
			SubmissionsDeadline = t
		}
	}

	ResyncCron = GetEnv("RESYNC_CRON", "")
	FallbackCuratorEmail = GetEnv("FALLBACK_CURATOR_EMAIL", "")
	ContactInbox = GetEnv("CONTACT_INBOX", MailFrom)
}

func GetEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
