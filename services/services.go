// file: services/services.go
package services

import (
	"github.com/kuznetsova-anastasiia/next-level/config"
	"gorm.io/gorm"
)

// 控制器使用的服务实例，启动时由 Init 装配
var (
	Store    SubmissionStore
	Counter  *CounterService
	Sync     *SyncService
	Password *PasswordService
	Mail     Notifier
)

func Init(db *gorm.DB) {
	store := NewGormStore(db)
	Store = store
	Counter = NewCounterService(store)
	Mail = NewSMTPNotifier()
	Sync = NewSyncService(store, NewAirtableMirror(), config.FallbackCuratorEmail)
	Password = NewPasswordService(store, Mail)
}
