// file: services/resync_scheduler.go
package services

import (
	"log"

	"github.com/robfig/cron/v3"
)

// StartResyncScheduler 按配置的 cron 表达式定期从镜像全量对账。
// 表达式为空表示不启用，返回 nil
func StartResyncScheduler(spec string) *cron.Cron {
	if spec == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("Scheduler tick: running mirror resync")
		count, err := Sync.PullAll()
		if err != nil {
			log.Printf("Scheduled mirror resync failed: %v", err)
			return
		}
		log.Printf("Scheduled mirror resync done, %d records synced", count)
	})
	if err != nil {
		log.Printf("Invalid RESYNC_CRON %q: %v", spec, err)
		return nil
	}

	c.Start()
	log.Printf("Mirror resync scheduler started with spec %q", spec)
	return c
}
