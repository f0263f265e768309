// file: main.go
package main

import (
	"log"

	"github.com/kuznetsova-anastasiia/next-level/config"
	"github.com/kuznetsova-anastasiia/next-level/database"
	"github.com/kuznetsova-anastasiia/next-level/routes"
	"github.com/kuznetsova-anastasiia/next-level/services"
)

func main() {
	config.Load()

	database.Connect()
	database.MigrateTables()
	database.InitRedis()

	services.Init(database.DB)

	// 定时镜像对账（RESYNC_CRON 为空则不启动）
	if c := services.StartResyncScheduler(config.ResyncCron); c != nil {
		defer c.Stop()
	}

	r := routes.SetupRouter()

	port := config.GetEnv("PORT", "8080")
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
