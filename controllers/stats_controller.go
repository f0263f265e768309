// file: controllers/stats_controller.go
package controllers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/database"
	"github.com/kuznetsova-anastasiia/next-level/models"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

type categoryStat struct {
	Category models.SubmissionCategory `json:"category"`
	Count    int64                     `json:"count"`
}

// GetStats 首页展示用的报名统计
func GetStats(c *gin.Context) {
	// 1. 尝试从 Redis 获取缓存
	const cacheKey = "stats:submissions"
	val, err := database.RDB.Get(database.Ctx, cacheKey).Result()
	if err == nil {
		var cached gin.H
		if json.Unmarshal([]byte(val), &cached) == nil {
			utils.Success(c, "success (from cache)", cached)
			return
		}
	}

	var total int64
	database.DB.Model(&models.Submission{}).Count(&total)

	var accepted int64
	database.DB.Model(&models.Submission{}).Where("status = ?", models.StatusAccepted).Count(&accepted)

	var byCategory []categoryStat
	database.DB.Model(&models.Submission{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&byCategory)

	result := gin.H{
		"total":       total,
		"accepted":    accepted,
		"by_category": byCategory,
	}

	// 2. 缓存未命中则写回 Redis；15 秒有效期，准实时就够了
	if jsonData, err := json.Marshal(result); err == nil {
		database.RDB.Set(database.Ctx, cacheKey, jsonData, 15*time.Second)
	}

	utils.Success(c, "success", result)
}
