// file: controllers/sync_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/dto"
	"github.com/kuznetsova-anastasiia/next-level/services"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// SyncAction 显式同步入口。平时同步都是写路径上顺带做的，
// 这里给工作人员一个手动对账的口子
func SyncAction(c *gin.Context) {
	var req dto.SyncActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	switch req.Action {
	case "sync_all":
		count, err := services.Sync.PullAll()
		if err != nil {
			utils.Error(c, 5003, "镜像对账失败: "+err.Error())
			return
		}
		utils.Success(c, "Mirror resync finished", gin.H{"synced_count": count})

	case "sync_submission":
		if req.SubmissionID == 0 {
			utils.Error(c, 1001, "sync_submission 需要 submission_id")
			return
		}
		mirrorID, err := services.Sync.PushToMirror(req.SubmissionID)
		if err != nil {
			utils.Error(c, 5003, "推送镜像失败: "+err.Error())
			return
		}
		utils.Success(c, "Submission pushed to mirror", gin.H{"mirror_id": mirrorID})

	case "sync_status":
		if req.MirrorID == "" {
			utils.Error(c, 1001, "sync_status 需要 mirror_id")
			return
		}
		sub, err := services.Sync.PullStatus(req.MirrorID)
		if err != nil {
			utils.Error(c, 5003, "读取镜像状态失败: "+err.Error())
			return
		}
		utils.Success(c, "Status pulled from mirror", gin.H{"submission": sub})

	default:
		utils.Error(c, 1001, "无效的 action，可选: sync_all / sync_submission / sync_status")
	}
}

func GetSyncInfo(c *gin.Context) {
	utils.Success(c, "Sync API is running", gin.H{
		"available_actions": []string{"sync_all", "sync_submission", "sync_status"},
	})
}
