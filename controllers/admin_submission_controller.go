// file: controllers/admin_submission_controller.go
package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/database"
	"github.com/kuznetsova-anastasiia/next-level/dto"
	"github.com/kuznetsova-anastasiia/next-level/models"
	"github.com/kuznetsova-anastasiia/next-level/services"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// --- 仅管理员可访问的接口 ---

func AdminGetSubmissions(c *gin.Context) {
	subs, err := services.Store.ListAll()
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "success", gin.H{"submissions": subs})
}

func AdminGetSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 1002, "无效的报名ID")
		return
	}

	sub, err := services.Store.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(c, 4004, "报名不存在")
		return
	}
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}
	utils.Success(c, "success", gin.H{"submission": sub})
}

// AdminUpdateSubmission 工作人员改报名的 status/level。只更新给定字段；
// status 和 level 互不影响，任意取值都允许（后台就是用来纠错的）。
// 真的改了值才发通知，然后把新状态推回镜像
func AdminUpdateSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 1002, "无效的报名ID")
		return
	}

	var req dto.UpdateSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	current, err := services.Store.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(c, 4004, "报名不存在")
		return
	}
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	var upd services.ModerationUpdate
	if req.Status != nil {
		status := models.SubmissionStatus(*req.Status)
		switch status {
		case models.StatusPending, models.StatusPayment, models.StatusAccepted, models.StatusRejected:
			upd.Status = &status
		default:
			utils.Error(c, 1001, "无效的状态")
			return
		}
	}
	if req.Level != nil {
		if *req.Level == "" {
			upd.ClearLevel = true
		} else {
			level := models.SubmissionLevel(*req.Level)
			switch level {
			case models.LevelNew, models.LevelMiddle, models.LevelPro:
				upd.Level = &level
			default:
				utils.Error(c, 1001, "无效的组别")
				return
			}
		}
	}

	updated, err := services.Store.UpdateModeration(id, upd)
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	oldLevel, newLevel := levelString(current.Level), levelString(updated.Level)
	if current.Status != updated.Status || oldLevel != newLevel {
		if current.User != nil {
			if err := services.Mail.NotifyStatusChanged(current.User.Email, current.SubmissionNumber,
				string(current.Status), string(updated.Status), oldLevel, newLevel); err != nil {
				log.Printf("Status update email failed for submission #%d: %v", current.SubmissionNumber, err)
			}
		}
		if _, err := services.Sync.PushToMirror(id); err != nil {
			log.Printf("Mirror push failed for submission #%d: %v", current.SubmissionNumber, err)
		}
	}

	utils.Success(c, "Submission updated", gin.H{"submission": updated})
}

// AdminAddComment 工作人员留言；作者取自登录态（已过管理员角色校验），
// 留言创建后不可改不可删
func AdminAddComment(c *gin.Context) {
	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SubmissionID == 0 || req.Content == "" {
		utils.Error(c, 1001, "报名ID和留言内容必填")
		return
	}

	sub, err := services.Store.GetByID(req.SubmissionID)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(c, 4004, "报名不存在")
		return
	}
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	adminID := currentUserID(c)
	comment := models.AdminComment{
		SubmissionID: req.SubmissionID,
		AdminID:      adminID,
		Content:      req.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	var admin models.User
	if err := database.DB.First(&admin, adminID).Error; err == nil {
		comment.Admin = &admin
		if sub.User != nil {
			if err := services.Mail.NotifyCommentAdded(sub.User.Email, sub.SubmissionNumber,
				req.Content, admin.Username); err != nil {
				log.Printf("Comment notification email failed for submission #%d: %v", sub.SubmissionNumber, err)
			}
		}
	}

	utils.Success(c, "Comment added successfully", gin.H{"comment": comment})
}

func levelString(level *models.SubmissionLevel) string {
	if level == nil {
		return ""
	}
	return string(*level)
}
