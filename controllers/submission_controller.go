// file: controllers/submission_controller.go
package controllers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/config"
	"github.com/kuznetsova-anastasiia/next-level/dto"
	"github.com/kuznetsova-anastasiia/next-level/models"
	"github.com/kuznetsova-anastasiia/next-level/services"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// CreateSubmission 报名创建主流程：校验 → 发编号 → 入主库 →
// 邮件确认（尽力）→ 推送镜像（尽力）。后两步失败绝不回滚主库写入
func CreateSubmission(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.CreateSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	existingCount, err := services.Store.CountByUser(userID)
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	if verr := services.ValidateSubmission(&req, existingCount, config.ContactMode,
		config.SubmissionsDeadline, time.Now()); verr != nil {
		utils.Error(c, verr.Code, verr.Msg)
		return
	}

	submission := models.Submission{
		SubmissionNumber:       services.Counter.NextNumber(),
		UserID:                 userID,
		Name:                   req.Name,
		Nickname:               req.Nickname,
		Contact:                req.Contact,
		Category:               models.SubmissionCategory(req.Category),
		SongName:               req.SongName,
		SongMinutes:            req.SongMinutes,
		SongSeconds:            req.SongSeconds,
		VideoLink:              req.VideoLink,
		HasBackdancers:         req.HasBackdancers,
		HasProps:               req.HasProps,
		UsingBackground:        req.UsingBackground,
		Comment:                req.Comment,
		Participants:           req.Participants,
		ParticipantEntryCounts: req.ParticipantEntryCounts,
		Status:                 models.StatusPending,
	}
	if err := services.Store.Create(&submission); err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	if user, err := services.Store.GetUser(userID); err == nil {
		if err := services.Mail.NotifyCreated(user.Email, submission.SubmissionNumber,
			string(submission.Category), submission.SongName, submission.Participants); err != nil {
			log.Printf("Confirmation email failed for submission #%d: %v", submission.SubmissionNumber, err)
		}
	}

	if _, err := services.Sync.PushToMirror(submission.ID); err != nil {
		log.Printf("Mirror push failed for submission #%d: %v", submission.SubmissionNumber, err)
	}

	utils.Success(c, "Submission created successfully", gin.H{
		"submission":        submission,
		"submission_number": submission.SubmissionNumber,
	})
}

// GetMySubmissions 查询自己的报名，逐条与镜像对账后返回（对账失败不影响响应）
func GetMySubmissions(c *gin.Context) {
	userID := currentUserID(c)

	subs, err := services.Store.ListByUser(userID)
	if err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	for i := range subs {
		subs[i] = *services.Sync.Reconcile(&subs[i])
	}

	utils.Success(c, "success", gin.H{"submissions": subs})
}
