// file: controllers/contact_controller.go
package controllers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/dto"
	"github.com/kuznetsova-anastasiia/next-level/services"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// SubmitContactMessage 联系表单转发给组织者邮箱
func SubmitContactMessage(c *gin.Context) {
	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
		utils.Error(c, 1001, "姓名、邮箱和留言内容必填")
		return
	}

	ticketID := utils.GenerateTicketID()
	if err := services.Mail.NotifyContactMessage(req.Name, req.Email, req.Message); err != nil {
		log.Printf("Contact message relay failed (ticket %s): %v", ticketID, err)
		utils.Error(c, 5004, "留言发送失败，请稍后重试")
		return
	}

	utils.Success(c, "Message sent", gin.H{"ticket_id": ticketID})
}
