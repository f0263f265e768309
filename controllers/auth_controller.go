// file: controllers/auth_controller.go
package controllers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/kuznetsova-anastasiia/next-level/database"
	"github.com/kuznetsova-anastasiia/next-level/models"
	"github.com/kuznetsova-anastasiia/next-level/services"
	"github.com/kuznetsova-anastasiia/next-level/utils"
)

// 用户名只允许小写字母和数字
var usernameRe = regexp.MustCompile(`^[a-z0-9]+$`)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	if !usernameRe.MatchString(req.Username) {
		utils.Error(c, 2001, "用户名只能包含小写字母和数字")
		return
	}
	if len(req.Username) < 3 {
		utils.Error(c, 2001, "用户名至少 3 个字符")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&user).Error; err == nil {
		utils.Error(c, 2002, "用户名或邮箱已被注册")
		return
	}

	newUser := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"email":    newUser.Email,
		"role":     newUser.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, 2003, "用户不存在或密码错误")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2003, "用户不存在或密码错误")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "邮箱地址必填")
		return
	}

	if err := services.Password.RequestReset(req.Email); err != nil {
		utils.Error(c, 5000, "服务器内部错误")
		return
	}

	// 无论账号是否存在都返回同一句话，避免探测注册邮箱
	utils.Success(c, "如果该邮箱对应的账号存在，我们已发送密码重置邮件", nil)
}

func ValidateResetToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "令牌必填")
		return
	}

	if _, verr := services.Password.ValidateToken(req.Token); verr != nil {
		utils.Error(c, verr.Code, verr.Msg)
		return
	}
	utils.Success(c, "Token is valid", nil)
}

func ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "令牌和新密码必填")
		return
	}

	if verr := services.Password.Reset(req.Token, req.Password); verr != nil {
		utils.Error(c, verr.Code, verr.Msg)
		return
	}
	utils.Success(c, "密码已重置", nil)
}

// --- 需要登录的接口 ---

// currentUserID 取出登录中间件放进上下文的用户 ID
func currentUserID(c *gin.Context) uint32 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint32); ok {
			return id
		}
	}
	return 0
}

// GetMe 从主库重新读取当前账号的角色和资料，而不是信任客户端缓存
func GetMe(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	utils.Success(c, "success", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
