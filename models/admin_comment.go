// file: models/admin_comment.go
package models

import (
	"time"
)

// AdminComment 工作人员对报名的备注；创建后不可修改或删除
type AdminComment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	SubmissionID uint64    `gorm:"not null;index" json:"submission_id"`
	AdminID      uint32    `gorm:"not null" json:"admin_id"`
	Admin        *User     `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdminComment) TableName() string {
	return "nextlevel_admin_comment"
}
