// file: models/submission.go
package models

import (
	"time"
)

type SubmissionCategory string
type SubmissionStatus string
type SubmissionLevel string

const (
	CategorySolo     SubmissionCategory = "solo"
	CategorySoloPlus SubmissionCategory = "solo+"
	CategoryDuoTrio  SubmissionCategory = "duo/trio"
	CategoryTeam     SubmissionCategory = "team"
	CategoryUnformat SubmissionCategory = "unformat"
	CategoryOffstage SubmissionCategory = "out-of-competition"

	StatusPending  SubmissionStatus = "pending"
	StatusPayment  SubmissionStatus = "payment"
	StatusAccepted SubmissionStatus = "accepted"
	StatusRejected SubmissionStatus = "rejected"

	LevelNew    SubmissionLevel = "new"
	LevelMiddle SubmissionLevel = "middle"
	LevelPro    SubmissionLevel = "pro"
)

// 每个类别的最少参赛人数；上限统一为 MaxParticipants
var CategoryMinParticipants = map[SubmissionCategory]int{
	CategorySolo:     1,
	CategorySoloPlus: 1,
	CategoryDuoTrio:  2,
	CategoryTeam:     4,
	CategoryUnformat: 1,
	CategoryOffstage: 1,
}

const MaxParticipants = 10

// 同一参赛者全场最多出现在 4 个节目里
const MaxEntriesPerParticipant = 4

// 单个账号最多持有 4 份报名
const MaxSubmissionsPerUser = 4

// Submission 一份参赛报名。status/level 由工作人员随意改写，
// 不做状态机限制：后台和镜像表里都会直接纠错。
type Submission struct {
	ID               uint64             `gorm:"primarykey" json:"id"`
	SubmissionNumber int64              `gorm:"unique;not null" json:"submission_number"`
	UserID           uint32             `gorm:"not null" json:"user_id"`
	User             *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name             string             `gorm:"size:100;not null" json:"name"`
	Nickname         string             `gorm:"size:100;not null" json:"nickname"`
	Contact          string             `gorm:"size:100;not null" json:"contact"`
	Category         SubmissionCategory `gorm:"type:enum('solo','solo+','duo/trio','team','unformat','out-of-competition');not null" json:"category"`
	SongName         string             `gorm:"size:200;not null" json:"song_name"`
	SongMinutes      int                `gorm:"not null" json:"song_minutes"`
	SongSeconds      int                `gorm:"not null" json:"song_seconds"`
	VideoLink        string             `gorm:"size:500;not null" json:"video_link"`
	HasBackdancers   bool               `json:"has_backdancers"`
	HasProps         bool               `json:"has_props"`
	UsingBackground  bool               `json:"using_background"`
	Comment          string             `gorm:"type:text" json:"comment,omitempty"`

	// 参赛者姓名与各自的节目数；两个数组等长（或为空）
	Participants           []string `gorm:"serializer:json;type:text" json:"participants"`
	ParticipantEntryCounts []int    `gorm:"serializer:json;type:text" json:"participant_entry_counts"`

	Status SubmissionStatus `gorm:"type:enum('pending','payment','accepted','rejected');not null;default:'pending'" json:"status"`
	Level  *SubmissionLevel `gorm:"type:enum('new','middle','pro')" json:"level"`

	// 首次推送到外部镜像后回填；为空表示尚未镜像
	MirrorID *string `gorm:"size:50;unique" json:"mirror_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Comments  []AdminComment `gorm:"foreignKey:SubmissionID" json:"admin_comments,omitempty"`
}

func (Submission) TableName() string {
	return "nextlevel_submission"
}
