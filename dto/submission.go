// file: dto/submission.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateSubmissionReq struct {
	// 规范字段（snake_case）
	Name                   string   `json:"name"`
	Nickname               string   `json:"nickname"`
	Contact                string   `json:"contact"`
	Category               string   `json:"category"`
	SongName               string   `json:"song_name"`
	SongMinutes            int      `json:"song_minutes"`
	SongSeconds            int      `json:"song_seconds"`
	VideoLink              string   `json:"video_link"`
	HasBackdancers         bool     `json:"has_backdancers"`
	Participants           []string `json:"participants"`
	ParticipantEntryCounts []int    `json:"participant_entry_counts"`
	HasProps               bool     `json:"has_props"`
	UsingBackground        bool     `json:"using_background"`
	Comment                string   `json:"comment"`

	// 仅用于兼容旧客户端（camelCase / 历史字段名），别名不与上面的 tag 重复
	SongNameCamel        string `json:"songName"`
	SongMinutesCamel     int    `json:"songMinutes"`
	SongSecondsCamel     int    `json:"songSeconds"`
	VideoLinkCamel       string `json:"videoLink"`
	YoutubeLinkLegacy    string `json:"youtubeLink"`
	PhoneNumberLegacy    string `json:"phoneNumber"`
	HasBackdancersCamel  bool   `json:"hasBackdancers"`
	EntryCountsLegacy    []int  `json:"participantSubmissionNumbers"`
	HasPropsCamel        bool   `json:"hasProps"`
	UsingBackgroundCamel bool   `json:"usingBackground"`
}

// Normalize 将 camelCase 别名归一化到 snake_case，并做轻量清洗
func (r *CreateSubmissionReq) Normalize() {
	if r.SongName == "" && r.SongNameCamel != "" {
		r.SongName = r.SongNameCamel
	}
	if r.SongMinutes == 0 && r.SongMinutesCamel != 0 {
		r.SongMinutes = r.SongMinutesCamel
	}
	if r.SongSeconds == 0 && r.SongSecondsCamel != 0 {
		r.SongSeconds = r.SongSecondsCamel
	}
	if r.VideoLink == "" {
		if r.VideoLinkCamel != "" {
			r.VideoLink = r.VideoLinkCamel
		} else if r.YoutubeLinkLegacy != "" {
			r.VideoLink = r.YoutubeLinkLegacy
		}
	}
	if r.Contact == "" && r.PhoneNumberLegacy != "" {
		r.Contact = r.PhoneNumberLegacy
	}
	if !r.HasBackdancers && r.HasBackdancersCamel {
		r.HasBackdancers = true
	}
	if len(r.ParticipantEntryCounts) == 0 && len(r.EntryCountsLegacy) != 0 {
		r.ParticipantEntryCounts = r.EntryCountsLegacy
	}
	if !r.HasProps && r.HasPropsCamel {
		r.HasProps = true
	}
	if !r.UsingBackground && r.UsingBackgroundCamel {
		r.UsingBackground = true
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Nickname = strings.TrimSpace(r.Nickname)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.SongName = strings.TrimSpace(r.SongName)
	r.VideoLink = strings.TrimSpace(r.VideoLink)
	for i, p := range r.Participants {
		r.Participants[i] = strings.TrimSpace(p)
	}
}

type UpdateSubmissionReq struct {
	// 两个字段都是可选；Level 传空字符串表示清空定级
	Status *string `json:"status"`
	Level  *string `json:"level"`
}

type CreateCommentReq struct {
	SubmissionID uint64 `json:"submission_id"`
	Content      string `json:"content"`
}

type SyncActionReq struct {
	Action       string `json:"action"` // sync_all / sync_submission / sync_status
	SubmissionID uint64 `json:"submission_id"`
	MirrorID     string `json:"mirror_id"`
}

type ContactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
