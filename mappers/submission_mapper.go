// file: mappers/submission_mapper.go
package mappers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kuznetsova-anastasiia/next-level/models"
)

// MirrorFields 外部镜像表的一行；json tag 即镜像表的列名
type MirrorFields struct {
	SubmissionNumber int64  `json:"Submission Number,omitempty"`
	Name             string `json:"Name,omitempty"`
	Nickname         string `json:"Nickname,omitempty"`
	Contact          string `json:"Contact,omitempty"`
	Category         string `json:"Category,omitempty"`
	SongName         string `json:"Song Name,omitempty"`
	SongDuration     string `json:"Song Duration,omitempty"`
	VideoLink        string `json:"Video Link,omitempty"`
	// 布尔列不能带 omitempty：false 也必须随 PATCH 送出去覆盖镜像里的旧值
	HasBackdancers          bool   `json:"Has Backdancers"`
	ParticipantsWithEntries string `json:"Participants with Entries,omitempty"`
	HasProps                bool   `json:"Has Props"`
	UsingBackground         bool   `json:"Using Background"`
	Comment                 string `json:"Comment,omitempty"`
	Status                  string `json:"Status,omitempty"`
	Level                   string `json:"Level,omitempty"`
	UserEmail               string `json:"User Email,omitempty"`
	CreatedAt               string `json:"Created At,omitempty"`
	UpdatedAt               string `json:"Updated At,omitempty"`
}

// FormatDuration 把时长编码成镜像表用的 "M:SS"
func FormatDuration(minutes, seconds int) string {
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ParseDuration 解析 "M:SS"；格式不对时返回 0:00
func ParseDuration(s string) (minutes, seconds int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	minutes, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	seconds, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	return minutes, seconds
}

// EncodeParticipants 把参赛者和各自的节目数编码成镜像表的单列文本:
// "Anna (2), Boris (1)"。姓名里含逗号或括号时该编码无法无损还原，
// 镜像表就是这么约定的列格式
func EncodeParticipants(names []string, counts []int) string {
	entries := make([]string, 0, len(names))
	for i, name := range names {
		count := 0
		if i < len(counts) {
			count = counts[i]
		}
		entries = append(entries, fmt.Sprintf("%s (%d)", name, count))
	}
	return strings.Join(entries, ", ")
}

var entryCountRe = regexp.MustCompile(`\((\d+)\)`)

// DecodeParticipants EncodeParticipants 的逆操作；缺少 "(n)" 后缀时节目数记 0
func DecodeParticipants(s string) (names []string, counts []int) {
	for _, part := range strings.Split(s, ", ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(part, " (", 2)[0])
		count := 0
		if m := entryCountRe.FindStringSubmatch(part); m != nil {
			count, _ = strconv.Atoi(m[1])
		}
		names = append(names, name)
		counts = append(counts, count)
	}
	return names, counts
}

// SubmissionToMirrorFields 组装推送到镜像的整行字段
func SubmissionToMirrorFields(s *models.Submission, ownerEmail string) MirrorFields {
	level := ""
	if s.Level != nil {
		level = string(*s.Level)
	}
	return MirrorFields{
		SubmissionNumber:        s.SubmissionNumber,
		Name:                    s.Name,
		Nickname:                s.Nickname,
		Contact:                 s.Contact,
		Category:                string(s.Category),
		SongName:                s.SongName,
		SongDuration:            FormatDuration(s.SongMinutes, s.SongSeconds),
		VideoLink:               s.VideoLink,
		HasBackdancers:          s.HasBackdancers,
		ParticipantsWithEntries: EncodeParticipants(s.Participants, s.ParticipantEntryCounts),
		HasProps:                s.HasProps,
		UsingBackground:         s.UsingBackground,
		Comment:                 s.Comment,
		Status:                  string(s.Status),
		Level:                   level,
		UserEmail:               ownerEmail,
		CreatedAt:               s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:               time.Now().UTC().Format(time.RFC3339),
	}
}

// MirrorFieldsToSubmission 从镜像整行还原本地报名（PullAll 的建档路径）。
// 归属账号由调用方决定
func MirrorFieldsToSubmission(mirrorID string, f MirrorFields) *models.Submission {
	minutes, seconds := ParseDuration(f.SongDuration)
	names, counts := DecodeParticipants(f.ParticipantsWithEntries)

	status := models.SubmissionStatus(f.Status)
	if status == "" {
		status = models.StatusPending
	}
	var level *models.SubmissionLevel
	if f.Level != "" {
		l := models.SubmissionLevel(f.Level)
		level = &l
	}

	id := mirrorID
	sub := &models.Submission{
		SubmissionNumber:       f.SubmissionNumber,
		Name:                   f.Name,
		Nickname:               f.Nickname,
		Contact:                f.Contact,
		Category:               models.SubmissionCategory(f.Category),
		SongName:               f.SongName,
		SongMinutes:            minutes,
		SongSeconds:            seconds,
		VideoLink:              f.VideoLink,
		HasBackdancers:         f.HasBackdancers,
		HasProps:               f.HasProps,
		UsingBackground:        f.UsingBackground,
		Comment:                f.Comment,
		Participants:           names,
		ParticipantEntryCounts: counts,
		Status:                 status,
		Level:                  level,
		MirrorID:               &id,
	}
	if t, err := time.Parse(time.RFC3339, f.CreatedAt); err == nil {
		sub.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, f.UpdatedAt); err == nil {
		sub.UpdatedAt = t
	}
	return sub
}
