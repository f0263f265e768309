// file: services/sync_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/kuznetsova-anastasiia/next-level/mappers"
	"github.com/kuznetsova-anastasiia/next-level/models"
)

// SyncService 主库与外部镜像表之间的双向同步协调器。
// 主库是报名创建和内容字段的权威来源；status/level 被工作人员
// 直接在镜像表里改过时，以最后读到的一侧为准（last-write-wins）。
// 所有同步都是尽力而为：触发它的主操作不会因为同步失败而失败
type SyncService struct {
	store                SubmissionStore
	mirror               MirrorClient
	fallbackCuratorEmail string
}

func NewSyncService(store SubmissionStore, mirror MirrorClient, fallbackCuratorEmail string) *SyncService {
	return &SyncService{store: store, mirror: mirror, fallbackCuratorEmail: fallbackCuratorEmail}
}

// PushToMirror 把一份报名整行推到镜像表。未镜像过则新建并回填镜像 id，
// 否则按已存 id 更新——重复调用只会产生一条镜像记录
func (s *SyncService) PushToMirror(submissionID uint64) (string, error) {
	sub, err := s.store.GetByID(submissionID)
	if err != nil {
		return "", err
	}

	ownerEmail := ""
	if sub.User != nil {
		ownerEmail = sub.User.Email
	}
	fields := mappers.SubmissionToMirrorFields(sub, ownerEmail)

	if sub.MirrorID != nil {
		if err := s.mirror.Update(*sub.MirrorID, fields); err != nil {
			return "", err
		}
		return *sub.MirrorID, nil
	}

	mirrorID, err := s.mirror.Create(fields)
	if err != nil {
		return "", err
	}
	if err := s.store.SetMirrorID(sub.ID, mirrorID); err != nil {
		return "", err
	}
	return mirrorID, nil
}

// PullStatus 从镜像读回一条记录的 status/level，与本地不同时直接覆盖本地
func (s *SyncService) PullStatus(mirrorID string) (*models.Submission, error) {
	rec, err := s.mirror.Get(mirrorID)
	if err != nil {
		return nil, err
	}

	local, err := s.store.GetByMirrorID(mirrorID)
	if err != nil {
		return nil, err
	}

	upd, changed := moderationDiff(local, rec.Fields)
	if !changed {
		return local, nil
	}
	return s.store.UpdateModeration(local.ID, upd)
}

// PullAll 遍历镜像全表逐条对账：本地有则覆盖 status/level，
// 本地没有则按镜像字段凭空建档（灾备路径，也是镜像唯一能产生主库记录的地方）。
// 返回处理成功的条数
func (s *SyncService) PullAll() (int, error) {
	records, err := s.mirror.ListAll()
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, rec := range records {
		local, err := s.store.GetByMirrorID(rec.ID)
		switch {
		case err == nil:
			upd, changed := moderationDiff(local, rec.Fields)
			if changed {
				if _, err := s.store.UpdateModeration(local.ID, upd); err != nil {
					log.Printf("PullAll: failed to update submission %d from mirror %s: %v", local.ID, rec.ID, err)
					continue
				}
			}
			synced++
		case errors.Is(err, ErrNotFound):
			if err := s.createFromMirror(rec); err != nil {
				log.Printf("PullAll: failed to create submission from mirror %s: %v", rec.ID, err)
				continue
			}
			synced++
		default:
			log.Printf("PullAll: lookup failed for mirror %s: %v", rec.ID, err)
		}
	}
	return synced, nil
}

func (s *SyncService) createFromMirror(rec MirrorRecord) error {
	sub := mappers.MirrorFieldsToSubmission(rec.ID, rec.Fields)

	// 镜像里的行没有本地归属人，挂到配置的兜底账号上
	owner, err := s.store.GetUserByEmail(s.fallbackCuratorEmail)
	if err != nil {
		return fmt.Errorf("fallback curator %q not found: %w", s.fallbackCuratorEmail, err)
	}
	sub.UserID = owner.ID

	return s.store.Create(sub)
}

// Reconcile 读路径上的单条对账：镜像可达且 status/level 有变化时覆盖本地，
// 否则原样返回。任何失败都只记日志，不影响读请求
func (s *SyncService) Reconcile(sub *models.Submission) *models.Submission {
	if sub.MirrorID == nil {
		return sub
	}

	rec, err := s.mirror.Get(*sub.MirrorID)
	if err != nil {
		log.Printf("Reconcile: mirror read failed for submission %d: %v", sub.ID, err)
		return sub
	}

	upd, changed := moderationDiff(sub, rec.Fields)
	if !changed {
		return sub
	}
	updated, err := s.store.UpdateModeration(sub.ID, upd)
	if err != nil {
		log.Printf("Reconcile: local overwrite failed for submission %d: %v", sub.ID, err)
		return sub
	}
	return updated
}

// moderationDiff 对比本地与镜像的 status/level，产出覆盖本地所需的部分更新
func moderationDiff(local *models.Submission, f mappers.MirrorFields) (ModerationUpdate, bool) {
	var upd ModerationUpdate
	changed := false

	if f.Status != "" && models.SubmissionStatus(f.Status) != local.Status {
		status := models.SubmissionStatus(f.Status)
		upd.Status = &status
		changed = true
	}

	localLevel := ""
	if local.Level != nil {
		localLevel = string(*local.Level)
	}
	if f.Level != localLevel {
		if f.Level == "" {
			upd.ClearLevel = true
		} else {
			level := models.SubmissionLevel(f.Level)
			upd.Level = &level
		}
		changed = true
	}

	return upd, changed
}
