// file: services/submission_store.go
package services

import (
	"database/sql"
	"errors"

	"github.com/kuznetsova-anastasiia/next-level/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModerationUpdate 工作人员对报名的部分更新；Status/Level 为 nil 表示不改动，
// ClearLevel 表示把定级清空
type ModerationUpdate struct {
	Status     *models.SubmissionStatus
	Level      *models.SubmissionLevel
	ClearLevel bool
}

// SubmissionStore 报名主库的读写面；同步协调器和控制器都只经过这里
type SubmissionStore interface {
	Create(sub *models.Submission) error
	GetByID(id uint64) (*models.Submission, error)
	GetByMirrorID(mirrorID string) (*models.Submission, error)
	ListByUser(userID uint32) ([]models.Submission, error)
	ListAll() ([]models.Submission, error)
	CountByUser(userID uint32) (int64, error)
	UpdateModeration(id uint64, upd ModerationUpdate) (*models.Submission, error)
	SetMirrorID(id uint64, mirrorID string) error
	NextSequence() (int64, error)
	GetUser(id uint32) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

// AuthStore 密码重置流程用到的读写面
type AuthStore interface {
	GetUserByEmail(email string) (*models.User, error)
	InvalidateResetTokens(userID uint32) error
	CreateResetToken(t *models.PasswordResetToken) error
	GetResetToken(token string) (*models.PasswordResetToken, error)
	// CompleteReset 改密码 + 标记令牌已用，必须在同一事务里提交或回滚
	CompleteReset(userID uint32, newPassword string, tokenID uint64) error
}

var ErrNotFound = errors.New("record not found")

// GormStore SubmissionStore 和 AuthStore 的 GORM/MySQL 实现
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(sub *models.Submission) error {
	return s.db.Create(sub).Error
}

func (s *GormStore) GetByID(id uint64) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Comments.Admin").
		First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) GetByMirrorID(mirrorID string) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Where("mirror_id = ?", mirrorID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) ListByUser(userID uint32) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (s *GormStore) ListAll() ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Comments.Admin").
		Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (s *GormStore) CountByUser(userID uint32) (int64, error) {
	var count int64
	err := s.db.Model(&models.Submission{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *GormStore) UpdateModeration(id uint64, upd ModerationUpdate) (*models.Submission, error) {
	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.ClearLevel {
		fields["level"] = nil
	} else if upd.Level != nil {
		fields["level"] = *upd.Level
	}

	var sub models.Submission
	if err := s.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// 只改给定字段；updated_at 无论如何都刷新
	if len(fields) > 0 {
		if err := s.db.Model(&sub).Updates(fields).Error; err != nil {
			return nil, err
		}
	} else {
		if err := s.db.Model(&sub).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *GormStore) SetMirrorID(id uint64, mirrorID string) error {
	return s.db.Model(&models.Submission{}).Where("id = ?", id).
		Update("mirror_id", mirrorID).Error
}

// NextSequence 发放下一个报名编号。计数器行用行锁 + 原子自增，
// 首次使用时从已有最大编号初始化
func (s *GormStore) NextSequence() (int64, error) {
	var value int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var counter models.SequenceCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, models.CounterRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var max sql.NullInt64
			if err := tx.Model(&models.Submission{}).
				Select("MAX(submission_number)").Scan(&max).Error; err != nil {
				return err
			}
			counter = models.SequenceCounter{ID: models.CounterRowID, Value: max.Int64 + 1}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
			value = counter.Value
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&counter).Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}
		value = counter.Value + 1
		return nil
	})
	return value, err
}

func (s *GormStore) GetUser(id uint32) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) InvalidateResetTokens(userID uint32) error {
	return s.db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

func (s *GormStore) CreateResetToken(t *models.PasswordResetToken) error {
	return s.db.Create(t).Error
}

func (s *GormStore) GetResetToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := s.db.Where("token = ?", token).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) CompleteReset(userID uint32, newPassword string, tokenID uint64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.Password = newPassword // BeforeSave 钩子负责哈希
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Model(&models.PasswordResetToken{}).Where("id = ?", tokenID).
			Update("used", true).Error
	})
}
