// file: services/sync_service_test.go
package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kuznetsova-anastasiia/next-level/mappers"
	"github.com/kuznetsova-anastasiia/next-level/models"
)

// --- 测试用的内存假实现 ---

type fakeStore struct {
	subs        map[uint64]*models.Submission
	users       map[uint32]*models.User
	tokens      map[string]*models.PasswordResetToken
	nextSubID   uint64
	nextTokenID uint64
	seq         int64
	seqErr      error
	createErr   error
	completeErr error
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subs:   map[uint64]*models.Submission{},
		users:  map[uint32]*models.User{},
		tokens: map[string]*models.PasswordResetToken{},
	}
}

func (f *fakeStore) addUser(id uint32, username, email string, role models.UserRole) *models.User {
	u := &models.User{ID: id, Username: username, Email: email, Role: role}
	f.users[id] = u
	return u
}

func (f *fakeStore) Create(sub *models.Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextSubID++
	sub.ID = f.nextSubID
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.UpdatedAt = sub.CreatedAt
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeStore) GetByID(id uint64) (*models.Submission, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sub
	if u, ok := f.users[sub.UserID]; ok {
		copied.User = u
	}
	return &copied, nil
}

func (f *fakeStore) GetByMirrorID(mirrorID string) (*models.Submission, error) {
	for _, sub := range f.subs {
		if sub.MirrorID != nil && *sub.MirrorID == mirrorID {
			copied := *sub
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ListByUser(userID uint32) ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range f.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll() ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range f.subs {
		out = append(out, *sub)
	}
	return out, nil
}

func (f *fakeStore) CountByUser(userID uint32) (int64, error) {
	var count int64
	for _, sub := range f.subs {
		if sub.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) UpdateModeration(id uint64, upd ModerationUpdate) (*models.Submission, error) {
	f.updateCalls++
	sub, ok := f.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Status != nil {
		sub.Status = *upd.Status
	}
	if upd.ClearLevel {
		sub.Level = nil
	} else if upd.Level != nil {
		level := *upd.Level
		sub.Level = &level
	}
	sub.UpdatedAt = time.Now()
	return f.GetByID(id)
}

func (f *fakeStore) SetMirrorID(id uint64, mirrorID string) error {
	sub, ok := f.subs[id]
	if !ok {
		return ErrNotFound
	}
	sub.MirrorID = &mirrorID
	return nil
}

func (f *fakeStore) NextSequence() (int64, error) {
	if f.seqErr != nil {
		return 0, f.seqErr
	}
	f.seq++
	return f.seq, nil
}

func (f *fakeStore) GetUser(id uint32) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) InvalidateResetTokens(userID uint32) error {
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Used {
			t.Used = true
		}
	}
	return nil
}

func (f *fakeStore) CreateResetToken(t *models.PasswordResetToken) error {
	f.nextTokenID++
	t.ID = f.nextTokenID
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeStore) GetResetToken(token string) (*models.PasswordResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) CompleteReset(userID uint32, newPassword string, tokenID uint64) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	u, ok := f.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Password = newPassword
	for _, t := range f.tokens {
		if t.ID == tokenID {
			t.Used = true
		}
	}
	return nil
}

type fakeMirror struct {
	records     map[string]mappers.MirrorFields
	order       []string
	createCalls int
	updateCalls int
	nextID      int
	failAll     bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{records: map[string]mappers.MirrorFields{}}
}

func (m *fakeMirror) add(id string, fields mappers.MirrorFields) {
	m.records[id] = fields
	m.order = append(m.order, id)
}

func (m *fakeMirror) Create(fields mappers.MirrorFields) (string, error) {
	if m.failAll {
		return "", errors.New("mirror unavailable")
	}
	m.createCalls++
	m.nextID++
	id := fmt.Sprintf("rec%d", m.nextID)
	m.add(id, fields)
	return id, nil
}

func (m *fakeMirror) Update(id string, fields mappers.MirrorFields) error {
	if m.failAll {
		return errors.New("mirror unavailable")
	}
	m.updateCalls++
	if _, ok := m.records[id]; !ok {
		return errors.New("mirror record not found")
	}
	m.records[id] = fields
	return nil
}

func (m *fakeMirror) Get(id string) (*MirrorRecord, error) {
	if m.failAll {
		return nil, errors.New("mirror unavailable")
	}
	fields, ok := m.records[id]
	if !ok {
		return nil, errors.New("mirror record not found")
	}
	return &MirrorRecord{ID: id, Fields: fields}, nil
}

func (m *fakeMirror) ListAll() ([]MirrorRecord, error) {
	if m.failAll {
		return nil, errors.New("mirror unavailable")
	}
	var out []MirrorRecord
	for _, id := range m.order {
		out = append(out, MirrorRecord{ID: id, Fields: m.records[id]})
	}
	return out, nil
}

func (m *fakeMirror) Delete(id string) error {
	if m.failAll {
		return errors.New("mirror unavailable")
	}
	delete(m.records, id)
	return nil
}

type fakeNotifier struct {
	createdCalls  int
	statusCalls   int
	commentCalls  int
	resetCalls    int
	contactCalls  int
	lastResetTo   string
	lastOldStatus string
	lastNewStatus string
	err           error
}

func (n *fakeNotifier) NotifyCreated(email string, number int64, category, songName string, participants []string) error {
	n.createdCalls++
	return n.err
}

func (n *fakeNotifier) NotifyStatusChanged(email string, number int64, oldStatus, newStatus, oldLevel, newLevel string) error {
	n.statusCalls++
	n.lastOldStatus = oldStatus
	n.lastNewStatus = newStatus
	return n.err
}

func (n *fakeNotifier) NotifyCommentAdded(email string, number int64, comment, author string) error {
	n.commentCalls++
	return n.err
}

func (n *fakeNotifier) NotifyPasswordReset(email, token string) error {
	n.resetCalls++
	n.lastResetTo = email
	return n.err
}

func (n *fakeNotifier) NotifyContactMessage(name, fromEmail, message string) error {
	n.contactCalls++
	return n.err
}

func seedSubmission(store *fakeStore, userID uint32) *models.Submission {
	sub := &models.Submission{
		SubmissionNumber:       1,
		UserID:                 userID,
		Name:                   "Fire Crew",
		Nickname:               "fire",
		Contact:                "@firecrew",
		Category:               models.CategoryTeam,
		SongName:               "Inferno",
		SongMinutes:            3,
		SongSeconds:            5,
		VideoLink:              "https://www.youtube.com/watch?v=abc",
		Participants:           []string{"Anna", "Boris", "Vika", "Dima"},
		ParticipantEntryCounts: []int{1, 1, 1, 1},
		Status:                 models.StatusPending,
	}
	_ = store.Create(sub)
	return sub
}

// --- PushToMirror ---

func TestPushToMirror_CreatesThenUpdates(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "alice", "alice@example.com", models.RoleUser)
	sub := seedSubmission(store, 1)
	mirror := newFakeMirror()
	sync := NewSyncService(store, mirror, "")

	mirrorID, err := sync.PushToMirror(sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mirror.createCalls != 1 || mirror.updateCalls != 0 {
		t.Fatalf("expected 1 create / 0 updates, got %d / %d", mirror.createCalls, mirror.updateCalls)
	}
	if store.subs[sub.ID].MirrorID == nil || *store.subs[sub.ID].MirrorID != mirrorID {
		t.Fatalf("mirror id was not persisted locally")
	}

	// 第二次推送必须更新同一条镜像记录，而不是再建一条
	mirrorID2, err := sync.PushToMirror(sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mirrorID2 != mirrorID {
		t.Fatalf("second push returned different mirror id: %s vs %s", mirrorID2, mirrorID)
	}
	if mirror.createCalls != 1 || mirror.updateCalls != 1 {
		t.Fatalf("expected 1 create / 1 update, got %d / %d", mirror.createCalls, mirror.updateCalls)
	}
	if len(mirror.records) != 1 {
		t.Fatalf("expected exactly 1 mirror record, got %d", len(mirror.records))
	}
}

func TestPushToMirror_IncludesOwnerEmailAndEncodedFields(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "alice", "alice@example.com", models.RoleUser)
	sub := seedSubmission(store, 1)
	mirror := newFakeMirror()
	sync := NewSyncService(store, mirror, "")

	mirrorID, err := sync.PushToMirror(sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := mirror.records[mirrorID]
	if fields.UserEmail != "alice@example.com" {
		t.Errorf("unexpected owner email: %q", fields.UserEmail)
	}
	if fields.SongDuration != "3:05" {
		t.Errorf("unexpected duration cell: %q", fields.SongDuration)
	}
	if fields.ParticipantsWithEntries != "Anna (1), Boris (1), Vika (1), Dima (1)" {
		t.Errorf("unexpected participants cell: %q", fields.ParticipantsWithEntries)
	}
}

func TestPushToMirror_UnknownSubmission(t *testing.T) {
	sync := NewSyncService(newFakeStore(), newFakeMirror(), "")
	if _, err := sync.PushToMirror(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- PullStatus ---

func TestPullStatus_OverwritesLocalWhenDifferent(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	mirrorID := "recA"
	store.subs[sub.ID].MirrorID = &mirrorID
	before := store.subs[sub.ID].UpdatedAt

	mirror := newFakeMirror()
	mirror.add(mirrorID, mappers.MirrorFields{Status: "accepted", Level: "pro"})
	sync := NewSyncService(store, mirror, "")

	updated, err := sync.PullStatus(mirrorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.StatusAccepted {
		t.Errorf("status was not overwritten: %q", updated.Status)
	}
	if updated.Level == nil || *updated.Level != models.LevelPro {
		t.Errorf("level was not overwritten: %v", updated.Level)
	}
	if !updated.UpdatedAt.After(before) && updated.UpdatedAt.Equal(before) {
		t.Errorf("updated_at was not refreshed")
	}
}

func TestPullStatus_NoWriteWhenUnchanged(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	mirrorID := "recA"
	store.subs[sub.ID].MirrorID = &mirrorID

	mirror := newFakeMirror()
	mirror.add(mirrorID, mappers.MirrorFields{Status: "pending", Level: ""})
	sync := NewSyncService(store, mirror, "")

	if _, err := sync.PullStatus(mirrorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("expected no local write for identical moderation state, got %d", store.updateCalls)
	}
}

func TestPullStatus_MirrorLevelClearedLocally(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	level := models.LevelNew
	store.subs[sub.ID].Level = &level
	mirrorID := "recA"
	store.subs[sub.ID].MirrorID = &mirrorID

	mirror := newFakeMirror()
	mirror.add(mirrorID, mappers.MirrorFields{Status: "pending", Level: ""})
	sync := NewSyncService(store, mirror, "")

	updated, err := sync.PullStatus(mirrorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Level != nil {
		t.Fatalf("expected level cleared, got %v", *updated.Level)
	}
}

// --- PullAll ---

func TestPullAll_UpdatesKnownAndFabricatesUnknown(t *testing.T) {
	store := newFakeStore()
	store.addUser(9, "fallback", "fallback@example.com", models.RoleUser)
	sub := seedSubmission(store, 1)
	mirrorID := "recKnown"
	store.subs[sub.ID].MirrorID = &mirrorID

	mirror := newFakeMirror()
	mirror.add(mirrorID, mappers.MirrorFields{Status: "payment"})
	mirror.add("recNew", mappers.MirrorFields{
		SubmissionNumber:        42,
		Name:                    "Duo Stars",
		Category:                "duo/trio",
		SongDuration:            "2:40",
		ParticipantsWithEntries: "Anna (2), Boris (1)",
		Status:                  "accepted",
		Level:                   "middle",
	})
	sync := NewSyncService(store, mirror, "fallback@example.com")

	count, err := sync.PullAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records synced, got %d", count)
	}

	if store.subs[sub.ID].Status != models.StatusPayment {
		t.Errorf("known record was not overwritten: %q", store.subs[sub.ID].Status)
	}

	created, err := store.GetByMirrorID("recNew")
	if err != nil {
		t.Fatalf("fabricated record not found: %v", err)
	}
	if created.SubmissionNumber != 42 {
		t.Errorf("unexpected number: %d", created.SubmissionNumber)
	}
	if created.UserID != 9 {
		t.Errorf("fabricated record not attached to fallback curator: user %d", created.UserID)
	}
	if created.SongMinutes != 2 || created.SongSeconds != 40 {
		t.Errorf("duration cell not decoded: %d:%d", created.SongMinutes, created.SongSeconds)
	}
	if len(created.Participants) != 2 || created.Participants[0] != "Anna" {
		t.Errorf("participants cell not decoded: %v", created.Participants)
	}
}

func TestPullAll_SkipsFabricationWithoutFallbackCurator(t *testing.T) {
	store := newFakeStore()
	mirror := newFakeMirror()
	mirror.add("recNew", mappers.MirrorFields{Name: "Orphan", Status: "pending"})
	sync := NewSyncService(store, mirror, "missing@example.com")

	count, err := sync.PullAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 synced, got %d", count)
	}
	if len(store.subs) != 0 {
		t.Fatalf("no local record should have been created")
	}
}

func TestPullAll_MirrorUnavailable(t *testing.T) {
	mirror := newFakeMirror()
	mirror.failAll = true
	sync := NewSyncService(newFakeStore(), mirror, "")
	if _, err := sync.PullAll(); err == nil {
		t.Fatalf("expected error when mirror is down")
	}
}

// --- Reconcile ---

func TestReconcile_OverwritesFromMirror(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	mirrorID := "recA"
	store.subs[sub.ID].MirrorID = &mirrorID

	mirror := newFakeMirror()
	mirror.add(mirrorID, mappers.MirrorFields{Status: "rejected"})
	sync := NewSyncService(store, mirror, "")

	local, _ := store.GetByID(sub.ID)
	got := sync.Reconcile(local)
	if got.Status != models.StatusRejected {
		t.Fatalf("expected rejected after reconcile, got %q", got.Status)
	}
}

func TestReconcile_MirrorFailureReturnsLocalUnchanged(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	mirrorID := "recA"
	store.subs[sub.ID].MirrorID = &mirrorID

	mirror := newFakeMirror()
	mirror.failAll = true
	sync := NewSyncService(store, mirror, "")

	local, _ := store.GetByID(sub.ID)
	got := sync.Reconcile(local)
	if got.Status != models.StatusPending {
		t.Fatalf("local record must stay untouched when mirror is down, got %q", got.Status)
	}
}

func TestReconcile_NoMirrorIDIsNoop(t *testing.T) {
	store := newFakeStore()
	sub := seedSubmission(store, 1)
	sync := NewSyncService(store, newFakeMirror(), "")

	local, _ := store.GetByID(sub.ID)
	got := sync.Reconcile(local)
	if got != local {
		t.Fatalf("expected the same record back for unmirrored submission")
	}
}

// --- moderationDiff ---

func TestModerationDiff_LevelOnlyLeavesStatusUntouched(t *testing.T) {
	local := &models.Submission{Status: models.StatusPayment}
	upd, changed := moderationDiff(local, mappers.MirrorFields{Status: "payment", Level: "new"})
	if !changed {
		t.Fatalf("expected a change")
	}
	if upd.Status != nil {
		t.Errorf("status must not be part of the update when it is identical")
	}
	if upd.Level == nil || *upd.Level != models.LevelNew {
		t.Errorf("unexpected level update: %v", upd.Level)
	}
}

func TestModerationDiff_EmptyMirrorStatusIgnored(t *testing.T) {
	local := &models.Submission{Status: models.StatusAccepted}
	_, changed := moderationDiff(local, mappers.MirrorFields{Status: "", Level: ""})
	if changed {
		t.Fatalf("blank mirror moderation must not overwrite local status")
	}
}
