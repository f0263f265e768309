// file: mappers/submission_mapper_test.go
package mappers

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/kuznetsova-anastasiia/next-level/models"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes, seconds int
		want             string
	}{
		{3, 5, "3:05"},
		{0, 0, "0:00"},
		{10, 59, "10:59"},
		{2, 30, "2:30"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes, tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d, %d) = %q, want %q", tc.minutes, tc.seconds, got, tc.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in               string
		wantMin, wantSec int
	}{
		{"3:05", 3, 5},
		{"0:00", 0, 0},
		{"10:59", 10, 59},
		{"4:7", 4, 7},
		{"garbage", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		min, sec := ParseDuration(tc.in)
		if min != tc.wantMin || sec != tc.wantSec {
			t.Errorf("ParseDuration(%q) = %d:%d, want %d:%d", tc.in, min, sec, tc.wantMin, tc.wantSec)
		}
	}
}

func TestEncodeParticipants(t *testing.T) {
	got := EncodeParticipants([]string{"Anna", "Boris"}, []int{2, 1})
	if got != "Anna (2), Boris (1)" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestEncodeParticipants_MissingCountsDefaultToZero(t *testing.T) {
	got := EncodeParticipants([]string{"Anna", "Boris"}, []int{2})
	if got != "Anna (2), Boris (0)" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestDecodeParticipants(t *testing.T) {
	names, counts := DecodeParticipants("Anna (2), Boris (1)")
	if !reflect.DeepEqual(names, []string{"Anna", "Boris"}) {
		t.Fatalf("unexpected names: %v", names)
	}
	if !reflect.DeepEqual(counts, []int{2, 1}) {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestDecodeParticipants_NoCountSuffix(t *testing.T) {
	names, counts := DecodeParticipants("Solo Dancer")
	if !reflect.DeepEqual(names, []string{"Solo Dancer"}) {
		t.Fatalf("unexpected names: %v", names)
	}
	if !reflect.DeepEqual(counts, []int{0}) {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestDecodeParticipants_Empty(t *testing.T) {
	names, counts := DecodeParticipants("")
	if len(names) != 0 || len(counts) != 0 {
		t.Fatalf("expected empty result, got %v / %v", names, counts)
	}
}

func TestParticipantsRoundTrip(t *testing.T) {
	names := []string{"Anna", "Boris", "Vika"}
	counts := []int{2, 1, 0}
	gotNames, gotCounts := DecodeParticipants(EncodeParticipants(names, counts))
	if !reflect.DeepEqual(gotNames, names) {
		t.Fatalf("names did not round-trip: %v", gotNames)
	}
	if !reflect.DeepEqual(gotCounts, counts) {
		t.Fatalf("counts did not round-trip: %v", gotCounts)
	}
}

func TestSubmissionToMirrorFields(t *testing.T) {
	level := models.LevelPro
	sub := &models.Submission{
		SubmissionNumber:       7,
		Name:                   "Fire Crew",
		Nickname:               "fire",
		Contact:                "@firecrew",
		Category:               models.CategoryTeam,
		SongName:               "Inferno",
		SongMinutes:            3,
		SongSeconds:            5,
		VideoLink:              "https://www.youtube.com/watch?v=abc",
		Participants:           []string{"Anna", "Boris"},
		ParticipantEntryCounts: []int{2, 1},
		Status:                 models.StatusAccepted,
		Level:                  &level,
	}

	f := SubmissionToMirrorFields(sub, "owner@example.com")
	if f.SubmissionNumber != 7 {
		t.Errorf("unexpected number: %d", f.SubmissionNumber)
	}
	if f.SongDuration != "3:05" {
		t.Errorf("unexpected duration: %q", f.SongDuration)
	}
	if f.ParticipantsWithEntries != "Anna (2), Boris (1)" {
		t.Errorf("unexpected participants cell: %q", f.ParticipantsWithEntries)
	}
	if f.Status != "accepted" || f.Level != "pro" {
		t.Errorf("unexpected status/level: %q / %q", f.Status, f.Level)
	}
	if f.UserEmail != "owner@example.com" {
		t.Errorf("unexpected owner email: %q", f.UserEmail)
	}
}

func TestMirrorFieldsToSubmission(t *testing.T) {
	f := MirrorFields{
		SubmissionNumber:        12,
		Name:                    "Duo Stars",
		Category:                "duo/trio",
		SongDuration:            "2:40",
		ParticipantsWithEntries: "Anna (2), Boris (1)",
		Status:                  "payment",
		Level:                   "middle",
	}

	sub := MirrorFieldsToSubmission("rec123", f)
	if sub.SongMinutes != 2 || sub.SongSeconds != 40 {
		t.Errorf("unexpected duration: %d:%d", sub.SongMinutes, sub.SongSeconds)
	}
	if !reflect.DeepEqual(sub.Participants, []string{"Anna", "Boris"}) {
		t.Errorf("unexpected participants: %v", sub.Participants)
	}
	if !reflect.DeepEqual(sub.ParticipantEntryCounts, []int{2, 1}) {
		t.Errorf("unexpected entry counts: %v", sub.ParticipantEntryCounts)
	}
	if sub.Status != models.StatusPayment {
		t.Errorf("unexpected status: %q", sub.Status)
	}
	if sub.Level == nil || *sub.Level != models.LevelMiddle {
		t.Errorf("unexpected level: %v", sub.Level)
	}
	if sub.MirrorID == nil || *sub.MirrorID != "rec123" {
		t.Errorf("mirror id not set: %v", sub.MirrorID)
	}
}

func TestMirrorFieldsToSubmission_Defaults(t *testing.T) {
	sub := MirrorFieldsToSubmission("rec1", MirrorFields{Name: "X"})
	if sub.Status != models.StatusPending {
		t.Errorf("empty status should default to pending, got %q", sub.Status)
	}
	if sub.Level != nil {
		t.Errorf("empty level should stay nil, got %v", sub.Level)
	}
}

func TestMirrorFields_FalseFlagsSerialized(t *testing.T) {
	// 布尔列即使是 false 也要出现在 JSON 里，推送才能覆盖镜像中的旧勾选
	raw, err := json.Marshal(MirrorFields{Name: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, column := range []string{"Has Backdancers", "Has Props", "Using Background"} {
		if !strings.Contains(string(raw), `"`+column+`":false`) {
			t.Errorf("column %q missing from payload: %s", column, raw)
		}
	}
}
