package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repo, db
}

func seasonParams(chatID string) SeasonResultParams {
	ripWinner := "u1"
	netWinner := "u2"
	return SeasonResultParams{
		SeasonID:    "2026-2@2026-02-01",
		ChatID:      chatID,
		StartDate:   "2026-02-01",
		EndDate:     "2026-02-08",
		RipWinnerID: &ripWinner,
		NetWinnerID: &netWinner,
		Users: []SeasonUserParams{
			{UserID: "u1", SeasonRips: 10, GambleBet: 500, GambleWon: 300},
			{UserID: "u2", SeasonRips: 3, GambleBet: 100, GambleWon: 800},
		},
		FinalizedAt: time.Date(2026, time.February, 8, 0, 10, 0, 0, time.UTC),
	}
}

func TestRecordSeasonResult_ComputesTotals(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.RecordSeasonResult(ctx, seasonParams("room1")); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var summary SeasonResult
	if err := db.First(&summary).Error; err != nil {
		t.Fatalf("query summary failed: %v", err)
	}
	if summary.TotalRips != 13 {
		t.Fatalf("expected total rips 13, got %d", summary.TotalRips)
	}
	if summary.TotalNet != 500 {
		t.Fatalf("expected total net 500, got %d", summary.TotalNet)
	}
	if summary.Participants != 2 {
		t.Fatalf("expected 2 participants, got %d", summary.Participants)
	}
	if summary.RipWinnerID == nil || *summary.RipWinnerID != "u1" {
		t.Fatalf("unexpected rip winner: %v", summary.RipWinnerID)
	}

	var userRows []SeasonUserResult
	if err := db.Order("user_id").Find(&userRows).Error; err != nil {
		t.Fatalf("query user rows failed: %v", err)
	}
	if len(userRows) != 2 {
		t.Fatalf("expected 2 user rows, got %d", len(userRows))
	}
	if userRows[0].GambleNet != -200 || userRows[1].GambleNet != 700 {
		t.Fatalf("unexpected nets: %+v", userRows)
	}
}

func TestRecordSeasonResult_DuplicateIsIgnored(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.RecordSeasonResult(ctx, seasonParams("room1")); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	// 재시도 경로: 같은 (chat_id, season_id)는 요약도 스냅샷도 늘리지 않는다.
	if err := repo.RecordSeasonResult(ctx, seasonParams("room1")); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	var summaryCount, userCount int64
	if err := db.Model(&SeasonResult{}).Count(&summaryCount).Error; err != nil {
		t.Fatalf("count summaries failed: %v", err)
	}
	if err := db.Model(&SeasonUserResult{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count user rows failed: %v", err)
	}
	if summaryCount != 1 || userCount != 2 {
		t.Fatalf("expected 1 summary and 2 user rows, got %d/%d", summaryCount, userCount)
	}

	// 다른 채팅방의 같은 시즌 ID는 별개 기록이다.
	if err := repo.RecordSeasonResult(ctx, seasonParams("room2")); err != nil {
		t.Fatalf("other chat record failed: %v", err)
	}
	if err := db.Model(&SeasonResult{}).Count(&summaryCount).Error; err != nil {
		t.Fatalf("count summaries failed: %v", err)
	}
	if summaryCount != 2 {
		t.Fatalf("expected 2 summaries, got %d", summaryCount)
	}
}

func TestRecordSeasonResult_BlankIDsAreNoop(t *testing.T) {
	repo, db := setupTestRepo(t)

	params := seasonParams("room1")
	params.ChatID = "  "
	if err := repo.RecordSeasonResult(context.Background(), params); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var count int64
	if err := db.Model(&SeasonResult{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows for blank chat id, got %d", count)
	}
}

func TestRecordAdminAudit(t *testing.T) {
	repo, db := setupTestRepo(t)

	err := repo.RecordAdminAudit(context.Background(), AdminAuditParams{
		ChatID:       "room1",
		AdminUserID:  "admin1",
		TargetUserID: "u1",
		Action:       AdminActionAddXP,
		Delta:        -500,
		ResultValue:  1200,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var row AdminAuditLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if row.Action != AdminActionAddXP || row.Delta != -500 || row.ResultValue != 1200 {
		t.Fatalf("unexpected audit row: %+v", row)
	}
}
