package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/repository"
)

func TestComputeSeasonWindow(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantID     string
		wantActive bool
	}{
		{
			name:       "january window starts on the 9th",
			now:        clock.DateOf(2026, time.January, 10),
			wantID:     "2026-1@2026-01-09",
			wantActive: true,
		},
		{
			name:       "january 8 is before the offset window",
			now:        clock.DateOf(2026, time.January, 8),
			wantID:     "2026-1@2026-01-09",
			wantActive: false,
		},
		{
			name:       "past end rolls to next month",
			now:        clock.DateOf(2026, time.January, 16),
			wantID:     "2026-2@2026-02-01",
			wantActive: false,
		},
		{
			name:       "regular month window",
			now:        clock.DateOf(2026, time.February, 3),
			wantID:     "2026-2@2026-02-01",
			wantActive: true,
		},
		{
			name:       "end exclusive boundary",
			now:        clock.DateOf(2026, time.February, 8),
			wantID:     "2026-3@2026-03-01",
			wantActive: false,
		},
		{
			name:       "december rolls into january offset",
			now:        clock.DateOf(2026, time.December, 15),
			wantID:     "2027-1@2027-01-09",
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ComputeSeasonWindow(tt.now)
			if window.ID != tt.wantID {
				t.Fatalf("window ID = %q, want %q", window.ID, tt.wantID)
			}
			if got := window.Contains(tt.now); got != tt.wantActive {
				t.Fatalf("Contains = %v, want %v", got, tt.wantActive)
			}
		})
	}
}

func TestSeasonWindow_SevenDaysLong(t *testing.T) {
	window := ComputeSeasonWindow(clock.DateOf(2026, time.May, 2))
	if d := window.EndExclusive.Sub(window.Start); d != 7*24*time.Hour {
		t.Fatalf("expected 7 day window, got %v", d)
	}
}

type seasonTestEnv struct {
	manager    *SeasonManager
	stateStore *ripredis.StateStore
	announcer  *stubAnnouncer
	db         *gorm.DB
}

func setupSeasonEnv(t *testing.T, now time.Time) *seasonTestEnv {
	t.Helper()

	client := newTestValkey(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stateStore := ripredis.NewStateStore(client, logger)

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

	repo := repository.New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	announcer := newStubAnnouncer()
	manager := NewSeasonManager(stateStore, repo, testMessageProvider(t), clock.FixedClock{Instant: now}, logger)
	manager.SetAnnouncer(announcer)

	return &seasonTestEnv{manager: manager, stateStore: stateStore, announcer: announcer, db: db}
}

func TestSeasonManager_AdoptsWindowWithoutFinalize(t *testing.T) {
	now := clock.DateOf(2026, time.February, 3)
	env := setupSeasonEnv(t, now)
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.SeasonOf("u1").SeasonRips = 5
	state.YearlyYear = 2026
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	if err := env.manager.EvaluateChat(ctx, chatID); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	state, _ = env.stateStore.Load(ctx, chatID)
	if state.Season == nil {
		t.Fatal("expected season adopted")
	}
	if state.Season.ID != "2026-2@2026-02-01" || !state.Season.Active {
		t.Fatalf("unexpected season: %+v", state.Season)
	}
	// 채택은 마감이 아니므로 시즌 통계는 그대로다.
	if got := state.SeasonOf("u1").SeasonRips; got != 5 {
		t.Fatalf("expected season stats untouched, got %d", got)
	}
	if len(env.announcer.texts[chatID]) != 0 {
		t.Fatalf("expected no announcements on adopt, got %v", env.announcer.texts[chatID])
	}
}

func TestSeasonManager_FinalizeAggregatesAndArchives(t *testing.T) {
	now := clock.DateOf(2026, time.February, 8) // 2월 윈도우 마감 직후
	env := setupSeasonEnv(t, now)
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.YearlyYear = 2026
	state.Season = &ripmodel.SeasonState{
		ID:           "2026-2@2026-02-01",
		Start:        "2026-02-01",
		EndExclusive: "2026-02-08",
		Active:       true,
	}
	state.SeasonMap["u1"] = &ripmodel.SeasonStats{SeasonRips: 10, SeasonGambleBet: 500, SeasonGambleWon: 300}
	state.SeasonMap["u2"] = &ripmodel.SeasonStats{SeasonRips: 3, SeasonGambleBet: 100, SeasonGambleWon: 800}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	if err := env.manager.EvaluateChat(ctx, chatID); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	state, _ = env.stateStore.Load(ctx, chatID)

	// 시즌 통계는 비워지고 연간 누적으로 합산된다.
	if len(state.SeasonMap) != 0 {
		t.Fatalf("expected season map wiped, got %v", state.SeasonMap)
	}
	if got := state.YearlyOf("u1").YearRips; got != 10 {
		t.Fatalf("expected u1 year rips 10, got %d", got)
	}
	if got := state.YearlyOf("u1").YearGambleNet; got != -200 {
		t.Fatalf("expected u1 year net -200, got %d", got)
	}
	if got := state.YearlyOf("u2").YearGambleNet; got != 700 {
		t.Fatalf("expected u2 year net 700, got %d", got)
	}

	// 다음 윈도우가 채택된다.
	if state.Season.ID != "2026-3@2026-03-01" || state.Season.Active {
		t.Fatalf("expected inactive march season, got %+v", state.Season)
	}

	// 우승자 발표: u1이 립, u2가 순익.
	texts := env.announcer.texts[chatID]
	if len(texts) != 3 {
		t.Fatalf("expected 3 announcements, got %v", texts)
	}
	if !strings.Contains(texts[1], "u1") {
		t.Fatalf("expected rip winner u1, got %q", texts[1])
	}
	if !strings.Contains(texts[2], "u2") {
		t.Fatalf("expected net winner u2, got %q", texts[2])
	}

	// Postgres 아카이브 행 확인 (테스트는 sqlite)
	var results []repository.SeasonResult
	if err := env.db.Find(&results).Error; err != nil {
		t.Fatalf("query season results failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 season result, got %d", len(results))
	}
	if results[0].SeasonID != "2026-2@2026-02-01" || results[0].Participants != 2 {
		t.Fatalf("unexpected season result: %+v", results[0])
	}
	if results[0].TotalRips != 13 {
		t.Fatalf("expected total rips 13, got %d", results[0].TotalRips)
	}

	var userRows []repository.SeasonUserResult
	if err := env.db.Find(&userRows).Error; err != nil {
		t.Fatalf("query user results failed: %v", err)
	}
	if len(userRows) != 2 {
		t.Fatalf("expected 2 user rows, got %d", len(userRows))
	}
}

func TestSeasonManager_FinalizeEmptySeason(t *testing.T) {
	now := clock.DateOf(2026, time.February, 8)
	env := setupSeasonEnv(t, now)
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.YearlyYear = 2026
	state.Season = &ripmodel.SeasonState{
		ID:           "2026-2@2026-02-01",
		Start:        "2026-02-01",
		EndExclusive: "2026-02-08",
		Active:       true,
	}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	if err := env.manager.EvaluateChat(ctx, chatID); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	texts := env.announcer.texts[chatID]
	if len(texts) != 1 {
		t.Fatalf("expected single no-stats announcement, got %v", texts)
	}
	if !strings.Contains(texts[0], "no recorded stats") {
		t.Fatalf("unexpected announcement: %q", texts[0])
	}
}

func TestSeasonManager_StableWindowIsIdempotent(t *testing.T) {
	now := clock.DateOf(2026, time.February, 3)
	env := setupSeasonEnv(t, now)
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.YearlyYear = 2026
	state.Season = &ripmodel.SeasonState{
		ID:           "2026-2@2026-02-01",
		Start:        "2026-02-01",
		EndExclusive: "2026-02-08",
		Active:       true,
	}
	state.SeasonOf("u1").SeasonRips = 7
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := env.manager.EvaluateChat(ctx, chatID); err != nil {
			t.Fatalf("evaluate %d failed: %v", i, err)
		}
	}

	state, _ = env.stateStore.Load(ctx, chatID)
	if got := state.SeasonOf("u1").SeasonRips; got != 7 {
		t.Fatalf("expected season stats preserved, got %d", got)
	}
	if len(env.announcer.texts[chatID]) != 0 {
		t.Fatalf("expected no announcements, got %v", env.announcer.texts[chatID])
	}
}

func TestSeasonManager_YearChangeWipesYearly(t *testing.T) {
	now := clock.DateOf(2027, time.March, 3)
	env := setupSeasonEnv(t, now)
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.YearlyYear = 2026
	state.Yearly["u1"] = &ripmodel.YearlyTotals{YearRips: 100, YearGambleNet: 50}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	if err := env.manager.EvaluateChat(ctx, chatID); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	state, _ = env.stateStore.Load(ctx, chatID)
	if state.YearlyYear != 2027 {
		t.Fatalf("expected yearly year 2027, got %d", state.YearlyYear)
	}
	if len(state.Yearly) != 0 {
		t.Fatalf("expected yearly map wiped on year change, got %v", state.Yearly)
	}
}

func TestSeasonStatus(t *testing.T) {
	ctx := context.Background()
	chatID := "room1"

	// 윈도우 진행 중: 마감일과 참가자 수를 보여준다.
	env := setupSeasonEnv(t, clock.DateOf(2026, time.February, 3))
	state, _ := env.stateStore.Load(ctx, chatID)
	state.SeasonMap["u1"] = &ripmodel.SeasonStats{SeasonRips: 2}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	text, err := env.manager.SeasonStatus(ctx, chatID)
	if err != nil {
		t.Fatalf("season status failed: %v", err)
	}
	if !strings.Contains(text, "2026-2@2026-02-01") || !strings.Contains(text, "2026-02-08") {
		t.Fatalf("expected live season window in text, got %q", text)
	}
	if !strings.Contains(text, "1 player") {
		t.Fatalf("expected participant count in text, got %q", text)
	}

	// 윈도우 밖: 다음 시즌 시작일을 안내한다.
	env = setupSeasonEnv(t, clock.DateOf(2026, time.February, 10))
	text, err = env.manager.SeasonStatus(ctx, chatID)
	if err != nil {
		t.Fatalf("season status failed: %v", err)
	}
	if !strings.Contains(text, "2026-3@2026-03-01") || !strings.Contains(text, "starts 2026-03-01") {
		t.Fatalf("expected upcoming season in text, got %q", text)
	}
}
