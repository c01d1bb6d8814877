package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
)

type activityTestEnv struct {
	svc        *ActivityService
	stateStore *ripredis.StateStore
	now        time.Time
}

func setupActivityEnv(t *testing.T, random *stubRandom) *activityTestEnv {
	t.Helper()
	return setupActivityEnvCfg(t, random, ripconfig.GameConfig{ActivityReplyEnabled: true})
}

func setupActivityEnvCfg(t *testing.T, random *stubRandom, cfg ripconfig.GameConfig) *activityTestEnv {
	t.Helper()

	client := newTestValkey(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stateStore := ripredis.NewStateStore(client, logger)
	now := clock.DateOf(2026, time.March, 10).Add(12 * time.Hour)

	svc := NewActivityService(
		stateStore,
		NewPeriodTracker(),
		NewCritEngine(random),
		testMessageProvider(t),
		clock.FixedClock{Instant: now},
		cfg,
		logger,
	)
	return &activityTestEnv{svc: svc, stateStore: stateStore, now: now}
}

// seedActiveSeason: 채팅방에 진행 중 시즌을 심는다.
func seedActiveSeason(t *testing.T, env *activityTestEnv, chatID string) {
	t.Helper()
	ctx := context.Background()
	state, err := env.stateStore.Load(ctx, chatID)
	if err != nil {
		t.Fatalf("load state failed: %v", err)
	}
	state.Season = &ripmodel.SeasonState{
		ID:           "2026-3@2026-03-01",
		Start:        "2026-03-01",
		EndExclusive: "2026-03-08",
		Active:       true,
	}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save state failed: %v", err)
	}
}

func TestRecordActivity_AwardsXPAndCounters(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{floats: []float64{0.9}})
	ctx := context.Background()
	category := ripCategory(t)
	seedActiveSeason(t, env, "room1")

	replies, err := env.svc.RecordActivity(ctx, "room1", "u1", "앨리스", category)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	// 일반 활동도 등록 확인 응답을 받는다.
	if len(replies) != 1 {
		t.Fatalf("expected registered confirmation, got %v", replies)
	}
	if !strings.Contains(replies[0], "앨리스") || !strings.Contains(replies[0], "420") {
		t.Fatalf("unexpected confirmation text: %q", replies[0])
	}

	state, _ := env.stateStore.Load(ctx, "room1")
	user := state.User("u1")
	if user.XP != ripconfig.XPAwardRip {
		t.Fatalf("expected xp %d, got %d", ripconfig.XPAwardRip, user.XP)
	}
	if user.AllTimeRips != 1 {
		t.Fatalf("expected all-time rips 1, got %d", user.AllTimeRips)
	}
	if got := state.SeasonOf("u1").SeasonRips; got != 1 {
		t.Fatalf("expected season rips 1, got %d", got)
	}
	// 연간 누적은 시즌 마감 때만 합산된다.
	if got := state.YearlyOf("u1").YearRips; got != 0 {
		t.Fatalf("expected year rips to stay 0 until season end, got %d", got)
	}

	activity := state.ActivityOf("u1")
	if activity.Daily != 1 || activity.Streak != 1 {
		t.Fatalf("unexpected activity state: %+v", activity)
	}
	if activity.CritChance != ripconfig.CritIncrementRip {
		t.Fatalf("expected crit chance %f after miss, got %f", ripconfig.CritIncrementRip, activity.CritChance)
	}
}

func TestRecordActivity_CritHitPaysBonus(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{floats: []float64{0.1}})
	ctx := context.Background()
	chatID := "room1"

	// 같은 날 키로 미리 맞춰 두어 롤오버가 확률을 지우지 않게 한다.
	cal := clock.Decompose(env.now)
	state, _ := env.stateStore.Load(ctx, chatID)
	state.Season = &ripmodel.SeasonState{ID: "2026-3@2026-03-01", Active: true}
	activity := state.ActivityOf("u1")
	activity.LastDayKey = cal.DayKey
	activity.LastWeekKey = cal.WeekKey
	activity.LastMonthKey = cal.MonthKey
	activity.LastYear = cal.Year
	activity.CritChance = 0.5
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	replies, err := env.svc.RecordActivity(ctx, chatID, "u1", "앨리스", ripCategory(t))
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	// 등록 확인 + 크리티컬 발표
	if len(replies) != 2 {
		t.Fatalf("expected confirmation and crit announcement, got %v", replies)
	}
	if !strings.Contains(replies[1], "앨리스") || !strings.Contains(replies[1], "CRITICAL") {
		t.Fatalf("expected crit message, got %q", replies[1])
	}

	state, _ = env.stateStore.Load(ctx, chatID)
	// 크리티컬 지급액은 기본 XP를 대체한다.
	if got := state.User("u1").XP; got != ripconfig.CritPayoutRip {
		t.Fatalf("expected xp %d (payout replaces award), got %d", ripconfig.CritPayoutRip, got)
	}
	if got := state.ActivityOf("u1").CritChance; got != 0 {
		t.Fatalf("expected crit chance reset after hit, got %f", got)
	}
}

func TestRecordActivity_OffSeasonSkipsSeasonRips(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{floats: []float64{0.9}})
	ctx := context.Background()
	chatID := "room1"

	// 시즌이 없거나 닫혀 있으면 시즌 립은 세지 않는다.
	if _, err := env.svc.RecordActivity(ctx, chatID, "u1", "앨리스", ripCategory(t)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	state, _ := env.stateStore.Load(ctx, chatID)
	if _, ok := state.SeasonMap["u1"]; ok {
		t.Fatalf("expected no season entry off-season, got %+v", state.SeasonMap["u1"])
	}
	if got := state.User("u1").AllTimeRips; got != 1 {
		t.Fatalf("expected all-time rips still counted, got %d", got)
	}

	state.Season = &ripmodel.SeasonState{ID: "2026-3@2026-03-01", Active: false}
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := env.svc.RecordActivity(ctx, chatID, "u1", "앨리스", ripCategory(t)); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	state, _ = env.stateStore.Load(ctx, chatID)
	if _, ok := state.SeasonMap["u1"]; ok {
		t.Fatal("expected inactive season to not count season rips")
	}
}

func TestRecordActivity_ReplyDisabled(t *testing.T) {
	env := setupActivityEnvCfg(t, &stubRandom{floats: []float64{0.9}}, ripconfig.GameConfig{ActivityReplyEnabled: false})
	ctx := context.Background()

	replies, err := env.svc.RecordActivity(ctx, "room1", "u1", "앨리스", ripCategory(t))
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(replies) != 0 {
		t.Fatalf("expected silent activity with replies disabled, got %v", replies)
	}
}

func TestCritStatus_RendersClampedChance(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{})
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	state.ActivityOf("u1").CritChance = 1.5
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	text, err := env.svc.CritStatus(ctx, chatID, "u1", "앨리스")
	if err != nil {
		t.Fatalf("crit status failed: %v", err)
	}
	// 저장은 무제한 누적이지만 표시는 100%로 클램프된다.
	if !strings.Contains(text, "100.0") {
		t.Fatalf("expected clamped 100.0%% in text, got %q", text)
	}

	// 활동 기록이 없는 사용자는 0%로 표시된다.
	text, err = env.svc.CritStatus(ctx, chatID, "u9", "밥")
	if err != nil {
		t.Fatalf("crit status failed: %v", err)
	}
	if !strings.Contains(text, "0.0") {
		t.Fatalf("expected 0.0%% for unseen user, got %q", text)
	}
}

func TestRecordActivity_HighscoreBoard(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{})
	ctx := context.Background()
	chatID := "room1"

	// u1 세 번, u2 두 번, u3/u4 한 번씩: 보드는 상위 3개만 유지한다.
	users := []string{"u1", "u1", "u1", "u2", "u2", "u3", "u4"}
	for _, userID := range users {
		if _, err := env.svc.RecordActivity(ctx, chatID, userID, userID, ripCategory(t)); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	state, _ := env.stateStore.Load(ctx, chatID)
	if len(state.Highscores) != ripconfig.HighscoreLimit {
		t.Fatalf("expected %d highscore entries, got %d", ripconfig.HighscoreLimit, len(state.Highscores))
	}
	if state.Highscores[0].UserID != "u1" || state.Highscores[0].Count != 3 {
		t.Fatalf("expected u1 with 3 on top, got %+v", state.Highscores[0])
	}
	if state.Highscores[1].UserID != "u2" || state.Highscores[1].Count != 2 {
		t.Fatalf("expected u2 with 2 second, got %+v", state.Highscores[1])
	}
}

func TestStats_RendersBalances(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{floats: []float64{0.9}})
	ctx := context.Background()

	if _, err := env.svc.RecordActivity(ctx, "room1", "u1", "앨리스", ripCategory(t)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	text, err := env.svc.Stats(ctx, "room1", "u1", "앨리스")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(text, "앨리스") || !strings.Contains(text, "420") {
		t.Fatalf("unexpected stats text: %q", text)
	}
}

func TestStreak_StaleCountersRenderAsZero(t *testing.T) {
	env := setupActivityEnv(t, &stubRandom{})
	ctx := context.Background()
	chatID := "room1"

	state, _ := env.stateStore.Load(ctx, chatID)
	activity := state.ActivityOf("u1")
	activity.LastDayKey = "2026-03-01"
	activity.Daily = 42
	activity.LastWeekKey = "2026-03-01"
	activity.Weekly = 99
	activity.Streak = 5
	if err := env.stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	text, err := env.svc.Streak(ctx, chatID, "u1", "앨리스")
	if err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	// 지난 기간의 카운터는 0으로 표시하고 연속 기록은 그대로 보여준다.
	if !strings.Contains(text, "5 day streak") {
		t.Fatalf("expected streak 5 in text, got %q", text)
	}
	if !strings.Contains(text, "today: 0") {
		t.Fatalf("expected stale daily rendered as 0, got %q", text)
	}

	// 조회는 저장된 카운터를 건드리지 않는다.
	state, _ = env.stateStore.Load(ctx, chatID)
	if got := state.ActivityOf("u1").Daily; got != 42 {
		t.Fatalf("expected stored daily untouched, got %d", got)
	}
}
