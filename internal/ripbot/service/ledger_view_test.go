package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
)

func setupLedgerEnv(t *testing.T) (*LedgerView, *ripredis.StateStore) {
	t.Helper()
	client := newTestValkey(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stateStore := ripredis.NewStateStore(client, logger)
	return NewLedgerView(stateStore, testMessageProvider(t), logger), stateStore
}

func TestLeaderboard_SeasonRipsRanked(t *testing.T) {
	view, stateStore := setupLedgerEnv(t)
	ctx := context.Background()
	chatID := "room1"

	state, _ := stateStore.Load(ctx, chatID)
	state.SeasonMap["u1"] = &ripmodel.SeasonStats{SeasonRips: 10}
	state.SeasonMap["u2"] = &ripmodel.SeasonStats{SeasonRips: 25}
	state.SeasonMap["u3"] = &ripmodel.SeasonStats{SeasonRips: 3}
	if err := stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	text, err := view.Leaderboard(ctx, chatID, ripmodel.LeaderboardSeasonRips)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 lines, got %d: %q", len(lines), text)
	}
	if !strings.HasPrefix(lines[1], "1. u2") {
		t.Fatalf("expected u2 first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2. u1") {
		t.Fatalf("expected u1 second, got %q", lines[2])
	}
}

func TestLeaderboard_SeasonNetUsesWonMinusBet(t *testing.T) {
	view, stateStore := setupLedgerEnv(t)
	ctx := context.Background()
	chatID := "room1"

	state, _ := stateStore.Load(ctx, chatID)
	state.SeasonMap["loser"] = &ripmodel.SeasonStats{SeasonGambleBet: 1000, SeasonGambleWon: 100}
	state.SeasonMap["winner"] = &ripmodel.SeasonStats{SeasonGambleBet: 100, SeasonGambleWon: 1000}
	if err := stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	text, err := view.Leaderboard(ctx, chatID, ripmodel.LeaderboardSeasonNet)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	lines := strings.Split(text, "\n")
	if !strings.HasPrefix(lines[1], "1. winner") {
		t.Fatalf("expected winner first, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "900") {
		t.Fatalf("expected net 900, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "-900") {
		t.Fatalf("expected net -900, got %q", lines[2])
	}
}

func TestLeaderboard_LimitsToTen(t *testing.T) {
	view, stateStore := setupLedgerEnv(t)
	ctx := context.Background()
	chatID := "room1"

	state, _ := stateStore.Load(ctx, chatID)
	for i := 0; i < 15; i++ {
		userID := string(rune('a' + i))
		state.Users[userID] = &ripmodel.UserStats{AllTimeRips: int64(i + 1)}
	}
	if err := stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	text, err := view.Leaderboard(ctx, chatID, ripmodel.LeaderboardAllRips)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header + 10 lines, got %d", len(lines))
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	view, _ := setupLedgerEnv(t)

	text, err := view.Leaderboard(context.Background(), "room-empty", ripmodel.LeaderboardSeasonRips)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if !strings.Contains(text, "Nothing on the board") {
		t.Fatalf("expected empty board text, got %q", text)
	}
}

func TestLeaderboard_UnknownScope(t *testing.T) {
	view, _ := setupLedgerEnv(t)
	if _, err := view.Leaderboard(context.Background(), "room1", ripmodel.LeaderboardScope("bogus")); err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestRecords_RendersBoard(t *testing.T) {
	view, stateStore := setupLedgerEnv(t)
	ctx := context.Background()
	chatID := "room1"

	state, _ := stateStore.Load(ctx, chatID)
	state.Highscores = []ripmodel.HighscoreRecord{
		{Date: "2026-03-01", UserID: "u1", Count: 40},
		{Date: "2026-02-11", UserID: "u2", Count: 22},
	}
	if err := stateStore.Save(ctx, chatID, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	text, err := view.Records(ctx, chatID)
	if err != nil {
		t.Fatalf("records failed: %v", err)
	}
	if !strings.Contains(text, "u1") || !strings.Contains(text, "2026-03-01") {
		t.Fatalf("unexpected records text: %q", text)
	}

	empty, err := view.Records(ctx, "room-empty")
	if err != nil {
		t.Fatalf("records failed: %v", err)
	}
	if !strings.Contains(empty, "No daily records") {
		t.Fatalf("expected empty records text, got %q", empty)
	}
}
