package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
)

// LedgerView: 영속 상태에 대한 읽기 전용 랭킹 조회. 상태를 변경하지 않는다.
type LedgerView struct {
	stateStore *ripredis.StateStore
	provider   *messageprovider.Provider
	logger     *slog.Logger
}

// NewLedgerView: 새로운 LedgerView 인스턴스를 생성한다.
func NewLedgerView(stateStore *ripredis.StateStore, provider *messageprovider.Provider, logger *slog.Logger) *LedgerView {
	return &LedgerView{stateStore: stateStore, provider: provider, logger: logger}
}

// topByField: 맵에서 선택 필드 기준 내림차순 상위 limit개를 뽑는다.
// 동률은 정렬 전 순회 순서를 따른다. (맵 순회의 비결정성 유지)
func topByField[T any](m map[string]*T, selector func(*T) int64, limit int) []ripmodel.LeaderboardEntry {
	entries := make([]ripmodel.LeaderboardEntry, 0, len(m))
	for userID, v := range m {
		entries = append(entries, ripmodel.LeaderboardEntry{UserID: userID, Value: selector(v)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Leaderboard: 요청한 범위의 리더보드를 렌더링한다.
func (v *LedgerView) Leaderboard(ctx context.Context, chatID string, scope ripmodel.LeaderboardScope) (string, error) {
	state, err := v.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("leaderboard: %w", err)
	}

	var headerKey string
	var entries []ripmodel.LeaderboardEntry
	switch scope {
	case ripmodel.LeaderboardSeasonRips:
		headerKey = messages.TopHeaderSeasonRips
		entries = topByField(state.SeasonMap, func(s *ripmodel.SeasonStats) int64 { return s.SeasonRips }, ripconfig.LeaderboardLimit)
	case ripmodel.LeaderboardSeasonNet:
		headerKey = messages.TopHeaderSeasonNet
		entries = topByField(state.SeasonMap, func(s *ripmodel.SeasonStats) int64 { return s.Net() }, ripconfig.LeaderboardLimit)
	case ripmodel.LeaderboardYearRips:
		headerKey = messages.TopHeaderYearRips
		entries = topByField(state.Yearly, func(y *ripmodel.YearlyTotals) int64 { return y.YearRips }, ripconfig.LeaderboardLimit)
	case ripmodel.LeaderboardYearNet:
		headerKey = messages.TopHeaderYearNet
		entries = topByField(state.Yearly, func(y *ripmodel.YearlyTotals) int64 { return y.YearGambleNet }, ripconfig.LeaderboardLimit)
	case ripmodel.LeaderboardAllRips:
		headerKey = messages.TopHeaderAllRips
		entries = topByField(state.Users, func(u *ripmodel.UserStats) int64 { return u.AllTimeRips }, ripconfig.LeaderboardLimit)
	default:
		return "", fmt.Errorf("leaderboard: unknown scope %q", scope)
	}

	if len(entries) == 0 {
		return v.provider.Get(messages.TopEmpty), nil
	}

	lines := []string{v.provider.Get(headerKey)}
	for rank, e := range entries {
		lines = append(lines, v.provider.Get(messages.TopLine,
			messageprovider.P("rank", rank+1),
			messageprovider.P("nickname", e.UserID),
			messageprovider.P("value", formatNumber(e.Value)),
		))
	}
	return strings.Join(lines, "\n"), nil
}

// Records: 일일 최다 기록 보드를 렌더링한다.
func (v *LedgerView) Records(ctx context.Context, chatID string) (string, error) {
	state, err := v.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("records: %w", err)
	}

	if len(state.Highscores) == 0 {
		return v.provider.Get(messages.RecordsEmpty), nil
	}

	lines := []string{v.provider.Get(messages.RecordsHeader)}
	for rank, r := range state.Highscores {
		lines = append(lines, v.provider.Get(messages.RecordsLine,
			messageprovider.P("rank", rank+1),
			messageprovider.P("nickname", r.UserID),
			messageprovider.P("count", formatNumber(r.Count)),
			messageprovider.P("date", r.Date),
		))
	}
	return strings.Join(lines, "\n"), nil
}
