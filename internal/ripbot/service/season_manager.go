package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/repository"
)

// SeasonWindow: 계산된 시즌 윈도우
type SeasonWindow struct {
	ID           string
	Start        time.Time
	EndExclusive time.Time
}

// Contains: 해당 날짜가 윈도우 내부인지 판정한다.
func (w SeasonWindow) Contains(now time.Time) bool {
	local := now.In(clock.Location)
	return !local.Before(w.Start) && local.Before(w.EndExclusive)
}

// ComputeSeasonWindow: 현재 시각 기준의 시즌 윈도우를 계산한다.
// 1월은 9일~15일 (신년 오프셋), 나머지 달은 1일~7일이다.
// 이번 달 윈도우가 이미 끝났으면 다음 달 윈도우를 반환한다.
func ComputeSeasonWindow(now time.Time) SeasonWindow {
	local := now.In(clock.Location)

	window := windowForMonth(local.Year(), local.Month())
	if !local.Before(window.EndExclusive) {
		next := clock.DateOf(local.Year(), local.Month(), 1).AddDate(0, 1, 0)
		window = windowForMonth(next.Year(), next.Month())
	}
	return window
}

func windowForMonth(year int, month time.Month) SeasonWindow {
	startDay := 1
	if month == time.January {
		startDay = 9
	}
	start := clock.DateOf(year, month, startDay)
	end := start.AddDate(0, 0, 7)

	return SeasonWindow{
		ID:           clock.FormatSeasonID(start),
		Start:        start,
		EndExclusive: end,
	}
}

// SeasonManager: 시즌 윈도우 전이와 마감 처리를 담당한다.
// 주기 틱마다 상태를 새로 로드하여 평가하고, 마감 시 연간 누적 합산과
// 시즌 통계 초기화, Postgres 아카이브, 우승자 발표를 수행한다.
type SeasonManager struct {
	stateStore *ripredis.StateStore
	repo       *repository.Repository
	provider   *messageprovider.Provider
	announcer  Announcer
	clk        clock.Clock
	logger     *slog.Logger
}

// NewSeasonManager: 새로운 SeasonManager 인스턴스를 생성한다.
func NewSeasonManager(
	stateStore *ripredis.StateStore,
	repo *repository.Repository,
	provider *messageprovider.Provider,
	clk clock.Clock,
	logger *slog.Logger,
) *SeasonManager {
	return &SeasonManager{
		stateStore: stateStore,
		repo:       repo,
		provider:   provider,
		clk:        clk,
		logger:     logger,
	}
}

// SetAnnouncer: 시즌 마감 발표용 퍼블리셔를 연결한다.
func (m *SeasonManager) SetAnnouncer(a Announcer) {
	m.announcer = a
}

// EvaluateAll: 상태 블롭이 있는 모든 채팅방의 시즌을 평가한다. (틱 진입점)
func (m *SeasonManager) EvaluateAll(ctx context.Context) error {
	chatIDs, err := m.stateStore.ListChatIDs(ctx)
	if err != nil {
		return fmt.Errorf("season evaluate all: %w", err)
	}
	for _, chatID := range chatIDs {
		if err := m.EvaluateChat(ctx, chatID); err != nil {
			m.logger.Error("season_evaluate_failed", "chat_id", chatID, "err", err)
		}
	}
	return nil
}

// EvaluateChat: 채팅방 하나의 시즌 상태를 평가하고 필요 시 마감한다.
func (m *SeasonManager) EvaluateChat(ctx context.Context, chatID string) error {
	state, err := m.stateStore.Load(ctx, chatID)
	if err != nil {
		return fmt.Errorf("season evaluate: %w", err)
	}

	now := m.clk.Now()
	announcements := m.evaluateState(ctx, chatID, state, now)

	if err := m.stateStore.Save(ctx, chatID, state); err != nil {
		return fmt.Errorf("season evaluate: %w", err)
	}

	if len(announcements) > 0 && m.announcer != nil {
		if err := m.announcer.Announce(ctx, chatID, announcements); err != nil {
			m.logger.Error("season_announce_failed", "chat_id", chatID, "err", err)
		}
	}
	return nil
}

// evaluateState: 시즌 상태 기계 한 스텝.
// NoSeason -> Active -> Inactive -> Active ... 로 전이하며 종료 상태는 없다.
func (m *SeasonManager) evaluateState(ctx context.Context, chatID string, state *ripmodel.State, now time.Time) []string {
	cal := clock.Decompose(now)
	if state.YearlyYear != cal.Year {
		state.Yearly = make(map[string]*ripmodel.YearlyTotals)
		state.YearlyYear = cal.Year
	}

	window := ComputeSeasonWindow(now)
	currentlyActive := window.Contains(now)

	season := state.Season
	if season == nil {
		state.Season = &ripmodel.SeasonState{
			ID:           window.ID,
			Start:        clock.FormatDate(window.Start),
			EndExclusive: clock.FormatDate(window.EndExclusive),
			Active:       currentlyActive,
		}
		m.logger.Info("season_adopted", "chat_id", chatID, "season_id", window.ID, "active", currentlyActive)
		return nil
	}

	var announcements []string
	if (season.Active && !currentlyActive) || season.ID != window.ID {
		announcements = m.finalizeSeason(ctx, chatID, state, now)
	}

	state.Season = &ripmodel.SeasonState{
		ID:           window.ID,
		Start:        clock.FormatDate(window.Start),
		EndExclusive: clock.FormatDate(window.EndExclusive),
		Active:       currentlyActive,
	}
	return announcements
}

// finalizeSeason: 시즌을 마감한다.
// 우승자 결정 -> 발표 페이로드 생성 -> 연간 누적 합산 -> 시즌 통계 초기화 -> 아카이브.
func (m *SeasonManager) finalizeSeason(ctx context.Context, chatID string, state *ripmodel.State, now time.Time) []string {
	season := state.Season

	if len(state.SeasonMap) == 0 {
		m.logger.Info("season_finalized_empty", "chat_id", chatID, "season_id", season.ID)
		return []string{m.provider.Get(messages.SeasonNoStats, messageprovider.P("id", season.ID))}
	}

	ripWinner, netWinner := pickSeasonWinners(state.SeasonMap)
	ripStats := state.SeasonMap[ripWinner]
	netStats := state.SeasonMap[netWinner]

	announcements := []string{
		m.provider.Get(messages.SeasonEndHeader, messageprovider.P("id", season.ID)),
		m.provider.Get(messages.SeasonRipWinner,
			messageprovider.P("nickname", ripWinner),
			messageprovider.P("rips", formatNumber(ripStats.SeasonRips)),
		),
		m.provider.Get(messages.SeasonNetWinner,
			messageprovider.P("nickname", netWinner),
			messageprovider.P("net", formatNumber(netStats.Net())),
		),
	}

	var users []repository.SeasonUserParams
	for userID, stats := range state.SeasonMap {
		yearly := state.YearlyOf(userID)
		yearly.YearRips += stats.SeasonRips
		yearly.YearGambleNet += stats.Net()
		users = append(users, repository.SeasonUserParams{
			UserID:     userID,
			SeasonRips: stats.SeasonRips,
			GambleBet:  stats.SeasonGambleBet,
			GambleWon:  stats.SeasonGambleWon,
		})
	}
	state.SeasonMap = make(map[string]*ripmodel.SeasonStats)

	if m.repo != nil {
		err := m.repo.RecordSeasonResult(ctx, repository.SeasonResultParams{
			SeasonID:    season.ID,
			ChatID:      chatID,
			StartDate:   season.Start,
			EndDate:     season.EndExclusive,
			RipWinnerID: &ripWinner,
			NetWinnerID: &netWinner,
			Users:       users,
			FinalizedAt: now,
		})
		if err != nil {
			m.logger.Error("season_archive_failed", "chat_id", chatID, "season_id", season.ID, "err", err)
		}
	}

	m.logger.Info("season_finalized",
		"chat_id", chatID, "season_id", season.ID,
		"rip_winner", ripWinner, "net_winner", netWinner, "participants", len(users))
	return announcements
}

// pickSeasonWinners: 립 우승자와 순익 우승자를 고른다.
// 동률은 맵 순회 순서상 먼저 본 사용자가 이긴다.
func pickSeasonWinners(seasonMap map[string]*ripmodel.SeasonStats) (ripWinner, netWinner string) {
	first := true
	var bestRips, bestNet int64
	for userID, stats := range seasonMap {
		if first || stats.SeasonRips > bestRips {
			bestRips = stats.SeasonRips
			ripWinner = userID
		}
		if first || stats.Net() > bestNet {
			bestNet = stats.Net()
			netWinner = userID
		}
		first = false
	}
	return ripWinner, netWinner
}

// SeasonStatus: 현재 시즌 윈도우 요약 문자열을 만든다. (조회 전용)
func (m *SeasonManager) SeasonStatus(ctx context.Context, chatID string) (string, error) {
	state, err := m.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("season status: %w", err)
	}

	now := m.clk.Now()
	window := ComputeSeasonWindow(now)
	if window.Contains(now) {
		return m.provider.Get(messages.SeasonStatusActive,
			messageprovider.P("id", window.ID),
			messageprovider.P("end", clock.FormatDate(window.EndExclusive)),
			messageprovider.P("players", len(state.SeasonMap)),
		), nil
	}
	return m.provider.Get(messages.SeasonStatusUpcoming,
		messageprovider.P("id", window.ID),
		messageprovider.P("start", clock.FormatDate(window.Start)),
	), nil
}

// Run: 시즌 평가 틱 루프. (백그라운드 태스크용)
func (m *SeasonManager) Run(ctx context.Context, tick time.Duration) error {
	if err := m.EvaluateAll(ctx); err != nil {
		m.logger.Error("season_initial_evaluate_failed", "err", err)
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.EvaluateAll(ctx); err != nil {
				m.logger.Error("season_tick_failed", "err", err)
			}
		}
	}
}
