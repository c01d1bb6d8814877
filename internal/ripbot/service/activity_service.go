package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
)

// ActivityService: 활동 이벤트 기록의 전체 파이프라인.
// 기간 롤오버 -> XP/카운터 증가 -> 크리티컬 판정 -> 일일 기록 보드 갱신 -> 저장.
type ActivityService struct {
	stateStore *ripredis.StateStore
	tracker    *PeriodTracker
	critEngine *CritEngine
	provider   *messageprovider.Provider
	clk        clock.Clock
	cfg        ripconfig.GameConfig
	logger     *slog.Logger
}

// NewActivityService: 새로운 ActivityService 인스턴스를 생성한다.
func NewActivityService(
	stateStore *ripredis.StateStore,
	tracker *PeriodTracker,
	critEngine *CritEngine,
	provider *messageprovider.Provider,
	clk clock.Clock,
	cfg ripconfig.GameConfig,
	logger *slog.Logger,
) *ActivityService {
	return &ActivityService{
		stateStore: stateStore,
		tracker:    tracker,
		critEngine: critEngine,
		provider:   provider,
		clk:        clk,
		cfg:        cfg,
		logger:     logger,
	}
}

// RecordActivity: 분류된 활동 이벤트 1건을 기록한다.
// 크리티컬 적중 시 지급액이 기본 XP를 대체한다. 시즌 립은 시즌이 열려 있을 때만 센다.
func (s *ActivityService) RecordActivity(
	ctx context.Context,
	chatID string,
	userID string,
	nickname string,
	category ripmodel.Category,
) ([]string, error) {
	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	now := s.clk.Now()
	activity := state.ActivityOf(userID)
	s.tracker.RecordActivity(activity, now)

	earned := category.XPAward
	crit := s.critEngine.Roll(activity, category)
	if crit.Hit {
		earned = category.CritPayout
	}

	user := state.User(userID)
	user.XP += earned
	user.AllTimeRips++
	if state.Season != nil && state.Season.Active {
		state.SeasonOf(userID).SeasonRips++
	}

	var replies []string
	if s.cfg.ActivityReplyEnabled {
		var seasonRips int64
		if stats, ok := state.SeasonMap[userID]; ok {
			seasonRips = stats.SeasonRips
		}
		replies = append(replies, s.provider.Get(messages.ActivityRegistered,
			messageprovider.P("nickname", nickname),
			messageprovider.P("xp", formatNumber(earned)),
			messageprovider.P("daily", formatNumber(activity.Daily)),
			messageprovider.P("streak", activity.Streak),
			messageprovider.P("seasonRips", formatNumber(seasonRips)),
		))
	}
	if crit.Hit {
		replies = append(replies, s.provider.Get(messages.CritHit,
			messageprovider.P("nickname", nickname),
			messageprovider.P("payout", formatNumber(category.CritPayout)),
			messageprovider.P("chance", formatPercent(crit.ChanceUsed)),
		))
		s.logger.Info("crit_hit",
			"chat_id", chatID, "user_id", userID,
			"payout", category.CritPayout, "chance", crit.ChanceUsed)
	}

	updateHighscores(state, clock.Decompose(now).DayKey, userID, activity.Daily)

	if err := s.stateStore.Save(ctx, chatID, state); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	s.logger.Debug("activity_recorded",
		"chat_id", chatID, "user_id", userID, "kind", category.Kind, "daily", activity.Daily)
	return replies, nil
}

// CritStatus: 사용자의 현재 크리티컬 확률 요약 문자열을 만든다. (조회 전용)
func (s *ActivityService) CritStatus(ctx context.Context, chatID, userID, nickname string) (string, error) {
	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("crit status: %w", err)
	}

	var chance float64
	if activity, ok := state.Activity[userID]; ok {
		chance = clampChance(activity.CritChance)
	}
	return s.provider.Get(messages.CritStatus,
		messageprovider.P("nickname", nickname),
		messageprovider.P("chance", formatPercent(chance)),
		messageprovider.P("ripInc", formatPercent(ripconfig.CritIncrementRip)),
		messageprovider.P("dabInc", formatPercent(ripconfig.CritIncrementDab)),
	), nil
}

// Stats: 사용자 스탯 요약 문자열을 만든다.
func (s *ActivityService) Stats(ctx context.Context, chatID, userID, nickname string) (string, error) {
	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("stats: %w", err)
	}

	user := state.User(userID)
	season := state.SeasonOf(userID)
	return s.provider.Get(messages.StatsUser,
		messageprovider.P("nickname", nickname),
		messageprovider.P("xp", formatNumber(user.XP)),
		messageprovider.P("allTimeRips", formatNumber(user.AllTimeRips)),
		messageprovider.P("seasonRips", formatNumber(season.SeasonRips)),
		messageprovider.P("seasonNet", formatNumber(season.Net())),
	), nil
}

// Streak: 사용자 연속 기록과 기간 카운터 요약 문자열을 만든다.
// 조회는 상태를 변경하지 않으므로 저장된 키가 지난 기간 것이면 0으로 표시한다.
func (s *ActivityService) Streak(ctx context.Context, chatID, userID, nickname string) (string, error) {
	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("streak: %w", err)
	}

	activity := state.ActivityOf(userID)
	cal := clock.Decompose(s.clk.Now())

	daily := activity.Daily
	if activity.LastDayKey != cal.DayKey {
		daily = 0
	}
	weekly := activity.Weekly
	if activity.LastWeekKey != cal.WeekKey {
		weekly = 0
	}

	return s.provider.Get(messages.StreakStatus,
		messageprovider.P("nickname", nickname),
		messageprovider.P("streak", activity.Streak),
		messageprovider.P("daily", formatNumber(daily)),
		messageprovider.P("weekly", formatNumber(weekly)),
	), nil
}

// updateHighscores: 일일 활동 카운트로 상위 기록 보드를 갱신한다.
// 같은 사용자/날짜 엔트리는 카운트만 끌어올리고, 보드는 상위 N개를 유지한다.
func updateHighscores(state *ripmodel.State, dayKey string, userID string, dailyCount int64) {
	for i := range state.Highscores {
		r := &state.Highscores[i]
		if r.UserID == userID && r.Date == dayKey {
			if dailyCount > r.Count {
				r.Count = dailyCount
				sortHighscores(state)
			}
			return
		}
	}

	state.Highscores = append(state.Highscores, ripmodel.HighscoreRecord{
		Date:   dayKey,
		UserID: userID,
		Count:  dailyCount,
	})
	sortHighscores(state)
	if len(state.Highscores) > ripconfig.HighscoreLimit {
		state.Highscores = state.Highscores[:ripconfig.HighscoreLimit]
	}
}

func sortHighscores(state *ripmodel.State) {
	sort.SliceStable(state.Highscores, func(i, j int) bool {
		return state.Highscores[i].Count > state.Highscores[j].Count
	})
}
