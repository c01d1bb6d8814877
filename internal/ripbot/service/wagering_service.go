package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	riperrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/errors"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
)

// RoundTimer: 라운드 마감 타이머 등록 인터페이스
type RoundTimer interface {
	Schedule(chatID string, d time.Duration)
}

// Announcer: 명령 응답 경로 밖에서 (타이머 정산 등) 채팅방으로 발표를 내보낸다.
type Announcer interface {
	Announce(ctx context.Context, chatID string, texts []string) error
}

// WageringService: 룰렛 베팅 라운드의 개설/베팅/정산 서비스.
// 베팅 금액은 등록 즉시 잔고에서 차감(에스크로)되고, 정산 시 당첨금만 돌아온다.
type WageringService struct {
	stateStore  *ripredis.StateStore
	roundStore  *ripredis.RoundStore
	resolveLock *ripredis.ResolveLock
	provider    *messageprovider.Provider
	random      RandomSource
	clk         clock.Clock
	timer       RoundTimer
	announcer   Announcer
	cfg         ripconfig.GameConfig
	logger      *slog.Logger
}

// NewWageringService: 새로운 WageringService 인스턴스를 생성한다.
func NewWageringService(
	stateStore *ripredis.StateStore,
	roundStore *ripredis.RoundStore,
	resolveLock *ripredis.ResolveLock,
	provider *messageprovider.Provider,
	random RandomSource,
	clk clock.Clock,
	timer RoundTimer,
	cfg ripconfig.GameConfig,
	logger *slog.Logger,
) *WageringService {
	return &WageringService{
		stateStore:  stateStore,
		roundStore:  roundStore,
		resolveLock: resolveLock,
		provider:    provider,
		random:      random,
		clk:         clk,
		timer:       timer,
		cfg:         cfg,
		logger:      logger,
	}
}

// SetAnnouncer: 타이머 정산 발표용 퍼블리셔를 연결한다.
func (s *WageringService) SetAnnouncer(a Announcer) {
	s.announcer = a
}

// ParseBetPick: 베팅 대상 인자를 (종류, 라벨)로 해석한다.
func ParseBetPick(arg string) (ripmodel.BetType, string, error) {
	pick := strings.ToLower(strings.TrimSpace(arg))
	switch pick {
	case "red":
		return ripmodel.BetTypeRed, "", nil
	case "black":
		return ripmodel.BetTypeBlack, "", nil
	}
	if IsValidSlotLabel(pick) {
		return ripmodel.BetTypeNumber, pick, nil
	}
	return "", "", riperrors.InvalidPickError{Pick: arg}
}

// PlaceBet: 베팅을 등록한다. 열린 라운드가 없으면 새 라운드를 개설하고 타이머를 건다.
func (s *WageringService) PlaceBet(
	ctx context.Context,
	chatID string,
	userID string,
	nickname string,
	betType ripmodel.BetType,
	pick string,
	amount int64,
) ([]string, error) {
	if amount < s.cfg.MinimumBet {
		return nil, riperrors.BetTooSmallError{Minimum: s.cfg.MinimumBet, Amount: amount}
	}

	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}

	user := state.User(userID)
	if user.XP < amount {
		return nil, riperrors.InsufficientFundsError{UserID: userID, Balance: user.XP, Amount: amount}
	}

	now := s.clk.Now()
	round, err := s.roundStore.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}

	opened := false
	if round == nil {
		window := time.Duration(s.cfg.RoundWindowSeconds) * time.Second
		round = &ripmodel.WageringRound{
			ChatID:    chatID,
			StartTime: now,
			EndTime:   now.Add(window),
		}
		opened = true
	}

	// 에스크로: 라운드 저장 전에 잔고에서 먼저 차감한다.
	user.XP -= amount
	state.SeasonOf(userID).SeasonGambleBet += amount

	round.Bets = append(round.Bets, ripmodel.Bet{
		UserID: userID,
		Sender: nickname,
		Type:   betType,
		Pick:   pick,
		Amount: amount,
	})

	if err := s.stateStore.Save(ctx, chatID, state); err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}
	if err := s.roundStore.Save(ctx, chatID, *round); err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}

	remaining := int64(round.Remaining(now).Seconds())
	var replies []string
	if opened {
		s.timer.Schedule(chatID, round.Remaining(now))
		replies = append(replies, s.provider.Get(messages.BetRoundOpened,
			messageprovider.P("seconds", s.cfg.RoundWindowSeconds),
			messageprovider.P("minimum", formatNumber(s.cfg.MinimumBet)),
		))
	}
	replies = append(replies, s.provider.Get(messages.BetPlaced,
		messageprovider.P("nickname", nickname),
		messageprovider.P("amount", formatNumber(amount)),
		messageprovider.P("pick", describePick(betType, pick)),
		messageprovider.P("seconds", remaining),
	))

	s.logger.Info("bet_placed",
		"chat_id", chatID, "user_id", userID,
		"type", string(betType), "pick", pick, "amount", amount, "opened", opened)
	return replies, nil
}

// RoundStatus: 진행 중 라운드 현황 문자열을 만든다. 열린 라운드가 없으면 NoOpenRoundError.
func (s *WageringService) RoundStatus(ctx context.Context, chatID string) (string, error) {
	round, err := s.roundStore.Get(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("round status: %w", err)
	}
	if round == nil {
		return "", riperrors.NoOpenRoundError{ChatID: chatID}
	}
	return s.provider.Get(messages.RoundStatus,
		messageprovider.P("count", len(round.Bets)),
		messageprovider.P("escrow", formatNumber(round.EscrowTotal())),
		messageprovider.P("seconds", int64(round.Remaining(s.clk.Now()).Seconds())),
	), nil
}

// ResolveRound: 라운드를 정산하고 발표 메시지 목록을 반환한다.
// 라운드가 이미 정산되었거나 다른 프로세스가 정산 중이면 nil을 반환한다.
func (s *WageringService) ResolveRound(ctx context.Context, chatID string) ([]string, error) {
	acquired, err := s.resolveLock.TryAcquire(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("resolve round: %w", err)
	}
	if !acquired {
		s.logger.Debug("resolve_already_in_progress", "chat_id", chatID)
		return nil, nil
	}
	defer s.resolveLock.Release(ctx, chatID)

	round, err := s.roundStore.TakeRound(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("resolve round: %w", err)
	}
	if round == nil {
		return nil, nil
	}

	slot := SpinWheel(s.random)
	color := SlotColor(slot)

	if len(round.Bets) == 0 {
		return []string{s.provider.Get(messages.ResultNoBets,
			messageprovider.P("slot", slot),
			messageprovider.P("color", color),
		)}, nil
	}

	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("resolve round: %w", err)
	}

	outcomes := settleBets(state, round.Bets, slot)

	if err := s.stateStore.Save(ctx, chatID, state); err != nil {
		return nil, fmt.Errorf("resolve round: %w", err)
	}

	s.logger.Info("round_resolved",
		"chat_id", chatID, "slot", slot, "color", color,
		"bets", len(round.Bets), "escrow", round.EscrowTotal())
	return s.renderResults(slot, color, outcomes), nil
}

// ResolveAndAnnounce: 타이머/부팅 경로의 정산 진입점. 결과를 채팅방으로 발표한다.
func (s *WageringService) ResolveAndAnnounce(ctx context.Context, chatID string) {
	texts, err := s.ResolveRound(ctx, chatID)
	if err != nil {
		s.logger.Error("round_resolve_failed", "chat_id", chatID, "err", err)
		return
	}
	if len(texts) == 0 || s.announcer == nil {
		return
	}
	if err := s.announcer.Announce(ctx, chatID, texts); err != nil {
		s.logger.Error("round_announce_failed", "chat_id", chatID, "err", err)
	}
}

// ResumeOpenRounds: 재시작 후 남아 있는 라운드의 타이머를 복구한다.
// 이미 마감 시각을 지난 라운드는 즉시 정산한다.
func (s *WageringService) ResumeOpenRounds(ctx context.Context) error {
	chatIDs, err := s.roundStore.ListOpenChatIDs(ctx)
	if err != nil {
		return fmt.Errorf("resume rounds: %w", err)
	}

	now := s.clk.Now()
	for _, chatID := range chatIDs {
		round, err := s.roundStore.Get(ctx, chatID)
		if err != nil {
			s.logger.Error("resume_round_load_failed", "chat_id", chatID, "err", err)
			continue
		}
		if round == nil {
			continue
		}

		remaining := round.Remaining(now)
		if remaining == 0 {
			s.logger.Info("resume_round_overdue", "chat_id", chatID)
			s.ResolveAndAnnounce(ctx, chatID)
			continue
		}
		s.logger.Info("resume_round_rescheduled", "chat_id", chatID, "remaining", remaining)
		s.timer.Schedule(chatID, remaining)
	}
	return nil
}

// betOutcome: 정산 후 사용자별 집계
type betOutcome struct {
	UserID   string
	Nickname string
	Bet      int64
	Won      int64
}

func (o betOutcome) net() int64 { return o.Won - o.Bet }

// settleBets: 베팅별 지급액을 계산해 상태에 반영하고 사용자별 집계를 반환한다.
// 집계 순서는 베팅 등록 순서를 따르므로 순익 동률은 먼저 베팅한 쪽이 앞선다.
func settleBets(state *ripmodel.State, bets []ripmodel.Bet, slot string) []betOutcome {
	index := make(map[string]int)
	var outcomes []betOutcome

	for _, bet := range bets {
		payout := BetPayout(bet, slot, ripconfig.ColorPayoutMultiple, ripconfig.ExactPayoutMultiple)
		if payout > 0 {
			state.User(bet.UserID).XP += payout
			state.SeasonOf(bet.UserID).SeasonGambleWon += payout
		}

		i, ok := index[bet.UserID]
		if !ok {
			i = len(outcomes)
			index[bet.UserID] = i
			outcomes = append(outcomes, betOutcome{UserID: bet.UserID, Nickname: bet.Sender})
		}
		outcomes[i].Bet += bet.Amount
		outcomes[i].Won += payout
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].net() > outcomes[j].net()
	})
	return outcomes
}

// renderResults: 순익 순으로 정렬된 집계를 발표 텍스트로 바꾼다. 상위 10명까지만 보여준다.
func (s *WageringService) renderResults(slot, color string, outcomes []betOutcome) []string {
	if len(outcomes) > ripconfig.LeaderboardLimit {
		outcomes = outcomes[:ripconfig.LeaderboardLimit]
	}
	texts := []string{
		s.provider.Get(messages.ResultSpin,
			messageprovider.P("slot", slot),
			messageprovider.P("color", color),
		),
		s.provider.Get(messages.ResultHeader),
	}
	for rank, o := range outcomes {
		key := messages.ResultLineWin
		if o.Won == 0 {
			key = messages.ResultLineLos
		}
		texts = append(texts, s.provider.Get(key,
			messageprovider.P("rank", rank+1),
			messageprovider.P("nickname", o.Nickname),
			messageprovider.P("bet", formatNumber(o.Bet)),
			messageprovider.P("won", formatNumber(o.Won)),
			messageprovider.P("net", formatNumber(o.net())),
		))
	}
	return texts
}

func describePick(betType ripmodel.BetType, pick string) string {
	if betType == ripmodel.BetTypeNumber {
		return pick
	}
	return string(betType)
}
