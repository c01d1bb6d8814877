package mq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/health"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mqmsg"
	domainmodels "github.com/park285/llm-kakao-bots/rip-bot-go/internal/domain/models"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	riperrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/errors"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripservice "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/service"
)

// GameCommandHandler: 파싱된 명령어를 적절한 서비스 메서드로 라우팅하고 응답을 생성하는 핸들러
type GameCommandHandler struct {
	wageringService *ripservice.WageringService
	activityService *ripservice.ActivityService
	ledgerView      *ripservice.LedgerView
	adminService    *ripservice.AdminService
	seasonManager   *ripservice.SeasonManager
	msgProvider     *messageprovider.Provider
	adminUserIDs    map[string]struct{}
	commandPrefix   string
	logger          *slog.Logger
	handlers        map[CommandKind]commandHandlerFunc
}

type commandHandlerFunc func(context.Context, mqmsg.InboundMessage, Command) ([]string, error)

// NewGameCommandHandler: 새로운 GameCommandHandler 인스턴스를 생성하고 명령어별 핸들러를 등록한다.
func NewGameCommandHandler(
	wageringService *ripservice.WageringService,
	activityService *ripservice.ActivityService,
	ledgerView *ripservice.LedgerView,
	adminService *ripservice.AdminService,
	seasonManager *ripservice.SeasonManager,
	msgProvider *messageprovider.Provider,
	adminCfg ripconfig.AdminConfig,
	commandPrefix string,
	logger *slog.Logger,
) *GameCommandHandler {
	adminUserIDs := make(map[string]struct{}, len(adminCfg.UserIDs))
	for _, id := range adminCfg.UserIDs {
		adminUserIDs[id] = struct{}{}
	}

	h := &GameCommandHandler{
		wageringService: wageringService,
		activityService: activityService,
		ledgerView:      ledgerView,
		adminService:    adminService,
		seasonManager:   seasonManager,
		msgProvider:     msgProvider,
		adminUserIDs:    adminUserIDs,
		commandPrefix:   commandPrefix,
		logger:          logger,
	}

	h.handlers = map[CommandKind]commandHandlerFunc{
		CommandBet:     h.handleBet,
		CommandRound:   h.handleRound,
		CommandStats:   h.handleStats,
		CommandStreak:  h.handleStreak,
		CommandCrit:    h.handleCrit,
		CommandSeason:  h.handleSeason,
		CommandTop:     h.handleTop,
		CommandRecords: h.handleRecords,
		CommandAddXP:   h.handleAddXP,
		CommandAddRips: h.handleAddRips,
		CommandPing:    h.handlePing,
		CommandUptime:  h.handleUptime,
		CommandVersion: h.handleVersion,
		CommandHelp:    h.handleHelp,
		CommandUnknown: h.handleUnknown,
	}

	return h
}

// ProcessCommand: 인입된 메시지와 파싱된 명령어를 바탕으로 적절한 핸들러를 실행하여 응답을 반환한다.
func (h *GameCommandHandler) ProcessCommand(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	handler, ok := h.handlers[command.Kind]
	if !ok {
		h.logger.Debug("command_kind_unhandled", "kind", command.Kind)
		return []string{h.msgProvider.Get(messages.ErrorUnknownCommand, messageprovider.P("prefix", h.commandPrefix))}, nil
	}

	return handler(ctx, message, command)
}

// IsAdminUser: 관리자 목록에 등록된 사용자인지 판정한다.
func (h *GameCommandHandler) IsAdminUser(userID string) bool {
	_, ok := h.adminUserIDs[userID]
	return ok
}

func (h *GameCommandHandler) displayName(message mqmsg.InboundMessage) string {
	return domainmodels.DisplayName(message.ChatID, message.UserID, message.Sender,
		h.msgProvider.Get(messages.UserAnonymous))
}

func (h *GameCommandHandler) handleBet(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	if command.BetType == "" {
		return nil, riperrors.InvalidPickError{Pick: command.BetPick}
	}

	replies, err := h.wageringService.PlaceBet(
		ctx, message.ChatID, message.UserID, h.displayName(message),
		command.BetType, command.BetPick, command.BetAmount)
	if err != nil {
		return nil, fmt.Errorf("place bet failed: %w", err)
	}
	return replies, nil
}

func (h *GameCommandHandler) handleRound(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.wageringService.RoundStatus(ctx, message.ChatID)
	if err != nil {
		return nil, fmt.Errorf("round status failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleStats(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.activityService.Stats(ctx, message.ChatID, message.UserID, h.displayName(message))
	if err != nil {
		return nil, fmt.Errorf("stats failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleStreak(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.activityService.Streak(ctx, message.ChatID, message.UserID, h.displayName(message))
	if err != nil {
		return nil, fmt.Errorf("streak failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleCrit(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.activityService.CritStatus(ctx, message.ChatID, message.UserID, h.displayName(message))
	if err != nil {
		return nil, fmt.Errorf("crit status failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleSeason(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.seasonManager.SeasonStatus(ctx, message.ChatID)
	if err != nil {
		return nil, fmt.Errorf("season status failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleTop(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	scope := command.TopScope
	if scope == "" {
		scope = ripmodel.LeaderboardSeasonRips
	}
	text, err := h.ledgerView.Leaderboard(ctx, message.ChatID, scope)
	if err != nil {
		return nil, fmt.Errorf("leaderboard failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleRecords(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	text, err := h.ledgerView.Records(ctx, message.ChatID)
	if err != nil {
		return nil, fmt.Errorf("records failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleAddXP(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	if !h.IsAdminUser(message.UserID) {
		return []string{h.msgProvider.Get(messages.AdminDenied)}, nil
	}
	if command.TargetUserID == "" || command.AdminAmount == 0 {
		return nil, riperrors.InvalidAdminArgsError{Reason: "target and nonzero delta required"}
	}

	text, err := h.adminService.AdjustXP(ctx, message.ChatID, message.UserID, command.TargetUserID, command.AdminAmount)
	if err != nil {
		return nil, fmt.Errorf("adjust xp failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handleAddRips(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	if !h.IsAdminUser(message.UserID) {
		return []string{h.msgProvider.Get(messages.AdminDenied)}, nil
	}
	if command.TargetUserID == "" {
		return nil, riperrors.InvalidAdminArgsError{Reason: "target required"}
	}

	text, err := h.adminService.AddRips(ctx, message.ChatID, message.UserID, command.TargetUserID, command.AdminAmount)
	if err != nil {
		return nil, fmt.Errorf("add rips failed: %w", err)
	}
	return []string{text}, nil
}

func (h *GameCommandHandler) handlePing(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	return []string{h.msgProvider.Get(messages.Pong)}, nil
}

func (h *GameCommandHandler) handleUptime(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	status := health.Get()
	return []string{h.msgProvider.Get(messages.Uptime,
		messageprovider.P("uptime", status.Uptime),
		messageprovider.P("version", status.Version),
	)}, nil
}

func (h *GameCommandHandler) handleVersion(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	return []string{h.msgProvider.Get(messages.VersionInfo,
		messageprovider.P("version", health.Get().Version),
	)}, nil
}

func (h *GameCommandHandler) handleHelp(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	return []string{h.msgProvider.Get(messages.HelpMessage,
		messageprovider.P("prefix", h.commandPrefix),
		messageprovider.P("minimum", ripconfig.MinimumBet),
	)}, nil
}

func (h *GameCommandHandler) handleUnknown(ctx context.Context, message mqmsg.InboundMessage, command Command) ([]string, error) {
	return []string{h.msgProvider.Get(messages.ErrorUnknownCommand, messageprovider.P("prefix", h.commandPrefix))}, nil
}
