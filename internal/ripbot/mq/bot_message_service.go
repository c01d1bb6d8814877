package mq

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mqmsg"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/processinglock"
	domainmodels "github.com/park285/llm-kakao-bots/rip-bot-go/internal/domain/models"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
	ripsecurity "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/security"
	ripservice "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/service"
)

// BotMessageService: 립 봇의 메시지 흐름을 총괄하는 오케스트레이터.
// 접두사 명령은 파서/핸들러로, 일반 메시지는 트리거 단어 분류를 거쳐
// 활동 기록 파이프라인으로 라우팅한다.
type BotMessageService struct {
	commandHandler        *GameCommandHandler
	activityService       *ripservice.ActivityService
	messageSender         *MessageSender
	msgProvider           *messageprovider.Provider
	accessControl         *ripsecurity.AccessControl
	commandParser         *CommandParser
	processingLockService *ripredis.ProcessingLockService
	duplicateGuard        *ripsecurity.DuplicateGuard
	commandPrefix         string
	logger                *slog.Logger
}

// NewBotMessageService: 모든 종속성을 주입받아 BotMessageService 인스턴스를 생성한다.
func NewBotMessageService(
	commandHandler *GameCommandHandler,
	activityService *ripservice.ActivityService,
	messageSender *MessageSender,
	msgProvider *messageprovider.Provider,
	accessControl *ripsecurity.AccessControl,
	commandParser *CommandParser,
	processingLockService *ripredis.ProcessingLockService,
	duplicateGuard *ripsecurity.DuplicateGuard,
	commandPrefix string,
	logger *slog.Logger,
) *BotMessageService {
	return &BotMessageService{
		commandHandler:        commandHandler,
		activityService:       activityService,
		messageSender:         messageSender,
		msgProvider:           msgProvider,
		accessControl:         accessControl,
		commandParser:         commandParser,
		processingLockService: processingLockService,
		duplicateGuard:        duplicateGuard,
		commandPrefix:         strings.TrimSpace(commandPrefix),
		logger:                logger,
	}
}

// HandleMessage: 스트림으로부터 수신된 인바운드 메시지를 처리한다.
func (s *BotMessageService) HandleMessage(ctx context.Context, message mqmsg.InboundMessage) {
	cmd := s.commandParser.Parse(message.Content)
	if cmd == nil {
		s.handleActivityMessage(ctx, message)
		return
	}

	if !s.isAccessAllowed(ctx, message, *cmd) {
		return
	}

	s.handleCommand(ctx, message, *cmd)
}

// handleActivityMessage: 접두사 없는 일반 메시지를 트리거 단어로 분류해 활동으로 기록한다.
// 분류 불가 메시지와 접근 차단 사용자는 조용히 무시한다.
func (s *BotMessageService) handleActivityMessage(ctx context.Context, message mqmsg.InboundMessage) {
	category, ok := ripservice.ClassifyMessage(message.Content)
	if !ok {
		return
	}

	if reason := s.accessControl.GetDenialReason(message.UserID, message.ChatID); reason != nil {
		s.logger.Debug("activity_dropped_access", "chat_id", message.ChatID, "user_id", message.UserID)
		return
	}

	if s.duplicateGuard.SeenRecently(message.ChatID, message.UserID, message.Content) {
		s.logger.Debug("activity_dropped_duplicate", "chat_id", message.ChatID, "user_id", message.UserID)
		return
	}

	if !s.startProcessing(ctx, message, false) {
		return
	}
	defer func() {
		_ = s.processingLockService.FinishProcessing(ctx, message.ChatID)
	}()

	nickname := domainmodels.DisplayName(message.ChatID, message.UserID, message.Sender,
		s.msgProvider.Get(messages.UserAnonymous))
	replies, err := s.activityService.RecordActivity(ctx, message.ChatID, message.UserID, nickname, category)
	if err != nil {
		s.logger.Error("activity_record_failed", "chat_id", message.ChatID, "user_id", message.UserID, "err", err)
		return
	}

	for _, reply := range replies {
		if err := s.messageSender.SendFinal(ctx, message, reply); err != nil {
			s.logger.Error("activity_reply_failed", "chat_id", message.ChatID, "err", err)
			return
		}
	}
}

func (s *BotMessageService) handleCommand(ctx context.Context, message mqmsg.InboundMessage, command Command) {
	if command.MutatesState() {
		if !s.startProcessing(ctx, message, true) {
			return
		}
		defer func() {
			_ = s.processingLockService.FinishProcessing(ctx, message.ChatID)
		}()
	}

	responses, err := s.commandHandler.ProcessCommand(ctx, message, command)
	if err != nil {
		mapping := GetErrorMapping(err, s.commandPrefix)
		s.logger.Warn("command_failed",
			"chat_id", message.ChatID, "user_id", message.UserID, "kind", command.Kind, "err", err)
		_ = s.messageSender.SendError(ctx, message, mapping)
		return
	}

	s.sendFinalResponses(ctx, message, responses)
}

// startProcessing: 처리 락을 획득한다. 이미 처리 중이면 false.
// 명령 경로(notify=true)에서는 사용자에게 에러를 돌려준다.
func (s *BotMessageService) startProcessing(ctx context.Context, message mqmsg.InboundMessage, notify bool) bool {
	err := s.processingLockService.StartProcessing(ctx, message.ChatID)
	if err == nil {
		return true
	}

	if errors.Is(err, processinglock.ErrAlreadyProcessing) {
		s.logger.Warn("message_rejected_processing", "chat_id", message.ChatID, "user_id", message.UserID)
	} else {
		s.logger.Error("processing_start_failed", "chat_id", message.ChatID, "err", err)
	}
	if notify {
		_ = s.messageSender.SendError(ctx, message, ErrorMapping{Key: messages.ErrorGeneric})
	}
	return false
}

func (s *BotMessageService) sendFinalResponses(ctx context.Context, message mqmsg.InboundMessage, responses []string) {
	sent := 0
	for _, response := range responses {
		if strings.TrimSpace(response) == "" {
			continue
		}
		if err := s.messageSender.SendFinal(ctx, message, response); err != nil {
			s.logger.Error("send_response_failed", "chat_id", message.ChatID, "err", err)
			return
		}
		sent++
	}
	if sent == 0 {
		_ = s.messageSender.SendFinal(ctx, message, "")
	}
}

func (s *BotMessageService) isAccessAllowed(ctx context.Context, message mqmsg.InboundMessage, command Command) bool {
	if command.IsAdmin() {
		return true
	}

	reason := s.accessControl.GetDenialReason(message.UserID, message.ChatID)
	if reason == nil {
		return true
	}

	s.logger.Warn("access_denied", "user_id", message.UserID, "chat_id", message.ChatID, "reason", *reason)
	if *reason == messages.ErrorAccessDenied {
		return false
	}

	mapping := ErrorMapping{Key: *reason}
	if *reason == messages.ErrorUserBlocked {
		nickname := domainmodels.DisplayName(message.ChatID, message.UserID, message.Sender,
			s.msgProvider.Get(messages.UserAnonymous))
		mapping.Params = []messageprovider.Param{messageprovider.P("nickname", nickname)}
	}

	_ = s.messageSender.SendError(ctx, message, mapping)
	return false
}
