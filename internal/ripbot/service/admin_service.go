package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	riperrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/errors"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
	ripredis "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/redis"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/repository"
)

// AdminService: 관리자 전용 스탯 조정 작업. 조정 내역은 Postgres에 남긴다.
type AdminService struct {
	stateStore *ripredis.StateStore
	repo       *repository.Repository
	provider   *messageprovider.Provider
	logger     *slog.Logger
}

// NewAdminService: 새로운 AdminService 인스턴스를 생성한다.
func NewAdminService(
	stateStore *ripredis.StateStore,
	repo *repository.Repository,
	provider *messageprovider.Provider,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{stateStore: stateStore, repo: repo, provider: provider, logger: logger}
}

// AdjustXP: 대상 사용자의 XP를 부호 있는 증감량만큼 조정한다. 잔고는 0 아래로 내려가지 않는다.
func (s *AdminService) AdjustXP(ctx context.Context, chatID, adminID, targetUserID string, delta int64) (string, error) {
	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("adjust xp: %w", err)
	}

	user := state.User(targetUserID)
	user.XP += delta
	if user.XP < 0 {
		user.XP = 0
	}

	if err := s.stateStore.Save(ctx, chatID, state); err != nil {
		return "", fmt.Errorf("adjust xp: %w", err)
	}

	s.audit(ctx, repository.AdminAuditParams{
		ChatID:       chatID,
		AdminUserID:  adminID,
		TargetUserID: targetUserID,
		Action:       repository.AdminActionAddXP,
		Delta:        delta,
		ResultValue:  user.XP,
	})

	s.logger.Info("admin_xp_adjusted",
		"chat_id", chatID, "admin_id", adminID, "target", targetUserID, "delta", delta, "balance", user.XP)
	return s.provider.Get(messages.AdminXPAdjusted,
		messageprovider.P("nickname", targetUserID),
		messageprovider.P("delta", formatNumber(delta)),
		messageprovider.P("balance", formatNumber(user.XP)),
	), nil
}

// AddRips: 대상 사용자의 누적 립 카운트를 더한다. 양수만 허용한다.
func (s *AdminService) AddRips(ctx context.Context, chatID, adminID, targetUserID string, amount int64) (string, error) {
	if amount <= 0 {
		return "", riperrors.InvalidAdminArgsError{Reason: "rip amount must be positive"}
	}

	state, err := s.stateStore.Load(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("add rips: %w", err)
	}

	user := state.User(targetUserID)
	user.AllTimeRips += amount

	if err := s.stateStore.Save(ctx, chatID, state); err != nil {
		return "", fmt.Errorf("add rips: %w", err)
	}

	s.audit(ctx, repository.AdminAuditParams{
		ChatID:       chatID,
		AdminUserID:  adminID,
		TargetUserID: targetUserID,
		Action:       repository.AdminActionAddRip,
		Delta:        amount,
		ResultValue:  user.AllTimeRips,
	})

	s.logger.Info("admin_rips_added",
		"chat_id", chatID, "admin_id", adminID, "target", targetUserID, "amount", amount, "total", user.AllTimeRips)
	return s.provider.Get(messages.AdminRipsAdded,
		messageprovider.P("nickname", targetUserID),
		messageprovider.P("amount", formatNumber(amount)),
		messageprovider.P("total", formatNumber(user.AllTimeRips)),
	), nil
}

func (s *AdminService) audit(ctx context.Context, p repository.AdminAuditParams) {
	if s.repo == nil {
		return
	}
	if err := s.repo.RecordAdminAudit(ctx, p); err != nil {
		s.logger.Error("admin_audit_failed", "chat_id", p.ChatID, "action", p.Action, "err", err)
	}
}
