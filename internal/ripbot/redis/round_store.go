package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	cerrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/errors"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/gamesession"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/valkeyx"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// RoundStore: 채팅방당 최대 하나의 진행 중 베팅 라운드 저장소.
// 정산은 TakeRound(GETDEL)로 라운드를 원자적으로 가져오면서 삭제하므로
// 중복 타이머가 발동해도 두 번째 호출은 라운드를 보지 못한다.
type RoundStore struct {
	base *gamesession.Store[ripmodel.WageringRound]
}

// NewRoundStore: 새로운 RoundStore 인스턴스를 생성합니다.
func NewRoundStore(client valkey.Client, logger *slog.Logger) *RoundStore {
	return &RoundStore{
		base: gamesession.NewStore[ripmodel.WageringRound](client, logger, gamesession.Config{
			KeyFunc: roundKey,
			TTL:     time.Duration(ripconfig.RedisRoundTTLSeconds) * time.Second,
		}),
	}
}

// Get: 진행 중인 라운드를 조회합니다. (없으면 nil 반환)
func (s *RoundStore) Get(ctx context.Context, chatID string) (*ripmodel.WageringRound, error) {
	round, err := s.base.Load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	return round, nil
}

// Save: 라운드 상태를 저장합니다.
func (s *RoundStore) Save(ctx context.Context, chatID string, round ripmodel.WageringRound) error {
	if err := s.base.Save(ctx, chatID, round); err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

// TakeRound: 라운드를 조회하면서 원자적으로 삭제합니다. (GETDEL)
// 라운드가 없으면 nil을 반환하며, 이것이 정산 중복 방지의 핵심 장치다.
func (s *RoundStore) TakeRound(ctx context.Context, chatID string) (*ripmodel.WageringRound, error) {
	client := s.base.Client()

	raw, ok, err := valkeyx.GetDelBytes(ctx, client, roundKey(chatID))
	if err != nil {
		return nil, cerrors.RedisError{Operation: "round_take", Err: err}
	}
	if !ok {
		return nil, nil
	}

	var round ripmodel.WageringRound
	if err := json.Unmarshal(raw, &round); err != nil {
		return nil, cerrors.RedisError{Operation: "round_unmarshal", Err: err}
	}

	s.base.Logger().Debug("round_taken", "chat_id", chatID, "bets", len(round.Bets))
	return &round, nil
}

// Delete: 라운드를 삭제합니다.
func (s *RoundStore) Delete(ctx context.Context, chatID string) error {
	if err := s.base.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

// ListOpenChatIDs: 진행 중 라운드가 있는 채팅방 ID 목록을 조회합니다. (부팅 시 재개용, SCAN)
func (s *RoundStore) ListOpenChatIDs(ctx context.Context) ([]string, error) {
	client := s.base.Client()
	pattern := ripconfig.RedisKeyRoundPrefix + ":*"
	prefixLen := len(ripconfig.RedisKeyRoundPrefix) + 1

	var chatIDs []string
	cursor := uint64(0)
	for {
		cmd := client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		entry, err := client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, cerrors.RedisError{Operation: "round_scan", Err: err}
		}
		for _, key := range entry.Elements {
			if len(key) > prefixLen {
				chatIDs = append(chatIDs, key[prefixLen:])
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			break
		}
	}
	return chatIDs, nil
}
