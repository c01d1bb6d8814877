package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/gamesession"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// StateStore: 채팅방 단위 영속 상태 블롭 저장소.
// 공통 gamesession.Store를 내부적으로 사용하여 JSON 직렬화/CRUD를 위임합니다.
// 핸들러는 Load 후 메모리에서 변경하고 Save로 전체를 덮어쓴다.
type StateStore struct {
	base *gamesession.Store[ripmodel.State]
}

// NewStateStore: 새로운 StateStore 인스턴스를 생성합니다.
func NewStateStore(client valkey.Client, logger *slog.Logger) *StateStore {
	return &StateStore{
		base: gamesession.NewStore[ripmodel.State](client, logger, gamesession.Config{
			KeyFunc: stateKey,
			TTL:     time.Duration(ripconfig.RedisStateTTLSeconds) * time.Second,
		}),
	}
}

// Load: 채팅방 상태를 조회합니다. 블롭이 없거나 스키마 버전이 낮으면 빈 상태를 반환한다.
func (s *StateStore) Load(ctx context.Context, chatID string) (*ripmodel.State, error) {
	state, err := s.base.Load(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if state == nil {
		return ripmodel.NewState(ripconfig.StateVersion), nil
	}
	if state.Version != ripconfig.StateVersion {
		s.base.Logger().Warn("state_version_mismatch_reset",
			"chat_id", chatID, "found", state.Version, "expected", ripconfig.StateVersion)
		return ripmodel.NewState(ripconfig.StateVersion), nil
	}
	state.EnsureMaps()
	return state, nil
}

// Save: 채팅방 상태 전체를 저장합니다.
func (s *StateStore) Save(ctx context.Context, chatID string, state *ripmodel.State) error {
	if state == nil {
		return fmt.Errorf("save state: state is nil")
	}
	state.Version = ripconfig.StateVersion
	if err := s.base.Save(ctx, chatID, *state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Delete: 채팅방 상태를 삭제합니다. (관리자 초기화용)
func (s *StateStore) Delete(ctx context.Context, chatID string) error {
	if err := s.base.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	s.base.Logger().Info("state_deleted", "chat_id", chatID)
	return nil
}

// ListChatIDs: 상태 블롭이 존재하는 채팅방 ID 목록을 조회합니다. (시즌 틱 순회용, SCAN)
func (s *StateStore) ListChatIDs(ctx context.Context) ([]string, error) {
	client := s.base.Client()
	pattern := ripconfig.RedisKeyStatePrefix + ":*"
	prefixLen := len(ripconfig.RedisKeyStatePrefix) + 1

	var chatIDs []string
	cursor := uint64(0)
	for {
		cmd := client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		entry, err := client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan state keys: %w", err)
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

// Client: 내부 Valkey 클라이언트를 반환합니다.
func (s *StateStore) Client() valkey.Client {
	return s.base.Client()
}
