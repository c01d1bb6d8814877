package redis

import (
	"context"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/lockutil"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// ResolveLock: 라운드 정산의 프로세스 간 상호 배제 장치 (SET NX).
// TakeRound의 GETDEL이 단일 프로세스 내 중복을 막고, 이 락이 다중 프로세스
// 배포에서 동시 정산 진입을 막는다.
type ResolveLock struct {
	client valkey.Client
	logger *slog.Logger
}

// NewResolveLock: 새로운 ResolveLock 인스턴스를 생성한다.
func NewResolveLock(client valkey.Client, logger *slog.Logger) *ResolveLock {
	return &ResolveLock{client: client, logger: logger}
}

// TryAcquire: 정산 락 획득을 시도한다. 이미 잡혀 있으면 false를 반환한다.
func (l *ResolveLock) TryAcquire(ctx context.Context, chatID string) (bool, error) {
	return lockutil.TryAcquireSharedLock(ctx, l.client, resolveLockKey(chatID), ripconfig.RedisResolveLockTTLSeconds)
}

// Release: 정산 락을 해제한다.
func (l *ResolveLock) Release(ctx context.Context, chatID string) {
	if err := lockutil.ReleaseSharedLock(ctx, l.client, resolveLockKey(chatID)); err != nil {
		l.logger.Warn("resolve_lock_release_failed", "chat_id", chatID, "err", err)
	}
}
