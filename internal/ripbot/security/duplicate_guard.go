package security

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	commoncache "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/cache"
)

// DuplicateGuard: LRU + TTL 캐시 기반의 재전달 억제 장치.
// 컨슈머 그룹 재할당 시 같은 활동 메시지가 짧은 간격으로 다시 들어오면
// 중복 XP 적립을 막기 위해 억제한다.
type DuplicateGuard struct {
	cache *commoncache.TTLLRUCache
}

// NewDuplicateGuard: DuplicateGuard 인스턴스를 생성합니다.
func NewDuplicateGuard(maxEntries int, ttl time.Duration) *DuplicateGuard {
	return &DuplicateGuard{cache: commoncache.NewTTLLRUCache(maxEntries, ttl)}
}

// SeenRecently: 동일 키를 TTL 내에 본 적 있는지 확인하고 기록한다.
func (g *DuplicateGuard) SeenRecently(chatID, userID, content string) bool {
	if g == nil || g.cache == nil {
		return false
	}

	key := duplicateKey(chatID, userID, content)
	if _, ok := g.cache.Get(key); ok {
		return true
	}
	g.cache.Set(key, true)
	return false
}

func duplicateKey(chatID, userID, content string) string {
	sum := sha256.Sum256([]byte(chatID + "\x00" + userID + "\x00" + content))
	return hex.EncodeToString(sum[:])
}
