// Package redis 는 립 봇의 Redis/Valkey 키 생성 함수들을 정의한다.
package redis

import (
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/valkeyx"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// stateKey 는 채팅방 상태 블롭 저장용 키를 생성한다.
// 형식: rip:state:{chatID}
func stateKey(chatID string) string {
	return valkeyx.BuildKey(ripconfig.RedisKeyStatePrefix, chatID)
}

// roundKey 는 진행 중 베팅 라운드 저장용 키를 생성한다.
// 형식: rip:round:{chatID}
func roundKey(chatID string) string {
	return valkeyx.BuildKey(ripconfig.RedisKeyRoundPrefix, chatID)
}

// resolveLockKey 는 라운드 정산 중복 방지 락 키를 생성한다.
// 형식: rip:resolve-lock:{chatID}
func resolveLockKey(chatID string) string {
	return valkeyx.BuildKey(ripconfig.RedisKeyResolveLockPrefix, chatID)
}

// processingKey 는 메시지 처리 중 락 키를 생성한다.
// 형식: rip:processing:{chatID}
func processingKey(chatID string) string {
	return valkeyx.BuildKey(ripconfig.RedisKeyProcessingPrefix, chatID)
}
