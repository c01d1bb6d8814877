package config

// RedisKeyPrefix 는 Redis 키 상수 목록이다.
const (
	RedisKeyPrefix            = "rip"
	RedisKeyStatePrefix       = RedisKeyPrefix + ":state"
	RedisKeyRoundPrefix       = RedisKeyPrefix + ":round"
	RedisKeyResolveLockPrefix = RedisKeyPrefix + ":resolve-lock"
	RedisKeyProcessingPrefix  = RedisKeyPrefix + ":processing"
)

// RedisStateTTLSeconds 는 Redis TTL 상수 목록이다.
// 상태 블롭과 라운드 블롭은 영구 보관한다. (TTL 0)
// 라운드에 TTL을 걸면 프로세스가 오래 죽어 있는 동안 에스크로된 베팅이 증발한다.
const (
	RedisStateTTLSeconds       = 0
	RedisRoundTTLSeconds       = 0
	RedisResolveLockTTLSeconds = 30
	RedisProcessingTTLSeconds  = 60
)

// StateVersion 상태 블롭 스키마 버전. 이전 버전 블롭은 빈 상태로 초기화된다.
const StateVersion = 3

// ReferenceTimezone 기간 경계 계산에 사용하는 기준 타임존.
const ReferenceTimezone = "America/Chicago"

// MinimumBet 등 베팅 라운드 상수 목록이다.
const (
	MinimumBet          = 420
	RoundWindowSeconds  = 90
	ColorPayoutMultiple = 2
	ExactPayoutMultiple = 36
)

// SeasonTickMinutes 시즌 평가 주기 (분).
const SeasonTickMinutes = 10

// LeaderboardLimit 등 조회 상수 목록이다.
const (
	LeaderboardLimit = 10
	HighscoreLimit   = 3
)

// CategoryKindRip 등 활동 카테고리 종류 상수 목록이다.
const (
	CategoryKindRip    = "rip"
	CategoryKindDab    = "dab"
	CategoryKindBigRip = "bigrip"
)

// XPAwardRip 등 카테고리별 XP/크리티컬 상수 목록이다.
const (
	XPAwardRip    = 420
	XPAwardDab    = 710
	XPAwardBigRip = 840

	CritPayoutRip = 4269
	CritPayoutDab = 7100

	CritIncrementRip = 0.01
	CritIncrementDab = 0.005
)

// KakaoMessageMaxLength 는 상수다.
const (
	KakaoMessageMaxLength = 500
)

// DuplicateGuardMaxEntries 등 활동 메시지 재전달 억제 캐시 상수 목록이다.
const (
	DuplicateGuardMaxEntries = 4096
	DuplicateGuardTTLSeconds = 5
)

// MQ 기본 상수 목록이다.
const (
	MQBatchSize     = 5
	MQReadTimeoutMS = 5000
	MQConcurrency   = 10
	MQStreamMaxLen  = 1000
)

// DefaultInboundStreamKey 는 기본 스트림 키 상수 목록이다.
const (
	DefaultInboundStreamKey  = "kakao:rip"
	DefaultOutboundStreamKey = "kakao:bot:reply"
)
