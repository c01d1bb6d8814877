package config

import (
	"fmt"

	commonconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/config"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/telemetry"
)

// ServerConfig: HTTP 서버 설정 (포트 등) alias
type ServerConfig = commonconfig.ServerConfig

// ServerTuningConfig: 서버 튜닝 설정 (Timeouts, Limits 등) alias
type ServerTuningConfig = commonconfig.ServerTuningConfig

// CommandsConfig: 명령어 접두사 등 명령어 처리 관련 설정 alias
type CommandsConfig = commonconfig.CommandsConfig

// RedisConfig: Redis 연결 설정 (상태 저장용) alias
type RedisConfig = commonconfig.RedisConfig

// ValkeyMQConfig: Valkey 기반 메시지 큐 설정 alias
type ValkeyMQConfig = commonconfig.ValkeyMQConfig

// AccessConfig: 접근 제어 설정 (화이트리스트/블랙리스트) alias
type AccessConfig = commonconfig.AccessConfig

// LogConfig: 로깅 설정 (레벨, 포맷 등) alias
type LogConfig = commonconfig.LogConfig

// PostgresConfig: PostgreSQL 데이터베이스 설정
type PostgresConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// AdminConfig: 관리자 권한 설정
type AdminConfig struct {
	UserIDs []string
}

// GameConfig: 베팅 라운드 및 시즌 틱 관련 런타임 설정
type GameConfig struct {
	MinimumBet         int64
	RoundWindowSeconds int64
	SeasonTickMinutes  int
	// ActivityReplyEnabled: 일반 활동 등록 시 확인 응답을 보낼지 여부
	ActivityReplyEnabled bool
}

// TelemetryConfig: 분산 추적 수집기 설정 alias
type TelemetryConfig = telemetry.Config

// Config: 전체 애플리케이션 설정 구조체
type Config struct {
	Server       ServerConfig
	ServerTuning ServerTuningConfig
	Commands     CommandsConfig
	Redis        RedisConfig
	Valkey       ValkeyMQConfig
	Postgres     PostgresConfig
	Access       AccessConfig
	Admin        AdminConfig
	Log          LogConfig
	Game         GameConfig
	Telemetry    TelemetryConfig
}

// LoadFromEnv: 환경 변수로부터 전체 애플리케이션 설정을 로드합니다.
func LoadFromEnv() (*Config, error) {
	server, err := readServerConfig()
	if err != nil {
		return nil, err
	}
	serverTuning, err := readServerTuningConfig()
	if err != nil {
		return nil, err
	}
	commands := readCommandsConfig()
	redisCfg, err := readRedisConfig()
	if err != nil {
		return nil, err
	}
	valkey, err := readValkeyMQConfig()
	if err != nil {
		return nil, err
	}
	postgres, err := readPostgresConfig()
	if err != nil {
		return nil, err
	}
	access, err := readAccessConfig()
	if err != nil {
		return nil, err
	}
	admin := readAdminConfig()
	log, err := readLogConfig()
	if err != nil {
		return nil, err
	}
	game, err := readGameConfig()
	if err != nil {
		return nil, err
	}
	tele, err := readTelemetryConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:       server,
		ServerTuning: serverTuning,
		Commands:     commands,
		Redis:        redisCfg,
		Valkey:       valkey,
		Postgres:     postgres,
		Access:       access,
		Admin:        admin,
		Log:          log,
		Game:         game,
		Telemetry:    tele,
	}, nil
}

func readServerConfig() (ServerConfig, error) {
	cfg, err := commonconfig.ReadServerConfigFromEnv(40261)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read server config failed: %w", err)
	}
	return cfg, nil
}

func readServerTuningConfig() (ServerTuningConfig, error) {
	cfg, err := commonconfig.ReadServerTuningConfigFromEnv()
	if err != nil {
		return ServerTuningConfig{}, fmt.Errorf("read server tuning config failed: %w", err)
	}
	return cfg, nil
}

func readCommandsConfig() CommandsConfig {
	prefix := commonconfig.StringFromEnvFirstNonEmpty([]string{"RIP_COMMAND_PREFIX", "COMMAND_PREFIX"}, "!")
	return CommandsConfig{Prefix: prefix}
}

func readRedisConfig() (RedisConfig, error) {
	cfg, err := commonconfig.ReadRedisConfigFromEnv(
		[]string{"CACHE_HOST", "REDIS_HOST"},
		[]string{"CACHE_PORT", "REDIS_PORT"},
		[]string{"CACHE_PASSWORD", "REDIS_PASSWORD"},
		[]string{"CACHE_SOCKET_PATH", "REDIS_SOCKET_PATH"},
		"localhost",
		6379,
		"",
	)
	if err != nil {
		return RedisConfig{}, fmt.Errorf("read redis config failed: %w", err)
	}
	return cfg, nil
}

func readValkeyMQConfig() (ValkeyMQConfig, error) {
	cfg, err := commonconfig.ReadValkeyMQConfigFromEnv(commonconfig.ValkeyMQConfigEnvOptions{
		HostKeys:     []string{"MQ_HOST", "VALKEY_MQ_HOST"},
		PortKeys:     []string{"MQ_PORT", "VALKEY_MQ_PORT"},
		PasswordKeys: []string{"MQ_PASSWORD", "VALKEY_MQ_PASSWORD"},

		TimeoutMillisKeys: []string{"MQ_TIMEOUT", "VALKEY_MQ_TIMEOUT"},
		PoolSizeKeys:      []string{"MQ_CONNECTION_POOL_SIZE", "VALKEY_MQ_CONNECTION_POOL_SIZE"},
		MinIdleKeys:       []string{"MQ_CONNECTION_MIN_IDLE_SIZE", "VALKEY_MQ_CONNECTION_MIN_IDLE_SIZE"},

		ConsumerGroupKeys: []string{"MQ_CONSUMER_GROUP", "VALKEY_MQ_CONSUMER_GROUP"},
		ConsumerNameKeys:  []string{"MQ_CONSUMER_NAME", "VALKEY_MQ_CONSUMER_NAME"},
		ResetConsumerGroupOnStartupKeys: []string{
			"MQ_RESET_CONSUMER_GROUP_ON_STARTUP",
			"VALKEY_MQ_RESET_CONSUMER_GROUP_ON_STARTUP",
		},
		StreamKeyKeys:      []string{"MQ_STREAM_KEY", "VALKEY_MQ_STREAM_KEY"},
		ReplyStreamKeyKeys: []string{"MQ_REPLY_STREAM_KEY", "VALKEY_MQ_REPLY_STREAM_KEY"},
		BatchSizeKeys:      []string{"MQ_BATCH_SIZE", "VALKEY_MQ_BATCH_SIZE"},
		BlockTimeoutMillisKeys: []string{
			"MQ_READ_TIMEOUT_MS",
			"VALKEY_MQ_READ_TIMEOUT_MS",
		},
		ConcurrencyKeys:  []string{"MQ_CONCURRENCY", "VALKEY_MQ_CONCURRENCY"},
		StreamMaxLenKeys: []string{"MQ_STREAM_MAX_LEN", "VALKEY_MQ_STREAM_MAX_LEN"},

		DefaultHost:          "localhost",
		DefaultPort:          1833,
		DefaultPassword:      "",
		DefaultTimeoutMillis: 5000,
		DefaultPoolSize:      64,
		DefaultMinIdle:       10,

		DefaultConsumerGroup:               "rip-bot-group",
		DefaultConsumerName:                "consumer-1",
		DefaultResetConsumerGroupOnStartup: false,
		DefaultStreamKey:                   DefaultInboundStreamKey,
		DefaultReplyStreamKey:              DefaultOutboundStreamKey,
		DefaultBatchSize:                   MQBatchSize,
		DefaultBlockTimeoutMillis:          MQReadTimeoutMS,
		DefaultConcurrency:                 MQConcurrency,
		DefaultStreamMaxLen:                MQStreamMaxLen,
	})
	if err != nil {
		return ValkeyMQConfig{}, fmt.Errorf("read valkey mq config failed: %w", err)
	}
	return cfg, nil
}

func readPostgresConfig() (PostgresConfig, error) {
	port, err := commonconfig.IntFromEnv("DB_PORT", 5432)
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("read DB_PORT failed: %w", err)
	}

	return PostgresConfig{
		Host:     commonconfig.StringFromEnv("DB_HOST", "localhost"),
		Port:     port,
		Name:     commonconfig.StringFromEnv("DB_NAME", "ripbot"),
		User:     commonconfig.StringFromEnv("DB_USER", "ripbot_app"),
		Password: commonconfig.StringFromEnv("DB_PASSWORD", ""),
		SSLMode:  commonconfig.StringFromEnv("DB_SSLMODE", "disable"),
	}, nil
}

func readAccessConfig() (AccessConfig, error) {
	cfg, err := commonconfig.ReadAccessConfigFromEnv(commonconfig.AccessConfigEnvOptions{
		EnvPrefix:             "RIP_",
		DefaultEnabled:        false,
		DefaultPassthrough:    false,
		DefaultAllowedChatIDs: nil,
	})
	if err != nil {
		return AccessConfig{}, fmt.Errorf("read access config failed: %w", err)
	}
	return cfg, nil
}

func readAdminConfig() AdminConfig {
	return AdminConfig{
		UserIDs: commonconfig.StringListFromEnv("ADMIN_USER_IDS", nil),
	}
}

func readLogConfig() (LogConfig, error) {
	cfg, err := commonconfig.ReadLogConfigFromEnv()
	if err != nil {
		return LogConfig{}, fmt.Errorf("read log config failed: %w", err)
	}
	return cfg, nil
}

func readGameConfig() (GameConfig, error) {
	minimumBet, err := commonconfig.Int64FromEnv("RIP_MINIMUM_BET", MinimumBet)
	if err != nil {
		return GameConfig{}, fmt.Errorf("read RIP_MINIMUM_BET failed: %w", err)
	}
	windowSeconds, err := commonconfig.Int64FromEnv("RIP_ROUND_WINDOW_SECONDS", RoundWindowSeconds)
	if err != nil {
		return GameConfig{}, fmt.Errorf("read RIP_ROUND_WINDOW_SECONDS failed: %w", err)
	}
	tickMinutes, err := commonconfig.IntFromEnv("RIP_SEASON_TICK_MINUTES", SeasonTickMinutes)
	if err != nil {
		return GameConfig{}, fmt.Errorf("read RIP_SEASON_TICK_MINUTES failed: %w", err)
	}
	activityReply, err := commonconfig.BoolFromEnv("RIP_ACTIVITY_REPLY_ENABLED", true)
	if err != nil {
		return GameConfig{}, fmt.Errorf("read RIP_ACTIVITY_REPLY_ENABLED failed: %w", err)
	}

	return GameConfig{
		MinimumBet:           minimumBet,
		RoundWindowSeconds:   windowSeconds,
		SeasonTickMinutes:    tickMinutes,
		ActivityReplyEnabled: activityReply,
	}, nil
}

func readTelemetryConfig() (TelemetryConfig, error) {
	enabled, err := commonconfig.BoolFromEnv("OTEL_ENABLED", false)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_ENABLED failed: %w", err)
	}
	insecureExport, err := commonconfig.BoolFromEnv("OTEL_EXPORTER_OTLP_INSECURE", true)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_EXPORTER_OTLP_INSECURE failed: %w", err)
	}
	sampleRate, err := commonconfig.Float64FromEnv("OTEL_SAMPLE_RATE", 1.0)
	if err != nil {
		return TelemetryConfig{}, fmt.Errorf("read OTEL_SAMPLE_RATE failed: %w", err)
	}

	return TelemetryConfig{
		Enabled:        enabled,
		ServiceName:    commonconfig.StringFromEnv("OTEL_SERVICE_NAME", "rip-bot"),
		ServiceVersion: commonconfig.StringFromEnv("OTEL_SERVICE_VERSION", "dev"),
		Environment:    commonconfig.StringFromEnv("OTEL_ENVIRONMENT", "production"),
		OTLPEndpoint:   commonconfig.StringFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   insecureExport,
		SampleRate:     sampleRate,
	}, nil
}
