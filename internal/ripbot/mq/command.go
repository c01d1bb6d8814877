package mq

import (
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// CommandKind 는 타입이다.
type CommandKind int

// CommandBet 는 명령 종류 상수 목록이다.
const (
	CommandBet CommandKind = iota
	CommandRound
	CommandStats
	CommandStreak
	CommandCrit
	CommandSeason
	CommandTop
	CommandRecords
	CommandHelp
	CommandPing
	CommandUptime
	CommandVersion
	CommandUnknown

	// 관리자 명령어

	// CommandAddXP 는 관리자 XP 조정 명령이다.
	CommandAddXP
	CommandAddRips
)

// Command 는 타입이다.
type Command struct {
	Kind CommandKind
	// 베팅용
	BetType   ripmodel.BetType
	BetPick   string
	BetAmount int64
	// 리더보드 조회용
	TopScope ripmodel.LeaderboardScope
	// 관리자 조정용
	TargetUserID string
	AdminAmount  int64
}

// IsAdmin: 관리자 권한이 필요한 명령인지 판정한다.
func (c Command) IsAdmin() bool {
	switch c.Kind {
	case CommandAddXP, CommandAddRips:
		return true
	default:
		return false
	}
}

// MutatesState: 상태를 변경하는 명령인지 판정한다. 조회성 명령은 처리 락을 건너뛴다.
func (c Command) MutatesState() bool {
	switch c.Kind {
	case CommandRound, CommandStats, CommandStreak, CommandCrit, CommandSeason,
		CommandTop, CommandRecords,
		CommandHelp, CommandPing, CommandUptime, CommandVersion, CommandUnknown:
		return false
	default:
		return true
	}
}
