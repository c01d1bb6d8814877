package model

// LeaderboardScope 는 리더보드 조회 범위 타입이다.
type LeaderboardScope string

// LeaderboardSeasonRips 등 리더보드 범위 상수 목록이다.
const (
	LeaderboardSeasonRips LeaderboardScope = "season_rips"
	LeaderboardSeasonNet  LeaderboardScope = "season_net"
	LeaderboardYearRips   LeaderboardScope = "year_rips"
	LeaderboardYearNet    LeaderboardScope = "year_net"
	LeaderboardAllRips    LeaderboardScope = "all_rips"
)

// LeaderboardEntry: 랭킹 조회 결과 한 줄
type LeaderboardEntry struct {
	UserID string
	Value  int64
}
