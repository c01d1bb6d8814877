package repository

import "time"

// SeasonResult: 마감된 시즌 요약 기록
type SeasonResult struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	SeasonID     string    `gorm:"column:season_id;not null;uniqueIndex:idx_season_results_chat_season,priority:2"`
	ChatID       string    `gorm:"column:chat_id;not null;uniqueIndex:idx_season_results_chat_season,priority:1"`
	StartDate    string    `gorm:"column:start_date;not null"`
	EndDate      string    `gorm:"column:end_date;not null"`
	TotalRips    int64     `gorm:"column:total_rips;not null;default:0"`
	TotalNet     int64     `gorm:"column:total_net;not null;default:0"`
	RipWinnerID  *string   `gorm:"column:rip_winner_id"`
	NetWinnerID  *string   `gorm:"column:net_winner_id"`
	Participants int       `gorm:"column:participants;not null;default:0"`
	FinalizedAt  time.Time `gorm:"column:finalized_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (SeasonResult) TableName() string { return "season_results" }

// SeasonUserResult: 시즌별 사용자 최종 집계 (마감 시점 스냅샷)
// 복합 인덱스: idx_season_user_results_lookup (chat_id, season_id)
type SeasonUserResult struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ChatID     string    `gorm:"column:chat_id;not null;index:idx_season_user_results_lookup,priority:1"`
	SeasonID   string    `gorm:"column:season_id;not null;index:idx_season_user_results_lookup,priority:2"`
	UserID     string    `gorm:"column:user_id;not null;index"`
	SeasonRips int64     `gorm:"column:season_rips;not null;default:0"`
	GambleBet  int64     `gorm:"column:gamble_bet;not null;default:0"`
	GambleWon  int64     `gorm:"column:gamble_won;not null;default:0"`
	GambleNet  int64     `gorm:"column:gamble_net;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (SeasonUserResult) TableName() string { return "season_user_results" }

// AdminAuditLog: 관리자 스탯 조정 기록
type AdminAuditLog struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ChatID       string    `gorm:"column:chat_id;not null;index"`
	AdminUserID  string    `gorm:"column:admin_user_id;not null;index"`
	TargetUserID string    `gorm:"column:target_user_id;not null;index"`
	Action       string    `gorm:"column:action;not null"`
	Delta        int64     `gorm:"column:delta;not null"`
	ResultValue  int64     `gorm:"column:result_value;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (AdminAuditLog) TableName() string { return "admin_audit_logs" }
