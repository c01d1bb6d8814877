package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	cerrors "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/errors"
)

// SeasonUserParams: 시즌 마감 시점의 사용자별 스냅샷
type SeasonUserParams struct {
	UserID     string
	SeasonRips int64
	GambleBet  int64
	GambleWon  int64
}

// SeasonResultParams: 시즌 마감 아카이브 파라미터 구조체
type SeasonResultParams struct {
	SeasonID    string
	ChatID      string
	StartDate   string
	EndDate     string
	RipWinnerID *string
	NetWinnerID *string
	Users       []SeasonUserParams
	FinalizedAt time.Time
}

// RecordSeasonResult: 마감된 시즌의 요약과 사용자별 스냅샷을 기록합니다.
// (chat_id, season_id) 유니크 충돌 시 무시하므로 재시도에 안전하다.
func (r *Repository) RecordSeasonResult(ctx context.Context, p SeasonResultParams) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}

	p.SeasonID = strings.TrimSpace(p.SeasonID)
	p.ChatID = strings.TrimSpace(p.ChatID)
	if p.SeasonID == "" || p.ChatID == "" {
		return nil
	}

	var totalRips, totalNet int64
	for _, u := range p.Users {
		totalRips += u.SeasonRips
		totalNet += u.GambleWon - u.GambleBet
	}

	summary := SeasonResult{
		SeasonID:     p.SeasonID,
		ChatID:       p.ChatID,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		TotalRips:    totalRips,
		TotalNet:     totalNet,
		RipWinnerID:  p.RipWinnerID,
		NetWinnerID:  p.NetWinnerID,
		Participants: len(p.Users),
		FinalizedAt:  p.FinalizedAt,
	}

	tx := r.db.WithContext(ctx)
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "season_id"}},
		DoNothing: true,
	}).Create(&summary)
	if result.Error != nil {
		return cerrors.DatabaseError{Operation: "season_result_insert", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		// 이미 아카이브된 시즌이면 사용자 스냅샷도 건너뛴다.
		return nil
	}

	for _, u := range p.Users {
		entity := SeasonUserResult{
			ChatID:     p.ChatID,
			SeasonID:   p.SeasonID,
			UserID:     u.UserID,
			SeasonRips: u.SeasonRips,
			GambleBet:  u.GambleBet,
			GambleWon:  u.GambleWon,
			GambleNet:  u.GambleWon - u.GambleBet,
		}
		if err := tx.Create(&entity).Error; err != nil {
			return cerrors.DatabaseError{Operation: "season_user_insert", Err: err}
		}
	}
	return nil
}
