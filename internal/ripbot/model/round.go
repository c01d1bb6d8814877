package model

import "time"

// BetType 는 타입이다.
type BetType string

// BetTypeRed 등 베팅 종류 상수 목록이다.
const (
	BetTypeRed    BetType = "red"
	BetTypeBlack  BetType = "black"
	BetTypeNumber BetType = "number"
)

// Bet: 라운드에 등록된 단일 베팅.
// Amount는 등록 시점에 이미 잔고에서 차감(에스크로)된 상태다.
type Bet struct {
	UserID string  `json:"userId"`
	Sender string  `json:"sender,omitempty"`
	Type   BetType `json:"type"`
	Pick   string  `json:"pick,omitempty"` // number 베팅의 슬롯 라벨 ("0" != "00")
	Amount int64   `json:"amount"`
}

// WageringRound: 채팅방당 최대 하나 존재하는 진행 중 베팅 라운드
type WageringRound struct {
	ChatID    string    `json:"chatId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Bets      []Bet     `json:"bets"`
}

// Remaining: 마감까지 남은 시간을 반환한다. (이미 지났으면 0)
func (r *WageringRound) Remaining(now time.Time) time.Duration {
	d := r.EndTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// EscrowTotal: 라운드에 걸린 전체 에스크로 금액
func (r *WageringRound) EscrowTotal() int64 {
	var total int64
	for _, b := range r.Bets {
		total += b.Amount
	}
	return total
}
