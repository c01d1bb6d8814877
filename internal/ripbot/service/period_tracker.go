package service

import (
	"time"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/clock"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// PeriodTracker: 일/주/월/년 카운터의 롤오버와 증가를 담당하는 순수 로직.
// 저장된 기간 키가 현재 키와 다르면 해당 카운터를 0으로 리셋한 뒤 증가시킨다.
type PeriodTracker struct{}

// NewPeriodTracker: 새로운 PeriodTracker 인스턴스를 생성한다.
func NewPeriodTracker() *PeriodTracker {
	return &PeriodTracker{}
}

// RecordActivity: 활동 1건을 기록한다.
// 날짜가 바뀌었으면 (방향 무관) 연속 기록 +1, 크리티컬 확률 리셋.
// 같은 시각에 여러 번 호출해도 롤오버는 멱등이다.
func (t *PeriodTracker) RecordActivity(state *ripmodel.ActivityState, now time.Time) {
	cal := clock.Decompose(now)

	dayChanged := state.LastDayKey != cal.DayKey
	if dayChanged {
		state.Daily = 0
		state.LastDayKey = cal.DayKey
		state.Streak++
		state.CritChance = 0
	}
	if state.LastWeekKey != cal.WeekKey {
		state.Weekly = 0
		state.LastWeekKey = cal.WeekKey
	}
	if state.LastMonthKey != cal.MonthKey {
		state.Monthly = 0
		state.LastMonthKey = cal.MonthKey
	}
	if state.LastYear != cal.Year {
		state.Yearly = 0
		state.LastYear = cal.Year
	}

	state.Daily++
	state.Weekly++
	state.Monthly++
	state.Yearly++
}
