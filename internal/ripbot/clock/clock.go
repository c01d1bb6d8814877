// Package clock: 기준 타임존(America/Chicago) 기반의 시간 분해 유틸리티를 제공한다.
// 일/주/월/년 경계 키 계산은 모두 이 패키지를 거친다.
package clock

import (
	"fmt"
	"time"

	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// Location: 기준 타임존 Location (로드 실패 시 UTC 폴백)
var Location *time.Location

func init() {
	loc, err := time.LoadLocation(ripconfig.ReferenceTimezone)
	if err != nil {
		loc = time.UTC
	}
	Location = loc
}

// Clock: 현재 시각 공급자. 테스트에서 고정 시각 주입에 사용한다.
type Clock interface {
	Now() time.Time
}

// SystemClock: 시스템 시계 기반 Clock 구현체
type SystemClock struct{}

// Now: 현재 시각을 기준 타임존으로 반환한다.
func (SystemClock) Now() time.Time {
	return time.Now().In(Location)
}

// FixedClock: 고정 시각을 반환하는 Clock 구현체 (테스트용)
type FixedClock struct {
	Instant time.Time
}

// Now 는 동작을 수행한다.
func (c FixedClock) Now() time.Time {
	return c.Instant.In(Location)
}

// Calendar: 한 시각을 기간 경계 키들로 분해한 결과
type Calendar struct {
	DayKey   string // "2006-01-02"
	WeekKey  string // 해당 주의 일요일 날짜, "2006-01-02"
	MonthKey string // "2006-01"
	Year     int
}

// Decompose: 시각을 기준 타임존 달력으로 분해한다.
// 주 키는 가장 최근 일요일(주 시작일)의 날짜다.
func Decompose(now time.Time) Calendar {
	local := now.In(Location)

	weekStart := local.AddDate(0, 0, -int(local.Weekday()))
	return Calendar{
		DayKey:   local.Format("2006-01-02"),
		WeekKey:  weekStart.Format("2006-01-02"),
		MonthKey: local.Format("2006-01"),
		Year:     local.Year(),
	}
}

// DateOf: 기준 타임존에서 특정 연/월/일의 자정 시각을 만든다.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}

// FormatDate: 날짜를 "2006-01-02" 형식으로 출력한다.
func FormatDate(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}

// FormatSeasonID: 시즌 식별자를 "{year}-{month}@{start}" 형식으로 만든다.
func FormatSeasonID(start time.Time) string {
	local := start.In(Location)
	return fmt.Sprintf("%d-%d@%s", local.Year(), int(local.Month()), FormatDate(local))
}
