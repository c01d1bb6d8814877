// Package errors: 립 봇 도메인에 특화된 에러 타입들을 정의한다.
// 공통 에러 타입(RedisError, DatabaseError 등)은 common/errors 패키지를 직접 사용한다.
package errors

import "fmt"

// InsufficientFundsError: 베팅 금액이 사용자 잔고를 초과할 때 발생하는 에러
type InsufficientFundsError struct {
	UserID  string
	Balance int64
	Amount  int64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds userId=%s balance=%d amount=%d", e.UserID, e.Balance, e.Amount)
}

// BetTooSmallError: 최소 베팅 금액 미만일 때 발생하는 에러
type BetTooSmallError struct {
	Minimum int64
	Amount  int64
}

func (e BetTooSmallError) Error() string {
	return fmt.Sprintf("bet below minimum amount=%d minimum=%d", e.Amount, e.Minimum)
}

// InvalidPickError: 베팅 대상(색상/숫자)이 유효하지 않을 때 발생하는 에러
type InvalidPickError struct {
	Pick string
}

func (e InvalidPickError) Error() string {
	return fmt.Sprintf("invalid pick %q", e.Pick)
}

// NoOpenRoundError: 진행 중인 라운드가 없을 때 발생하는 에러
type NoOpenRoundError struct {
	ChatID string
}

func (e NoOpenRoundError) Error() string {
	if e.ChatID == "" {
		return "no open round"
	}
	return fmt.Sprintf("no open round chatId=%s", e.ChatID)
}

// InvalidAdminArgsError: 관리자 명령 인자가 유효하지 않을 때 발생하는 에러
type InvalidAdminArgsError struct {
	Reason string
}

func (e InvalidAdminArgsError) Error() string {
	return fmt.Sprintf("invalid admin args: %s", e.Reason)
}
