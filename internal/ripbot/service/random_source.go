package service

import "math/rand/v2"

// RandomSource: 크리티컬 롤과 휠 스핀에 쓰이는 난수 공급자.
// 테스트에서 시드 고정 소스를 주입하기 위한 인터페이스다.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// SystemRandomSource: math/rand/v2 전역 소스 기반 구현체
type SystemRandomSource struct{}

// Float64 는 동작을 수행한다.
func (SystemRandomSource) Float64() float64 { return rand.Float64() }

// IntN 는 동작을 수행한다.
func (SystemRandomSource) IntN(n int) int { return rand.IntN(n) }
