package service

import (
	"strconv"

	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// SlotColorRed 등 휠 슬롯 색상 상수 목록이다.
const (
	SlotColorRed   = "red"
	SlotColorBlack = "black"
	SlotColorGreen = "green"
)

// wheelSlots: 아메리칸 룰렛 휠의 38개 슬롯. "0"과 "00"은 서로 다른 슬롯이다.
var wheelSlots = buildWheelSlots()

func buildWheelSlots() []string {
	slots := make([]string, 0, 38)
	slots = append(slots, "0", "00")
	for n := 1; n <= 36; n++ {
		slots = append(slots, strconv.Itoa(n))
	}
	return slots
}

// redNumbers: 표준 아메리칸 룰렛의 빨간 숫자 집합
var redNumbers = map[string]struct{}{
	"1": {}, "3": {}, "5": {}, "7": {}, "9": {}, "12": {},
	"14": {}, "16": {}, "18": {}, "19": {}, "21": {}, "23": {},
	"25": {}, "27": {}, "30": {}, "32": {}, "34": {}, "36": {},
}

// SpinWheel: 휠 슬롯 하나를 균등 추첨한다.
func SpinWheel(random RandomSource) string {
	return wheelSlots[random.IntN(len(wheelSlots))]
}

// SlotColor: 슬롯 라벨의 색상을 반환한다.
func SlotColor(slot string) string {
	if slot == "0" || slot == "00" {
		return SlotColorGreen
	}
	if _, ok := redNumbers[slot]; ok {
		return SlotColorRed
	}
	return SlotColorBlack
}

// IsValidSlotLabel: 숫자 베팅 대상으로 유효한 슬롯 라벨인지 확인한다.
func IsValidSlotLabel(pick string) bool {
	if pick == "0" || pick == "00" {
		return true
	}
	n, err := strconv.Atoi(pick)
	if err != nil {
		return false
	}
	// "01" 같은 변형 표기는 정확 일치 판정을 깨뜨리므로 거부한다.
	if strconv.Itoa(n) != pick {
		return false
	}
	return n >= 1 && n <= 36
}

// BetPayout: 베팅 하나의 지급액을 계산한다. 빗나가면 0이다.
func BetPayout(bet ripmodel.Bet, slot string, colorMultiple int64, exactMultiple int64) int64 {
	switch bet.Type {
	case ripmodel.BetTypeRed:
		if SlotColor(slot) == SlotColorRed {
			return bet.Amount * colorMultiple
		}
	case ripmodel.BetTypeBlack:
		if SlotColor(slot) == SlotColorBlack {
			return bet.Amount * colorMultiple
		}
	case ripmodel.BetTypeNumber:
		if bet.Pick == slot {
			return bet.Amount * exactMultiple
		}
	}
	return 0
}
