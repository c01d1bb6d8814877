package service

import (
	"strings"

	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// categoryTable: 카테고리 종류별 XP/크리티컬 파라미터.
// bigrip은 rip의 변형이므로 크리티컬 파라미터를 rip과 공유한다.
var categoryTable = map[string]ripmodel.Category{
	ripconfig.CategoryKindRip: {
		Kind:          ripconfig.CategoryKindRip,
		XPAward:       ripconfig.XPAwardRip,
		CritIncrement: ripconfig.CritIncrementRip,
		CritPayout:    ripconfig.CritPayoutRip,
	},
	ripconfig.CategoryKindDab: {
		Kind:          ripconfig.CategoryKindDab,
		XPAward:       ripconfig.XPAwardDab,
		CritIncrement: ripconfig.CritIncrementDab,
		CritPayout:    ripconfig.CritPayoutDab,
	},
	ripconfig.CategoryKindBigRip: {
		Kind:          ripconfig.CategoryKindBigRip,
		XPAward:       ripconfig.XPAwardBigRip,
		CritIncrement: ripconfig.CritIncrementRip,
		CritPayout:    ripconfig.CritPayoutRip,
	},
}

// triggerWords: 메시지 본문에서 활동으로 분류되는 트리거 단어 → 카테고리 종류
var triggerWords = map[string]string{
	"rip":    ripconfig.CategoryKindRip,
	"ripped": ripconfig.CategoryKindRip,
	"dab":    ripconfig.CategoryKindDab,
	"dabbed": ripconfig.CategoryKindDab,
	"bigrip": ripconfig.CategoryKindBigRip,
	"fatrip": ripconfig.CategoryKindBigRip,
}

// CategoryByKind: 카테고리 종류 문자열로 파라미터를 조회한다.
func CategoryByKind(kind string) (ripmodel.Category, bool) {
	c, ok := categoryTable[kind]
	return c, ok
}

// ClassifyMessage: 일반 메시지를 활동 카테고리로 분류한다.
// 단어 단위 일치만 인정하며, 여러 트리거가 섞이면 첫 단어가 이긴다.
func ClassifyMessage(text string) (ripmodel.Category, bool) {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?~")
		if kind, ok := triggerWords[word]; ok {
			return categoryTable[kind], true
		}
	}
	return ripmodel.Category{}, false
}
