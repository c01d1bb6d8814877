package service

import (
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
)

// CritResult: 크리티컬 롤 한 번의 결과
type CritResult struct {
	Hit bool
	// ChanceUsed: 판정에 실제 사용된 확률 (클램프 적용 후)
	ChanceUsed float64
}

// CritEngine: 누적형 크리티컬 확률 판정기.
// 저장된 확률을 [0,1]로 클램프한 값으로 판정하고, 적중 시 0으로 리셋,
// 빗나가면 카테고리별 증가분을 더한다. 증가분 합산에는 상한을 두지 않는다.
type CritEngine struct {
	random RandomSource
}

// NewCritEngine: 새로운 CritEngine 인스턴스를 생성한다.
func NewCritEngine(random RandomSource) *CritEngine {
	return &CritEngine{random: random}
}

// Roll: 크리티컬 판정을 수행하고 상태를 갱신한다.
func (e *CritEngine) Roll(state *ripmodel.ActivityState, category ripmodel.Category) CritResult {
	chance := clampChance(state.CritChance)

	if e.random.Float64() < chance {
		state.CritChance = 0
		return CritResult{Hit: true, ChanceUsed: chance}
	}

	state.CritChance += category.CritIncrement
	return CritResult{Hit: false, ChanceUsed: chance}
}

func clampChance(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
