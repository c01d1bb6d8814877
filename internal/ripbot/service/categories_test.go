package service

import (
	"testing"

	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		text     string
		wantKind string
		wantOK   bool
	}{
		{"rip", ripconfig.CategoryKindRip, true},
		{"just RIPPED one", ripconfig.CategoryKindRip, true},
		{"dab", ripconfig.CategoryKindDab, true},
		{"dabbed!", ripconfig.CategoryKindDab, true},
		{"bigrip", ripconfig.CategoryKindBigRip, true},
		{"fatrip city", ripconfig.CategoryKindBigRip, true},
		{"rip.", ripconfig.CategoryKindRip, true},
		{"rip~", ripconfig.CategoryKindRip, true},
		// 첫 트리거 단어가 이긴다.
		{"dab then rip", ripconfig.CategoryKindDab, true},
		// 부분 문자열은 트리거가 아니다.
		{"gripping story", "", false},
		{"ripcord", "", false},
		{"hello world", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		category, ok := ClassifyMessage(tt.text)
		if ok != tt.wantOK {
			t.Errorf("ClassifyMessage(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if ok && category.Kind != tt.wantKind {
			t.Errorf("ClassifyMessage(%q) kind = %q, want %q", tt.text, category.Kind, tt.wantKind)
		}
	}
}

func TestCategoryTable_BigRipSharesRipCritParams(t *testing.T) {
	rip, _ := CategoryByKind(ripconfig.CategoryKindRip)
	bigrip, ok := CategoryByKind(ripconfig.CategoryKindBigRip)
	if !ok {
		t.Fatal("bigrip category missing")
	}

	if bigrip.CritIncrement != rip.CritIncrement {
		t.Errorf("bigrip crit increment %f, want %f", bigrip.CritIncrement, rip.CritIncrement)
	}
	if bigrip.CritPayout != rip.CritPayout {
		t.Errorf("bigrip crit payout %d, want %d", bigrip.CritPayout, rip.CritPayout)
	}
	if bigrip.XPAward != ripconfig.XPAwardBigRip {
		t.Errorf("bigrip xp award %d, want %d", bigrip.XPAward, ripconfig.XPAwardBigRip)
	}
}

func TestCategoryByKind_Unknown(t *testing.T) {
	if _, ok := CategoryByKind("nope"); ok {
		t.Fatal("expected unknown kind to miss")
	}
}
