package service

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numberPrinter: 천 단위 구분자 포함 숫자 출력용
var numberPrinter = message.NewPrinter(language.English)

func formatNumber(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatPercent: 확률을 백분율 문자열로 (소수 1자리)
func formatPercent(chance float64) string {
	return strconv.FormatFloat(chance*100, 'f', 1, 64)
}
