package models

import "strings"

// DisplayName: 표시용 이름을 계산합니다.
func DisplayName(chatID string, userID string, sender *string, anonymous string) string {
	if sender != nil && strings.TrimSpace(*sender) != "" {
		return strings.TrimSpace(*sender)
	}
	userID = strings.TrimSpace(userID)
	chatID = strings.TrimSpace(chatID)
	if userID == "" || chatID == "" || userID == chatID {
		return anonymous
	}
	return userID
}
