package security

import (
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/accesscontrol"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/ptr"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/messages"
)

// AccessControl: 립 봇에 대한 사용자 및 채팅방 접근 제어 관리자
type AccessControl struct {
	control *accesscontrol.AccessControl
}

// NewAccessControl: 새로운 AccessControl 인스턴스를 생성합니다.
func NewAccessControl(cfg ripconfig.AccessConfig) *AccessControl {
	return &AccessControl{control: accesscontrol.New(cfg)}
}

// GetDenialReason: 접근 거부 사유에 따른 오류 메시지를 반환합니다.
// 접근이 허용된 경우 nil을 반환합니다.
func (a *AccessControl) GetDenialReason(userID string, chatID string) *string {
	msg, ok := accesscontrol.DenialReasonMessage(
		a.control.DenialReason(userID, chatID),
		accesscontrol.DenialReasonMessages{
			UserBlocked:  messages.ErrorUserBlocked,
			ChatBlocked:  messages.ErrorChatBlocked,
			AccessDenied: messages.ErrorAccessDenied,
		},
	)
	if !ok {
		return nil
	}
	return ptr.String(msg)
}
