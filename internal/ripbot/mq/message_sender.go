package mq

import (
	"context"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/messageprovider"
	commonmq "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mq"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mqmsg"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// MessageSender 는 타입이다.
type MessageSender struct {
	msgProvider *messageprovider.Provider
	publish     func(ctx context.Context, msg mqmsg.OutboundMessage) error
}

// NewMessageSender 는 동작을 수행한다.
func NewMessageSender(msgProvider *messageprovider.Provider, publish func(ctx context.Context, msg mqmsg.OutboundMessage) error) *MessageSender {
	return &MessageSender{
		msgProvider: msgProvider,
		publish:     publish,
	}
}

// SendFinal 는 동작을 수행한다.
func (s *MessageSender) SendFinal(ctx context.Context, message mqmsg.InboundMessage, text string) error {
	return commonmq.SendFinalChunked(ctx, s.publish, message.ChatID, text, message.ThreadID, ripconfig.KakaoMessageMaxLength)
}

// SendError 는 동작을 수행한다.
func (s *MessageSender) SendError(ctx context.Context, message mqmsg.InboundMessage, mapping ErrorMapping) error {
	return s.publish(ctx, mqmsg.NewError(message.ChatID, s.msgProvider.Get(mapping.Key, mapping.Params...), message.ThreadID))
}
