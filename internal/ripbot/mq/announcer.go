package mq

import (
	"context"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/mqmsg"
	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/textutil"
	ripconfig "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/config"
)

// ChatAnnouncer: 명령 응답 경로 밖의 발표(타이머 정산, 시즌 마감)를 아웃바운드
// 스트림으로 내보낸다. service.Announcer 인터페이스 구현체.
type ChatAnnouncer struct {
	publisher *ReplyPublisher
}

// NewChatAnnouncer: 새로운 ChatAnnouncer 인스턴스를 생성한다.
func NewChatAnnouncer(publisher *ReplyPublisher) *ChatAnnouncer {
	return &ChatAnnouncer{publisher: publisher}
}

// Announce: 발표 텍스트 목록을 순서대로 청크 분할하여 전송한다.
func (a *ChatAnnouncer) Announce(ctx context.Context, chatID string, texts []string) error {
	for _, text := range texts {
		err := textutil.EmitChunkedText(chatID, nil, text, ripconfig.KakaoMessageMaxLength, func(out mqmsg.OutboundMessage) error {
			return a.publisher.Publish(ctx, out)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
