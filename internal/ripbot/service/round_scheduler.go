package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ResolveFunc: 라운드 마감 시각에 호출되는 정산 콜백
type ResolveFunc func(ctx context.Context, chatID string)

// RoundScheduler: 채팅방별 라운드 마감 타이머 관리자.
// 타이머는 프로세스 로컬이며, 재시작 시 ResumeOpenRounds가 남은 라운드를 복구한다.
// 중복 타이머가 발동해도 정산 자체가 GETDEL로 멱등하므로 안전하다.
type RoundScheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	resolve ResolveFunc
	baseCtx context.Context
}

// NewRoundScheduler: 새로운 RoundScheduler 인스턴스를 생성한다.
func NewRoundScheduler(logger *slog.Logger) *RoundScheduler {
	return &RoundScheduler{
		logger:  logger,
		timers:  make(map[string]*time.Timer),
		baseCtx: context.Background(),
	}
}

// SetResolver: 정산 콜백을 연결한다. (서비스 간 순환 참조 회피용 지연 주입)
func (s *RoundScheduler) SetResolver(resolve ResolveFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolve = resolve
}

// Schedule: 라운드 마감 타이머를 등록한다. 이미 있으면 갈아끼운다.
func (s *RoundScheduler) Schedule(chatID string, d time.Duration) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[chatID]; ok {
		old.Stop()
	}
	s.timers[chatID] = time.AfterFunc(d, func() {
		s.fire(chatID)
	})
	s.logger.Debug("round_timer_scheduled", "chat_id", chatID, "after", d)
}

func (s *RoundScheduler) fire(chatID string) {
	s.mu.Lock()
	delete(s.timers, chatID)
	resolve := s.resolve
	ctx := s.baseCtx
	s.mu.Unlock()

	if resolve == nil {
		s.logger.Error("round_timer_no_resolver", "chat_id", chatID)
		return
	}
	resolve(ctx, chatID)
}

// Run: 종료 시그널까지 대기하다가 모든 타이머를 정지한다. (백그라운드 태스크용)
func (s *RoundScheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	<-ctx.Done()

	s.mu.Lock()
	for chatID, t := range s.timers {
		t.Stop()
		delete(s.timers, chatID)
	}
	s.mu.Unlock()

	return nil
}
