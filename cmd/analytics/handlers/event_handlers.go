package handlers

import (
	"context"

	"what2watch/config"
	"what2watch/events"
	"what2watch/repositories"
)

// EventHandlers 이벤트 핸들러 모음
type EventHandlers struct {
	dailyUsage *repositories.DailyUsageRepository
}

// NewEventHandlers 새로운 이벤트 핸들러 생성
func NewEventHandlers(dailyUsage *repositories.DailyUsageRepository) *EventHandlers {
	return &EventHandlers{dailyUsage: dailyUsage}
}

// HandleChatCompleted 채팅 완료 이벤트를 (date, mode) 일 단위 사용량으로 집계한다.
// 날짜 키는 요청 시각 기준 UTC 달력 날짜다.
func (h *EventHandlers) HandleChatCompleted(ctx context.Context, event *events.ChatCompletedEvent) error {
	date := event.RequestedAt.UTC().Format("2006-01-02")
	zeroResult := event.Mode == "recommendation" && event.ResultCount == 0

	if err := h.dailyUsage.IncrementTurn(ctx, date, event.Mode, event.TotalTokens, zeroResult); err != nil {
		config.Logger.Errorf("failed to increment daily usage for %s/%s: %v", date, event.Mode, err)
		return err
	}

	config.Logger.Infof("aggregated chat turn: date=%s mode=%s tokens=%d", date, event.Mode, event.TotalTokens)
	return nil
}
