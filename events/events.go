package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	ChatCompleted EventType = "chat.completed"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// ChatCompletedEvent 채팅 턴 완료 이벤트.
// API 게이트웨이가 응답 직후 발행하고, 분석 워커가 일 단위 사용량으로 집계한다.
type ChatCompletedEvent struct {
	BaseEvent
	UserCode    string    `json:"user_code"`
	SessionID   string    `json:"session_id,omitempty"`
	Mode        string    `json:"mode"`
	Intent      string    `json:"intent"`
	ModelName   string    `json:"model_name"`
	TotalTokens int64     `json:"total_tokens"`
	DurationMs  int64     `json:"duration_ms"`
	ResultCount int       `json:"result_count"`
	ResultIDs   []int     `json:"result_ids,omitempty"`
	ResultTypes []string  `json:"result_types,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case ChatCompletedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", err
	}
	return data, eventType, nil
}
