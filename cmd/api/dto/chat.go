package dto

import (
	"what2watch/llm"
	"what2watch/ranking"
)

// ChatRequestDTO 는 AI 채팅 한 턴의 요청 바디다.
// 서버는 턴 사이 상태를 저장하지 않으므로 대화 이력은 매 요청에 함께 보낸다.
type ChatRequestDTO struct {
	Message             string     `json:"message" binding:"required"`
	SessionID           string     `json:"session_id,omitempty"`
	ConversationHistory []llm.Turn `json:"conversation_history,omitempty"`
	// Mode 는 "recommendation"(기본) 또는 "information".
	// information 이면 파라미터 추출을 건너뛰고 바로 답변 모델을 호출한다.
	Mode string `json:"mode,omitempty"`
}

type ChatResponseDTO struct {
	Intent   string              `json:"intent"`
	Message  string              `json:"message"`
	Results  []ranking.MediaItem `json:"results"`
	Metadata ChatMetadataDTO     `json:"metadata"`
}

// ChatMetadataDTO 는 이번 턴에 적용된 검색 파라미터의 에코와
// 클라이언트 디버깅/표시용 턴 메타데이터다.
type ChatMetadataDTO struct {
	Genres      []int    `json:"genres,omitempty"`
	Year        int      `json:"year,omitempty"`
	Type        string   `json:"type,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	ModelName   string   `json:"model_name,omitempty"`
	TotalTokens int64    `json:"total_tokens"`
	DurationMs  int64    `json:"duration_ms"`
	ResultCount int      `json:"result_count"`
}
