package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"what2watch/classifier"
	"what2watch/cmd/api/dto"
	"what2watch/cmd/api/quota"
	"what2watch/cmd/internal/logger"
	"what2watch/eventbus"
	"what2watch/events"
	"what2watch/llm"
	"what2watch/models"
	"what2watch/ranking"
	"what2watch/repositories"
)

const (
	ChatModeRecommendation = "recommendation"
	ChatModeInformation    = "information"
)

// 분석 기록(mongo insert + kafka publish)은 응답 경로를 막지 않도록
// 별도 컨텍스트에 짧은 타임아웃을 준다.
const analyticsTimeout = 3 * time.Second

type ChatError struct {
	StatusCode int
	ErrorCode  string
	Cause      error
}

func (e *ChatError) Error() string {
	if e == nil {
		return "chat_failed"
	}
	return e.ErrorCode
}

// ChatService 는 채팅 한 턴의 전체 파이프라인을 조율한다.
// 쿼터 → 유저 확인 → 파라미터 추출 → (추천 집계 | 정보 답변) → 분석 기록.
type ChatService struct {
	recommendSvc *RecommendService
	authSvc      *AuthService
	chatLogs     *repositories.ChatLogRepository
	limiter      *quota.ChatQuotaLimiter
	bus          eventbus.EventBus // nil 이면 이벤트 발행 생략
}

func NewChatService(
	recommendSvc *RecommendService,
	authSvc *AuthService,
	chatLogs *repositories.ChatLogRepository,
	limiter *quota.ChatQuotaLimiter,
	bus eventbus.EventBus,
) *ChatService {
	return &ChatService{
		recommendSvc: recommendSvc,
		authSvc:      authSvc,
		chatLogs:     chatLogs,
		limiter:      limiter,
		bus:          bus,
	}
}

// Chat 은 인증된 유저의 채팅 턴 하나를 처리한다.
// 분석 기록 실패는 로그만 남기고 응답에는 영향을 주지 않는다.
func (s *ChatService) Chat(ctx context.Context, userCode string, req dto.ChatRequestDTO) (dto.ChatResponseDTO, *ChatError) {
	if _, err := s.authSvc.ResolveUser(ctx, userCode); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return dto.ChatResponseDTO{}, &ChatError{StatusCode: http.StatusNotFound, ErrorCode: "user_not_found", Cause: err}
		}
		return dto.ChatResponseDTO{}, &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "chat_failed", Cause: err}
	}

	if s.limiter != nil && !s.limiter.TryReserve() {
		return dto.ChatResponseDTO{}, &ChatError{StatusCode: http.StatusTooManyRequests, ErrorCode: "rate_limited"}
	}

	requestedAt := time.Now()

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = ChatModeRecommendation
	}
	if mode != ChatModeRecommendation && mode != ChatModeInformation {
		return dto.ChatResponseDTO{}, &ChatError{StatusCode: http.StatusBadRequest, ErrorCode: "invalid_request"}
	}

	// information 모드 명시 요청은 추출을 건너뛰고 바로 답변 경로로 간다.
	if mode == ChatModeInformation {
		return s.answerTurn(ctx, userCode, req, requestedAt)
	}

	params, reqLog, err := llm.ExtractParams(ctx, req.Message, req.ConversationHistory)
	if err != nil {
		// 추출 실패는 턴 실패가 아니다. 규칙 기반 추정으로 이어간다.
		logger.ErrorWithFields("parameter extraction failed, using fallback", logger.Fields{
			"error": err.Error(),
		})
		params = llm.FallbackParams(req.Message)
		reqLog = nil
	}

	// 추출이 INFORMATION 의도로 판정하면 추천 집계 대신 답변 경로를 탄다.
	if params.Intent == llm.IntentInformation {
		return s.answerTurn(ctx, userCode, req, requestedAt)
	}

	classifier.Reclassify(params)

	items, err := s.recommendSvc.Recommend(ctx, req.Message, params)
	if err != nil {
		chatErr := &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "recommendation_failed", Cause: err}
		s.recordTurn(userCode, req, ChatModeRecommendation, string(params.Intent), reqLog, nil, requestedAt, chatErr)
		return dto.ChatResponseDTO{}, chatErr
	}

	if items == nil {
		items = []ranking.MediaItem{}
	}

	resp := dto.ChatResponseDTO{
		Intent:  string(llm.IntentRecommendation),
		Message: recommendationMessage(len(items)),
		Results: items,
		Metadata: dto.ChatMetadataDTO{
			Genres:      params.Genres,
			Year:        params.Year,
			Type:        params.Type,
			Keywords:    params.Keywords,
			DurationMs:  time.Since(requestedAt).Milliseconds(),
			ResultCount: len(items),
		},
	}
	if reqLog != nil {
		resp.Metadata.ModelName = reqLog.ModelName
		resp.Metadata.TotalTokens = reqLog.TokenUsage.TotalTokens
	}

	s.recordTurn(userCode, req, ChatModeRecommendation, string(llm.IntentRecommendation), reqLog, items, requestedAt, nil)
	return resp, nil
}

func recommendationMessage(count int) string {
	if count == 0 {
		return "I couldn't find any matches for that. Try a different title, genre, or keywords."
	}
	return fmt.Sprintf("Found %d titles you might like.", count)
}

// answerTurn 은 information 모드 턴을 처리한다. 제공자 조회 없이
// 답변 모델의 완성 텍스트를 그대로 돌려준다.
func (s *ChatService) answerTurn(ctx context.Context, userCode string, req dto.ChatRequestDTO, requestedAt time.Time) (dto.ChatResponseDTO, *ChatError) {
	answer, reqLog, err := llm.Answer(ctx, req.Message, req.ConversationHistory)
	if err != nil {
		chatErr := &ChatError{StatusCode: http.StatusInternalServerError, ErrorCode: "answer_failed", Cause: err}
		s.recordTurn(userCode, req, ChatModeInformation, string(llm.IntentInformation), reqLog, nil, requestedAt, chatErr)
		return dto.ChatResponseDTO{}, chatErr
	}

	resp := dto.ChatResponseDTO{
		Intent:  string(llm.IntentInformation),
		Message: answer,
		Results: []ranking.MediaItem{},
		Metadata: dto.ChatMetadataDTO{
			DurationMs: time.Since(requestedAt).Milliseconds(),
		},
	}
	if reqLog != nil {
		resp.Metadata.ModelName = reqLog.ModelName
		resp.Metadata.TotalTokens = reqLog.TokenUsage.TotalTokens
	}

	s.recordTurn(userCode, req, ChatModeInformation, string(llm.IntentInformation), reqLog, nil, requestedAt, nil)
	return resp, nil
}

// recordTurn 은 턴 하나의 분석 기록(mongo + kafka)을 남긴다.
// 실패해도 에러를 전파하지 않는다. 기록은 관측용이지 기능이 아니다.
func (s *ChatService) recordTurn(
	userCode string,
	req dto.ChatRequestDTO,
	mode, intent string,
	reqLog *llm.RequestLog,
	items []ranking.MediaItem,
	requestedAt time.Time,
	chatErr *ChatError,
) {
	ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
	defer cancel()

	completedAt := time.Now()
	resultIDs, resultTypes := ranking.IDsAndKinds(items)

	chatLog := models.ChatLog{
		UserCode:    userCode,
		SessionID:   req.SessionID,
		Mode:        mode,
		Intent:      intent,
		Message:     req.Message,
		DurationMs:  completedAt.Sub(requestedAt).Milliseconds(),
		ResultCount: len(items),
		ResultIDs:   resultIDs,
		ResultTypes: resultTypes,
		RequestedAt: requestedAt,
		CompletedAt: completedAt,
	}
	if reqLog != nil {
		chatLog.ModelName = reqLog.ModelName
		chatLog.ModelVersion = reqLog.ModelVersion
		chatLog.InputTokens = reqLog.TokenUsage.InputTokens
		chatLog.OutputTokens = reqLog.TokenUsage.OutputTokens
		chatLog.TotalTokens = reqLog.TokenUsage.TotalTokens
	}
	if chatErr != nil {
		msg := chatErr.ErrorCode
		if chatErr.Cause != nil {
			msg = chatErr.Cause.Error()
		}
		chatLog.ErrorMessage = &msg
	}

	if s.chatLogs != nil {
		if _, err := s.chatLogs.Insert(ctx, chatLog); err != nil {
			logger.ErrorWithFields("chat log insert failed", logger.Fields{
				"user_code": userCode,
				"error":     err.Error(),
			})
		}
	}

	// 실패한 턴은 사용량 집계 대상이 아니므로 이벤트를 내지 않는다.
	if s.bus == nil || chatErr != nil {
		return
	}

	event := events.ChatCompletedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.ChatCompleted,
			Timestamp: completedAt,
			Source:    "what2watch-api",
			Version:   "1.0",
		},
		UserCode:    userCode,
		SessionID:   req.SessionID,
		Mode:        mode,
		Intent:      intent,
		ResultCount: len(items),
		ResultIDs:   resultIDs,
		ResultTypes: resultTypes,
		DurationMs:  chatLog.DurationMs,
		TotalTokens: chatLog.TotalTokens,
		ModelName:   chatLog.ModelName,
		RequestedAt: requestedAt,
	}

	payload, _, err := events.SerializeEvent(event)
	if err != nil {
		logger.ErrorWithFields("chat event serialize failed", logger.Fields{"error": err.Error()})
		return
	}
	busEvent := eventbus.Event{
		ID:       event.ID,
		Payload:  payload,
		MaxRetry: len(eventbus.RetryDelays),
	}
	if err := s.bus.Publish(ctx, eventbus.TopicChatEvents.Base(), busEvent); err != nil {
		logger.ErrorWithFields("chat event publish failed", logger.Fields{
			"topic": eventbus.TopicChatEvents.Base(),
			"error": err.Error(),
		})
	}
}
