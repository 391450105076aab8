package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"what2watch/config"
)

// information 모드는 추천 모드보다 긴 이력(최근 20턴)을 전달한다.
const maxAnswerHistoryTurns = 20

const ANSWER_SYSTEM_INSTRUCTION = `
You are a knowledgeable film and television assistant.
Answer the user's question about movies, TV shows, actors, directors, awards, or film history.
Prioritize factual accuracy over speculation. If you are not sure about a fact, say so explicitly.
Keep answers concise and conversational. Respond in the language the user wrote in.
Do not invent titles, dates, or credits.
`

// Answer 는 information 모드 질의를 지식 정확도 우선 시스템 프롬프트와 함께
// 상위 모델에 보내고, 완성 텍스트를 그대로 반환한다.
// 추출/집계와 달리 이 경로의 모델 오류는 복구하지 않고 그대로 전파한다.
func Answer(ctx context.Context, message string, history []Turn) (string, *RequestLog, error) {
	startTime := time.Now()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	llmCfg := config.GetConfig().LLM
	if llmCfg.Provider != "google" {
		return "", nil, fmt.Errorf("unsupported LLM provider: %s", llmCfg.Provider)
	}
	modelName := llmCfg.AnswerModel

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return "", nil, err
	}

	contents := buildContents(message, history, maxAnswerHistoryTurns)

	result, err := client.Models.GenerateContent(
		ctx,
		modelName,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: ANSWER_SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return "", nil, err
	}

	return result.Text(), newRequestLog(result, modelName, message, startTime), nil
}
