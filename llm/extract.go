package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"what2watch/config"
)

// 추출 시에는 최근 10턴까지만 이력을 전달한다.
const maxExtractHistoryTurns = 10

const EXTRACT_SYSTEM_INSTRUCTION = `
You are a parameter extraction assistant for a movie and TV recommendation service.
Analyze the user's message (and the conversation history for context) and produce a structured search intent.
The response MUST be a valid JSON object with the following keys:

1. intent: "RECOMMENDATION" if the user wants movie/TV suggestions, "INFORMATION" if the user asks a factual question.
2. query: An optional free-text string extracted from the message (a title, a person name, or a short topic phrase). Omit if nothing specific was mentioned.
3. genres: An optional list of TMDB integer genre ids matching the request (movie ids for movies, TV ids for TV).
4. year: An optional 4-digit release year if the user mentioned one.
5. type: "movie", "tv", or "all" depending on which media the user asked about.
6. keywords: An optional list of short lowercase topic tokens (no stop words) usable as a discovery fallback.
7. count: An optional integer 1-50 if the user asked for a specific number of results.

Additional constraints:
- You MUST NOT wrap the JSON output in a markdown code block (e.g. ` + "```json ... ```" + `). The response should contain ONLY the raw JSON string.
- Omit keys you are not confident about rather than guessing.
`

// ExtractParams 는 사용자 메시지를 저온도 JSON 응답 제약으로 추출 모델에 보내
// 구조화된 검색 파라미터를 얻는다. 모델 오류나 JSON 파싱 실패 시 에러를 반환하며,
// 이때 호출자는 FallbackParams 로 폴백해야 한다.
func ExtractParams(ctx context.Context, message string, history []Turn) (*ExtractedParams, *RequestLog, error) {
	startTime := time.Now()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	llmCfg := config.GetConfig().LLM
	if llmCfg.Provider != "google" {
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", llmCfg.Provider)
	}
	modelName := llmCfg.ExtractModel

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, nil, err
	}

	contents := buildContents(message, history, maxExtractHistoryTurns)

	result, err := client.Models.GenerateContent(
		ctx,
		modelName,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: EXTRACT_SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr(float32(0.1)),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, nil, err
	}

	var params ExtractedParams
	if err := json.Unmarshal([]byte(result.Text()), &params); err != nil {
		return nil, nil, err
	}
	params.Normalize()

	return &params, newRequestLog(result, modelName, message, startTime), nil
}

// buildContents 는 대화 이력 중 최근 maxTurns 개와 새 메시지를 genai 콘텐츠로 변환한다.
func buildContents(message string, history []Turn, maxTurns int) []*genai.Content {
	if len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})
	return contents
}

func newRequestLog(result *genai.GenerateContentResponse, modelName, prompt string, startTime time.Time) *RequestLog {
	reqLog := &RequestLog{
		Prompt:       prompt,
		Response:     result.Text(),
		LatencyMs:    time.Since(startTime).Milliseconds(),
		ModelName:    modelName,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		reqLog.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return reqLog
}
