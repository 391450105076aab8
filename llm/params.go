package llm

import (
	"strings"
	"time"
)

// Intent 는 한 채팅 턴의 처리 경로를 결정한다. LLM 응답에서 한 번 설정되면 바뀌지 않는다.
type Intent string

const (
	IntentRecommendation Intent = "RECOMMENDATION"
	IntentInformation    Intent = "INFORMATION"
)

// 미디어 타입 필터 값. 제공자의 어느 엔드포인트를 조회할지 결정한다.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
	MediaTypeAll   = "all"
)

const (
	DefaultResultCount = 20
	MaxResultCount     = 50
	MinYear            = 1901
)

// Turn 은 호출자가 함께 보내는 대화 이력의 한 턴이다.
// 서버는 턴 사이 상태를 저장하지 않으며, 이력은 항상 요청 바디로 전달받는다.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ExtractedParams 는 LLM 이 사용자 메시지에서 추출한 구조화 검색 의도다.
// 요청마다 새로 만들어지고, 휴리스틱 재분류 단계에서 한 번 수정된 뒤
// 결과 집계 단계에서 읽기 전용으로 소비된다.
type ExtractedParams struct {
	Intent   Intent   `json:"intent"`
	Query    string   `json:"query,omitempty"`
	Genres   []int    `json:"genres,omitempty"`
	Year     int      `json:"year,omitempty"`
	Type     string   `json:"type,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Count    int      `json:"count,omitempty"`
}

// Normalize 는 필드별로 독립 검증하고 잘못된 값은 버리거나 범위로 자른다.
// 부분적으로만 유효한 추출 결과도 그대로 사용한다. 전체 실패보다 낫다.
func (p *ExtractedParams) Normalize() {
	switch p.Intent {
	case IntentRecommendation, IntentInformation:
	default:
		p.Intent = IntentRecommendation
	}

	switch p.Type {
	case MediaTypeMovie, MediaTypeTV, MediaTypeAll:
	default:
		p.Type = MediaTypeAll
	}

	maxYear := time.Now().Year() + 1
	if p.Year != 0 && (p.Year < MinYear || p.Year > maxYear) {
		p.Year = 0
	}

	if p.Count <= 0 {
		p.Count = DefaultResultCount
	} else if p.Count > MaxResultCount {
		p.Count = MaxResultCount
	}

	genres := p.Genres[:0]
	for _, g := range p.Genres {
		if g > 0 {
			genres = append(genres, g)
		}
	}
	p.Genres = genres

	keywords := p.Keywords[:0]
	for _, kw := range p.Keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	p.Keywords = keywords

	p.Query = strings.TrimSpace(p.Query)
}

// FallbackParams 는 LLM 추출이 실패했을 때 쓰는 결정적 규칙 기반 추정이다.
// 대충이라도 추천을 이어가는 쪽이 요청 전체를 실패시키는 것보다 낫다.
func FallbackParams(message string) *ExtractedParams {
	lower := strings.ToLower(message)

	mediaType := MediaTypeAll
	if strings.Contains(lower, "movie") || strings.Contains(lower, "film") {
		mediaType = MediaTypeMovie
	} else if strings.Contains(lower, "tv") || strings.Contains(lower, "show") || strings.Contains(lower, "series") {
		mediaType = MediaTypeTV
	}

	p := &ExtractedParams{
		Intent: IntentRecommendation,
		Query:  message,
		Type:   mediaType,
	}
	p.Normalize()
	return p
}
