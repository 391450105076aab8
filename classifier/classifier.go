// Package classifier 는 추출된 query 문자열을 제목/인명/키워드 중 무엇으로
// 다룰지 정하는 순수 문자열 휴리스틱 모음이다. 외부 호출이 없어 전부 결정적이다.
// 휴리스틱일 뿐 보장이 아니다. 소문자 인명 같은 애매한 입력은 잘못 분류될 수 있고,
// 그 경우 상위에서 직접 검색으로 폴백한다.
package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"what2watch/llm"
)

// 키워드 추출 시 제거하는 고정 불용어 집합.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "in": {}, "on": {}, "for": {},
	"to": {}, "and": {}, "or": {}, "with": {}, "about": {}, "some": {},
	"all": {}, "time": {}, "times": {}, "ever": {}, "me": {}, "i": {},
	"you": {}, "my": {}, "your": {}, "want": {}, "like": {}, "please": {},
	"recommend": {}, "recommendation": {}, "recommendations": {},
	"suggest": {}, "suggestions": {}, "watch": {}, "watching": {},
	"best": {}, "top": {}, "good": {}, "great": {}, "greatest": {},
	"movie": {}, "movies": {}, "film": {}, "films": {},
	"show": {}, "shows": {}, "series": {}, "tv": {},
}

// 쿼리에 포함된 일반적(비제목성) 표현을 감지하는 패턴.
var genericTermRe = regexp.MustCompile(`(?i)\b(best|top|greatest|good|movies?|films?|shows?|series|tv|of all time|all time|must[ -]?watch|recommend(ation)?s?|watch)\b`)

// 원문 메시지에서 "고품질 결과" 요구를 감지하는 패턴.
var highQualityRe = regexp.MustCompile(`(?i)\b(best|top|greatest|highest[ -]?rated|top[ -]?rated|must[ -]?watch|award[ -]?winning|critically[ -]?acclaimed)\b`)

// 제목 뒤에 붙는 미디어 접미사. 문자열 끝에서만 제거한다.
var mediaSuffixes = []string{"movies", "movie", "films", "film", "shows", "show", "series"}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// StripLeadingAll 은 쿼리 선두의 "all " 토큰 하나를 제거한다.
func StripLeadingAll(q string) string {
	q = strings.TrimSpace(q)
	if len(q) >= 4 && strings.EqualFold(q[:4], "all ") {
		return strings.TrimSpace(q[4:])
	}
	return q
}

// IsTitleLike 는 쿼리가 작품 제목처럼 보이는지 판정한다.
// 공백 기준 2단어 이상이고, (어느 한 단어라도 대문자로 시작하거나
// 관사 the/a/an 으로 시작하면) 제목으로 본다.
func IsTitleLike(q string) bool {
	words := strings.Fields(q)
	if len(words) < 2 {
		return false
	}

	first := strings.ToLower(words[0])
	if first == "the" || first == "a" || first == "an" {
		return true
	}

	for _, w := range words {
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			return true
		}
	}
	return false
}

// IsPersonNameLike 는 쿼리가 인명처럼 보이는지 판정한다.
// 2단어 이상, 모든 단어가 대문자로 시작, 미디어 단어 미포함.
func IsPersonNameLike(q string) bool {
	words := strings.Fields(q)
	if len(words) < 2 {
		return false
	}

	lower := strings.ToLower(q)
	for _, media := range []string{"movie", "film", "show", "series"} {
		if strings.Contains(lower, media) {
			return false
		}
	}

	for _, w := range words {
		r := []rune(w)
		if len(r) == 0 || !unicode.IsUpper(r[0]) {
			return false
		}
	}
	return true
}

// IsGenericQuery 는 쿼리에 "best", "movies", "of all time" 류의
// 일반 표현이 포함되어 있는지 확인한다.
func IsGenericQuery(q string) bool {
	return genericTermRe.MatchString(q)
}

// WantsHighQuality 는 원문 메시지에 최상급 표현이 있어
// 고품질 필터(평점/투표수 기준)를 적용해야 하는지 판정한다.
func WantsHighQuality(message string) bool {
	return highQualityRe.MatchString(message)
}

// TrimMediaSuffix 는 제목성 쿼리 끝의 "movies"/"films"/"shows"/"series" 류
// 접미사를 제거한다. 문자열 끝에서만, 반복적으로 제거한다.
func TrimMediaSuffix(q string) string {
	for {
		trimmed := strings.TrimSpace(q)
		lower := strings.ToLower(trimmed)
		stripped := false
		for _, suffix := range mediaSuffixes {
			if strings.HasSuffix(lower, " "+suffix) {
				q = strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
				stripped = true
				break
			}
		}
		if !stripped {
			return strings.TrimSpace(q)
		}
	}
}

// KeywordsFromQuery 는 일반성 쿼리를 키워드 목록으로 내린다.
// 공백 토큰화 → 소문자화 → 비영숫자 제거 → 불용어 제거 →
// 기존 키워드와 중복 제거 → 합산 6개 제한.
func KeywordsFromQuery(q string, existing []string) []string {
	const maxKeywords = 6

	out := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, kw := range existing {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
		if len(out) >= maxKeywords {
			return out
		}
	}

	for _, token := range strings.Fields(q) {
		token = nonAlnumRe.ReplaceAllString(strings.ToLower(token), "")
		if token == "" {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
		if len(out) >= maxKeywords {
			break
		}
	}
	return out
}

// Reclassify 는 추출된 파라미터를 한 번만 수정하는 재분류 단계다.
// - 선두 "all " 토큰 제거
// - 제목성 아님 + 일반 표현 포함 → 쿼리를 키워드로 내리고 쿼리를 비움
// - 제목성 → 끝의 미디어 접미사 제거
func Reclassify(p *llm.ExtractedParams) {
	q := StripLeadingAll(p.Query)
	if q == "" {
		p.Query = ""
		return
	}

	if !IsTitleLike(q) && IsGenericQuery(q) {
		p.Keywords = KeywordsFromQuery(q, p.Keywords)
		p.Query = ""
		return
	}

	if IsTitleLike(q) {
		q = TrimMediaSuffix(q)
	}
	p.Query = q
}
