package ranking

import (
	"sort"
	"strings"
)

// Kind 는 추천 결과 항목의 미디어 종류 태그다.
// 항목 생성 시점에 명시적으로 부여하며, 필드 유무로 타입을 추측하지 않는다.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// MediaItem 은 콘텐츠 제공자에서 가져온 영화/TV 항목의 공통 표현이다.
type MediaItem struct {
	Kind        Kind    `json:"kind"`
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
}

// 고품질 필터 기준값.
const (
	MinQualityRating = 6.5
	MinQualityVotes  = 200
)

// DedupeByID 는 제공자 항목 id 기준으로 중복을 제거한다. 먼저 나온 항목이 이긴다.
func DedupeByID(items []MediaItem) []MediaItem {
	seen := make(map[int]struct{}, len(items))
	out := make([]MediaItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// FilterHighQuality 는 평점/투표수 기준을 만족하는 항목만 남긴다.
// 순수 함수이므로 두 번 적용해도 결과가 같다.
func FilterHighQuality(items []MediaItem) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, item := range items {
		if item.VoteAverage >= MinQualityRating && item.VoteCount >= MinQualityVotes {
			out = append(out, item)
		}
	}
	return out
}

// SortByRatingVotes 는 평점 내림차순, 동점이면 투표수 내림차순으로 정렬한다.
// 안정 정렬이므로 평점과 투표수가 모두 같은 쌍은 원래 순서를 유지한다.
func SortByRatingVotes(items []MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].VoteAverage != items[j].VoteAverage {
			return items[i].VoteAverage > items[j].VoteAverage
		}
		return items[i].VoteCount > items[j].VoteCount
	})
}

// SortByPopularity 는 인기도 내림차순으로 정렬한다.
func SortByPopularity(items []MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Popularity > items[j].Popularity
	})
}

// SortByReleaseDate 는 개봉일/방영일 내림차순으로 정렬한다.
// 날짜는 YYYY-MM-DD 형식이라 문자열 비교로 충분하며, 빈 날짜는 뒤로 보낸다.
func SortByReleaseDate(items []MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ReleaseDate == "" {
			return false
		}
		if items[j].ReleaseDate == "" {
			return true
		}
		return items[i].ReleaseDate > items[j].ReleaseDate
	})
}

// Truncate 는 최대 n개까지만 남긴다.
func Truncate(items []MediaItem, n int) []MediaItem {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// SearchPages 는 요청 결과 수를 채우기 위해 조회할 검색 페이지 수를 계산한다.
// ceil(count/pageSize)+1 페이지를 요청하되 최대 5페이지로 제한한다.
func SearchPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 20
	}
	if count <= 0 {
		count = pageSize
	}
	pages := (count+pageSize-1)/pageSize + 1
	if pages > 5 {
		pages = 5
	}
	return pages
}

// MatchesAnyKeyword 는 제목+줄거리 텍스트에 키워드 중 하나라도 포함되는지 확인한다.
// 의미 매칭이 아니라 재현율 위주의 대소문자 무시 부분 문자열 매칭이다.
func MatchesAnyKeyword(item MediaItem, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	text := strings.ToLower(item.Title + " " + item.Overview)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IDsAndKinds 는 분석 로그용 (id 목록, 종류 목록) 병렬 배열을 만든다.
func IDsAndKinds(items []MediaItem) ([]int, []string) {
	ids := make([]int, 0, len(items))
	kinds := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		kinds = append(kinds, string(item.Kind))
	}
	return ids, kinds
}
