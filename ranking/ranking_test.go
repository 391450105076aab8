package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeByIDFirstWins(t *testing.T) {
	items := []MediaItem{
		{Kind: KindMovie, ID: 1, Title: "first"},
		{Kind: KindTV, ID: 2, Title: "second"},
		{Kind: KindMovie, ID: 1, Title: "duplicate"},
	}

	out := DedupeByID(items)

	assert.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
}

func TestFilterHighQuality(t *testing.T) {
	items := []MediaItem{
		{ID: 1, VoteAverage: 8.0, VoteCount: 1000},
		{ID: 2, VoteAverage: 6.4, VoteCount: 1000}, // 평점 미달
		{ID: 3, VoteAverage: 9.0, VoteCount: 199},  // 투표수 미달
		{ID: 4, VoteAverage: 6.5, VoteCount: 200},  // 경계값 포함
	}

	out := FilterHighQuality(items)

	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 4, out[1].ID)

	// 순수 함수이므로 두 번 적용해도 결과가 같다.
	assert.Equal(t, out, FilterHighQuality(out))
}

func TestSortByRatingVotes(t *testing.T) {
	items := []MediaItem{
		{ID: 1, VoteAverage: 7.0, VoteCount: 100},
		{ID: 2, VoteAverage: 8.0, VoteCount: 50},
		{ID: 3, VoteAverage: 7.0, VoteCount: 500},
		{ID: 4, VoteAverage: 7.0, VoteCount: 100}, // ID 1과 완전 동률
	}

	SortByRatingVotes(items)

	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
	// 안정 정렬: 동률 쌍은 원래 순서를 유지한다.
	assert.Equal(t, 1, items[2].ID)
	assert.Equal(t, 4, items[3].ID)
}

func TestSortByReleaseDateEmptyLast(t *testing.T) {
	items := []MediaItem{
		{ID: 1, ReleaseDate: ""},
		{ID: 2, ReleaseDate: "2020-05-01"},
		{ID: 3, ReleaseDate: "2023-01-15"},
	}

	SortByReleaseDate(items)

	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
	assert.Equal(t, 1, items[2].ID)
}

func TestTruncate(t *testing.T) {
	items := []MediaItem{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, Truncate(items, 2), 2)
	assert.Len(t, Truncate(items, 5), 3)
	assert.Len(t, Truncate(items, 0), 3) // 0 이하는 절단하지 않음
}

func TestSearchPages(t *testing.T) {
	assert.Equal(t, 2, SearchPages(20, 20))
	assert.Equal(t, 3, SearchPages(40, 20))
	assert.Equal(t, 3, SearchPages(21, 20))
	assert.Equal(t, 5, SearchPages(100, 20)) // 상한 5페이지
	assert.Equal(t, 2, SearchPages(0, 20))   // count 미지정은 한 페이지 분량으로 간주
}

func TestMatchesAnyKeyword(t *testing.T) {
	item := MediaItem{Title: "The Social Network", Overview: "The story of a tech startup."}

	assert.True(t, MatchesAnyKeyword(item, []string{"tech"}))
	assert.True(t, MatchesAnyKeyword(item, []string{"SOCIAL"})) // 대소문자 무시
	assert.False(t, MatchesAnyKeyword(item, []string{"space"}))
	assert.False(t, MatchesAnyKeyword(item, nil))
}

func TestIDsAndKinds(t *testing.T) {
	items := []MediaItem{
		{Kind: KindMovie, ID: 10},
		{Kind: KindTV, ID: 20},
	}

	ids, kinds := IDsAndKinds(items)

	assert.Equal(t, []int{10, 20}, ids)
	assert.Equal(t, []string{"movie", "tv"}, kinds)
}
