package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"what2watch/cmd/api/clients/tmdbclient"
	"what2watch/llm"
	"what2watch/ranking"
)

// stubProvider 는 호출 횟수를 세고 고정 결과를 돌려주는 ContentProvider 스텁이다.
type stubProvider struct {
	mu sync.Mutex

	searchMovieCalls   int
	searchTVCalls      int
	searchPersonCalls  int
	movieCreditsCalls  int
	tvCreditsCalls     int
	discoverMovieCalls int
	discoverTVCalls    int

	movies     []ranking.MediaItem
	tvs        []ranking.MediaItem
	discMovies []ranking.MediaItem
	discTVs    []ranking.MediaItem
	people     []tmdbclient.Person
	credits    []ranking.MediaItem

	lastDiscoverSort string

	err       error
	personErr error
}

func (s *stubProvider) SearchMovies(ctx context.Context, query string, page int) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.searchMovieCalls++
	s.mu.Unlock()
	return s.movies, s.err
}

func (s *stubProvider) SearchTV(ctx context.Context, query string, page int) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.searchTVCalls++
	s.mu.Unlock()
	return s.tvs, s.err
}

func (s *stubProvider) SearchPerson(ctx context.Context, query string, page int) ([]tmdbclient.Person, error) {
	s.mu.Lock()
	s.searchPersonCalls++
	s.mu.Unlock()
	if s.personErr != nil {
		return nil, s.personErr
	}
	return s.people, s.err
}

func (s *stubProvider) GetPersonMovieCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.movieCreditsCalls++
	s.mu.Unlock()
	return s.credits, s.err
}

func (s *stubProvider) GetPersonTVCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.tvCreditsCalls++
	s.mu.Unlock()
	return s.credits, s.err
}

func (s *stubProvider) DiscoverMovies(ctx context.Context, filter tmdbclient.DiscoverFilter) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.discoverMovieCalls++
	s.lastDiscoverSort = filter.SortBy
	s.mu.Unlock()
	return s.discMovies, s.err
}

func (s *stubProvider) DiscoverTV(ctx context.Context, filter tmdbclient.DiscoverFilter) ([]ranking.MediaItem, error) {
	s.mu.Lock()
	s.discoverTVCalls++
	s.lastDiscoverSort = filter.SortBy
	s.mu.Unlock()
	return s.discTVs, s.err
}

func newTestService(p ContentProvider) *RecommendService {
	return &RecommendService{provider: p, pageSize: 20}
}

func TestRecommendDiscoverBranchRespectsMediaType(t *testing.T) {
	stub := &stubProvider{
		discTVs: []ranking.MediaItem{{Kind: ranking.KindTV, ID: 1, Title: "drama"}},
	}
	svc := newTestService(stub)

	// 장르만 추출된 요청은 디스커버리 브랜치로 가고, TV 디스커버리를 정확히 한 번 호출한다.
	params := &llm.ExtractedParams{Type: llm.MediaTypeTV, Genres: []int{27}, Count: 20}
	items, err := svc.Recommend(context.Background(), "Horror TV shows", params)

	assert.NoError(t, err)
	assert.NotEmpty(t, items)
	assert.Equal(t, 1, stub.discoverTVCalls)
	assert.Zero(t, stub.discoverMovieCalls)
	assert.Zero(t, stub.searchMovieCalls)
	assert.Zero(t, stub.searchTVCalls)
}

func TestRecommendSearchBranchPageMath(t *testing.T) {
	stub := &stubProvider{}
	svc := newTestService(stub)

	// count=40, pageSize=20 → ceil(40/20)+1 = 3페이지
	params := &llm.ExtractedParams{Query: "the matrix", Type: llm.MediaTypeMovie, Count: 40}
	_, err := svc.Recommend(context.Background(), "the matrix movies", params)

	assert.NoError(t, err)
	assert.Equal(t, 3, stub.searchMovieCalls)
}

func TestRecommendSearchBranchForTitleQuery(t *testing.T) {
	stub := &stubProvider{
		movies: []ranking.MediaItem{{Kind: ranking.KindMovie, ID: 603, Title: "The Matrix"}},
	}
	svc := newTestService(stub)

	// 소문자 제목은 인명 휴리스틱에 걸리지 않고 바로 직접 검색으로 간다.
	params := &llm.ExtractedParams{Query: "the matrix", Type: llm.MediaTypeMovie, Count: 20}
	items, err := svc.Recommend(context.Background(), "I want to watch the matrix", params)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, stub.searchMovieCalls)
	assert.Zero(t, stub.searchTVCalls)
	assert.Zero(t, stub.searchPersonCalls)
}

func TestRecommendSearchBranchPreservesProviderOrder(t *testing.T) {
	// 최상급 표현이 없는 메시지는 제공자의 연관도 순서를 그대로 돌려준다.
	// 평점이 더 높은 항목이 뒤에 있어도 재정렬하지 않는다.
	stub := &stubProvider{
		movies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 1, Title: "Close Match", VoteAverage: 5.0, VoteCount: 100},
			{Kind: ranking.KindMovie, ID: 2, Title: "Acclaimed One", VoteAverage: 9.0, VoteCount: 9000},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Query: "the matrix", Type: llm.MediaTypeMovie, Count: 20}
	items, err := svc.Recommend(context.Background(), "I want to watch the matrix", params)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

func TestRecommendPersonBranch(t *testing.T) {
	stub := &stubProvider{
		people: []tmdbclient.Person{{ID: 525, Name: "Christopher Nolan"}},
		credits: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4, VoteCount: 36000},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Query: "Christopher Nolan", Type: llm.MediaTypeAll, Count: 20}
	items, err := svc.Recommend(context.Background(), "movies by Christopher Nolan", params)

	assert.NoError(t, err)
	assert.NotEmpty(t, items)
	assert.Equal(t, 1, stub.searchPersonCalls)
	assert.Equal(t, 1, stub.movieCreditsCalls)
	assert.Equal(t, 1, stub.tvCreditsCalls)
}

func TestRecommendPersonBranchFallsBackToSearch(t *testing.T) {
	// 인물 검색 결과가 없으면 같은 쿼리로 직접 검색한다.
	stub := &stubProvider{}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Query: "Unknown Person", Type: llm.MediaTypeAll, Count: 20}
	_, err := svc.Recommend(context.Background(), "movies by Unknown Person", params)

	assert.NoError(t, err)
	assert.Equal(t, 1, stub.searchPersonCalls)
	assert.Equal(t, 2, stub.searchMovieCalls)
	assert.Equal(t, 2, stub.searchTVCalls)
	assert.Zero(t, stub.movieCreditsCalls)
}

func TestRecommendPersonBranchErrorFallsBackToSearch(t *testing.T) {
	// 인물 검색이 실패해도 턴을 실패시키지 않고 같은 쿼리로 직접 검색한다.
	stub := &stubProvider{
		personErr: errors.New("person search unavailable"),
		movies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 6384, Title: "The Matrix Reloaded"},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Query: "Keanu Reeves", Type: llm.MediaTypeMovie, Count: 20}
	items, err := svc.Recommend(context.Background(), "Keanu Reeves action", params)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 6384, items[0].ID)
	assert.Equal(t, 1, stub.searchPersonCalls)
	assert.Equal(t, 2, stub.searchMovieCalls)
	assert.Zero(t, stub.movieCreditsCalls)
}

func TestRecommendFallbackBranchUsesRawMessage(t *testing.T) {
	stub := &stubProvider{
		movies: []ranking.MediaItem{{Kind: ranking.KindMovie, ID: 1}},
		tvs:    []ranking.MediaItem{{Kind: ranking.KindTV, ID: 2}},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeAll, Count: 20}
	items, err := svc.Recommend(context.Background(), "something to watch tonight", params)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, stub.searchMovieCalls)
	assert.Equal(t, 1, stub.searchTVCalls)
}

func TestRecommendProviderErrorAbortsBranch(t *testing.T) {
	stub := &stubProvider{err: errors.New("provider unavailable")}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeAll, Genres: []int{28}, Count: 20}
	items, err := svc.Recommend(context.Background(), "action movies", params)

	assert.Error(t, err)
	assert.Nil(t, items)
}

func TestRecommendAppliesQualityFilterAndRanking(t *testing.T) {
	stub := &stubProvider{
		movies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 1, Title: "Low Quality", VoteAverage: 5.0, VoteCount: 50},
			{Kind: ranking.KindMovie, ID: 2, Title: "Great One", VoteAverage: 8.5, VoteCount: 5000},
			{Kind: ranking.KindMovie, ID: 3, Title: "Good One", VoteAverage: 7.2, VoteCount: 800},
			{Kind: ranking.KindMovie, ID: 2, Title: "Great One", VoteAverage: 8.5, VoteCount: 5000}, // 중복
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Query: "The Classics", Type: llm.MediaTypeMovie, Count: 2}
	items, err := svc.Recommend(context.Background(), "best classic movies", params)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
}

func TestRecommendKeywordBranchFiltersDiscovered(t *testing.T) {
	stub := &stubProvider{
		discMovies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 1, Title: "The Social Network", Overview: "a tech startup story"},
			{Kind: ranking.KindMovie, ID: 2, Title: "Romance", Overview: "a love story"},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeMovie, Keywords: []string{"tech"}, Count: 20}
	items, err := svc.Recommend(context.Background(), "movies about tech", params)

	assert.NoError(t, err)
	// 디스커버리 3페이지 + 키워드 검색 1회
	assert.Equal(t, 3, stub.discoverMovieCalls)
	assert.Equal(t, 1, stub.searchMovieCalls)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestRecommendKeywordBranchSortsByPopularity(t *testing.T) {
	// 고품질 모드가 아니면 키워드 브랜치는 인기 내림차순으로 정렬한다.
	stub := &stubProvider{
		discMovies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 1, Title: "Indie Tech", Overview: "a tech story", Popularity: 3.2},
			{Kind: ranking.KindMovie, ID: 2, Title: "Big Tech", Overview: "another tech story", Popularity: 87.5},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeMovie, Keywords: []string{"tech"}, Count: 20}
	items, err := svc.Recommend(context.Background(), "movies about tech", params)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
	// 기본 모드 디스커버리는 정렬 키를 지정하지 않는다(클라이언트 기본 인기순).
	assert.Empty(t, stub.lastDiscoverSort)
}

func TestRecommendKeywordBranchQualityMode(t *testing.T) {
	// 최상급 표현이 있으면 디스커버리를 평점순으로 요청하고(5페이지),
	// 평점/투표수 필터 후 평점 내림차순으로 정렬한다.
	stub := &stubProvider{
		discMovies: []ranking.MediaItem{
			{Kind: ranking.KindMovie, ID: 1, Title: "Solid Tech", Overview: "a tech story", VoteAverage: 7.0, VoteCount: 500},
			{Kind: ranking.KindMovie, ID: 2, Title: "Obscure Tech", Overview: "a tech story", VoteAverage: 5.0, VoteCount: 40},
			{Kind: ranking.KindMovie, ID: 3, Title: "Great Tech", Overview: "a tech story", VoteAverage: 8.8, VoteCount: 4000},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeMovie, Keywords: []string{"tech"}, Count: 20}
	items, err := svc.Recommend(context.Background(), "best movies about tech", params)

	assert.NoError(t, err)
	assert.Equal(t, 5, stub.discoverMovieCalls)
	assert.Equal(t, "vote_average.desc", stub.lastDiscoverSort)
	assert.Len(t, items, 2)
	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
}

func TestRecommendDiscoverBranchQualitySort(t *testing.T) {
	stub := &stubProvider{
		discTVs: []ranking.MediaItem{
			{Kind: ranking.KindTV, ID: 1, Title: "cult classic", VoteAverage: 8.1, VoteCount: 900},
		},
	}
	svc := newTestService(stub)

	params := &llm.ExtractedParams{Type: llm.MediaTypeTV, Genres: []int{27}, Count: 20}
	items, err := svc.Recommend(context.Background(), "top rated horror", params)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "vote_average.desc", stub.lastDiscoverSort)
}
