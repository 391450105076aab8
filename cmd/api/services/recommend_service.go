package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"what2watch/classifier"
	"what2watch/cmd/api/clients/tmdbclient"
	"what2watch/config"
	"what2watch/llm"
	"what2watch/ranking"
)

// ContentProvider 는 추천 집계가 사용하는 콘텐츠 메타데이터 제공자 호출 집합이다.
// 테스트에서 스텁으로 교체할 수 있도록 구체 클라이언트 대신 인터페이스에 의존한다.
type ContentProvider interface {
	SearchMovies(ctx context.Context, query string, page int) ([]ranking.MediaItem, error)
	SearchTV(ctx context.Context, query string, page int) ([]ranking.MediaItem, error)
	SearchPerson(ctx context.Context, query string, page int) ([]tmdbclient.Person, error)
	GetPersonMovieCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error)
	GetPersonTVCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error)
	DiscoverMovies(ctx context.Context, filter tmdbclient.DiscoverFilter) ([]ranking.MediaItem, error)
	DiscoverTV(ctx context.Context, filter tmdbclient.DiscoverFilter) ([]ranking.MediaItem, error)
}

// 키워드 브랜치에서 조회하는 디스커버리 페이지 수.
// 고품질 필터가 적용되면 필터로 걸러지는 양을 고려해 더 깊게 읽는다.
const (
	keywordDiscoverPages   = 3
	keywordDiscoverPagesHQ = 5
	maxKeywordSearches     = 3
	fallbackPerType        = 10
)

// 고품질 모드에서 디스커버리 엔드포인트에 넘기는 정렬 키.
// 기본값(빈 문자열)은 클라이언트가 popularity.desc 로 채운다.
const discoverSortByRating = "vote_average.desc"

// RecommendService 는 추출된 파라미터를 제공자 호출로 변환하고
// 결과를 중복 제거/필터/정렬/절단하여 최종 추천 목록을 만든다.
type RecommendService struct {
	provider ContentProvider
	pageSize int
}

func NewRecommendService(provider ContentProvider) *RecommendService {
	pageSize := config.GetConfig().TMDB.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &RecommendService{provider: provider, pageSize: pageSize}
}

// Recommend 는 라우팅 우선순위에 따라 정확히 하나의 브랜치를 실행한다.
//  1. 인명성 쿼리   → 인물 검색 + 출연작 (최신순)
//  2. 쿼리 존재     → 직접 검색 (제공자 순서 유지)
//  3. 키워드 존재   → 디스커버리 + 키워드 검색 + 부분 문자열 필터 (인기순)
//  4. 장르/연도     → 디스커버리 (제공자 순서 유지)
//  5. 그 외         → 원문 메시지 검색 폴백 (제공자 순서 유지)
//
// 기본 정렬이 브랜치마다 다르므로 중복 제거/정렬/절단은 각 브랜치가 끝낸다.
// 원문 메시지에 최상급 표현이 있으면(고품질 모드) 인물 브랜치를 제외한
// 브랜치들이 평점/투표수 필터를 적용하고 평점 내림차순으로 재정렬한다.
//
// 브랜치 내 병렬 호출 중 하나라도 실패하면 부분 결과를 버리고 에러를 반환한다.
// 빈 결과는 에러가 아니다.
func (s *RecommendService) Recommend(ctx context.Context, message string, params *llm.ExtractedParams) ([]ranking.MediaItem, error) {
	highQuality := classifier.WantsHighQuality(message)

	switch {
	case params.Query != "" && classifier.IsPersonNameLike(params.Query):
		return s.personBranch(ctx, params, highQuality)
	case params.Query != "":
		return s.searchBranch(ctx, params.Query, params.Type, params.Count, highQuality)
	case len(params.Keywords) > 0:
		return s.keywordBranch(ctx, params, highQuality)
	case len(params.Genres) > 0 || params.Year > 0:
		return s.discoverBranch(ctx, params, highQuality)
	default:
		return s.fallbackBranch(ctx, message, params.Type, params.Count)
	}
}

// personBranch 는 인물을 검색해 최상위 일치 인물의 출연작을 모은다.
// 인물 검색/출연작 조회가 실패하거나 인물이 검색되지 않으면 같은 쿼리로
// 직접 검색에 폴백한다. 소문자 인명 같은 오분류 쿼리가 여기로 흡수된다.
// 출연작은 평점보다 최신순이 유용하므로 개봉일 내림차순으로 정렬한다.
func (s *RecommendService) personBranch(ctx context.Context, params *llm.ExtractedParams, highQuality bool) ([]ranking.MediaItem, error) {
	people, err := s.provider.SearchPerson(ctx, params.Query, 1)
	if err != nil || len(people) == 0 {
		return s.searchBranch(ctx, params.Query, params.Type, params.Count, highQuality)
	}
	personID := people[0].ID

	var mu sync.Mutex
	var items []ranking.MediaItem
	g, gctx := errgroup.WithContext(ctx)

	if params.Type == llm.MediaTypeMovie || params.Type == llm.MediaTypeAll {
		g.Go(func() error {
			credits, err := s.provider.GetPersonMovieCredits(gctx, personID)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, credits...)
			mu.Unlock()
			return nil
		})
	}
	if params.Type == llm.MediaTypeTV || params.Type == llm.MediaTypeAll {
		g.Go(func() error {
			credits, err := s.provider.GetPersonTVCredits(gctx, personID)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, credits...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return s.searchBranch(ctx, params.Query, params.Type, params.Count, highQuality)
	}

	items = ranking.DedupeByID(items)
	ranking.SortByReleaseDate(items)
	return ranking.Truncate(items, params.Count), nil
}

// searchBranch 는 쿼리를 제목 검색 엔드포인트로 보낸다.
// 요청 수를 채울 만큼의 페이지를 타입별로 병렬 조회한다.
// 제공자의 연관도 순서를 유지하고, 고품질 모드에서만 필터와 평점 정렬을 적용한다.
func (s *RecommendService) searchBranch(ctx context.Context, query, mediaType string, count int, highQuality bool) ([]ranking.MediaItem, error) {
	pages := ranking.SearchPages(count, s.pageSize)

	var mu sync.Mutex
	var items []ranking.MediaItem
	g, gctx := errgroup.WithContext(ctx)

	for page := 1; page <= pages; page++ {
		if mediaType == llm.MediaTypeMovie || mediaType == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.SearchMovies(gctx, query, page)
				if err != nil {
					return err
				}
				mu.Lock()
				items = append(items, found...)
				mu.Unlock()
				return nil
			})
		}
		if mediaType == llm.MediaTypeTV || mediaType == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.SearchTV(gctx, query, page)
				if err != nil {
					return err
				}
				mu.Lock()
				items = append(items, found...)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items = ranking.DedupeByID(items)
	if highQuality {
		items = ranking.FilterHighQuality(items)
		ranking.SortByRatingVotes(items)
	}
	return ranking.Truncate(items, count), nil
}

// keywordBranch 는 장르/연도 필터로 디스커버리 페이지를 넓게 읽고,
// 키워드 일부는 검색 쿼리로도 시도한 뒤, 합쳐진 결과를
// 제목+줄거리 부분 문자열 매칭으로 걸러낸다.
// 기본 정렬은 인기 내림차순, 고품질 모드에서는 평점/투표수 정렬이다.
func (s *RecommendService) keywordBranch(ctx context.Context, params *llm.ExtractedParams, highQuality bool) ([]ranking.MediaItem, error) {
	pages := keywordDiscoverPages
	sortBy := ""
	if highQuality {
		pages = keywordDiscoverPagesHQ
		sortBy = discoverSortByRating
	}

	var mu sync.Mutex
	var discovered []ranking.MediaItem
	var searched []ranking.MediaItem
	g, gctx := errgroup.WithContext(ctx)

	for page := 1; page <= pages; page++ {
		filter := tmdbclient.DiscoverFilter{
			Genres: params.Genres,
			Year:   params.Year,
			SortBy: sortBy,
			Page:   page,
		}
		if params.Type == llm.MediaTypeMovie || params.Type == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.DiscoverMovies(gctx, filter)
				if err != nil {
					return err
				}
				mu.Lock()
				discovered = append(discovered, found...)
				mu.Unlock()
				return nil
			})
		}
		if params.Type == llm.MediaTypeTV || params.Type == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.DiscoverTV(gctx, filter)
				if err != nil {
					return err
				}
				mu.Lock()
				discovered = append(discovered, found...)
				mu.Unlock()
				return nil
			})
		}
	}

	keywords := params.Keywords
	if len(keywords) > maxKeywordSearches {
		keywords = keywords[:maxKeywordSearches]
	}
	for _, kw := range keywords {
		if params.Type == llm.MediaTypeMovie || params.Type == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.SearchMovies(gctx, kw, 1)
				if err != nil {
					return err
				}
				mu.Lock()
				searched = append(searched, found...)
				mu.Unlock()
				return nil
			})
		}
		if params.Type == llm.MediaTypeTV || params.Type == llm.MediaTypeAll {
			g.Go(func() error {
				found, err := s.provider.SearchTV(gctx, kw, 1)
				if err != nil {
					return err
				}
				mu.Lock()
				searched = append(searched, found...)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 디스커버리 결과는 키워드와 무관하게 인기작이 섞여 있으므로
	// 키워드 매칭으로 걸러낸다. 검색 결과는 이미 키워드로 조회한 것이라 그대로 둔다.
	merged := make([]ranking.MediaItem, 0, len(discovered)+len(searched))
	for _, item := range discovered {
		if ranking.MatchesAnyKeyword(item, params.Keywords) {
			merged = append(merged, item)
		}
	}
	merged = append(merged, searched...)

	merged = ranking.DedupeByID(merged)
	if highQuality {
		merged = ranking.FilterHighQuality(merged)
		ranking.SortByRatingVotes(merged)
	} else {
		ranking.SortByPopularity(merged)
	}
	return ranking.Truncate(merged, params.Count), nil
}

// discoverBranch 는 장르/연도 필터만으로 디스커버리 엔드포인트를 조회한다.
// 필터 자체가 결과 공간을 좁히므로 타입별 한 페이지만 읽는다.
// 기본은 제공자의 인기순 응답을 그대로 쓰고, 고품질 모드에서만
// 평점순으로 요청한 뒤 필터와 평점 정렬을 적용한다.
func (s *RecommendService) discoverBranch(ctx context.Context, params *llm.ExtractedParams, highQuality bool) ([]ranking.MediaItem, error) {
	sortBy := ""
	if highQuality {
		sortBy = discoverSortByRating
	}
	filter := tmdbclient.DiscoverFilter{
		Genres: params.Genres,
		Year:   params.Year,
		SortBy: sortBy,
		Page:   1,
	}

	var mu sync.Mutex
	var items []ranking.MediaItem
	g, gctx := errgroup.WithContext(ctx)

	if params.Type == llm.MediaTypeMovie || params.Type == llm.MediaTypeAll {
		g.Go(func() error {
			found, err := s.provider.DiscoverMovies(gctx, filter)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, found...)
			mu.Unlock()
			return nil
		})
	}
	if params.Type == llm.MediaTypeTV || params.Type == llm.MediaTypeAll {
		g.Go(func() error {
			found, err := s.provider.DiscoverTV(gctx, filter)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items = ranking.DedupeByID(items)
	if highQuality {
		items = ranking.FilterHighQuality(items)
		ranking.SortByRatingVotes(items)
	}
	return ranking.Truncate(items, params.Count), nil
}

// fallbackBranch 는 추출이 아무 신호도 주지 못했을 때 원문 메시지를
// 그대로 검색 쿼리로 사용한다. 노이즈가 많으므로 타입별 상위 일부만 취하고
// 필터나 재정렬 없이 중복 제거와 절단만 한다.
func (s *RecommendService) fallbackBranch(ctx context.Context, message, mediaType string, count int) ([]ranking.MediaItem, error) {
	var mu sync.Mutex
	var items []ranking.MediaItem
	g, gctx := errgroup.WithContext(ctx)

	if mediaType == llm.MediaTypeMovie || mediaType == llm.MediaTypeAll {
		g.Go(func() error {
			found, err := s.provider.SearchMovies(gctx, message, 1)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, ranking.Truncate(found, fallbackPerType)...)
			mu.Unlock()
			return nil
		})
	}
	if mediaType == llm.MediaTypeTV || mediaType == llm.MediaTypeAll {
		g.Go(func() error {
			found, err := s.provider.SearchTV(gctx, message, 1)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, ranking.Truncate(found, fallbackPerType)...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items = ranking.DedupeByID(items)
	return ranking.Truncate(items, count), nil
}
