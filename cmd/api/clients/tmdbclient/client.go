package tmdbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"what2watch/cmd/api/httpclient"
	"what2watch/config"
	"what2watch/ranking"
)

// Client는 콘텐츠 메타데이터 제공자(TMDB) REST API를 호출하는 얇은 클라이언트다.
//
// - 인증: TMDB_API_KEY 환경변수의 Bearer 토큰
// - 검색/디스커버리/인물 크레딧만 사용하며, 응답은 생성 시점에
//   kind 태그가 붙은 ranking.MediaItem 으로 변환해 돌려준다.
type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("tmdb request failed: status=%d body=%s", e.StatusCode, e.Body)
}

const defaultBaseURL = "https://api.themoviedb.org/3"

func New() *Client {
	base := config.GetConfig().TMDB.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	httpClient := httpclient.New(httpclient.Config{Timeout: 15 * time.Second})
	return &Client{
		base:   httpclient.NewBaseClientWithClient(httpClient, base),
		apiKey: os.Getenv("TMDB_API_KEY"),
	}
}

// DiscoverFilter 는 디스커버리 엔드포인트의 필터 집합이다.
// Genres 의 장르 id 공간은 movie/tv 가 서로 다르므로 요청한 타입의
// 엔드포인트에만 전달해야 한다.
type DiscoverFilter struct {
	Genres []int
	Year   int
	SortBy string // 예: "popularity.desc", "vote_average.desc"
	Page   int
}

// ---------- 응답 타입 ----------

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
}

type tvResult struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path"`
	GenreIDs     []int   `json:"genre_ids"`
}

type movieListResponse struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []movieResult `json:"results"`
}

type tvListResponse struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []tvResult `json:"results"`
}

// Person 은 인물 검색 결과 한 건이다.
type Person struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Popularity float64 `json:"popularity"`
}

type personListResponse struct {
	Page    int      `json:"page"`
	Results []Person `json:"results"`
}

type movieCreditsResponse struct {
	Cast []movieResult `json:"cast"`
}

type tvCreditsResponse struct {
	Cast []tvResult `json:"cast"`
}

func (m movieResult) toItem() ranking.MediaItem {
	return ranking.MediaItem{
		Kind:        ranking.KindMovie,
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
		PosterPath:  m.PosterPath,
		GenreIDs:    m.GenreIDs,
	}
}

func (t tvResult) toItem() ranking.MediaItem {
	return ranking.MediaItem{
		Kind:        ranking.KindTV,
		ID:          t.ID,
		Title:       t.Name,
		Overview:    t.Overview,
		ReleaseDate: t.FirstAirDate,
		VoteAverage: t.VoteAverage,
		VoteCount:   t.VoteCount,
		Popularity:  t.Popularity,
		PosterPath:  t.PosterPath,
		GenreIDs:    t.GenreIDs,
	}
}

// ---------- API 메서드 ----------

// SearchMovies 는 GET /search/movie 를 호출한다.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) ([]ranking.MediaItem, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(normalizePage(page)))

	var out movieListResponse
	if err := c.getJSON(ctx, "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return movieItems(out.Results), nil
}

// SearchTV 는 GET /search/tv 를 호출한다.
func (c *Client) SearchTV(ctx context.Context, query string, page int) ([]ranking.MediaItem, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(normalizePage(page)))

	var out tvListResponse
	if err := c.getJSON(ctx, "/search/tv", q, &out); err != nil {
		return nil, err
	}
	return tvItems(out.Results), nil
}

// SearchPerson 은 GET /search/person 을 호출한다.
func (c *Client) SearchPerson(ctx context.Context, query string, page int) ([]Person, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(normalizePage(page)))

	var out personListResponse
	if err := c.getJSON(ctx, "/search/person", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetPersonMovieCredits 는 GET /person/{id}/movie_credits 의 cast 목록을 반환한다.
func (c *Client) GetPersonMovieCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error) {
	var out movieCreditsResponse
	relPath := fmt.Sprintf("/person/%d/movie_credits", personID)
	if err := c.getJSON(ctx, relPath, nil, &out); err != nil {
		return nil, err
	}
	return movieItems(out.Cast), nil
}

// GetPersonTVCredits 는 GET /person/{id}/tv_credits 의 cast 목록을 반환한다.
func (c *Client) GetPersonTVCredits(ctx context.Context, personID int) ([]ranking.MediaItem, error) {
	var out tvCreditsResponse
	relPath := fmt.Sprintf("/person/%d/tv_credits", personID)
	if err := c.getJSON(ctx, relPath, nil, &out); err != nil {
		return nil, err
	}
	return tvItems(out.Cast), nil
}

// DiscoverMovies 는 GET /discover/movie 를 호출한다.
func (c *Client) DiscoverMovies(ctx context.Context, filter DiscoverFilter) ([]ranking.MediaItem, error) {
	q := discoverQuery(filter)
	if filter.Year > 0 {
		q.Set("primary_release_year", strconv.Itoa(filter.Year))
	}

	var out movieListResponse
	if err := c.getJSON(ctx, "/discover/movie", q, &out); err != nil {
		return nil, err
	}
	return movieItems(out.Results), nil
}

// DiscoverTV 는 GET /discover/tv 를 호출한다.
func (c *Client) DiscoverTV(ctx context.Context, filter DiscoverFilter) ([]ranking.MediaItem, error) {
	q := discoverQuery(filter)
	if filter.Year > 0 {
		q.Set("first_air_date_year", strconv.Itoa(filter.Year))
	}

	var out tvListResponse
	if err := c.getJSON(ctx, "/discover/tv", q, &out); err != nil {
		return nil, err
	}
	return tvItems(out.Results), nil
}

// Health 는 GET /configuration 으로 제공자 연결 상태를 확인한다.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, "/configuration", nil, &out)
}

// ---------- 내부 헬퍼 ----------

func (c *Client) getJSON(ctx context.Context, relPath string, query url.Values, out any) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, query, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	const maxBodySize = 5 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return fmt.Errorf("tmdb response read failed: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.Unmarshal(body, out)
}

func discoverQuery(filter DiscoverFilter) url.Values {
	q := url.Values{}
	if len(filter.Genres) > 0 {
		ids := make([]string, 0, len(filter.Genres))
		for _, g := range filter.Genres {
			ids = append(ids, strconv.Itoa(g))
		}
		q.Set("with_genres", strings.Join(ids, ","))
	}
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	q.Set("sort_by", sortBy)
	q.Set("page", strconv.Itoa(normalizePage(filter.Page)))
	return q
}

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func movieItems(results []movieResult) []ranking.MediaItem {
	items := make([]ranking.MediaItem, 0, len(results))
	for _, r := range results {
		items = append(items, r.toItem())
	}
	return items
}

func tvItems(results []tvResult) []ranking.MediaItem {
	items := make([]ranking.MediaItem, 0, len(results))
	for _, r := range results {
		items = append(items, r.toItem())
	}
	return items
}
