package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"what2watch/llm"
)

func TestIsTitleLike(t *testing.T) {
	assert.True(t, IsTitleLike("Lord of the Rings"))
	assert.True(t, IsTitleLike("the matrix"))    // 관사 시작
	assert.True(t, IsTitleLike("Breaking bad"))  // 대문자 단어 포함
	assert.False(t, IsTitleLike("inception"))    // 한 단어
	assert.False(t, IsTitleLike("best tech movies of all time"))
}

func TestIsPersonNameLike(t *testing.T) {
	assert.True(t, IsPersonNameLike("Christopher Nolan"))
	assert.True(t, IsPersonNameLike("Bong Joon Ho"))
	assert.False(t, IsPersonNameLike("Nolan"))               // 한 단어
	assert.False(t, IsPersonNameLike("christopher nolan"))   // 소문자
	assert.False(t, IsPersonNameLike("Christopher Nolan movies")) // 미디어 단어 포함
}

func TestTrimMediaSuffix(t *testing.T) {
	assert.Equal(t, "Star Wars", TrimMediaSuffix("Star Wars movies"))
	assert.Equal(t, "Lord of the Rings", TrimMediaSuffix("Lord of the Rings films"))
	// 끝에서만, 반복적으로 제거한다.
	assert.Equal(t, "Star Wars", TrimMediaSuffix("Star Wars movie series"))
	// 중간의 미디어 단어는 건드리지 않는다.
	assert.Equal(t, "The Movie Company", TrimMediaSuffix("The Movie Company"))
}

func TestWantsHighQuality(t *testing.T) {
	assert.True(t, WantsHighQuality("best sci-fi movies"))
	assert.True(t, WantsHighQuality("top rated thrillers"))
	assert.True(t, WantsHighQuality("critically acclaimed dramas"))
	assert.False(t, WantsHighQuality("movies about space travel"))
}

func TestKeywordsFromQuery(t *testing.T) {
	kws := KeywordsFromQuery("best tech movies of all time", nil)
	assert.Equal(t, []string{"tech"}, kws)

	// 기존 키워드가 앞에 오고, 중복은 제거된다.
	kws = KeywordsFromQuery("space adventure", []string{"space", "aliens"})
	assert.Equal(t, []string{"space", "aliens", "adventure"}, kws)

	// 합산 6개 제한.
	kws = KeywordsFromQuery("alpha beta gamma delta epsilon zeta eta", nil)
	assert.Len(t, kws, 6)
}

func TestReclassifyTitleLikeQuery(t *testing.T) {
	p := &llm.ExtractedParams{Query: "All Lord of the Rings movies"}
	Reclassify(p)

	assert.Equal(t, "Lord of the Rings", p.Query)
	assert.Empty(t, p.Keywords)
}

func TestReclassifyGenericQueryDemotedToKeywords(t *testing.T) {
	p := &llm.ExtractedParams{Query: "best tech movies of all time"}
	Reclassify(p)

	assert.Empty(t, p.Query)
	assert.Equal(t, []string{"tech"}, p.Keywords)
}

func TestReclassifyPreservesPersonName(t *testing.T) {
	p := &llm.ExtractedParams{Query: "Christopher Nolan"}
	Reclassify(p)

	assert.Equal(t, "Christopher Nolan", p.Query)
}

func TestReclassifyEmptyQuery(t *testing.T) {
	p := &llm.ExtractedParams{Query: "   ", Keywords: []string{"space"}}
	Reclassify(p)

	assert.Empty(t, p.Query)
	assert.Equal(t, []string{"space"}, p.Keywords)
}
