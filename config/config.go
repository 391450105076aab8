package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig   `yaml:"logging"`
	MongoURI    string          `yaml:"mongo_uri"`
	MongoDBName string          `yaml:"mongo_db_name"`
	LLM         LLMConfig       `yaml:"llm"`
	TMDB        TMDBConfig      `yaml:"tmdb"`
	ChatQuota   ChatQuotaConfig `yaml:"chat_quota"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig 는 채팅 파이프라인에서 사용하는 LLM 모델 설정이다.
// ExtractModel 은 파라미터 추출용(저온도, JSON 응답), AnswerModel 은
// information 모드 답변용(지식 정확도 우선) 모델이다.
type LLMConfig struct {
	Provider     string `yaml:"provider"`
	ExtractModel string `yaml:"extract_model"`
	AnswerModel  string `yaml:"answer_model"`
}

// TMDBConfig 는 콘텐츠 메타데이터 제공자(TMDB) 호출 설정이다.
// PageSize 는 제공자가 페이지당 돌려주는 결과 수로, 검색 페이지 수 계산에 사용된다.
type TMDBConfig struct {
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
}

// ChatQuotaConfig 는 채팅용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type ChatQuotaConfig struct {
	// RequestsPerMinute 는 채팅 LLM 호출에 대한 분당 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 채팅 LLM 호출에 대한 일일 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c

	initLogger(c.Logging.Level)
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
