package quota

import (
	"sync"
	"time"

	"what2watch/config"
)

// ChatQuotaLimiter 는 채팅용 LLM 호출에 대한 분당/일일 한도를 관리한다.
// API 게이트웨이 인스턴스가 하나라는 전제를 두고 인메모리로 동작하며,
// 애플리케이션이 재시작되면 카운터가 초기화된다.
// (실제 운영에서는 영속 스토리지 기반으로 확장할 수 있도록 설계 여지를 남긴다.)
type ChatQuotaLimiter struct {
	mu sync.Mutex

	minuteLimit int
	usedThisMin int
	minuteKey   string

	dailyLimit int
	usedToday  int
	dayKey     string
}

// NewChatQuotaLimiterFromConfig 는 config.yaml 의 chat_quota 설정을 기반으로
// ChatQuotaLimiter 를 생성한다. 설정 값이 0 이하인 경우에는 해당 방향의 제한을 두지 않는다.
func NewChatQuotaLimiterFromConfig(cfg config.AppConfig) *ChatQuotaLimiter {
	q := cfg.ChatQuota

	requestsPerMinute := q.RequestsPerMinute
	if requestsPerMinute < 0 {
		requestsPerMinute = 0
	}

	requestsPerDay := q.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	return &ChatQuotaLimiter{
		minuteLimit: requestsPerMinute,
		dailyLimit:  requestsPerDay,
	}
}

// TryReserve 는 채팅 턴 하나에 대한 한도를 선점한다.
// 요약 파이프라인과 달리 대화형 경로에서는 대기가 의미 없으므로,
// 한도를 넘으면 기다리지 않고 즉시 false 를 반환한다(상위에서 429 처리).
func (l *ChatQuotaLimiter) TryReserve() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()

	todayKey := now.Format("2006-01-02")
	if l.dayKey != todayKey {
		l.dayKey = todayKey
		l.usedToday = 0
	}

	minuteKey := now.Format("2006-01-02T15:04")
	if l.minuteKey != minuteKey {
		l.minuteKey = minuteKey
		l.usedThisMin = 0
	}

	if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
		return false
	}
	if l.minuteLimit > 0 && l.usedThisMin >= l.minuteLimit {
		return false
	}

	l.usedToday++
	l.usedThisMin++
	return true
}
