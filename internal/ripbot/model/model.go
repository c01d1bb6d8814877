package model

// UserStats: 사용자 잔고(XP)와 누적 립 카운트 (영구 보존)
type UserStats struct {
	XP          int64 `json:"xp"`
	AllTimeRips int64 `json:"allTimeRips"`
}

// ActivityState: 사용자별 기간 카운터/연속 기록/크리티컬 확률 상태
// 카운터는 저장된 키가 현재 기간 키와 일치할 때만 유효하다.
type ActivityState struct {
	LastDayKey   string `json:"lastDayKey"`
	Daily        int64  `json:"daily"`
	LastWeekKey  string `json:"lastWeekKey"`
	Weekly       int64  `json:"weekly"`
	LastMonthKey string `json:"lastMonthKey"`
	Monthly      int64  `json:"monthly"`
	LastYear     int    `json:"lastYear"`
	Yearly       int64  `json:"yearly"`

	Streak     int64   `json:"streak"`
	CritChance float64 `json:"critChance"`
}

// SeasonState: 현재 추적 중인 시즌 윈도우
type SeasonState struct {
	ID           string `json:"id"`
	Start        string `json:"start"`        // "2006-01-02"
	EndExclusive string `json:"endExclusive"` // "2006-01-02"
	Active       bool   `json:"active"`
}

// SeasonStats: 시즌 단위로 리셋되는 사용자별 집계
type SeasonStats struct {
	SeasonRips      int64 `json:"seasonRips"`
	SeasonGambleBet int64 `json:"seasonGambleBet"`
	SeasonGambleWon int64 `json:"seasonGambleWon"`
}

// Net: 시즌 도박 순익 (딴 금액 - 베팅 금액)
func (s SeasonStats) Net() int64 {
	return s.SeasonGambleWon - s.SeasonGambleBet
}

// YearlyTotals: 연 단위 누적 (시즌 마감 시 합산됨)
type YearlyTotals struct {
	YearRips      int64 `json:"yearRips"`
	YearGambleNet int64 `json:"yearGambleNet"`
}

// HighscoreRecord: 일일 최다 기록 보드 엔트리 (상위 3개 유지)
type HighscoreRecord struct {
	Date   string `json:"date"`
	UserID string `json:"userId"`
	Count  int64  `json:"count"`
}

// State: 채팅방 하나의 전체 영속 상태 블롭.
// 핸들러는 전체를 읽고(Load) 변경 후 전체를 저장(Save)한다. 쓰기 단위의
// 원자성은 단일 블롭 저장이므로 단일 작성자 배포를 전제로 한다.
type State struct {
	Version int `json:"version"`

	Users      map[string]*UserStats     `json:"users"`
	Activity   map[string]*ActivityState `json:"activity"`
	Season     *SeasonState              `json:"season,omitempty"`
	SeasonMap  map[string]*SeasonStats   `json:"seasonStats"`
	YearlyYear int                       `json:"yearlyYear"`
	Yearly     map[string]*YearlyTotals  `json:"yearly"`
	Highscores []HighscoreRecord         `json:"highscores"`
}

// NewState: 빈 상태 블롭을 생성한다.
func NewState(version int) *State {
	return &State{
		Version:   version,
		Users:     make(map[string]*UserStats),
		Activity:  make(map[string]*ActivityState),
		SeasonMap: make(map[string]*SeasonStats),
		Yearly:    make(map[string]*YearlyTotals),
	}
}

// EnsureMaps: 역직렬화 후 nil 맵을 초기화한다.
func (s *State) EnsureMaps() {
	if s.Users == nil {
		s.Users = make(map[string]*UserStats)
	}
	if s.Activity == nil {
		s.Activity = make(map[string]*ActivityState)
	}
	if s.SeasonMap == nil {
		s.SeasonMap = make(map[string]*SeasonStats)
	}
	if s.Yearly == nil {
		s.Yearly = make(map[string]*YearlyTotals)
	}
}

// User: 사용자 스탯을 조회하고 없으면 생성한다.
func (s *State) User(userID string) *UserStats {
	u, ok := s.Users[userID]
	if !ok {
		u = &UserStats{}
		s.Users[userID] = u
	}
	return u
}

// ActivityOf: 사용자 활동 상태를 조회하고 없으면 생성한다.
func (s *State) ActivityOf(userID string) *ActivityState {
	a, ok := s.Activity[userID]
	if !ok {
		a = &ActivityState{}
		s.Activity[userID] = a
	}
	return a
}

// SeasonOf: 사용자 시즌 집계를 조회하고 없으면 생성한다.
func (s *State) SeasonOf(userID string) *SeasonStats {
	st, ok := s.SeasonMap[userID]
	if !ok {
		st = &SeasonStats{}
		s.SeasonMap[userID] = st
	}
	return st
}

// YearlyOf: 사용자 연간 누적을 조회하고 없으면 생성한다.
func (s *State) YearlyOf(userID string) *YearlyTotals {
	y, ok := s.Yearly[userID]
	if !ok {
		y = &YearlyTotals{}
		s.Yearly[userID] = y
	}
	return y
}

// Category: 분류된 활동 이벤트의 파라미터 묶음
type Category struct {
	Kind          string
	XPAward       int64
	CritIncrement float64
	CritPayout    int64
}
