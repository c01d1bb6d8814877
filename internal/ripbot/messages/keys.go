package messages

// CritHit: 활동/크리티컬 안내 관련 메시지 키
const (
	ActivityRegistered = "activity.registered"
	CritHit            = "crit.hit"
	CritStatus         = "crit.status"
	StreakStatus       = "streak.status"
	StatsUser          = "stats.user"
)

// BetRoundOpened: 베팅 라운드 진행 관련 메시지 키
const (
	BetRoundOpened  = "bet.round_opened"
	BetPlaced       = "bet.placed"
	BetBelowMinimum = "bet.below_minimum"
	BetInsufficient = "bet.insufficient"
	BetInvalidPick  = "bet.invalid_pick"

	RoundNone   = "round.none"
	RoundStatus = "round.status"
)

// ResultSpin: 라운드 결과 발표 관련 메시지 키
const (
	ResultSpin    = "result.spin"
	ResultNoBets  = "result.no_bets"
	ResultHeader  = "result.header"
	ResultLineWin = "result.line_win"
	ResultLineLos = "result.line_loss"
)

// SeasonEndHeader: 시즌 마감 발표 관련 메시지 키
const (
	SeasonEndHeader      = "season.end_header"
	SeasonRipWinner      = "season.rip_winner"
	SeasonNetWinner      = "season.net_winner"
	SeasonNoStats        = "season.no_stats"
	SeasonStatusActive   = "season.status_active"
	SeasonStatusUpcoming = "season.status_upcoming"
)

// TopHeaderSeasonRips: 리더보드/기록 보드 관련 메시지 키
const (
	TopHeaderSeasonRips = "top.header_season_rips"
	TopHeaderSeasonNet  = "top.header_season_net"
	TopHeaderYearRips   = "top.header_year_rips"
	TopHeaderYearNet    = "top.header_year_net"
	TopHeaderAllRips    = "top.header_all_rips"
	TopLine             = "top.line"
	TopEmpty            = "top.empty"

	RecordsHeader = "records.header"
	RecordsLine   = "records.line"
	RecordsEmpty  = "records.empty"
)

// AdminXPAdjusted: 관리자 명령 관련 메시지 키
const (
	AdminXPAdjusted  = "admin.xp_adjusted"
	AdminRipsAdded   = "admin.rips_added"
	AdminInvalidArgs = "admin.invalid_args"
	AdminDenied      = "admin.denied"
)

// HelpMessage: 일반 안내 및 에러 관련 메시지 키
const (
	HelpMessage = "help.message"
	Pong        = "misc.pong"
	Uptime      = "misc.uptime"
	VersionInfo = "misc.version"

	ErrorGeneric        = "error.generic"
	ErrorUnknownCommand = "error.unknown_command"
	ErrorUserBlocked    = "error.user_blocked"
	ErrorChatBlocked    = "error.chat_blocked"
	ErrorAccessDenied   = "error.access_denied"
	UserAnonymous       = "error.user_anonymous"
)
