package mq

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/parser"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	ripservice "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/service"
)

// CommandParser: 사용자 입력 메시지에서 정규식을 이용해 봇 명령어를 추출하고 파싱하는 처리기
type CommandParser struct {
	parser.BaseParser

	betRe     *regexp.Regexp
	roundRe   *regexp.Regexp
	statsRe   *regexp.Regexp
	streakRe  *regexp.Regexp
	critRe    *regexp.Regexp
	seasonRe  *regexp.Regexp
	topRe     *regexp.Regexp
	recordsRe *regexp.Regexp
	addExpRe  *regexp.Regexp
	addRipsRe *regexp.Regexp
	pingRe    *regexp.Regexp
	uptimeRe  *regexp.Regexp
	versionRe *regexp.Regexp
	helpRe    *regexp.Regexp
}

// NewCommandParser: 주어진 접두사(prefix)를 기반으로 정규식 패턴들을 초기화하여 새로운 CommandParser를 생성한다.
func NewCommandParser(prefix string) *CommandParser {
	base := parser.NewBaseParser(prefix, "!")
	p := &CommandParser{BaseParser: base}

	p.betRe = p.BuildPatternCaseInsensitive(`\s*bet\s+(\S+)\s+([\d,]+)\s*$`)
	p.roundRe = p.BuildPatternCaseInsensitive(`\s*round\s*$`)
	p.statsRe = p.BuildPatternCaseInsensitive(`\s*stats\s*$`)
	p.streakRe = p.BuildPatternCaseInsensitive(`\s*streak\s*$`)
	p.critRe = p.BuildPatternCaseInsensitive(`\s*crit\s*$`)
	p.seasonRe = p.BuildPatternCaseInsensitive(`\s*season\s*$`)
	p.topRe = p.BuildPatternCaseInsensitive(`\s*top(?:\s+(rips|net|yearrips|yearnet|all))?\s*$`)
	p.recordsRe = p.BuildPatternCaseInsensitive(`\s*records\s*$`)
	p.addExpRe = p.BuildPatternCaseInsensitive(`\s*addexp\s+(\S+)\s+(-?\d+)\s*$`)
	p.addRipsRe = p.BuildPatternCaseInsensitive(`\s*addrips\s+(\S+)\s+(\d+)\s*$`)
	p.pingRe = p.BuildPatternCaseInsensitive(`\s*ping\s*$`)
	p.uptimeRe = p.BuildPatternCaseInsensitive(`\s*uptime\s*$`)
	p.versionRe = p.BuildPatternCaseInsensitive(`\s*version\s*$`)
	p.helpRe = p.BuildPatternCaseInsensitive(`\s*help\s*$`)

	return p
}

// Parse: 입력된 메시지 문자열을 분석하여 해당하는 Command 객체로 반환한다.
// 접두사로 시작하지 않는 메시지는 nil을 반환한다. (트리거 단어 분류 경로로 넘어감)
func (p *CommandParser) Parse(message string) *Command {
	text := p.TrimMessage(message)
	if text == "" {
		return nil
	}

	if cmd := p.parseBet(text); cmd != nil {
		return cmd
	}
	if cmd := p.parseAdmin(text); cmd != nil {
		return cmd
	}
	if parser.MatchSimple(p.roundRe, text) {
		return &Command{Kind: CommandRound}
	}
	if parser.MatchSimple(p.statsRe, text) {
		return &Command{Kind: CommandStats}
	}
	if parser.MatchSimple(p.streakRe, text) {
		return &Command{Kind: CommandStreak}
	}
	if parser.MatchSimple(p.critRe, text) {
		return &Command{Kind: CommandCrit}
	}
	if parser.MatchSimple(p.seasonRe, text) {
		return &Command{Kind: CommandSeason}
	}
	if cmd := p.parseTop(text); cmd != nil {
		return cmd
	}
	if parser.MatchSimple(p.recordsRe, text) {
		return &Command{Kind: CommandRecords}
	}
	if parser.MatchSimple(p.pingRe, text) {
		return &Command{Kind: CommandPing}
	}
	if parser.MatchSimple(p.uptimeRe, text) {
		return &Command{Kind: CommandUptime}
	}
	if parser.MatchSimple(p.versionRe, text) {
		return &Command{Kind: CommandVersion}
	}
	if parser.MatchSimple(p.helpRe, text) {
		return &Command{Kind: CommandHelp}
	}

	return &Command{Kind: CommandUnknown}
}

func (p *CommandParser) parseBet(text string) *Command {
	m := p.betRe.FindStringSubmatch(text)
	if len(m) < 3 {
		return nil
	}

	betType, pick, err := ripservice.ParseBetPick(m[1])
	if err != nil {
		// 유효하지 않은 대상도 베팅 명령으로 취급하여 안내 메시지를 받게 한다.
		return &Command{Kind: CommandBet, BetPick: strings.TrimSpace(m[1]), BetAmount: -1}
	}

	amount, err := strconv.ParseInt(strings.ReplaceAll(m[2], ",", ""), 10, 64)
	if err != nil {
		// 파싱 불가능한 금액은 음수 금액으로 넘겨 최소 베팅 안내를 받게 한다.
		return &Command{Kind: CommandBet, BetType: betType, BetPick: pick, BetAmount: -1}
	}

	return &Command{Kind: CommandBet, BetType: betType, BetPick: pick, BetAmount: amount}
}

func (p *CommandParser) parseTop(text string) *Command {
	m := p.topRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	scope := ripmodel.LeaderboardSeasonRips
	if len(m) >= 2 && m[1] != "" {
		switch strings.ToLower(strings.TrimSpace(m[1])) {
		case "rips":
			scope = ripmodel.LeaderboardSeasonRips
		case "net":
			scope = ripmodel.LeaderboardSeasonNet
		case "yearrips":
			scope = ripmodel.LeaderboardYearRips
		case "yearnet":
			scope = ripmodel.LeaderboardYearNet
		case "all":
			scope = ripmodel.LeaderboardAllRips
		}
	}
	return &Command{Kind: CommandTop, TopScope: scope}
}

// parseAdmin: 관리자 전용 명령어를 파싱한다.
func (p *CommandParser) parseAdmin(text string) *Command {
	if m := p.addExpRe.FindStringSubmatch(text); len(m) >= 3 {
		delta, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return &Command{Kind: CommandAddXP, TargetUserID: strings.TrimSpace(m[1])}
		}
		return &Command{Kind: CommandAddXP, TargetUserID: strings.TrimSpace(m[1]), AdminAmount: delta}
	}
	if m := p.addRipsRe.FindStringSubmatch(text); len(m) >= 3 {
		amount, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return &Command{Kind: CommandAddRips, TargetUserID: strings.TrimSpace(m[1])}
		}
		return &Command{Kind: CommandAddRips, TargetUserID: strings.TrimSpace(m[1]), AdminAmount: amount}
	}
	return nil
}
