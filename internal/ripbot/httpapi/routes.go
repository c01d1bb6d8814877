package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	commonhealth "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/health"
	commonhttputil "github.com/park285/llm-kakao-bots/rip-bot-go/internal/common/httputil"
	ripmodel "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/model"
	riprepo "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/repository"
	ripservice "github.com/park285/llm-kakao-bots/rip-bot-go/internal/ripbot/service"
)

const (
	defaultSeasonHistoryLimit = 20
	maxSeasonHistoryLimit     = 100
)

// Register HTTP API 라우트 등록.
func Register(
	mux *http.ServeMux,
	ledgerView *ripservice.LedgerView,
	db *gorm.DB,
	logger *slog.Logger,
) {
	// GET /health - 헬스체크
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		commonhttputil.WriteJSON(w, http.StatusOK, commonhealth.Get())
	})

	// GET /api/rip/rooms/{chatId}/top/{scope} - 리더보드 조회
	mux.HandleFunc("GET /api/rip/rooms/{chatId}/top/{scope}", func(w http.ResponseWriter, r *http.Request) {
		handleLeaderboard(w, r, ledgerView, logger)
	})

	// GET /api/rip/rooms/{chatId}/records - 일일 기록 보드 조회
	mux.HandleFunc("GET /api/rip/rooms/{chatId}/records", func(w http.ResponseWriter, r *http.Request) {
		handleRecords(w, r, ledgerView, logger)
	})

	// GET /api/rip/rooms/{chatId}/seasons - 마감된 시즌 이력 조회 (Postgres)
	mux.HandleFunc("GET /api/rip/rooms/{chatId}/seasons", func(w http.ResponseWriter, r *http.Request) {
		handleSeasonHistory(w, r, db, logger)
	})

	logger.Info("rip_http_api_registered")
}

var leaderboardScopes = map[string]ripmodel.LeaderboardScope{
	"rips":     ripmodel.LeaderboardSeasonRips,
	"net":      ripmodel.LeaderboardSeasonNet,
	"yearrips": ripmodel.LeaderboardYearRips,
	"yearnet":  ripmodel.LeaderboardYearNet,
	"all":      ripmodel.LeaderboardAllRips,
}

func handleLeaderboard(w http.ResponseWriter, r *http.Request, ledgerView *ripservice.LedgerView, logger *slog.Logger) {
	chatID := r.PathValue("chatId")
	scope, ok := leaderboardScopes[r.PathValue("scope")]
	if chatID == "" || !ok {
		commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, "bad_request", "chatId and a valid scope are required")
		return
	}

	start := time.Now()
	text, err := ledgerView.Leaderboard(r.Context(), chatID, scope)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Error("LEADERBOARD_FAILED", "chatId", chatID, "scope", scope, "err", err, "duration", duration)
		commonhttputil.WriteErrorJSON(w, http.StatusInternalServerError, "internal_error", "failed to build leaderboard")
		return
	}

	logger.Info("LEADERBOARD_SUCCESS", "chatId", chatID, "scope", scope, "duration", duration)
	commonhttputil.WriteJSON(w, http.StatusOK, map[string]string{"board": text})
}

func handleRecords(w http.ResponseWriter, r *http.Request, ledgerView *ripservice.LedgerView, logger *slog.Logger) {
	chatID := r.PathValue("chatId")
	if chatID == "" {
		commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, "bad_request", "chatId is required")
		return
	}

	text, err := ledgerView.Records(r.Context(), chatID)
	if err != nil {
		logger.Error("RECORDS_FAILED", "chatId", chatID, "err", err)
		commonhttputil.WriteErrorJSON(w, http.StatusInternalServerError, "internal_error", "failed to build records")
		return
	}

	commonhttputil.WriteJSON(w, http.StatusOK, map[string]string{"board": text})
}

// SeasonHistoryEntry: 마감된 시즌 요약 응답 DTO
type SeasonHistoryEntry struct {
	SeasonID     string    `json:"seasonId"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	TotalRips    int64     `json:"totalRips"`
	TotalNet     int64     `json:"totalNet"`
	RipWinnerID  *string   `json:"ripWinnerId,omitempty"`
	NetWinnerID  *string   `json:"netWinnerId,omitempty"`
	Participants int       `json:"participants"`
	FinalizedAt  time.Time `json:"finalizedAt"`
}

func handleSeasonHistory(w http.ResponseWriter, r *http.Request, db *gorm.DB, logger *slog.Logger) {
	chatID := r.PathValue("chatId")
	if chatID == "" {
		commonhttputil.WriteErrorJSON(w, http.StatusBadRequest, "bad_request", "chatId is required")
		return
	}
	if db == nil {
		commonhttputil.WriteErrorJSON(w, http.StatusServiceUnavailable, "unavailable", "season archive unavailable")
		return
	}

	limit := defaultSeasonHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxSeasonHistoryLimit {
			limit = v
		}
	}

	var rows []riprepo.SeasonResult
	err := db.WithContext(r.Context()).
		Where("chat_id = ?", chatID).
		Order("finalized_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		logger.Error("SEASON_HISTORY_FAILED", "chatId", chatID, "err", err)
		commonhttputil.WriteErrorJSON(w, http.StatusInternalServerError, "internal_error", "failed to fetch season history")
		return
	}

	entries := make([]SeasonHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, SeasonHistoryEntry{
			SeasonID:     row.SeasonID,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			TotalRips:    row.TotalRips,
			TotalNet:     row.TotalNet,
			RipWinnerID:  row.RipWinnerID,
			NetWinnerID:  row.NetWinnerID,
			Participants: row.Participants,
			FinalizedAt:  row.FinalizedAt,
		})
	}
	commonhttputil.WriteJSON(w, http.StatusOK, entries)
}
