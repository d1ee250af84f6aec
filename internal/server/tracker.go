package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"streak-tracker/internal/constants"
	"streak-tracker/internal/domain"
	"streak-tracker/internal/leaderboard"
	"streak-tracker/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// TrackerServer exposes the derived records over JSON. It never touches the
// raw payloads; all derivation happens in the service layer.
type TrackerServer struct {
	userSvc *service.UserService
	board   *leaderboard.Board
	logger  zerolog.Logger
}

func NewTrackerServer(userSvc *service.UserService, board *leaderboard.Board, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{userSvc: userSvc, board: board, logger: logger}
}

// Router wires the API routes.
func (s *TrackerServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/leaderboard", s.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/users", s.TrackUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{username}", s.GetUser).Methods(http.MethodGet)
	return r
}

// GetLeaderboard returns every tracked user ordered by rank score descending.
func (s *TrackerServer) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	records := s.board.SortedView()

	entries := make([]userResponse, 0, len(records))
	for _, rec := range records {
		entries = append(entries, toUserResponse(rec))
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: entries})
}

// GetUser returns the detail view for one tracked user.
func (s *TrackerServer) GetUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	rec, ok := s.board.Get(username)
	if !ok {
		writeError(w, http.StatusNotFound, "user not tracked")
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: toUserDetailResponse(rec)})
}

type trackUserRequest struct {
	Username string `json:"username"`
}

// TrackUser fetches a new user and admits it to the board. If the username is
// already tracked the existing record is returned unchanged.
func (s *TrackerServer) TrackUser(w http.ResponseWriter, r *http.Request) {
	var req trackUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	if rec, ok := s.board.Get(req.Username); ok {
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: toUserResponse(rec)})
		return
	}

	rec, err := s.userSvc.Track(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Data: toUserResponse(*rec)})
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

type userResponse struct {
	Username          string `json:"username"`
	AvatarURL         string `json:"avatarUrl,omitempty"`
	Easy              int    `json:"easy"`
	Medium            int    `json:"medium"`
	Hard              int    `json:"hard"`
	Solved            int    `json:"solved"`
	Last8Days         []bool `json:"last8Days"`
	CurrentStreak     int    `json:"currentStreak"`
	WeekPattern       []bool `json:"weekPattern"`
	ThisWeekCount     int    `json:"thisWeekCount"`
	CompletionPercent int    `json:"completionPercent"`
	RankScore         int    `json:"rankScore"`
}

type userDetailResponse struct {
	userResponse

	// Per-difficulty progress against the catalog maxima, for the detail
	// page's progress bars.
	EasyPercent   float64 `json:"easyPercent"`
	MediumPercent float64 `json:"mediumPercent"`
	HardPercent   float64 `json:"hardPercent"`
}

func toUserResponse(rec domain.UserRecord) userResponse {
	return userResponse{
		Username:          rec.Username,
		AvatarURL:         rec.AvatarURL,
		Easy:              rec.Easy,
		Medium:            rec.Medium,
		Hard:              rec.Hard,
		Solved:            rec.Solved,
		Last8Days:         rec.Last8Days,
		CurrentStreak:     rec.CurrentStreak,
		WeekPattern:       rec.WeekPattern,
		ThisWeekCount:     rec.ThisWeekCount,
		CompletionPercent: rec.CompletionPercent,
		RankScore:         rec.RankScore,
	}
}

func toUserDetailResponse(rec domain.UserRecord) userDetailResponse {
	return userDetailResponse{
		userResponse:  toUserResponse(rec),
		EasyPercent:   float64(rec.Easy) / constants.MaxEasyProblems * 100,
		MediumPercent: float64(rec.Medium) / constants.MaxMediumProblems * 100,
		HardPercent:   float64(rec.Hard) / constants.MaxHardProblems * 100,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}
