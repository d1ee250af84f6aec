package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"streak-tracker/internal/api"
	"streak-tracker/internal/calendar"
	"streak-tracker/internal/leaderboard"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-05-15 is a Wednesday.
var testToday = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

type fakeStatsAPI struct {
	solved   *api.SolvedResponse
	profile  *api.ProfileResponse
	calendar *api.CalendarResponse

	solvedErr   error
	profileErr  error
	calendarErr error
}

func (f *fakeStatsAPI) GetSolved(ctx context.Context, username string) (*api.SolvedResponse, error) {
	return f.solved, f.solvedErr
}

func (f *fakeStatsAPI) GetProfile(ctx context.Context, username string) (*api.ProfileResponse, error) {
	return f.profile, f.profileErr
}

func (f *fakeStatsAPI) GetCalendar(ctx context.Context, username string) (*api.CalendarResponse, error) {
	return f.calendar, f.calendarErr
}

func newTestService(client statsAPI) *UserService {
	return &UserService{
		client: client,
		board:  leaderboard.NewBoard(zerolog.Nop()),
		logger: zerolog.Nop(),
		now:    func() time.Time { return testToday },
	}
}

func calendarWith(offsets map[int]int) *api.CalendarResponse {
	payload := "{"
	first := true
	for off, count := range offsets {
		if !first {
			payload += ","
		}
		first = false
		day := calendar.NormalizeDay(testToday.AddDate(0, 0, off))
		payload += fmt.Sprintf("%q:%d", fmt.Sprint(day), count)
	}
	payload += "}"

	quoted, _ := json.Marshal(payload)
	return &api.CalendarResponse{SubmissionCalendar: quoted}
}

func TestFetchUser_EndToEnd(t *testing.T) {
	fake := &fakeStatsAPI{
		solved:   &api.SolvedResponse{SolvedProblem: 1500, EasySolved: 2, MediumSolved: 3, HardSolved: 1},
		profile:  &api.ProfileResponse{Avatar: "https://cdn/a.png"},
		calendar: calendarWith(map[int]int{0: 3, -3: 1}),
	}
	svc := newTestService(fake)

	rec, err := svc.FetchUser(context.Background(), "zuri10")
	require.NoError(t, err)

	assert.Equal(t, "zuri10", rec.Username)
	assert.Equal(t, "https://cdn/a.png", rec.AvatarURL)
	assert.Equal(t, 1500, rec.Solved)
	assert.Equal(t, 50, rec.CompletionPercent)
	assert.Equal(t, 2*50+3*100+1*200, rec.RankScore)

	// Activity on today and three days ago only: two flags, and the isolated
	// recent day yields a streak of one.
	assert.Equal(t, []bool{false, false, false, false, true, false, false, true}, rec.Last8Days)
	assert.Equal(t, 1, rec.CurrentStreak)
	assert.Equal(t, rec.ThisWeekCount, countTrue(rec.WeekPattern))
	assert.Len(t, rec.WeekPattern, 7)
	assert.Equal(t, testToday, rec.FetchedAt)
}

func TestFetchUser_AnyPayloadFailureAbandonsUser(t *testing.T) {
	fetchErr := errors.New("connection refused")

	cases := []struct {
		name string
		fake *fakeStatsAPI
	}{
		{"solved fails", &fakeStatsAPI{solvedErr: fetchErr, profile: &api.ProfileResponse{}, calendar: &api.CalendarResponse{}}},
		{"profile fails", &fakeStatsAPI{solved: &api.SolvedResponse{}, profileErr: fetchErr, calendar: &api.CalendarResponse{}}},
		{"calendar fails", &fakeStatsAPI{solved: &api.SolvedResponse{}, profile: &api.ProfileResponse{}, calendarErr: fetchErr}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(tc.fake)

			rec, err := svc.FetchUser(context.Background(), "zuri10")
			assert.Error(t, err)
			assert.Nil(t, rec, "no partial record on failure")
		})
	}
}

func TestTrack_PublishesToBoard(t *testing.T) {
	fake := &fakeStatsAPI{
		solved:   &api.SolvedResponse{SolvedProblem: 10, EasySolved: 10},
		profile:  &api.ProfileResponse{},
		calendar: &api.CalendarResponse{},
	}
	svc := newTestService(fake)

	_, err := svc.Track(context.Background(), "zuri10")
	require.NoError(t, err)

	rec, ok := svc.board.Get("ZURI10")
	assert.True(t, ok)
	assert.Equal(t, "zuri10", rec.Username)
}

func TestTrack_FailureLeavesBoardUntouched(t *testing.T) {
	svc := newTestService(&fakeStatsAPI{solvedErr: errors.New("boom")})

	_, err := svc.Track(context.Background(), "ghost")
	assert.Error(t, err)
	assert.Zero(t, svc.board.Len())
}

func TestTrackAll_BrokenUserDoesNotAffectOthers(t *testing.T) {
	// The same fake serves every username, so track two boards separately:
	// one healthy service and one failing one sharing a board.
	board := leaderboard.NewBoard(zerolog.Nop())

	healthy := &UserService{
		client: &fakeStatsAPI{
			solved:   &api.SolvedResponse{EasySolved: 1},
			profile:  &api.ProfileResponse{},
			calendar: &api.CalendarResponse{},
		},
		board:  board,
		logger: zerolog.Nop(),
		now:    func() time.Time { return testToday },
	}
	broken := &UserService{
		client: &fakeStatsAPI{solvedErr: errors.New("boom")},
		board:  board,
		logger: zerolog.Nop(),
		now:    func() time.Time { return testToday },
	}

	healthy.TrackAll(context.Background(), []string{"alice"})
	broken.TrackAll(context.Background(), []string{"mallory"})

	assert.Equal(t, 1, board.Len())
	_, ok := board.Get("alice")
	assert.True(t, ok)
}

func TestBuildRecord_EmptyCalendar(t *testing.T) {
	rec := BuildRecord("fresh",
		&api.SolvedResponse{},
		&api.ProfileResponse{},
		&api.CalendarResponse{},
		testToday,
	)

	assert.Zero(t, rec.CurrentStreak)
	assert.Zero(t, rec.ThisWeekCount)
	assert.Equal(t, make([]bool, 8), rec.Last8Days)
	assert.Equal(t, make([]bool, 7), rec.WeekPattern)
	assert.Zero(t, rec.RankScore)
	assert.Zero(t, rec.CompletionPercent)
}

func countTrue(pattern []bool) int {
	n := 0
	for _, ok := range pattern {
		if ok {
			n++
		}
	}
	return n
}
