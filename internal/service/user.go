package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streak-tracker/internal/api"
	"streak-tracker/internal/calendar"
	"streak-tracker/internal/constants"
	"streak-tracker/internal/domain"
	"streak-tracker/internal/leaderboard"
	"streak-tracker/internal/metrics"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// statsAPI is the slice of the stats client the service needs.
type statsAPI interface {
	GetSolved(ctx context.Context, username string) (*api.SolvedResponse, error)
	GetProfile(ctx context.Context, username string) (*api.ProfileResponse, error)
	GetCalendar(ctx context.Context, username string) (*api.CalendarResponse, error)
}

// UserService fetches the three raw payloads for a user, derives the record,
// and publishes it to the board.
type UserService struct {
	client statsAPI
	board  *leaderboard.Board
	logger zerolog.Logger

	// now is the reference clock for "today"; overridable in tests.
	now func() time.Time
}

func NewUserService(client *api.Client, board *leaderboard.Board, logger zerolog.Logger) *UserService {
	return &UserService{client: client, board: board, logger: logger, now: time.Now}
}

// FetchUser resolves one user end to end. All three payloads must arrive; any
// failure abandons the user and no partial record is ever produced.
func (s *UserService) FetchUser(ctx context.Context, username string) (*domain.UserRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.UserFetchTimeout)
	defer cancel()

	fetchID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate fetch id: %w", err)
	}
	logger := s.logger.With().Str("fetch_id", fetchID).Str("username", username).Logger()

	logger.Info().Msg("fetching user")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var solved *api.SolvedResponse
	var profile *api.ProfileResponse
	var cal *api.CalendarResponse

	g.Go(func() error {
		var err error
		solved, err = s.client.GetSolved(gCtx, username)
		return err
	})

	g.Go(func() error {
		var err error
		profile, err = s.client.GetProfile(gCtx, username)
		return err
	})

	g.Go(func() error {
		var err error
		cal, err = s.client.GetCalendar(gCtx, username)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to fetch user payloads")
		return nil, fmt.Errorf("failed to fetch user payloads: %w", err)
	}

	record := BuildRecord(username, solved, profile, cal, s.now())

	logger.Info().
		Int("solved", record.Solved).
		Int("current_streak", record.CurrentStreak).
		Int("rank_score", record.RankScore).
		Msg("user record built")

	return &record, nil
}

// Track fetches one user and admits the record. A duplicate username is not
// an error; the first record stays.
func (s *UserService) Track(ctx context.Context, username string) (*domain.UserRecord, error) {
	record, err := s.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}
	s.board.Upsert(*record)
	return record, nil
}

// TrackAll resolves a set of users concurrently. Individual failures are
// logged and swallowed; one broken user never affects the others.
func (s *UserService) TrackAll(ctx context.Context, usernames []string) {
	var wg sync.WaitGroup
	for _, username := range usernames {
		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			if _, err := s.Track(ctx, username); err != nil {
				s.logger.Warn().Err(err).Str("username", username).Msg("skipping user")
			}
		}(username)
	}
	wg.Wait()

	s.logger.Info().Int("requested", len(usernames)).Int("tracked", s.board.Len()).Msg("seed tracking finished")
}

// BuildRecord derives the immutable display record from the three raw
// payloads. Pure given a fixed reference time.
func BuildRecord(username string, solved *api.SolvedResponse, profile *api.ProfileResponse, cal *api.CalendarResponse, today time.Time) domain.UserRecord {
	active := calendar.BuildActivitySet(cal.Entries())

	weekPattern := metrics.WeekPattern(active, today)

	return domain.UserRecord{
		Username:          username,
		AvatarURL:         profile.AvatarURL(),
		Easy:              solved.EasySolved,
		Medium:            solved.MediumSolved,
		Hard:              solved.HardSolved,
		Solved:            solved.SolvedProblem,
		Last8Days:         metrics.RollingWindow(active, today, constants.StreakStripDays),
		CurrentStreak:     metrics.CurrentStreak(active, today),
		WeekPattern:       weekPattern,
		ThisWeekCount:     metrics.CountActive(weekPattern),
		CompletionPercent: metrics.CompletionPercent(solved.SolvedProblem),
		RankScore:         metrics.RankScore(solved.EasySolved, solved.MediumSolved, solved.HardSolved),
		FetchedAt:         today,
	}
}
