package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"streak-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// Client talks to the external LeetCode stats API. Three payloads exist per
// username: solved summary, profile, submission calendar.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.StatsAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) GetSolved(ctx context.Context, username string) (*SolvedResponse, error) {
	url := fmt.Sprintf("%s/%s/solved", c.baseURL, username)
	return doRequest[SolvedResponse](ctx, c, url)
}

func (c *Client) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, username)
	return doRequest[ProfileResponse](ctx, c, url)
}

func (c *Client) GetCalendar(ctx context.Context, username string) (*CalendarResponse, error) {
	url := fmt.Sprintf("%s/%s/calendar", c.baseURL, username)
	return doRequest[CalendarResponse](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SolvedResponse is the solved-problem summary for one user. Fields the API
// omits decode to zero rather than failing the user.
type SolvedResponse struct {
	SolvedProblem int `json:"solvedProblem"`
	EasySolved    int `json:"easySolved"`
	MediumSolved  int `json:"mediumSolved"`
	HardSolved    int `json:"hardSolved"`
}

// ProfileResponse carries the avatar. Depending on the API version the URL
// arrives at the top level or nested under profile.
type ProfileResponse struct {
	Avatar  string `json:"avatar"`
	Profile struct {
		UserAvatar string `json:"userAvatar"`
	} `json:"profile"`
}

// AvatarURL returns the first non-empty avatar field.
func (p *ProfileResponse) AvatarURL() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	return p.Profile.UserAvatar
}

// CalendarResponse holds the submission calendar. submissionCalendar is
// usually a JSON-encoded string that needs a second decode, but some API
// versions inline the object; the field is kept raw and decoded lazily.
type CalendarResponse struct {
	SubmissionCalendar json.RawMessage `json:"submissionCalendar"`
}

// Entries decodes the calendar into day-key -> submission count. An absent or
// malformed calendar degrades to empty: no activity ever, never an error.
func (c *CalendarResponse) Entries() map[int64]int64 {
	raw := c.SubmissionCalendar
	if len(raw) == 0 || string(raw) == "null" {
		return map[int64]int64{}
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return map[int64]int64{}
		}
		raw = []byte(inner)
	}

	var decoded map[string]json.Number
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return map[int64]int64{}
	}

	entries := make(map[int64]int64, len(decoded))
	for key, value := range decoded {
		day, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		count, err := value.Int64()
		if err != nil {
			continue
		}
		entries[day] = count
	}
	return entries
}
