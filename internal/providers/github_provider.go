package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

const (
	commitSampleSize    = 100
	userEventSampleSize = 100
	userEventWindow     = 30 * 24 * time.Hour
	weeklyCommitWindow  = 7 * 24 * time.Hour
)

// GitHubProvider integrates with the GitHub REST API for repository and
// user activity data.
type GitHubProvider struct {
	client   *httpclient.Client
	username string // optional user whose public events are tracked
}

type GitHubRepoResponse struct {
	// Pointer so an absent stargazers_count is distinguishable from zero.
	StargazersCount *int   `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
	PushedAt        string `json:"pushed_at"`
}

type GitHubCommitResponse struct {
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

type GitHubContributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type GitHubIssueResponse struct {
	State    string `json:"state"`
	ClosedAt string `json:"closed_at"`
}

type GitHubEventResponse struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Actor struct {
		Login string `json:"login"`
	} `json:"actor"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Ref     string `json:"ref"`
		RefType string `json:"ref_type"`
		Action  string `json:"action"`
		Number  int    `json:"number"`
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
		Issue *struct {
			Number int `json:"number"`
		} `json:"issue"`
		PullRequest *struct {
			Number int `json:"number"`
		} `json:"pull_request"`
		Release *struct {
			TagName string `json:"tag_name"`
		} `json:"release"`
	} `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGitHubProvider creates a GitHub provider. username may be empty, in
// which case user activity is not tracked.
func NewGitHubProvider(client *httpclient.Client, username string) *GitHubProvider {
	return &GitHubProvider{
		client:   client,
		username: username,
	}
}

// FetchRepository fetches star, fork and open-issue counts. A response
// without a stargazers_count field is an invalid upstream shape.
func (p *GitHubProvider) FetchRepository(ctx context.Context, owner, repo string) (*GitHubRepoResponse, error) {
	body, err := p.client.Get(ctx, config.EndpointRepo, map[string]string{"owner": owner, "repo": repo}, nil)
	if err != nil {
		return nil, err
	}

	var data GitHubRepoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding repository: %v", err)
	}
	if data.StargazersCount == nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "%s", config.MsgInvalidResponse)
	}
	return &data, nil
}

// FetchRecentCommits returns up to count commits, newest first.
func (p *GitHubProvider) FetchRecentCommits(ctx context.Context, owner, repo string, count int) ([]GitHubCommitResponse, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(count))

	body, err := p.client.Get(ctx, config.EndpointCommits, map[string]string{"owner": owner, "repo": repo}, query)
	if err != nil {
		return nil, err
	}

	var commits []GitHubCommitResponse
	if err := json.Unmarshal(body, &commits); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding commits: %v", err)
	}
	return commits, nil
}

// FetchContributorCount returns the number of contributors in the first
// page of results. Full contributor records are not retained.
func (p *GitHubProvider) FetchContributorCount(ctx context.Context, owner, repo string) (int, error) {
	query := url.Values{}
	query.Set("per_page", "100")

	body, err := p.client.Get(ctx, config.EndpointContributors, map[string]string{"owner": owner, "repo": repo}, query)
	if err != nil {
		return 0, err
	}

	var contributors []GitHubContributorResponse
	if err := json.Unmarshal(body, &contributors); err != nil {
		return 0, httpclient.NewShapeError(p.client.Service(), "decoding contributors: %v", err)
	}
	return len(contributors), nil
}

// FetchClosedIssueCount is best-effort: issue-resolution data is
// non-critical, so failures degrade to zero.
func (p *GitHubProvider) FetchClosedIssueCount(ctx context.Context, owner, repo string) int {
	query := url.Values{}
	query.Set("state", "closed")
	query.Set("per_page", "100")

	body, err := p.client.Get(ctx, config.EndpointIssues, map[string]string{"owner": owner, "repo": repo}, query)
	if err != nil {
		logger.Warn("Failed to fetch closed issues", zap.Error(err))
		return 0
	}

	var issues []GitHubIssueResponse
	if err := json.Unmarshal(body, &issues); err != nil {
		logger.Warn("Failed to decode closed issues", zap.Error(err))
		return 0
	}
	return len(issues)
}

// FetchUserEvents fetches a user's public event stream, filtered to the
// trailing 30-day window, newest first.
func (p *GitHubProvider) FetchUserEvents(ctx context.Context, username string, count int) ([]models.UserEvent, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(count))

	body, err := p.client.Get(ctx, config.EndpointUserEvents, map[string]string{"username": username}, query)
	if err != nil {
		return nil, err
	}

	var raw []GitHubEventResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding user events: %v", err)
	}

	cutoff := time.Now().Add(-userEventWindow)
	events := make([]models.UserEvent, 0, len(raw))
	for _, e := range raw {
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		events = append(events, mapUserEvent(e))
	}
	return events, nil
}

// FetchUserActivity aggregates a user's recent public events into per-type
// counts and the set of repositories touched.
func (p *GitHubProvider) FetchUserActivity(ctx context.Context, username string) (*models.UserActivity, error) {
	events, err := p.FetchUserEvents(ctx, username, userEventSampleSize)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	repos := make(map[string]bool)
	for _, e := range events {
		counts[string(e.Type)]++
		if e.Repo != "" {
			repos[e.Repo] = true
		}
	}

	return &models.UserActivity{
		Events:      events,
		EventCounts: counts,
		Repos:       repos,
		LastUpdated: time.Now(),
	}, nil
}

// FetchAllData issues all repository calls concurrently and assembles
// whatever succeeded. Only the repository-metadata call is mandatory.
func (p *GitHubProvider) FetchAllData(ctx context.Context, repoPath string) (*models.RepositoryActivity, error) {
	parts := strings.SplitN(repoPath, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid repository path %q", repoPath)
	}
	owner, repo := parts[0], parts[1]

	var (
		wg           sync.WaitGroup
		repoData     *GitHubRepoResponse
		repoErr      error
		commits      []GitHubCommitResponse
		commitsErr   error
		contributors int
		closedIssues int
		userActivity *models.UserActivity
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		repoData, repoErr = p.FetchRepository(ctx, owner, repo)
	}()
	go func() {
		defer wg.Done()
		commits, commitsErr = p.FetchRecentCommits(ctx, owner, repo, commitSampleSize)
	}()
	go func() {
		defer wg.Done()
		var err error
		contributors, err = p.FetchContributorCount(ctx, owner, repo)
		if err != nil {
			logger.Warn("Failed to fetch contributors", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		closedIssues = p.FetchClosedIssueCount(ctx, owner, repo)
	}()

	if p.username != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			activity, err := p.FetchUserActivity(ctx, p.username)
			if err != nil {
				logger.Warn("Failed to fetch user activity",
					zap.String("username", p.username),
					zap.Error(err),
				)
				return
			}
			userActivity = activity
		}()
	}

	wg.Wait()

	// Repository metadata is the one non-optional dependency
	if repoErr != nil {
		return nil, fmt.Errorf("failed to fetch repository data: %w", repoErr)
	}

	weeklyCommits := 0
	lastCommit := "Unknown"
	if commitsErr != nil {
		logger.Warn("Failed to fetch commits", zap.Error(commitsErr))
	} else if len(commits) > 0 {
		now := time.Now()
		weeklyCommits = weeklyCommitCount(commits, now)
		lastCommit = formatLastCommit(commits[0].Commit.Committer.Date, now)
	}

	activity := &models.RepositoryActivity{
		Stars:          *repoData.StargazersCount,
		Forks:          repoData.ForksCount,
		OpenIssues:     repoData.OpenIssuesCount,
		ClosedIssues:   closedIssues,
		Contributors:   contributors,
		WeeklyCommits:  weeklyCommits,
		LastCommit:     lastCommit,
		RecentActivity: activityTier(userActivity, weeklyCommits, time.Now()),
		UserActivity:   userActivity,
	}

	logger.Info("GitHub data fetched",
		zap.Int("stars", activity.Stars),
		zap.Int("weeklyCommits", activity.WeeklyCommits),
		zap.String("recentActivity", string(activity.RecentActivity)),
		zap.Bool("userActivity", userActivity != nil),
	)

	return activity, nil
}

// HealthCheck verifies the GitHub API is reachable.
func (p *GitHubProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.Get(ctx, config.EndpointRateLimit, nil, nil)
	return err
}

func mapUserEvent(e GitHubEventResponse) models.UserEvent {
	event := models.UserEvent{
		ID:        e.ID,
		Type:      mapEventType(e.Type),
		Actor:     e.Actor.Login,
		Repo:      e.Repo.Name,
		CreatedAt: e.CreatedAt,
	}

	switch event.Type {
	case models.EventPush:
		event.Payload.CommitCount = len(e.Payload.Commits)
		for _, c := range e.Payload.Commits {
			event.Payload.CommitMessages = append(event.Payload.CommitMessages, c.Message)
		}
	case models.EventCreate, models.EventDelete:
		event.Payload.Ref = e.Payload.Ref
		event.Payload.RefType = e.Payload.RefType
	case models.EventIssue, models.EventIssueComment:
		event.Payload.Action = e.Payload.Action
		if e.Payload.Issue != nil {
			event.Payload.Number = e.Payload.Issue.Number
		}
	case models.EventPullRequest, models.EventPullRequestReview,
		models.EventPullRequestReviewCmt, models.EventPullRequestReviewThread:
		event.Payload.Action = e.Payload.Action
		event.Payload.Number = e.Payload.Number
		if event.Payload.Number == 0 && e.Payload.PullRequest != nil {
			event.Payload.Number = e.Payload.PullRequest.Number
		}
	case models.EventRelease:
		event.Payload.Action = e.Payload.Action
		if e.Payload.Release != nil {
			event.Payload.ReleaseTag = e.Payload.Release.TagName
		}
	}

	return event
}

func mapEventType(t string) models.UserEventType {
	switch t {
	case "PushEvent":
		return models.EventPush
	case "CreateEvent":
		return models.EventCreate
	case "DeleteEvent":
		return models.EventDelete
	case "PullRequestEvent":
		return models.EventPullRequest
	case "PullRequestReviewEvent":
		return models.EventPullRequestReview
	case "PullRequestReviewCommentEvent":
		return models.EventPullRequestReviewCmt
	case "PullRequestReviewThreadEvent":
		return models.EventPullRequestReviewThread
	case "IssuesEvent":
		return models.EventIssue
	case "IssueCommentEvent":
		return models.EventIssueComment
	case "CommitCommentEvent":
		return models.EventCommitComment
	case "ForkEvent":
		return models.EventFork
	case "WatchEvent":
		return models.EventWatch
	case "ReleaseEvent":
		return models.EventRelease
	default:
		return models.EventUnknown
	}
}

func weeklyCommitCount(commits []GitHubCommitResponse, now time.Time) int {
	cutoff := now.Add(-weeklyCommitWindow)
	count := 0
	for _, c := range commits {
		if c.Commit.Committer.Date.After(cutoff) {
			count++
		}
	}
	return count
}

func formatLastCommit(date, now time.Time) string {
	days := int(now.Sub(date).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}

// activityTier prefers the user-event signal when available and falls back
// to repository commit volume otherwise. The two-path fallback is a
// deliberate degradation policy.
func activityTier(activity *models.UserActivity, weeklyCommits int, now time.Time) models.ActivityLevel {
	if activity != nil {
		cutoff := now.Add(-weeklyCommitWindow)
		recent := 0
		for _, e := range activity.Events {
			if e.CreatedAt.After(cutoff) {
				recent++
			}
		}
		switch {
		case recent >= 20:
			return models.ActivityHigh
		case recent >= 5:
			return models.ActivityMedium
		default:
			return models.ActivityLow
		}
	}

	switch {
	case weeklyCommits >= 10:
		return models.ActivityHigh
	case weeklyCommits >= 3:
		return models.ActivityMedium
	default:
		return models.ActivityLow
	}
}
