package models

import (
	"time"
)

// NetworkState mirrors the explorer's daemon_network_state field.
type NetworkState int

const (
	NetworkDisconnected  NetworkState = 0
	NetworkSynchronizing NetworkState = 1
	NetworkSynchronized  NetworkState = 2
)

// String returns the display name for a network state.
func (s NetworkState) String() string {
	switch s {
	case NetworkDisconnected:
		return "Disconnected"
	case NetworkSynchronizing:
		return "Synchronizing"
	case NetworkSynchronized:
		return "Synchronized"
	default:
		return "Unknown"
	}
}

// ActivityLevel is the coarse high/medium/low classification used for both
// development activity and network adoption.
type ActivityLevel string

const (
	ActivityHigh   ActivityLevel = "high"
	ActivityMedium ActivityLevel = "medium"
	ActivityLow    ActivityLevel = "low"
)

// PriceSnapshot holds normalized market data for the coin. Percentage
// changes missing upstream are zero, never null.
type PriceSnapshot struct {
	Current     float64 `json:"current"`      // USD
	Change24h   float64 `json:"change_24h"`   // signed percentage
	Change7d    float64 `json:"change_7d"`
	Change30d   float64 `json:"change_30d"`
	MarketCap   float64 `json:"market_cap"`   // USD
	Volume24h   float64 `json:"volume_24h"`   // USD
	LastUpdated string  `json:"last_updated"` // upstream timestamp string
}

// UserEventType enumerates the GitHub public event types we recognize.
type UserEventType string

const (
	EventPush                    UserEventType = "push"
	EventCreate                  UserEventType = "create"
	EventDelete                  UserEventType = "delete"
	EventPullRequest             UserEventType = "pull-request"
	EventPullRequestReview       UserEventType = "pull-request-review"
	EventPullRequestReviewCmt    UserEventType = "pull-request-review-comment"
	EventPullRequestReviewThread UserEventType = "pull-request-review-thread"
	EventIssue                   UserEventType = "issue"
	EventIssueComment            UserEventType = "issue-comment"
	EventCommitComment           UserEventType = "commit-comment"
	EventFork                    UserEventType = "fork"
	EventWatch                   UserEventType = "watch"
	EventRelease                 UserEventType = "release"
	EventUnknown                 UserEventType = "unknown"
)

// UserEventPayload carries the type-dependent fields of a user event.
type UserEventPayload struct {
	CommitCount    int      `json:"commit_count,omitempty"`    // push
	CommitMessages []string `json:"commit_messages,omitempty"` // push
	Ref            string   `json:"ref,omitempty"`             // create/delete
	RefType        string   `json:"ref_type,omitempty"`        // create/delete
	Number         int      `json:"number,omitempty"`          // issue / pull request
	Action         string   `json:"action,omitempty"`          // issue / pull request
	ReleaseTag     string   `json:"release_tag,omitempty"`     // release
}

// UserEvent is one entry from a user's public event stream.
type UserEvent struct {
	ID        string           `json:"id"`
	Type      UserEventType    `json:"type"`
	Actor     string           `json:"actor"`
	Repo      string           `json:"repo"`
	Payload   UserEventPayload `json:"payload"`
	CreatedAt time.Time        `json:"created_at"`
}

// UserActivity summarizes a user's public events over the trailing 30 days.
type UserActivity struct {
	Events      []UserEvent    `json:"events"` // newest first
	EventCounts map[string]int `json:"event_counts"`
	Repos       map[string]bool `json:"repos"` // distinct repositories touched
	LastUpdated time.Time      `json:"last_updated"`
}

// RepositoryActivity holds normalized development metrics for the project
// repository. UserActivity is nil when the user-event fetch failed.
type RepositoryActivity struct {
	Stars          int           `json:"stars"`
	Forks          int           `json:"forks"`
	OpenIssues     int           `json:"open_issues"`
	ClosedIssues   int           `json:"closed_issues"`
	Contributors   int           `json:"contributors"`
	WeeklyCommits  int           `json:"weekly_commits"`
	LastCommit     string        `json:"last_commit"` // "Today", "2 days ago", ...
	RecentActivity ActivityLevel `json:"recent_activity"`
	UserActivity   *UserActivity `json:"user_activity,omitempty"`
}

// ChainMetrics holds live network state from the explorer plus the metrics
// derived from the recent block sample.
type ChainMetrics struct {
	// Network health
	Height       int64        `json:"height"`
	Hashrate     float64      `json:"hashrate"`
	Difficulty   float64      `json:"difficulty"`
	NetworkState NetworkState `json:"network_state"`

	// Adoption
	TotalCoins        float64 `json:"total_coins"` // display units
	TransactionCount  int64   `json:"transaction_count"`
	DailyTransactions int64   `json:"daily_transactions"`
	DailyVolume       float64 `json:"daily_volume"` // display units

	// Network activity
	TxPoolSize         int       `json:"tx_pool_size"`
	BlockReward        float64   `json:"block_reward"` // display units
	LastBlockTimestamp int64     `json:"last_block_timestamp"`
	AvgBlockTime       float64   `json:"avg_block_time"` // seconds

	// Connectivity
	IncomingConnections     int `json:"incoming_connections"`
	OutgoingConnections     int `json:"outgoing_connections"`
	SynchronizedConnections int `json:"synchronized_connections"`

	// Growth indicators
	BlockSizeUtilization float64 `json:"block_size_utilization"` // percentage
	NetworkGrowthRate    float64 `json:"network_growth_rate"`    // signed percentage
	AdoptionScore        int     `json:"adoption_score"`         // 0-100
}

// SocialMetrics holds community metrics from the subreddit. The whole value
// is absent when the upstream is unreachable; there is no fallback.
type SocialMetrics struct {
	Subscribers int     `json:"subscribers"`
	ActiveUsers int     `json:"active_users"`
	RecentPosts int     `json:"recent_posts"`
	AvgUpvotes  float64 `json:"avg_upvotes"`
	AvgComments float64 `json:"avg_comments"`
}

// DashboardSnapshot is the top-level aggregate produced fresh on every poll
// cycle. Snapshots are immutable once built.
type DashboardSnapshot struct {
	Price   PriceSnapshot      `json:"price"`
	GitHub  RepositoryActivity `json:"github"`
	Onchain ChainMetrics       `json:"onchain"`
}
