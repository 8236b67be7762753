package providers

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

const recentPostSampleSize = 25

// SocialProvider integrates with the subreddit's public JSON API. Social
// metrics are an optional feature: any failure yields no value at all
// rather than a degraded one.
type SocialProvider struct {
	client *httpclient.Client
}

// RedditAboutResponse is the subreddit metadata payload.
type RedditAboutResponse struct {
	Data struct {
		Subscribers     int `json:"subscribers"`
		ActiveUserCount int `json:"active_user_count"`
	} `json:"data"`
}

// RedditListingResponse is a listing of posts.
type RedditListingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Ups         int `json:"ups"`
				NumComments int `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewSocialProvider creates a social metrics provider.
func NewSocialProvider(client *httpclient.Client) *SocialProvider {
	return &SocialProvider{client: client}
}

// HealthCheck verifies the subreddit API is reachable.
func (p *SocialProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.Get(ctx, config.EndpointSubredditAbout, nil, nil)
	return err
}

// FetchMetrics fetches subscriber counts and averages engagement over a
// recent post sample. An empty sample yields zero averages, never NaN.
func (p *SocialProvider) FetchMetrics(ctx context.Context) (*models.SocialMetrics, error) {
	aboutBody, err := p.client.Get(ctx, config.EndpointSubredditAbout, nil, nil)
	if err != nil {
		return nil, err
	}

	var about RedditAboutResponse
	if err := json.Unmarshal(aboutBody, &about); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding subreddit about: %v", err)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(recentPostSampleSize))
	postsBody, err := p.client.Get(ctx, config.EndpointSubredditNew, nil, query)
	if err != nil {
		return nil, err
	}

	var listing RedditListingResponse
	if err := json.Unmarshal(postsBody, &listing); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding subreddit posts: %v", err)
	}

	posts := listing.Data.Children
	var avgUpvotes, avgComments float64
	if len(posts) > 0 {
		var upvotes, comments int
		for _, post := range posts {
			upvotes += post.Data.Ups
			comments += post.Data.NumComments
		}
		avgUpvotes = float64(upvotes) / float64(len(posts))
		avgComments = float64(comments) / float64(len(posts))
	}

	metrics := &models.SocialMetrics{
		Subscribers: about.Data.Subscribers,
		ActiveUsers: about.Data.ActiveUserCount,
		RecentPosts: len(posts),
		AvgUpvotes:  avgUpvotes,
		AvgComments: avgComments,
	}

	logger.Debug("Social metrics fetched",
		zap.Int("subscribers", metrics.Subscribers),
		zap.Int("recentPosts", metrics.RecentPosts),
	)

	return metrics, nil
}
