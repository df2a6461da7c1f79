package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reflectboard/internal/app/points"
	"reflectboard/internal/app/post"
	"reflectboard/internal/utils"

	"go.uber.org/zap"
)

// Size is how many participants the leaderboard shows.
const Size = 5

// Entry is one leaderboard row. Points here are session-scoped and
// derived on every pass: authored-post points plus received-reaction
// points computed from the live counts. This deliberately differs from
// the lifetime ledger, which also counts reacting and commenting.
type Entry struct {
	ParticipantID string `json:"participant_id"`
	Avatar        string `json:"avatar"`
	Nickname      string `json:"nickname"`
	Points        int    `json:"points"`
}

type RankingResponse struct {
	Ranking []*Entry `json:"ranking"`
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

type Service interface {
	SessionRanking(ctx context.Context, sessionID string) ([]*Entry, error)
}

type service struct {
	posts    post.Repository
	cache    Cache
	logger   *zap.SugaredLogger
	cacheTTL time.Duration
}

func NewService(posts post.Repository, cache Cache, eventBus *utils.EventBus, logger *zap.Logger) Service {
	s := &service{
		posts:    posts,
		cache:    cache,
		logger:   logger.Sugar(),
		cacheTTL: time.Minute,
	}

	// Any post mutation can move the leaderboard.
	eventBus.Subscribe(utils.EventPostsChanged, func(e utils.Event) {
		if data, ok := e.Data.(map[string]interface{}); ok {
			if sessionID, ok := data["session_id"].(string); ok {
				s.cache.Delete(context.Background(), rankingKey(sessionID))
			}
		}
	})

	return s
}

func rankingKey(sessionID string) string {
	return fmt.Sprintf("ranking:session:%s", sessionID)
}

func (s *service) SessionRanking(ctx context.Context, sessionID string) ([]*Entry, error) {
	cacheKey := rankingKey(sessionID)
	var cached []*Entry
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	sessionPosts, err := s.posts.GetPostsBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	entries := Compute(sessionPosts)

	if len(entries) > 0 {
		s.cache.SetJSON(ctx, cacheKey, entries, s.cacheTTL)
	}

	return entries, nil
}

// Compute aggregates session posts into the top-N leaderboard. Each
// post credits its author with the category points plus two points per
// reaction currently on the post. Ties keep first-encounter order.
func Compute(sessionPosts []*post.Post) []*Entry {
	byAuthor := make(map[string]*Entry)
	var order []*Entry

	for _, p := range sessionPosts {
		entry, ok := byAuthor[p.AuthorID]
		if !ok {
			entry = &Entry{
				ParticipantID: p.AuthorID,
				Avatar:        p.AuthorAvatar,
				Nickname:      p.AuthorNickname,
			}
			byAuthor[p.AuthorID] = entry
			order = append(order, entry)
		}

		reactionCount := 0
		for _, count := range p.Reactions {
			reactionCount += count
		}
		entry.Points += points.ForCategory(p.Category) + reactionCount*points.ReceiveReaction
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Points > order[j].Points
	})

	if len(order) > Size {
		order = order[:Size]
	}
	return order
}
