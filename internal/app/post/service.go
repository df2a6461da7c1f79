package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"reflectboard/internal/app/identity"
	"reflectboard/internal/app/points"
	"reflectboard/internal/app/session"
	"reflectboard/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cache is the slice of the redis provider the post service needs. An
// in-memory fake stands in for it under test.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	InvalidatePattern(ctx context.Context, pattern string)
}

type Service interface {
	GetPostsBySessionID(ctx context.Context, sessionID string) ([]*Post, error)
	GetAllPosts(ctx context.Context) ([]*Post, error)
	CreatePost(ctx context.Context, sessionID, deviceKey, category, content string) (*Post, error)
	EditPost(ctx context.Context, postID, content string) (*Post, error)
	DeletePost(ctx context.Context, postID string) error
	ToggleReaction(ctx context.Context, postID, deviceKey, reactionID string) (*Post, error)
	AddComment(ctx context.Context, postID, deviceKey, content string) (*Post, error)
	AddReply(ctx context.Context, postID, commentID, deviceKey, content string) (*Post, error)
	EditComment(ctx context.Context, postID, commentID, content string) (*Post, error)
	DeleteComment(ctx context.Context, postID, commentID string) (*Post, error)
	ToggleReplies(ctx context.Context, postID, commentID string) (*Post, error)
	SwapPositions(ctx context.Context, sessionID string, fromIndex, toIndex int) error
	SessionStats(ctx context.Context, sessionID string) (*SessionStats, error)
}

type service struct {
	repo        Repository
	sessionSvc  session.Service
	identitySvc identity.Service
	cache       Cache
	eventBus    *utils.EventBus
	logger      *zap.SugaredLogger
	cacheTTL    time.Duration
}

func NewService(
	repo Repository,
	sessionSvc session.Service,
	identitySvc identity.Service,
	cache Cache,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	s := &service{
		repo:        repo,
		sessionSvc:  sessionSvc,
		identitySvc: identitySvc,
		cache:       cache,
		eventBus:    eventBus,
		logger:      logger.Sugar(),
		cacheTTL:    time.Minute,
	}

	// Session deletes and renames never pass through this service, so
	// the cached post lists would otherwise outlive their session.
	eventBus.Subscribe(utils.EventSessionsChanged, func(utils.Event) {
		s.cache.InvalidatePattern(context.Background(), "posts:*")
	})

	return s
}

func sessionPostsKey(sessionID string) string {
	return fmt.Sprintf("posts:session:%s", sessionID)
}

const allPostsKey = "posts:all"

func (s *service) GetPostsBySessionID(ctx context.Context, sessionID string) ([]*Post, error) {
	cacheKey := sessionPostsKey(sessionID)
	var cached []*Post
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.repo.GetPostsBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	if len(posts) > 0 {
		s.cache.SetJSON(ctx, cacheKey, posts, s.cacheTTL)
	}

	return posts, nil
}

func (s *service) GetAllPosts(ctx context.Context) ([]*Post, error) {
	var cached []*Post
	if s.cache.GetJSON(ctx, allPostsKey, &cached) {
		return cached, nil
	}

	posts, err := s.repo.GetAllPosts()
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	if len(posts) > 0 {
		s.cache.SetJSON(ctx, allPostsKey, posts, s.cacheTTL)
	}

	return posts, nil
}

func (s *service) CreatePost(ctx context.Context, sessionID, deviceKey, category, content string) (*Post, error) {
	if !points.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessionSvc.GetSessionByID(sessionID); err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	author, err := s.identitySvc.GetOrCreate(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}

	newTotal, err := s.identitySvc.AddPoints(author.ID, points.ForCategory(category))
	if err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}

	// Sort keys are creation millis, the same scale a swap writes, so
	// an unswapped new post still sorts above older swapped posts.
	now := time.Now().UTC()
	sortOrder := now.UnixMilli()

	post := &Post{
		ID:             "post_" + uuid.NewString(),
		SessionID:      sessionID,
		AuthorID:       author.ID,
		AuthorAvatar:   author.Avatar,
		AuthorNickname: author.Nickname,
		AuthorPoints:   newTotal,
		Category:       category,
		Content:        content,
		Reactions:      map[string]int{},
		ReactedUsers:   map[string][]string{},
		Comments:       []*Comment{},
		SortOrder:      &sortOrder,
		CreatedAt:      now,
	}

	if err := s.repo.SavePost(post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, sessionID)
	s.publishPostsChanged(post)

	return post, nil
}

// EditPost overwrites a post's content in place and stamps edited_at.
// Unchanged content is a no-op; a post deleted concurrently is a silent
// no-op too.
func (s *service) EditPost(ctx context.Context, postID, content string) (*Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post.Content == content {
		return post, nil
	}

	updated := post.Clone()
	updated.Content = content
	now := time.Now().UTC()
	updated.EditedAt = &now

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

func (s *service) DeletePost(ctx context.Context, postID string) error {
	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	if err := s.repo.DeletePost(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidate(ctx, post.SessionID)
	s.publishPostsChanged(post)

	return nil
}

// ToggleReaction flips the participant's reaction membership on the
// post. Adding credits the reactor with send-reaction points; removing
// debits them. The author's received-reaction points are never stored:
// the leaderboard derives them from the counts on each ranking pass.
func (s *service) ToggleReaction(ctx context.Context, postID, deviceKey, reactionID string) (*Post, error) {
	if !ValidReaction(reactionID) {
		return nil, fmt.Errorf("unknown reaction %q", reactionID)
	}

	participant, err := s.identitySvc.GetOrCreate(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}

	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated, added := ToggleReaction(post, participant.ID, reactionID)

	delta := points.SendReaction
	if !added {
		delta = -points.SendReaction
	}
	if _, err := s.identitySvc.AddPoints(participant.ID, delta); err != nil {
		s.logger.Warnw("Failed to adjust reaction points",
			"participant_id", participant.ID,
			"delta", delta,
			"error", err,
		)
	}

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

func (s *service) AddComment(ctx context.Context, postID, deviceKey, content string) (*Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	author, err := s.identitySvc.GetOrCreate(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}

	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated := post.Clone()
	updated.Comments = InsertTopLevel(updated.Comments, newComment("comment_", author, content))

	if _, err := s.identitySvc.AddPoints(author.ID, points.Comment); err != nil {
		s.logger.Warnw("Failed to award comment points", "participant_id", author.ID, "error", err)
	}

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

// AddReply nests a reply under the target comment. A target that no
// longer exists leaves the tree unchanged but the operation still
// reports success; concurrent deletion is expected, not an error.
func (s *service) AddReply(ctx context.Context, postID, commentID, deviceKey, content string) (*Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	author, err := s.identitySvc.GetOrCreate(deviceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}

	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated := post.Clone()
	updated.Comments = InsertReply(updated.Comments, commentID, newComment("reply_", author, content))

	if _, err := s.identitySvc.AddPoints(author.ID, points.Reply); err != nil {
		s.logger.Warnw("Failed to award reply points", "participant_id", author.ID, "error", err)
	}

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

func (s *service) EditComment(ctx context.Context, postID, commentID, content string) (*Post, error) {
	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated := post.Clone()
	updated.Comments = EditComment(updated.Comments, commentID, content)

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

func (s *service) DeleteComment(ctx context.Context, postID, commentID string) (*Post, error) {
	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated := post.Clone()
	updated.Comments = DeleteComment(updated.Comments, commentID)

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

func (s *service) ToggleReplies(ctx context.Context, postID, commentID string) (*Post, error) {
	post, err := s.repo.GetPostByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	updated := post.Clone()
	updated.Comments = ToggleReplies(updated.Comments, commentID)

	if err := s.repo.SavePost(updated); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, updated.SessionID)
	s.publishPostsChanged(updated)

	return updated, nil
}

// SwapPositions exchanges the sort keys of the posts at two display
// indices of a session's board. Only those two records are written.
func (s *service) SwapPositions(ctx context.Context, sessionID string, fromIndex, toIndex int) error {
	if fromIndex == toIndex {
		return nil
	}

	posts, err := s.repo.GetPostsBySessionID(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get posts: %w", err)
	}
	if fromIndex < 0 || toIndex < 0 || fromIndex >= len(posts) || toIndex >= len(posts) {
		return fmt.Errorf("swap index out of range")
	}

	from, to := SwapSortOrders(posts[fromIndex], posts[toIndex], fromIndex, toIndex, time.Now().UTC())

	if err := s.repo.SavePost(from); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	if err := s.repo.SavePost(to); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	s.invalidate(ctx, sessionID)
	s.publishPostsChanged(from)

	return nil
}

func (s *service) SessionStats(ctx context.Context, sessionID string) (*SessionStats, error) {
	posts, err := s.GetPostsBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{Total: len(posts)}
	for _, p := range posts {
		switch p.Category {
		case points.CategoryLearning:
			stats.Learning++
		case points.CategoryImpression:
			stats.Impression++
		case points.CategoryQuestion:
			stats.Question++
		}
	}
	return stats, nil
}

func newComment(idPrefix string, author *identity.Participant, content string) *Comment {
	return &Comment{
		ID:             idPrefix + uuid.NewString(),
		AuthorID:       author.ID,
		AuthorAvatar:   author.Avatar,
		AuthorNickname: author.Nickname,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
		IsExpanded:     true,
		Replies:        []*Comment{},
	}
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("content must not be empty")
	}
	if n := utf8.RuneCountInString(content); n > MaxContentRunes {
		return "", fmt.Errorf("content must be at most %d characters, got %d", MaxContentRunes, n)
	}
	return content, nil
}

func (s *service) invalidate(ctx context.Context, sessionID string) {
	s.cache.Delete(ctx, allPostsKey, sessionPostsKey(sessionID))
}

func (s *service) publishPostsChanged(post *Post) {
	s.eventBus.Publish(utils.EventPostsChanged, map[string]interface{}{
		"post_id":    post.ID,
		"session_id": post.SessionID,
		"timestamp":  time.Now().UTC().Unix(),
	})
}
