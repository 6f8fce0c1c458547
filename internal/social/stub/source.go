// Package stub provides an in-memory social source for testing.
package stub

import (
	"context"
	"sync"

	"sniper-agent/internal/domain"
)

// Source serves pre-seeded posts per account.
type Source struct {
	mu    sync.Mutex
	posts map[string][]domain.RawPost
	calls int
}

// NewSource creates an empty stub source.
func NewSource() *Source {
	return &Source{posts: make(map[string][]domain.RawPost)}
}

// Seed sets the posts returned for an account.
func (s *Source) Seed(account string, texts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []domain.RawPost
	for _, text := range texts {
		posts = append(posts, domain.RawPost{Account: account, Text: text})
	}
	s.posts[account] = posts
}

// RecentPosts returns the seeded posts for account, capped at limit.
func (s *Source) RecentPosts(_ context.Context, account string, limit int) ([]domain.RawPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	posts := s.posts[account]
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	out := make([]domain.RawPost, len(posts))
	copy(out, posts)
	return out, nil
}

// Calls returns how many times RecentPosts was invoked.
func (s *Source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
