// Package social fetches recent posts for tracked accounts. The
// transport is an external collaborator: all this package promises is
// raw text blobs per account.
package social

import (
	"context"

	"sniper-agent/internal/domain"
)

// Source provides recent posts for a social account.
type Source interface {
	// RecentPosts fetches up to limit recent posts for account, newest
	// first. An account with no visible posts yields an empty slice.
	RecentPosts(ctx context.Context, account string, limit int) ([]domain.RawPost, error)
}
