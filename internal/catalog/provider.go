package catalog

import (
	"context"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

// Provider is the capability set every upstream exposes. Operations a backend
// does not support fail with domain.ErrUnimplemented.
type Provider interface {
	Name() string
	URL(ctx context.Context, id string) (string, error)
	Pic(ctx context.Context, id string) (string, error)
	Lyric(ctx context.Context, id string) (string, error)
	Song(ctx context.Context, id string, links domain.LinkBuilder) (*domain.Song, error)
	Artist(ctx context.Context, id string, links domain.LinkBuilder) ([]domain.Song, error)
	Playlist(ctx context.Context, id string, retry uint8, links domain.LinkBuilder) ([]domain.Song, error)
	Search(ctx context.Context, keyword string, opts domain.SearchOptions, links domain.LinkBuilder) ([]domain.Song, error)
}

// Unimplemented provides failing defaults for every operation. Embed it and
// override what the backend supports.
type Unimplemented struct{}

func (Unimplemented) URL(context.Context, string) (string, error) {
	return "", domain.ErrUnimplemented
}

func (Unimplemented) Pic(context.Context, string) (string, error) {
	return "", domain.ErrUnimplemented
}

func (Unimplemented) Lyric(context.Context, string) (string, error) {
	return "", domain.ErrUnimplemented
}

func (Unimplemented) Song(context.Context, string, domain.LinkBuilder) (*domain.Song, error) {
	return nil, domain.ErrUnimplemented
}

func (Unimplemented) Artist(context.Context, string, domain.LinkBuilder) ([]domain.Song, error) {
	return nil, domain.ErrUnimplemented
}

func (Unimplemented) Playlist(context.Context, string, uint8, domain.LinkBuilder) ([]domain.Song, error) {
	return nil, domain.ErrUnimplemented
}

func (Unimplemented) Search(context.Context, string, domain.SearchOptions, domain.LinkBuilder) ([]domain.Song, error) {
	return nil, domain.ErrUnimplemented
}
