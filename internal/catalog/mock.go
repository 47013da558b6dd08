package catalog

import (
	"context"
	"fmt"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

const MockName = "mock"

// MockProvider serves canned data without network access.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return MockName
}

func (p *MockProvider) URL(ctx context.Context, id string) (string, error) {
	if id == "0" {
		return "", domain.ErrNone
	}
	return fmt.Sprintf("https://mock.invalid/audio/%s.mp3", id), nil
}

func (p *MockProvider) Pic(ctx context.Context, id string) (string, error) {
	return fmt.Sprintf("https://mock.invalid/cover/%s.jpg", id), nil
}

func (p *MockProvider) Lyric(ctx context.Context, id string) (string, error) {
	return "[00:00.00] Mock lyrics for testing", nil
}

func (p *MockProvider) Song(ctx context.Context, id string, links domain.LinkBuilder) (*domain.Song, error) {
	song := domain.TrackRef{ID: id, Title: "Mock Track", Artists: "Mock Artist"}.ToSong(links)
	return &song, nil
}

func (p *MockProvider) Artist(ctx context.Context, id string, links domain.LinkBuilder) ([]domain.Song, error) {
	return songsFrom([]domain.TrackRef{
		{ID: "1", Title: "Track 1", Artists: "Mock Artist"},
		{ID: "2", Title: "Track 2", Artists: "Mock Artist"},
	}, links), nil
}

func (p *MockProvider) Playlist(ctx context.Context, id string, retry uint8, links domain.LinkBuilder) ([]domain.Song, error) {
	return songsFrom([]domain.TrackRef{
		{ID: "3", Title: "Track 3", Artists: "Mock Artist/Guest"},
		{ID: "4", Title: "Track 4", Artists: ""},
	}, links), nil
}

func (p *MockProvider) Search(ctx context.Context, keyword string, opts domain.SearchOptions, links domain.LinkBuilder) ([]domain.Song, error) {
	var refs []domain.TrackRef
	for i := uint(0); i < min(opts.Limit, 3); i++ {
		n := opts.Offset() + i + 1
		refs = append(refs, domain.TrackRef{
			ID:      fmt.Sprint(n),
			Title:   fmt.Sprintf("%s %d", keyword, n),
			Artists: "Mock Artist",
		})
	}
	return songsFrom(refs, links), nil
}

var _ Provider = (*MockProvider)(nil)
