package store

import (
	"testing"

	"github.com/cesargomez89/meting-gateway/internal/constants"
)

func TestSettingsRepo(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	value, err := repo.Get(t.Context(), "missing")
	if err != nil || value != "" {
		t.Fatalf("Get(missing) = %q, %v; want empty", value, err)
	}

	if err := repo.Set(t.Context(), "k", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(t.Context(), "k", "two"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	if value, _ := repo.Get(t.Context(), "k"); value != "two" {
		t.Errorf("Get() = %q, want two", value)
	}

	if err := repo.Delete(t.Context(), "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if value, _ := repo.Get(t.Context(), "k"); value != "" {
		t.Errorf("expected deleted key to read empty, got %q", value)
	}
}

func TestSettingsRepo_PlaylistRetry(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		want    uint8
		wantErr bool
	}{
		{"unset uses default", "", 2, false},
		{"stored value", "5", 5, false},
		{"max value", "255", 255, false},
		{"out of range", "256", 2, true},
		{"not a number", "many", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewSettingsRepo(setupTestDB(t))
			if tt.stored != "" {
				if err := repo.Set(t.Context(), constants.SettingPlaylistRetry, tt.stored); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}

			got, err := repo.PlaylistRetry(t.Context(), 2)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PlaylistRetry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PlaylistRetry() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSettingsRepo_SetPlaylistRetry(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	if err := repo.SetPlaylistRetry(t.Context(), 3); err != nil {
		t.Fatalf("SetPlaylistRetry failed: %v", err)
	}
	got, err := repo.PlaylistRetry(t.Context(), 0)
	if err != nil {
		t.Fatalf("PlaylistRetry failed: %v", err)
	}
	if got != 3 {
		t.Errorf("PlaylistRetry() = %d, want 3", got)
	}
}
