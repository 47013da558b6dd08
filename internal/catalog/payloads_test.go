package catalog

import (
	"encoding/json"
	"testing"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

func TestChunkItems(t *testing.T) {
	tests := []struct {
		name  string
		count int
		size  int
		want  []int
	}{
		{"empty", 0, 512, nil},
		{"single partial", 3, 512, []int{3}},
		{"exact batch", 512, 512, []int{512}},
		{"one over", 513, 512, []int{512, 1}},
		{"three batches", 1025, 512, []int{512, 512, 1}},
		{"zero size treated as one", 2, 0, []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]songItem, tt.count)
			for i := range items {
				items[i].ID = uint64(i + 1)
			}

			batches := chunkItems(items, tt.size)
			if len(batches) != len(tt.want) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.want))
			}
			next := uint64(1)
			for i, batch := range batches {
				if len(batch) != tt.want[i] {
					t.Errorf("batch %d size = %d, want %d", i, len(batch), tt.want[i])
				}
				for _, item := range batch {
					if item.ID != next {
						t.Fatalf("batch %d out of order: got id %d, want %d", i, item.ID, next)
					}
					next++
				}
			}
		})
	}
}

func TestPayloadWireFormat(t *testing.T) {
	detail, err := newSongDetailRequest([]songItem{{ID: 1}, {ID: 2}})
	if err != nil {
		t.Fatalf("newSongDetailRequest: %v", err)
	}

	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"playlist", newPlaylistRequest("42"), `{"id":"42","offset":"0","total":"True","limit":"9999","n":"9999"}`},
		{"song detail", detail, `{"c":"[{\"id\":1,\"v\":0},{\"id\":2,\"v\":0}]"}`},
		{"song file", songFileRequest{IDs: []string{"7"}, BR: 320000}, `{"ids":["7"],"br":320000}`},
		{"lyric", newLyricRequest("9"), `{"id":"9","os":"pc","lv":-1,"kv":-1,"tv":-1,"rv":-1,"yv":1,"showRole":"False","cp":"False","e_r":"False"}`},
		{"search", newSearchRequest("k", domain.SearchOptions{Limit: 30, Page: 2, Type: 1}), `{"s":"k","type":1,"limit":30,"total":true,"offset":30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.payload)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s\nwant %s", data, tt.want)
			}
		})
	}
}
