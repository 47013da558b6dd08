package catalog

import (
	"encoding/json"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

// Plaintext payloads for the weapi endpoints. Field order is the wire order.

type playlistRequest struct {
	ID     string `json:"id"`
	Offset string `json:"offset"`
	Total  string `json:"total"`
	Limit  string `json:"limit"`
	N      string `json:"n"`
}

func newPlaylistRequest(id string) playlistRequest {
	return playlistRequest{
		ID:     id,
		Offset: "0",
		Total:  "True",
		Limit:  "9999",
		N:      "9999",
	}
}

type songItem struct {
	ID uint64 `json:"id"`
	V  uint8  `json:"v"`
}

// songDetailRequest carries the item list as a JSON-encoded string.
type songDetailRequest struct {
	C string `json:"c"`
}

func newSongDetailRequest(items []songItem) (songDetailRequest, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return songDetailRequest{}, err
	}
	return songDetailRequest{C: string(data)}, nil
}

type songFileRequest struct {
	IDs []string `json:"ids"`
	BR  uint64   `json:"br"`
}

type lyricRequest struct {
	ID       string `json:"id"`
	OS       string `json:"os"`
	LV       int    `json:"lv"`
	KV       int    `json:"kv"`
	TV       int    `json:"tv"`
	RV       int    `json:"rv"`
	YV       int    `json:"yv"`
	ShowRole string `json:"showRole"`
	CP       string `json:"cp"`
	ER       string `json:"e_r"`
}

func newLyricRequest(id string) lyricRequest {
	return lyricRequest{
		ID:       id,
		OS:       "pc",
		LV:       -1,
		KV:       -1,
		TV:       -1,
		RV:       -1,
		YV:       1,
		ShowRole: "False",
		CP:       "False",
		ER:       "False",
	}
}

type searchRequest struct {
	S      string `json:"s"`
	Type   uint   `json:"type"`
	Limit  uint   `json:"limit"`
	Total  bool   `json:"total"`
	Offset uint   `json:"offset"`
}

func newSearchRequest(keyword string, opts domain.SearchOptions) searchRequest {
	return searchRequest{
		S:      keyword,
		Type:   opts.Type,
		Limit:  opts.Limit,
		Total:  true,
		Offset: opts.Offset(),
	}
}

// chunkItems splits items into consecutive batches of at most size elements.
func chunkItems(items []songItem, size int) [][]songItem {
	if size < 1 {
		size = 1
	}
	var batches [][]songItem
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
