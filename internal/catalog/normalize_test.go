package catalog

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

func TestExtractTrackRef(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   domain.TrackRef
		wantOK bool
	}{
		{"full record", `{"id":1,"name":"x","ar":[{"name":"A"},{"name":"C"}]}`, domain.TrackRef{ID: "1", Title: "x", Artists: "A/C"}, true},
		{"artist without name skipped", `{"id":2,"name":"y","ar":[{"name":"A"},{"id":9},{"name":""},{"name":7},{"name":"B"}]}`, domain.TrackRef{ID: "2", Title: "y", Artists: "A/B"}, true},
		{"missing ar", `{"id":3,"name":"z"}`, domain.TrackRef{ID: "3", Title: "z"}, true},
		{"ar not array", `{"id":3,"name":"z","ar":"A"}`, domain.TrackRef{ID: "3", Title: "z"}, true},
		{"large id", `{"id":18446744073709551615,"name":"max"}`, domain.TrackRef{ID: "18446744073709551615", Title: "max"}, true},
		{"string id", `{"id":"1","name":"x"}`, domain.TrackRef{}, false},
		{"negative id", `{"id":-1,"name":"x"}`, domain.TrackRef{}, false},
		{"fractional id", `{"id":1.5,"name":"x"}`, domain.TrackRef{}, false},
		{"missing name", `{"id":1}`, domain.TrackRef{}, false},
		{"name not string", `{"id":1,"name":1}`, domain.TrackRef{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTrackRef(gjson.Parse(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractTrackRef() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractTrackRefsKeepsOrder(t *testing.T) {
	records := gjson.Parse(`[{"id":3,"name":"c"},{"name":"skip"},{"id":1,"name":"a"},{"id":2,"name":"b"}]`)

	refs := ExtractTrackRefs(records)
	want := []string{"3", "1", "2"}
	if len(refs) != len(want) {
		t.Fatalf("got %d refs, want %d", len(refs), len(want))
	}
	for i, id := range want {
		if refs[i].ID != id {
			t.Errorf("refs[%d].ID = %s, want %s", i, refs[i].ID, id)
		}
	}
}

func TestSongsFrom(t *testing.T) {
	songs := songsFrom([]domain.TrackRef{{ID: "1", Title: "x", Artists: "A"}}, testLinks)
	want := domain.Song{Name: "x", Artist: "A", URL: "url/1", Pic: "pic/1", Lyric: "lrc/1"}
	if len(songs) != 1 || songs[0] != want {
		t.Errorf("songsFrom() = %+v, want [%+v]", songs, want)
	}
}
