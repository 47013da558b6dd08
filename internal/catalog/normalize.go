package catalog

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/cesargomez89/meting-gateway/internal/domain"
)

// trackRefFields describes what ExtractTrackRef requires, for NoField errors.
const trackRefFields = ".id as u64 | .name as str"

// ExtractTrackRef reads id, name and artists from an upstream song object.
// It reports false when id is not an unsigned integer or name is not a string.
// A missing or malformed ar field yields an empty artist string.
func ExtractTrackRef(record gjson.Result) (domain.TrackRef, bool) {
	id, ok := uintValue(record.Get("id"))
	if !ok {
		return domain.TrackRef{}, false
	}
	name := record.Get("name")
	if name.Type != gjson.String {
		return domain.TrackRef{}, false
	}
	return domain.TrackRef{
		ID:      strconv.FormatUint(id, 10),
		Title:   name.Str,
		Artists: joinArtists(record.Get("ar")),
	}, true
}

// ExtractTrackRefs applies ExtractTrackRef to every element, skipping malformed ones.
func ExtractTrackRefs(records gjson.Result) []domain.TrackRef {
	refs := make([]domain.TrackRef, 0, len(records.Array()))
	records.ForEach(func(_, record gjson.Result) bool {
		if ref, ok := ExtractTrackRef(record); ok {
			refs = append(refs, ref)
		}
		return true
	})
	return refs
}

func joinArtists(ar gjson.Result) string {
	if !ar.IsArray() {
		return ""
	}
	var names []string
	ar.ForEach(func(_, artist gjson.Result) bool {
		if name := artist.Get("name"); name.Type == gjson.String && name.Str != "" {
			names = append(names, name.Str)
		}
		return true
	})
	return strings.Join(names, "/")
}

// uintValue accepts only JSON integers that fit in a uint64.
func uintValue(v gjson.Result) (uint64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	n, err := strconv.ParseUint(v.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func songsFrom(refs []domain.TrackRef, links domain.LinkBuilder) []domain.Song {
	songs := make([]domain.Song, 0, len(refs))
	for _, ref := range refs {
		songs = append(songs, ref.ToSong(links))
	}
	return songs
}
