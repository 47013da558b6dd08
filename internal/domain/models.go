package domain

// Song is the provider-agnostic record returned for every resolved track.
// URL, Pic and Lyric hold caller-built links, not upstream URLs.
type Song struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Pic    string `json:"pic"`
	Lyric  string `json:"lrc"`
}

// TrackRef is the minimal record extracted from an upstream song object.
type TrackRef struct {
	ID      string
	Title   string
	Artists string
}

// ToSong builds the public record, asking links for the three addresses of the track.
func (r TrackRef) ToSong(links LinkBuilder) Song {
	return Song{
		Name:   r.Title,
		Artist: r.Artists,
		URL:    links.URL(r.ID),
		Pic:    links.Pic(r.ID),
		Lyric:  links.Lyric(r.ID),
	}
}

// SearchOptions controls paging of a search. Page is 1-based.
type SearchOptions struct {
	Limit uint
	Page  uint
	Type  uint
}

// Offset returns the zero-based index of the first result, treating page 0 as page 1.
func (o SearchOptions) Offset() uint {
	page := o.Page
	if page == 0 {
		page = 1
	}
	return (page - 1) * o.Limit
}

// LinkBuilder maps a provider track id to externally dereferenceable addresses.
type LinkBuilder interface {
	Pic(id string) string
	Lyric(id string) string
	URL(id string) string
}

// LinkFuncs adapts three plain functions to LinkBuilder.
type LinkFuncs struct {
	PicFunc   func(id string) string
	LyricFunc func(id string) string
	URLFunc   func(id string) string
}

func (f LinkFuncs) Pic(id string) string   { return call(f.PicFunc, id) }
func (f LinkFuncs) Lyric(id string) string { return call(f.LyricFunc, id) }
func (f LinkFuncs) URL(id string) string   { return call(f.URLFunc, id) }

func call(fn func(string) string, id string) string {
	if fn == nil {
		return ""
	}
	return fn(id)
}
