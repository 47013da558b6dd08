// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = "5811"
	DefaultDBPath         = "meting.db"
	DefaultConcurrency    = 8
	DefaultPlaylistRetry  = 0
	DefaultRequestTimeout = 30 * time.Second
	DefaultRateLimit      = 0.0
	DefaultSearchLimit    = 30
	DefaultSearchPage     = 1
	DefaultSearchType     = 0
	MaxPlaylistRetry      = 255
)

// Netease endpoints
const (
	NeteasePlaylistURL = "https://music.163.com/weapi/v6/playlist/detail"
	NeteaseSongInfoURL = "https://music.163.com/weapi/v3/song/detail"
	NeteaseSongURL     = "https://music.163.com/weapi/song/enhance/player/url"
	NeteaseLyricURL    = "https://music.163.com/weapi/song/lyric"
	NeteaseSearchURL   = "https://music.163.com/weapi/cloudsearch/pc"
)

// Netease request tuning
const (
	// NeteaseBitrate is in bits per second; kbps values make the upstream answer 502.
	NeteaseBitrate        = 320 * 1000
	NeteaseItemsPerDetail = 512
	NeteaseEncoderName    = "netease"
)

// Upstream identity headers
const (
	HeaderReferer        = "https://music.163.com/"
	HeaderCookie         = "appver=8.2.30; os=iPhone OS; osver=15.0; EVNSM=1.0.0; buildver=2206; channel=distribution; machineid=iPhone13.3"
	HeaderUserAgent      = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 CloudMusic/0.1.1 NeteaseMusic/8.2.30"
	HeaderAccept         = "*/*"
	HeaderAcceptLanguage = "zh-CN,zh;q=0.8,gl;q=0.6,zh-TW;q=0.4"
	HeaderConnection     = "keep-alive"
	HeaderContentType    = "application/x-www-form-urlencoded"
)

// Random client IP range (112.88.0.0 - 112.89.35.255)
const (
	RandomIPStart uint32 = 1884815360
	RandomIPEnd   uint32 = 1884890111
)

// PlaceholderLyric is returned when the upstream has no lyric for a track.
const PlaceholderLyric = "[00:00.00]暂无歌词"

// Settings keys
const (
	SettingPlaylistRetry = "playlist_retry"
)

// Route segments
const (
	RoutePic      = "pic"
	RouteLyric    = "lrc"
	RouteURL      = "url"
	RouteSong     = "song"
	RoutePlaylist = "playlist"
	RouteArtist   = "artist"
	RouteSearch   = "search"
)

// MIME Types
const (
	MimeTypeJSON = "application/json"
	MimeTypeText = "text/plain; charset=utf-8"
)
