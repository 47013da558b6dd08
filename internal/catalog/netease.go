package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/domain"
	"github.com/cesargomez89/meting-gateway/internal/httpclient"
	"github.com/cesargomez89/meting-gateway/internal/logger"
	"github.com/cesargomez89/meting-gateway/internal/retry"
	"github.com/cesargomez89/meting-gateway/internal/weapi"
)

const NeteaseName = "netease"

// NeteaseEndpoints lists the weapi endpoints used by the provider.
type NeteaseEndpoints struct {
	Playlist string
	SongInfo string
	SongURL  string
	Lyric    string
	Search   string
}

func DefaultNeteaseEndpoints() NeteaseEndpoints {
	return NeteaseEndpoints{
		Playlist: constants.NeteasePlaylistURL,
		SongInfo: constants.NeteaseSongInfoURL,
		SongURL:  constants.NeteaseSongURL,
		Lyric:    constants.NeteaseLyricURL,
		Search:   constants.NeteaseSearchURL,
	}
}

// NeteaseProvider talks to the encrypted Netease Cloud Music weapi.
// It is read-only after construction and safe for concurrent use.
type NeteaseProvider struct {
	Unimplemented

	Client    *httpclient.Client
	Encoder   *weapi.Encoder
	Endpoints NeteaseEndpoints
	BatchSize int

	logger *logger.Logger
}

func NewNeteaseProvider(client *httpclient.Client, encoder *weapi.Encoder, log *logger.Logger) *NeteaseProvider {
	if log == nil {
		log = logger.Default()
	}
	return &NeteaseProvider{
		Client:    client,
		Encoder:   encoder,
		Endpoints: DefaultNeteaseEndpoints(),
		BatchSize: constants.NeteaseItemsPerDetail,
		logger:    log.WithProvider(NeteaseName),
	}
}

func (p *NeteaseProvider) Name() string {
	return NeteaseName
}

func (p *NeteaseProvider) URL(ctx context.Context, id string) (string, error) {
	env, err := p.encode(songFileRequest{IDs: []string{id}, BR: constants.NeteaseBitrate})
	if err != nil {
		return "", err
	}
	res, err := p.exec(ctx, p.Endpoints.SongURL, env)
	if err != nil {
		return "", domain.Remote(err)
	}

	data := res.Get("data")
	if !data.Exists() {
		return "", domain.NoField("data")
	}
	if !data.IsArray() {
		return "", domain.TypeMismatch("data", "array")
	}
	items := data.Array()
	if len(items) == 0 {
		return "", domain.ErrNone
	}
	first := items[0]

	code := first.Get("code")
	if !code.Exists() {
		return "", domain.NoField("code")
	}
	n, ok := uintValue(code)
	if !ok {
		return "", domain.TypeMismatch("code", "u64")
	}
	if n != 200 {
		return "", domain.ErrNone
	}

	const urlPath = "data.0.url / data.0.uf.url"
	link := first.Get("url")
	if link.Type != gjson.String {
		if alt := first.Get("uf.url"); alt.Exists() {
			link = alt
		}
	}
	if !link.Exists() {
		return "", domain.NoField(urlPath)
	}
	if link.Type != gjson.String {
		return "", domain.TypeMismatch(urlPath, "str")
	}
	if link.Str == "" {
		return "", domain.ErrNone
	}
	return strings.ReplaceAll(link.Str, "http://", "https://"), nil
}

func (p *NeteaseProvider) Pic(ctx context.Context, id string) (string, error) {
	songs, err := p.songDetail(ctx, id)
	if err != nil {
		return "", err
	}

	pic := songs.Get("0.al.picUrl")
	if !pic.Exists() {
		return "", domain.NoField(".songs.0.al.picUrl")
	}
	if pic.Type != gjson.String {
		return "", domain.TypeMismatch(".songs.0.al.picUrl", "str")
	}
	return pic.Str, nil
}

func (p *NeteaseProvider) Lyric(ctx context.Context, id string) (string, error) {
	env, err := p.encode(newLyricRequest(id))
	if err != nil {
		return "", err
	}
	res, err := p.exec(ctx, p.Endpoints.Lyric, env)
	if err != nil {
		return "", domain.Remote(err)
	}

	if lyric := res.Get("lrc.lyric"); lyric.Type == gjson.String && lyric.Str != "" {
		return lyric.Str, nil
	}
	return constants.PlaceholderLyric, nil
}

func (p *NeteaseProvider) Song(ctx context.Context, id string, links domain.LinkBuilder) (*domain.Song, error) {
	songs, err := p.songDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	items := songs.Array()
	if len(items) == 0 {
		return nil, domain.ErrNone
	}
	ref, ok := ExtractTrackRef(items[0])
	if !ok {
		return nil, domain.NoField(trackRefFields)
	}
	song := ref.ToSong(links)
	return &song, nil
}

func (p *NeteaseProvider) Playlist(ctx context.Context, id string, retryLimit uint8, links domain.LinkBuilder) ([]domain.Song, error) {
	log := p.logger.WithOperation("playlist", id)

	env, err := p.encode(newPlaylistRequest(id))
	if err != nil {
		return nil, err
	}
	res, err := p.exec(ctx, p.Endpoints.Playlist, env)
	if err != nil {
		return nil, domain.Remote(err)
	}

	trackIDs := res.Get("playlist.trackIds")
	if !trackIDs.Exists() {
		return nil, domain.NoField(".playlist.trackIds")
	}
	if !trackIDs.IsArray() {
		return nil, domain.TypeMismatch(".playlist.trackIds", "array")
	}

	var items []songItem
	trackIDs.ForEach(func(_, track gjson.Result) bool {
		if n, ok := uintValue(track.Get("id")); ok {
			items = append(items, songItem{ID: n})
		}
		return true
	})

	batches := chunkItems(items, p.BatchSize)
	envelopes := make([]weapi.Envelope, 0, len(batches))
	for _, batch := range batches {
		req, err := newSongDetailRequest(batch)
		if err != nil {
			return nil, domain.Encode(constants.NeteaseEncoderName, err)
		}
		env, err := p.encode(req)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, env)
	}

	type batchResult struct {
		res gjson.Result
		err error
	}
	results := make([]batchResult, len(envelopes))

	var g errgroup.Group
	for i, env := range envelopes {
		g.Go(func() error {
			res, err := retry.Do(ctx, retryLimit, env,
				func(ctx context.Context, env weapi.Envelope) (gjson.Result, error) {
					return p.exec(ctx, p.Endpoints.SongInfo, env)
				},
				func(attempt int, err error) {
					log.Warn("Retrying playlist batch", "batch", i, "attempt", attempt, "error", err)
				},
			)
			results[i] = batchResult{res: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	songs := make([]domain.Song, 0, len(items))
	for i, r := range results {
		if r.err != nil {
			log.Warn("Dropping playlist batch", "batch", i, "size", len(batches[i]), "error", r.err)
			continue
		}
		detail := r.res.Get("songs")
		if !detail.Exists() {
			return nil, domain.NoField("<song-detail>.songs")
		}
		if !detail.IsArray() {
			return nil, domain.TypeMismatch("<song-detail>.songs", "array")
		}
		songs = append(songs, songsFrom(ExtractTrackRefs(detail), links)...)
	}

	log.Debug("Playlist resolved", "tracks", len(items), "batches", len(batches), "songs", len(songs))
	return songs, nil
}

func (p *NeteaseProvider) Search(ctx context.Context, keyword string, opts domain.SearchOptions, links domain.LinkBuilder) ([]domain.Song, error) {
	env, err := p.encode(newSearchRequest(keyword, opts))
	if err != nil {
		return nil, err
	}
	res, err := p.exec(ctx, p.Endpoints.Search, env)
	if err != nil {
		return nil, domain.Server(err)
	}

	songs := res.Get("result.songs")
	if !songs.Exists() {
		return nil, domain.NoField(".result.songs")
	}
	if !songs.IsArray() {
		return nil, domain.TypeMismatch(".result.songs", "array")
	}
	return songsFrom(ExtractTrackRefs(songs), links), nil
}

// songDetail fetches the detail of one numeric song id and returns its songs array.
func (p *NeteaseProvider) songDetail(ctx context.Context, id string) (gjson.Result, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return gjson.Result{}, domain.TypeMismatch("<id>", "u64")
	}
	req, err := newSongDetailRequest([]songItem{{ID: n}})
	if err != nil {
		return gjson.Result{}, domain.Encode(constants.NeteaseEncoderName, err)
	}
	env, err := p.encode(req)
	if err != nil {
		return gjson.Result{}, err
	}
	res, err := p.exec(ctx, p.Endpoints.SongInfo, env)
	if err != nil {
		return gjson.Result{}, domain.Remote(err)
	}

	songs := res.Get("songs")
	if !songs.Exists() {
		return gjson.Result{}, domain.NoField("songs")
	}
	if !songs.IsArray() {
		return gjson.Result{}, domain.TypeMismatch(".songs", "array")
	}
	return songs, nil
}

func (p *NeteaseProvider) encode(payload any) (weapi.Envelope, error) {
	env, err := p.Encoder.EncodeJSON(payload)
	if err != nil {
		return weapi.Envelope{}, domain.Encode(constants.NeteaseEncoderName, err)
	}
	return env, nil
}

func (p *NeteaseProvider) exec(ctx context.Context, endpoint string, env weapi.Envelope) (gjson.Result, error) {
	raw, err := httpclient.Execute[json.RawMessage](ctx, p.Client, endpoint, env)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}
