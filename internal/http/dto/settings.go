package dto

// PlaylistRetryResponse is returned by the retry budget endpoints.
type PlaylistRetryResponse struct {
	PlaylistRetry uint8 `json:"playlist_retry"`
}
