package httpapp

import (
	"net/http"
	"strings"

	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/domain"
)

// requestScheme prefers X-Forwarded-Proto, then the connection's TLS state.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// linksFor builds links that point back at this gateway for the given provider.
func linksFor(r *http.Request, provider string) domain.LinkBuilder {
	base := requestScheme(r) + "://" + r.Host + "/" + provider + "/"
	link := func(kind string) func(string) string {
		return func(id string) string {
			return base + kind + "/" + id
		}
	}
	return domain.LinkFuncs{
		PicFunc:   link(constants.RoutePic),
		LyricFunc: link(constants.RouteLyric),
		URLFunc:   link(constants.RouteURL),
	}
}
