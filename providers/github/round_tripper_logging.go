package github

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(r)
	if err != nil {
		log.Debug().Err(err).Str("method", r.Method).Str("url", r.URL.String()).Msg("github request failed")
		return nil, err
	}

	log.Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("github request")

	return resp, nil
}
