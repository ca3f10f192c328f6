package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

// ETag derives a strong validator from the response body.
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}

// ConditionalGET tags successful GET responses with an ETag and answers 304
// when the client already holds the same representation.
func ConditionalGET() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)

				return
			}

			buffered := newBufferedWriter()
			next.ServeHTTP(buffered, r)

			if buffered.statusCode != http.StatusOK {
				buffered.flushTo(w, buffered.body.Bytes())

				return
			}

			body := buffered.body.Bytes()
			etag := ETag(body)
			buffered.header.Set(headerETag, etag)

			if etagMatches(r.Header.Get(headerIfNoneMatch), etag) {
				buffered.header.Del("Content-Length")
				buffered.statusCode = http.StatusNotModified
				buffered.flushTo(w, nil)

				return
			}

			buffered.flushTo(w, body)
		})
	}
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}

	if strings.TrimSpace(ifNoneMatch) == "*" {
		return true
	}

	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag {
			return true
		}
	}

	return false
}
