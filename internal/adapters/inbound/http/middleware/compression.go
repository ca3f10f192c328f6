package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"

	httpCompressionTotal = "http_compression_total"
	compressionAlgorithm = "compression.algorithm"
)

var compressibleTypes = []string{
	"application/json",
	"application/problem+json",
	"text/plain",
	"text/html",
	"image/svg+xml",
}

// Compression encodes buffered responses above MinSize with brotli or gzip,
// whichever the client prefers. Stored photos are already compressed and
// are skipped by content type.
func Compression(cfg config.Compression, metricsClient metrics.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"))
			if encoding == "" || r.Method == http.MethodHead || skipPath(r.URL.Path, cfg.SkipPaths) {
				next.ServeHTTP(w, r)

				return
			}

			buffered := newBufferedWriter()
			next.ServeHTTP(buffered, r)

			body := buffered.body.Bytes()
			buffered.header.Add("Vary", "Accept-Encoding")

			if len(body) < cfg.MinSize || !isCompressible(buffered.header.Get("Content-Type")) ||
				buffered.header.Get("Content-Encoding") != "" {
				buffered.flushTo(w, body)

				return
			}

			compressed, err := encode(encoding, cfg.Level, body)
			if err != nil {
				buffered.flushTo(w, body)

				return
			}

			buffered.header.Set("Content-Encoding", encoding)
			buffered.header.Set("Content-Length", strconv.Itoa(len(compressed)))

			// The ETag describes the identity body, so a compressed copy only
			// keeps a weak validator.
			if etag := buffered.header.Get(headerETag); etag != "" && !strings.HasPrefix(etag, "W/") {
				buffered.header.Set(headerETag, "W/"+etag)
			}

			if metricsClient != nil {
				metricsClient.Inc(r.Context(), httpCompressionTotal, 1, attribute.String(compressionAlgorithm, encoding))
			}

			buffered.flushTo(w, compressed)
		})
	}
}

// negotiateEncoding picks the encoding with the highest quality. Brotli wins
// ties.
func negotiateEncoding(header string) string {
	var (
		best        string
		bestQuality float64
	)

	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))

		if name != encodingBrotli && name != encodingGzip {
			continue
		}

		quality := 1.0

		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(q, 64)
			if err != nil {
				continue
			}

			quality = parsed
		}

		if quality <= 0 {
			continue
		}

		if quality > bestQuality || (quality == bestQuality && name == encodingBrotli) {
			best, bestQuality = name, quality
		}
	}

	return best
}

func encode(encoding string, level int, body []byte) ([]byte, error) {
	var (
		buf    bytes.Buffer
		writer io.WriteCloser
		err    error
	)

	switch encoding {
	case encodingBrotli:
		writer = brotli.NewWriterLevel(&buf, brotliQuality(level))
	default:
		writer, err = gzip.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, err
		}
	}

	if _, err := writer.Write(body); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// brotliQuality maps the 1-9 gzip scale onto brotli's 0-11.
func brotliQuality(level int) int {
	return min(brotli.BestCompression, level*brotli.BestCompression/9)
}

func isCompressible(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return slices.Contains(compressibleTypes, mediaType)
}

func skipPath(path string, skipPaths []string) bool {
	for _, skip := range skipPaths {
		if path == skip || strings.HasPrefix(path, strings.TrimSuffix(skip, "/")+"/") {
			return true
		}
	}

	return false
}
