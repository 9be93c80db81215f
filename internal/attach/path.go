package attach

import (
	"net/url"
	"strings"
)

// PathFromURL recovers the object path from a public URL issued for bucket by
// locating the "/{bucket}/" segment and percent-decoding what follows. It is
// only needed for records that predate the stored path.
func PathFromURL(bucket, rawURL string) (string, bool) {
	if bucket == "" || rawURL == "" {
		return "", false
	}
	marker := "/" + bucket + "/"

	source := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		source = u.EscapedPath()
	}

	idx := strings.Index(source, marker)
	if idx < 0 {
		return "", false
	}
	rest := source[idx+len(marker):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil || decoded == "" {
		return "", false
	}
	return decoded, true
}
