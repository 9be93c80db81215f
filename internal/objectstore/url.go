package objectstore

import (
	"net/url"
	"strings"
)

// JoinURL builds {base}/{bucket}/{path} with every path segment escaped.
func JoinURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
