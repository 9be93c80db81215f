package attach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathFromURL(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		url    string
		want   string
		ok     bool
	}{
		{
			name:   "public url",
			bucket: "Foodtb_bk",
			url:    "https://x.supabase.co/storage/v1/object/public/Foodtb_bk/food-images/111.jpg",
			want:   "food-images/111.jpg",
			ok:     true,
		},
		{
			name:   "percent encoded",
			bucket: "usertb_bk",
			url:    "http://cdn/usertb_bk/profile-images/my%20face.png",
			want:   "profile-images/my face.png",
			ok:     true,
		},
		{
			name:   "query string dropped",
			bucket: "b",
			url:    "http://cdn/b/x/1.gif?t=123",
			want:   "x/1.gif",
			ok:     true,
		},
		{
			name:   "not a url",
			bucket: "Foodtb_bk",
			url:    "/Foodtb_bk/food-images/2.webp",
			want:   "food-images/2.webp",
			ok:     true,
		},
		{name: "marker missing", bucket: "Foodtb_bk", url: "http://cdn/other/food-images/1.jpg"},
		{name: "bucket as prefix only", bucket: "Food", url: "http://cdn/Foodtb_bk/1.jpg"},
		{name: "nothing after marker", bucket: "b", url: "http://cdn/b/"},
		{name: "bad escape", bucket: "b", url: "/b/%zz"},
		{name: "empty", bucket: "b", url: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PathFromURL(tt.bucket, tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
