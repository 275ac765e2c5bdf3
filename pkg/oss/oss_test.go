package oss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		bucket  string
		object  string
		wantErr bool
	}{
		{name: "video", url: "http://localhost:9000/video/video/abc.mp4", bucket: "video", object: "video/abc.mp4"},
		{name: "image", url: "https://cdn.example.com/picture/image/f00.jpg", bucket: "picture", object: "image/f00.jpg"},
		{name: "empty", url: "", wantErr: true},
		{name: "bucket only", url: "http://localhost:9000/video/", wantErr: true},
		{name: "no path", url: "http://localhost:9000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := parseObjectURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.object, object)
		})
	}
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, "video", bucketFor(ResourceVideo))
	assert.Equal(t, "picture", bucketFor(ResourceImage))
}
