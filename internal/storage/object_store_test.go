package storage

import (
	"testing"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "public base wins",
			cfg:  config.StorageConfig{Endpoint: "minio:9000", Bucket: "b", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/2024/07/04/x.png",
		},
		{
			name: "plain endpoint",
			cfg:  config.StorageConfig{Endpoint: "minio:9000", Bucket: "b"},
			want: "http://minio:9000/b/2024/07/04/x.png",
		},
		{
			name: "ssl endpoint",
			cfg:  config.StorageConfig{Endpoint: "s3.example.com", Bucket: "b", UseSSL: true},
			want: "https://s3.example.com/b/2024/07/04/x.png",
		},
		{
			name: "endpoint with scheme",
			cfg:  config.StorageConfig{Endpoint: "https://s3.example.com/", Bucket: "b"},
			want: "https://s3.example.com/b/2024/07/04/x.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicURL(tt.cfg, "2024/07/04/x.png"); got != tt.want {
				t.Errorf("PublicURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
