package weburl

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/article", false},
		{"http rejected", "http://example.com/article", true},
		{"file scheme rejected", "file:///etc/passwd", true},
		{"localhost rejected", "https://localhost/admin", true},
		{"local domain rejected", "https://printer.local/", true},
		{"internal domain rejected", "https://db.internal/", true},
		{"loopback IP rejected", "https://127.0.0.1/", true},
		{"private IP rejected", "https://192.168.1.10/", true},
		{"link-local IP rejected", "https://169.254.169.254/latest/meta-data", true},
		{"missing host", "https:///path", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{"10.0.0.1", "172.16.5.5", "192.168.0.1", "127.0.0.1", "169.254.1.1", "0.0.0.0", "::1"}
	for _, s := range private {
		assert.True(t, IsPrivateIP(net.ParseIP(s)), s)
	}

	public := []string{"8.8.8.8", "1.1.1.1", "93.184.216.34"}
	for _, s := range public {
		assert.False(t, IsPrivateIP(net.ParseIP(s)), s)
	}
}

func TestSourceID(t *testing.T) {
	a := SourceID("https://example.com/a")
	b := SourceID("https://example.com/b")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, SourceID("https://example.com/a"))
	assert.Regexp(t, `^web-[0-9a-f]{16}$`, a)
}
