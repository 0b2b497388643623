// Package weburl provides web page fetching for document ingestion: URL
// validation with SSRF prevention, content download, and readability-based
// extraction to markdown.
package weburl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidateURL validates a URL for security (SSRF prevention).
// It requires HTTPS and blocks localhost, private IPs, and local domains.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed")
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no host")
	}

	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".local") ||
		strings.HasSuffix(lower, ".internal") {
		return fmt.Errorf("local hostname %q is not allowed", host)
	}

	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("connection to private IP %s is not allowed", ip)
	}

	return nil
}

// IsPrivateIP reports whether the IP is private, loopback, link-local, or
// otherwise non-routable.
func IsPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

// SourceID derives a stable document identifier from a URL.
func SourceID(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "web-" + hex.EncodeToString(sum[:8])
}
