package executor

import (
	"net"
	"net/http"
	"testing"
	"time"
)

func TestValidateURLAllowsHTTPS(t *testing.T) {
	if _, err := validateURL("https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateURLBlocksNonHTTPScheme(t *testing.T) {
	if _, err := validateURL("ftp://example.com"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
	if _, err := validateURL("file:///etc/passwd"); err == nil {
		t.Fatal("expected error for file scheme")
	}
}

func TestValidateURLBlocksLocalhost(t *testing.T) {
	if _, err := validateURL("http://localhost"); err == nil {
		t.Fatal("expected error for localhost")
	}
	if _, err := validateURL("https://localhost:8080"); err == nil {
		t.Fatal("expected error for localhost with port")
	}
}

func TestValidateURLBlocksMetadataService(t *testing.T) {
	if _, err := validateURL("http://169.254.169.254"); err == nil {
		t.Fatal("expected error for metadata IP")
	}
	if _, err := validateURL("http://metadata.google.internal"); err == nil {
		t.Fatal("expected error for metadata hostname")
	}
}

func TestIsPrivateIPv4BlocksPrivateRanges(t *testing.T) {
	for _, s := range []string{"10.0.0.1", "172.16.0.1", "192.168.1.1", "127.0.0.1", "169.254.1.1"} {
		ip := net.ParseIP(s).To4()
		if !isPrivateIPv4(ip) {
			t.Fatalf("expected %s to be classified private", s)
		}
	}
}

func TestIsPrivateIPv4AllowsPublic(t *testing.T) {
	for _, s := range []string{"1.1.1.1", "8.8.8.8"} {
		ip := net.ParseIP(s).To4()
		if isPrivateIPv4(ip) {
			t.Fatalf("expected %s to be classified public", s)
		}
	}
}

func TestIsPrivateIPv6AllowsFly6PN(t *testing.T) {
	for _, s := range []string{"fdaa::1", "fdaa:0:18:a7b::1"} {
		ip := net.ParseIP(s)
		if isPrivateIPv6(ip) {
			t.Fatalf("expected %s (fly 6pn) to be allowed", s)
		}
	}
}

func TestIsPrivateIPv6BlocksLoopback(t *testing.T) {
	if !isPrivateIPv6(net.ParseIP("::1")) {
		t.Fatal("expected ::1 to be blocked")
	}
}

func TestIsPrivateIPv6BlocksUniqueLocal(t *testing.T) {
	for _, s := range []string{"fc00::1", "fd00::1"} {
		if !isPrivateIPv6(net.ParseIP(s)) {
			t.Fatalf("expected %s to be blocked", s)
		}
	}
}

func TestHTTPClientDoesNotFollowRedirects(t *testing.T) {
	client := newHTTPClient(time.Second)
	if err := client.CheckRedirect(nil, nil); err != http.ErrUseLastResponse {
		t.Fatalf("expected redirects to be disabled, got %v", err)
	}
}
