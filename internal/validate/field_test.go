package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPlaceholder(t *testing.T) {
	for _, v := range []string{"BLANK", "blank", " N/A ", "Not Found", "", "   "} {
		assert.True(t, IsPlaceholder(v), v)
	}
	assert.False(t, IsPlaceholder("blanket.com"))
}

func TestPlaceholdersRejectedEverywhere(t *testing.T) {
	checker := NewURLChecker(time.Second, "")
	for _, v := range []string{"BLANK", "N/A", "Not Found", ""} {
		assert.False(t, ValidateEmail(v), v)
		assert.False(t, ValidatePhone(v), v)
		assert.False(t, checker.ValidateURL(context.Background(), v), v)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"info@sharma.co.in", true},
		{"first.last+tag@example.com", true},
		{" padded@example.com ", true},
		{"info@sharma", false},
		{"@example.com", false},
		{"no-at-sign.com", false},
		{"a@b.c", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.in))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"98765 43210", true},
		{"+91 98765 43210", true},
		{"919876543210", true},
		{"449876543210", false},
		{"98765", false},
		{"12345678901", false},
		{"(020) 2345-6789", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.in))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://sharma.in", NormalizeURL("sharma.in"))
	assert.Equal(t, "http://sharma.in", NormalizeURL("http://sharma.in"))
	assert.Equal(t, "HTTPS://sharma.in", NormalizeURL(" HTTPS://sharma.in "))
}

func TestValidateURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusFound)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	checker := NewURLChecker(2*time.Second, "Mozilla/5.0")
	ctx := context.Background()

	assert.True(t, checker.ValidateURL(ctx, srv.URL+"/ok"))
	assert.True(t, checker.ValidateURL(ctx, srv.URL+"/moved"))
	assert.False(t, checker.ValidateURL(ctx, srv.URL+"/gone"))
	assert.False(t, checker.ValidateURL(ctx, srv.URL+"/boom"))
}

func TestValidateURL_NoHost(t *testing.T) {
	checker := NewURLChecker(time.Second, "")
	assert.False(t, checker.ValidateURL(context.Background(), "https://"))
	assert.False(t, checker.ValidateURL(context.Background(), "://bad"))
}

func TestValidateURL_SchemeAdded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// The test server speaks plain HTTP, so the https prefix makes the
	// bare host fail the TLS handshake.
	host := strings.TrimPrefix(srv.URL, "http://")
	checker := NewURLChecker(time.Second, "")
	assert.False(t, checker.ValidateURL(context.Background(), host))
}

func TestValidateURL_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewURLChecker(50*time.Millisecond, "")
	assert.False(t, checker.ValidateURL(context.Background(), srv.URL))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "919876543210", Digits("+91 (98765) 43-210"))
	assert.Empty(t, Digits("none"))
}
