package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("localhost:8000", time.Second)
	client2 := NewHTTPClient("localhost:8000", time.Second)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return independent *resty.Client instances")
	}
}

func TestNewHTTPClient_BaseURLAndTimeout(t *testing.T) {
	client := NewHTTPClient("localhost:8000/", 5*time.Second)

	if client.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected base url %q", client.BaseURL)
	}
	if client.GetClient().Timeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", client.GetClient().Timeout)
	}
	if client.RetryCount != 0 {
		t.Errorf("expected no retries, got %d", client.RetryCount)
	}
}

func TestHTTPClient_EmbeddedClientUsable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL, 0).R().Get("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode())
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"localhost:8000":          "http://localhost:8000",
		"http://localhost:8000/":  "http://localhost:8000",
		"https://api.example.com": "https://api.example.com",
		"  api.local//  ":         "http://api.local",
	}

	for in, want := range tests {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
