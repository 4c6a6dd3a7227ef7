package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeS3 records the requests an S3 client sends to it.
type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.bodies[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.bodies, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestNewS3Disabled(t *testing.T) {
	c, err := NewS3("", "us-east-1", "", "", "media", "")
	if err != nil || c != nil {
		t.Errorf("expected (nil, nil) without endpoint, got %v, %v", c, err)
	}
}

func TestS3FileURLAndExtractKey(t *testing.T) {
	c, err := NewS3("https://s3.example.com/", "us-east-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	url := c.FileURL("a.png")
	if url != "https://s3.example.com/media/a.png" {
		t.Errorf("FileURL: got %q", url)
	}
	if key, ok := c.ExtractKey(url); !ok || key != "a.png" {
		t.Errorf("ExtractKey: got %q, %v", key, ok)
	}
	if _, ok := c.ExtractKey("/uploads/a.png"); ok {
		t.Error("ExtractKey accepted a foreign url")
	}

	cdn, _ := NewS3("https://s3.example.com", "us-east-1", "key", "secret", "media", "https://cdn.example.com/")
	if got := cdn.FileURL("b.mp4"); got != "https://cdn.example.com/b.mp4" {
		t.Errorf("FileURL with public url: got %q", got)
	}
	if key, ok := cdn.ExtractKey("https://cdn.example.com/b.mp4"); !ok || key != "b.mp4" {
		t.Errorf("ExtractKey with public url: got %q, %v", key, ok)
	}
}

func TestS3SaveAndDelete(t *testing.T) {
	fake := &fakeS3{bodies: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c, err := NewS3(srv.URL, "us-east-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	ctx := context.Background()

	url, err := c.Save(ctx, "clip.mp4", "video/mp4", bytes.NewReader([]byte("frames")), 6)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != srv.URL+"/media/clip.mp4" {
		t.Errorf("url: got %q", url)
	}
	if got := fake.bodies["/media/clip.mp4"]; !bytes.Contains(got, []byte("frames")) {
		t.Errorf("stored body: got %q", got)
	}

	if err := c.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := fake.bodies["/media/clip.mp4"]; ok {
		t.Error("object still present after delete")
	}

	// Foreign URLs never reach the bucket.
	n := len(fake.requests)
	if err := c.Delete(ctx, "/uploads/clip.mp4"); err != nil {
		t.Errorf("Delete foreign url: %v", err)
	}
	if len(fake.requests) != n {
		t.Error("foreign url delete sent a request")
	}
}
