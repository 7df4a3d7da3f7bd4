package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "2" || r.URL.Query().Get("offset") != "4" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"a","title":"one","created_at":"2026-01-02T03:04:05Z"},
			{"id":"b","title":"two","created_at":null}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	posts, err := c.ListPosts(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts", len(posts))
	}
	if ts := posts[0].Timestamp(); ts == nil || ts.Year() != 2026 {
		t.Fatalf("timestamp = %v", ts)
	}
	if posts[1].Timestamp() != nil {
		t.Fatalf("null created_at must yield nil timestamp")
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "bitcoin price" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`[{"id":"a","title":"hit"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	posts, err := c.Search(context.Background(), "bitcoin price", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "a" {
		t.Fatalf("posts = %+v", posts)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	if _, err := c.ListPosts(context.Background(), 10, 0); err == nil {
		t.Fatalf("expected error on non-200")
	}
}

func TestTimestampMalformed(t *testing.T) {
	bad := "not-a-time"
	p := Post{CreatedAt: &bad}
	if p.Timestamp() != nil {
		t.Fatalf("malformed created_at must yield nil")
	}
}
