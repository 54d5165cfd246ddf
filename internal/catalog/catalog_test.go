package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListImages(t *testing.T) {
	t.Parallel()

	var gotPage, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","author":"A","download_url":"https://example.com/a.jpg"},
			{"id":"2","author":"B","download_url":"https://example.com/b.jpg"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	descs, err := c.ListImages(context.Background(), 3, 25)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}

	if gotPage != "3" || gotLimit != "25" {
		t.Errorf("query params page=%s limit=%s, want 3/25", gotPage, gotLimit)
	}
	if len(descs) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(descs))
	}
	if descs[0].DownloadURL != "https://example.com/a.jpg" {
		t.Errorf("descriptor[0] = %q, want https://example.com/a.jpg", descs[0].DownloadURL)
	}
}

func TestListImagesEmptyPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	descs, err := c.ListImages(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(descs) != 0 {
		t.Errorf("got %d descriptors, want 0", len(descs))
	}
}

func TestListImagesServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if _, err := c.ListImages(context.Background(), 0, 10); err == nil {
		t.Error("ListImages on 500 succeeded, want error")
	}
}

func TestListImagesBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if _, err := c.ListImages(context.Background(), 0, 10); err == nil {
		t.Error("ListImages on malformed JSON succeeded, want error")
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := NewClient("https://picsum.photos/", http.DefaultClient)
	if c.baseURL != "https://picsum.photos" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}
