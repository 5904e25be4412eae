package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/varoOP/bandpix/internal/fetch"
)

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "bandpix-test" {
			t.Errorf("unexpected User-Agent %q", got)
		}
		w.Write([]byte(`{"name":"Rush","year":1974}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}
	client := fetch.NewClient("bandpix-test")
	if err := client.GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if out.Name != "Rush" || out.Year != 1974 {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}

func TestGetJSONNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]any
	err := fetch.NewClient("").GetJSON(context.Background(), srv.URL, &out)
	if err == nil {
		t.Fatal("expected error for 503 response")
	}

	var se *fetch.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status code %d", se.StatusCode)
	}
	if !fetch.IsStatusError(err) {
		t.Fatal("IsStatusError must recognize the error")
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"broken":`))
	}))
	defer srv.Close()

	var out map[string]any
	err := fetch.NewClient("").GetJSON(context.Background(), srv.URL, &out)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if fetch.IsStatusError(err) {
		t.Fatal("decode failure must not be a StatusError")
	}
}
