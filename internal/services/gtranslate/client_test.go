package gtranslate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"subburn/internal/services/gtranslate"
)

func TestTranslateDecodesNestedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("tl"); got != "iw" {
			t.Errorf("tl = %q, want iw", got)
		}
		if got := r.URL.Query().Get("sl"); got != "auto" {
			t.Errorf("sl = %q, want auto", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("q"); got != "hello world" {
			t.Errorf("q = %q", got)
		}
		w.Write([]byte(`[[["שלום ","hello",null,null],["עולם","world",null,null]],null,"en"]`))
	}))
	defer server.Close()

	client := gtranslate.NewClient("iw", gtranslate.WithBaseURL(server.URL))
	got, err := client.Translate(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "שלום עולם" {
		t.Fatalf("Translate = %q", got)
	}
}

func TestTranslateSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := gtranslate.NewClient("iw", gtranslate.WithBaseURL(server.URL))
	if _, err := client.Translate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for HTTP 429")
	}
}

func TestTranslateRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	client := gtranslate.NewClient("iw", gtranslate.WithBaseURL(server.URL))
	if _, err := client.Translate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestTranslateRequiresTargetLanguage(t *testing.T) {
	client := gtranslate.NewClient("")
	if _, err := client.Translate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error without target language")
	}
}
