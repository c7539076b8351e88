package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

const payload = "openapi: 3.0.3\ninfo: {title: t, version: '1'}\npaths: {}\n"

func TestLoad_Sources(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	file := filepath.Join(dir, "api.yaml")
	if err := os.WriteFile(file, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	urlSrc, err := pkgopenapi.SourceFromURL(server.URL)
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	l := New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithFileSystem(fstest.MapFS{"specs/api.yaml": {Data: []byte(payload)}}),
		pkgopenapi.WithHTTPFallback(0),
	))

	for _, src := range []pkgopenapi.Source{
		pkgopenapi.SourceFromFile(file),
		pkgopenapi.SourceFromFS("specs/api.yaml"),
		urlSrc,
	} {
		doc, err := l.Load(ctx, src)
		if err != nil {
			t.Fatalf("load %s: %v", src.Kind(), err)
		}
		if string(doc.Raw()) != payload {
			t.Fatalf("load %s: unexpected payload %q", src.Kind(), doc.Raw())
		}
		if doc.Location() != src.Location() {
			t.Fatalf("load %s: location %q", src.Kind(), doc.Location())
		}
	}
}

func TestLoad_HTTPDisabledByDefault(t *testing.T) {
	src, err := pkgopenapi.SourceFromURL("https://example.com/api.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	_, err = New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled http error, got %v", err)
	}
}

func TestLoad_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src, _ := pkgopenapi.SourceFromURL(server.URL)
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), src); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoad_FSNotConfigured(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("api.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoad_RejectsOversizedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("#", MaxDocumentSize+1)))
	}))
	defer server.Close()

	src, _ := pkgopenapi.SourceFromURL(server.URL)
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), src); !errors.Is(err, errTooLarge) {
		t.Fatalf("expected size error, got %v", err)
	}
}
