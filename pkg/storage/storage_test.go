package storage_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/JaimeStill/dossier/pkg/lifecycle"
	"github.com/JaimeStill/dossier/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=dossierstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/dossierstore;"

func newFilesystem(t *testing.T, pattern string) storage.System {
	t.Helper()

	cfg := &storage.Config{Root: t.TempDir(), Pattern: pattern}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys
}

func upload(t *testing.T, sys storage.System, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if err := sys.Upload(context.Background(), key, bytes.NewReader([]byte(key)), "application/pdf"); err != nil {
			t.Fatalf("Upload(%s) error = %v", key, err)
		}
	}
}

func TestNewAzureFromConnectionString(t *testing.T) {
	cfg := &storage.Config{
		Provider:         storage.ProviderAzure,
		ContainerName:    "corpus",
		ConnectionString: azuriteConnString,
	}

	sys, err := storage.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewAzureInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		Provider:         storage.ProviderAzure,
		ContainerName:    "corpus",
		ConnectionString: "not-a-connection-string",
	}

	_, err := storage.New(cfg, slog.Default())
	if err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := storage.New(&storage.Config{Provider: "ftp"}, slog.Default())
	if !errors.Is(err, storage.ErrUnknownProvider) {
		t.Errorf("New() error = %v, want ErrUnknownProvider", err)
	}
}

func TestFilesystemStartCreatesRoot(t *testing.T) {
	root := t.TempDir() + "/nested/corpus"
	sys, err := storage.New(&storage.Config{Root: root, Pattern: "**"}, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}

	upload(t, sys, "Invoice_0.pdf")
}

func TestFilesystemRoundTrip(t *testing.T) {
	sys := newFilesystem(t, "**")
	ctx := context.Background()

	upload(t, sys, "reports/Invoice_7.pdf")

	exists, err := sys.Exists(ctx, "reports/Invoice_7.pdf")
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v; want true, nil", exists, err)
	}

	meta, err := sys.Find(ctx, "reports/Invoice_7.pdf")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if meta.ContentType != "application/pdf" {
		t.Errorf("content type: got %s, want application/pdf", meta.ContentType)
	}
	if meta.ContentLength != int64(len("reports/Invoice_7.pdf")) {
		t.Errorf("content length: got %d", meta.ContentLength)
	}

	rc, err := sys.Download(ctx, "reports/Invoice_7.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "reports/Invoice_7.pdf" {
		t.Errorf("content: got %q", data)
	}

	if err := sys.Delete(ctx, "reports/Invoice_7.pdf"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := sys.Find(ctx, "reports/Invoice_7.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Find() after delete error = %v, want ErrNotFound", err)
	}
	if err := sys.Delete(ctx, "reports/Invoice_7.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestFilesystemListPaging(t *testing.T) {
	sys := newFilesystem(t, "**")
	ctx := context.Background()

	upload(t, sys, "a.pdf", "b.pdf", "c.pdf", "d.pdf", "x/e.pdf")

	page, err := sys.List(ctx, "", "", 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Blobs) != 2 || page.Blobs[0].Name != "a.pdf" || page.Blobs[1].Name != "b.pdf" {
		t.Fatalf("first page: got %+v", page.Blobs)
	}
	if page.NextMarker != "b.pdf" {
		t.Errorf("next marker: got %q, want b.pdf", page.NextMarker)
	}

	page, err = sys.List(ctx, "", page.NextMarker, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Blobs) != 3 {
		t.Errorf("second page: got %d blobs, want 3", len(page.Blobs))
	}
	if page.NextMarker != "" {
		t.Errorf("last page should have empty marker, got %q", page.NextMarker)
	}

	page, err = sys.List(ctx, "x/", "", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Blobs) != 1 || page.Blobs[0].Name != "x/e.pdf" {
		t.Errorf("prefix page: got %+v", page.Blobs)
	}
}

func TestFilesystemWalkPattern(t *testing.T) {
	sys := newFilesystem(t, "*.pdf")
	upload(t, sys, "Invoice_0.pdf", "Compliance_ARCHIVE_1.pdf", "notes.txt", "nested/Invoice_2.pdf")

	var names []string
	err := sys.Walk(context.Background(), func(meta storage.BlobMeta) error {
		names = append(names, meta.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"Compliance_ARCHIVE_1.pdf", "Invoice_0.pdf"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("Walk() names = %v, want %v", names, want)
	}
}

func TestFilesystemWalkMissingRoot(t *testing.T) {
	sys, err := storage.New(&storage.Config{Root: t.TempDir() + "/absent", Pattern: "**"}, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	calls := 0
	err = sys.Walk(context.Background(), func(storage.BlobMeta) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("Walk() visited %d blobs in a missing root", calls)
	}
}

func TestFilesystemWalkStopsOnError(t *testing.T) {
	sys := newFilesystem(t, "**")
	upload(t, sys, "a.pdf", "b.pdf")

	errStop := errors.New("stop")
	calls := 0
	err := sys.Walk(context.Background(), func(storage.BlobMeta) error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Errorf("Walk() error = %v, want %v", err, errStop)
	}
	if calls != 1 {
		t.Errorf("Walk() calls = %d, want 1", calls)
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "ErrNotFound", err: storage.ErrNotFound, wantMsg: "blob not found"},
		{name: "ErrEmptyKey", err: storage.ErrEmptyKey, wantMsg: "storage key must not be empty"},
		{name: "ErrInvalidKey", err: storage.ErrInvalidKey, wantMsg: "storage key contains invalid path segment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ErrNotFound maps to 404", err: storage.ErrNotFound, want: http.StatusNotFound},
		{name: "ErrEmptyKey maps to 400", err: storage.ErrEmptyKey, want: http.StatusBadRequest},
		{name: "ErrInvalidKey maps to 400", err: storage.ErrInvalidKey, want: http.StatusBadRequest},
		{name: "wrapped ErrNotFound maps to 404", err: fmt.Errorf("operation failed: %w", storage.ErrNotFound), want: http.StatusNotFound},
		{name: "unknown error maps to 500", err: fmt.Errorf("unexpected failure"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int32
		want     int32
		wantErr  bool
	}{
		{name: "empty returns fallback", input: "", fallback: 50, want: 50},
		{name: "valid value within cap", input: "100", fallback: 50, want: 100},
		{name: "value exceeding cap is clamped", input: "9999", fallback: 50, want: storage.MaxListCap},
		{name: "zero is invalid", input: "0", fallback: 50, wantErr: true},
		{name: "negative is invalid", input: "-1", fallback: 50, wantErr: true},
		{name: "non-numeric is invalid", input: "abc", fallback: 50, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseMaxResults(tt.input, tt.fallback)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMaxResults(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMaxResults(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	sys := newFilesystem(t, "**")

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "empty key", key: "", wantErr: storage.ErrEmptyKey},
		{name: "path traversal", key: "corpus/../secrets/key", wantErr: storage.ErrInvalidKey},
		{name: "double dot in middle", key: "docs/..hidden/file.pdf", wantErr: storage.ErrInvalidKey},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sys.Upload(ctx, tt.key, bytes.NewReader(nil), "application/pdf"); !errors.Is(err, tt.wantErr) {
				t.Errorf("Upload() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Download() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Find(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Find() error = %v, want %v", err, tt.wantErr)
			}
			if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("Exists() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
