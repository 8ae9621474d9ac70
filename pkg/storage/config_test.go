package storage_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/dossier/pkg/storage"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Provider != storage.ProviderFilesystem {
		t.Errorf("provider: got %s, want %s", cfg.Provider, storage.ProviderFilesystem)
	}
	if cfg.Root != "corpus" {
		t.Errorf("root: got %s, want corpus", cfg.Root)
	}
	if cfg.Pattern != "**" {
		t.Errorf("pattern: got %s, want **", cfg.Pattern)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("max_list_size: got %d, want 50", cfg.MaxListSize)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PROVIDER", "azure")
	t.Setenv("TEST_CONTAINER", "uploads")
	t.Setenv("TEST_CONN", "override-connection")
	t.Setenv("TEST_MAX_LIST", "9999")

	env := &storage.Env{
		Provider:         "TEST_PROVIDER",
		ContainerName:    "TEST_CONTAINER",
		ConnectionString: "TEST_CONN",
		MaxListSize:      "TEST_MAX_LIST",
	}

	cfg := storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Provider != storage.ProviderAzure {
		t.Errorf("provider: got %s, want azure", cfg.Provider)
	}
	if cfg.ContainerName != "uploads" {
		t.Errorf("container_name: got %s, want uploads", cfg.ContainerName)
	}
	if cfg.ConnectionString != "override-connection" {
		t.Errorf("connection_string: got %s, want override-connection", cfg.ConnectionString)
	}
	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("max_list_size: got %d, want %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr string
	}{
		{
			name:    "azure without credentials",
			cfg:     storage.Config{Provider: storage.ProviderAzure},
			wantErr: "connection_string or account_url required",
		},
		{
			name: "azure with account url",
			cfg: storage.Config{
				Provider:   storage.ProviderAzure,
				AccountURL: "https://dossier.blob.core.windows.net/",
			},
		},
		{
			name:    "unknown provider",
			cfg:     storage.Config{Provider: "s3"},
			wantErr: "unknown storage provider",
		},
		{
			name:    "malformed pattern",
			cfg:     storage.Config{Pattern: "[*.pdf"},
			wantErr: "invalid pattern",
		},
		{
			name: "filesystem defaults",
			cfg:  storage.Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFinalizeUnknownProviderSentinel(t *testing.T) {
	cfg := storage.Config{Provider: "gcs"}
	if err := cfg.Finalize(nil); !errors.Is(err, storage.ErrUnknownProvider) {
		t.Errorf("Finalize() error = %v, want ErrUnknownProvider", err)
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{
		Provider:         storage.ProviderFilesystem,
		Root:             "corpus",
		ContainerName:    "corpus",
		ConnectionString: "base-conn",
	}

	overlay := storage.Config{Root: "/var/lib/dossier", ConnectionString: "overlay-conn"}
	base.Merge(&overlay)

	if base.Provider != storage.ProviderFilesystem {
		t.Errorf("provider should remain filesystem, got %s", base.Provider)
	}
	if base.Root != "/var/lib/dossier" {
		t.Errorf("root: got %s, want /var/lib/dossier", base.Root)
	}
	if base.ConnectionString != "overlay-conn" {
		t.Errorf("connection_string: got %s, want overlay-conn", base.ConnectionString)
	}
}
