package storage_test

import (
	"testing"

	"github.com/haierkeys/flipbook-share-service/pkg/storage"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/local_fs"
)

func TestNewClientLocal(t *testing.T) {
	client, err := storage.NewClient(&storage.Config{
		Type:     storage.LOCAL,
		SavePath: "./uploads",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, ok := client.(*local_fs.LocalFS); !ok {
		t.Fatalf("NewClient returned %T, want *local_fs.LocalFS", client)
	}
}

func TestNewClientUnknownType(t *testing.T) {
	if _, err := storage.NewClient(&storage.Config{Type: "ftp"}); err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}

func TestNewClientNilConfig(t *testing.T) {
	if _, err := storage.NewClient(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestLocalPublicURL(t *testing.T) {
	client, err := storage.NewClient(&storage.Config{
		Type:     storage.LOCAL,
		SavePath: "storage/uploads",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got := client.PublicURL("storage/uploads/report-1700000000-abc123.pdf")
	want := "/storage/uploads/report-1700000000-abc123.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestLocalPublicURLWithPrefix(t *testing.T) {
	client, err := storage.NewClient(&storage.Config{
		Type:            storage.LOCAL,
		SavePath:        "storage/uploads",
		AccessURLPrefix: "https://files.example.com/",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got := client.PublicURL("storage/uploads/report-1700000000-abc123.pdf")
	want := "https://files.example.com/storage/uploads/report-1700000000-abc123.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}
