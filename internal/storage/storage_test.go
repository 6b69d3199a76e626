package storage

import (
	"context"
	"errors"
	"testing"

	"alcyxob/training-planner/internal/config"
)

func TestKeys(t *testing.T) {
	if got := SnapshotKey("u1", "plan-a", 3, "abc"); got != "plans/u1/plan-a/v000003-abc.json" {
		t.Errorf("SnapshotKey = %q", got)
	}
	if got := ExportKey("u1", "current-plan", "x"); got != "exports/u1/current-plan/x.json" {
		t.Errorf("ExportKey = %q", got)
	}
}

func TestEndpointURL(t *testing.T) {
	cases := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{}, ""},
		{config.S3Config{Endpoint: "minio:9000"}, "http://minio:9000"},
		{config.S3Config{Endpoint: "minio:9000", UseSSL: true}, "https://minio:9000"},
		{config.S3Config{Endpoint: "http://localhost:9000", UseSSL: true}, "http://localhost:9000"},
	}
	for _, c := range cases {
		if got := endpointURL(c.cfg); got != c.want {
			t.Errorf("endpointURL(%+v) = %q, want %q", c.cfg, got, c.want)
		}
	}
}

func TestMemoryArchive(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryArchive()
	if _, err := m.PresignedDownloadURL(ctx, "k", 0); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err := m.PutSnapshot(ctx, "k", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	url, err := m.PresignedDownloadURL(ctx, "k", 0)
	if err != nil || url != "mem://k" {
		t.Errorf("url = %q, %v", url, err)
	}
	_ = m.DeleteObject(ctx, "k")
	if m.Len() != 0 {
		t.Error("object not deleted")
	}
}
