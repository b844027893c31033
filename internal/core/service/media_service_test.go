package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/core/domain"
)

func TestMediaService_Save_RejectsDisallowedExtension(t *testing.T) {
	svc := NewMediaService(t.TempDir(), "assets/uploads", zerolog.Nop())

	for _, name := range []string{"payload.exe", "script.sh", "noext"} {
		if _, err := svc.Save(context.Background(), name, strings.NewReader("x")); !errors.Is(err, domain.ErrInvalidFileType) {
			t.Fatalf("expected ErrInvalidFileType for %q, got %v", name, err)
		}
	}
}

func TestMediaService_Save_StoresFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(dir, "assets/uploads", zerolog.Nop())

	url, err := svc.Save(context.Background(), "my photo.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "assets/uploads/") {
		t.Fatalf("unexpected web path: %q", url)
	}
	if !strings.HasSuffix(url, "_my_photo.JPG") {
		t.Fatalf("expected sanitized original name suffix, got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestMediaService_Save_UniqueNames(t *testing.T) {
	svc := NewMediaService(t.TempDir(), "assets/uploads", zerolog.Nop())

	first, err := svc.Save(context.Background(), "a.png", strings.NewReader("1"))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := svc.Save(context.Background(), "a.png", strings.NewReader("2"))
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct paths for same filename, got %q twice", first)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd": "passwd",
		"my photo.jpg":     "my_photo.jpg",
		"weird%$#name.png": "weirdname.png",
		"просто.png":       ".png",
		"":                 "upload",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
