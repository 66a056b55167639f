package service

import (
	"bytes"
	"context"
	"errors"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
)

var pngHead = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func newUploadService(maxBytes int64) (*UploadService, *fakeUploads, *fakeObjects, *fakeQueue) {
	uploads := &fakeUploads{}
	objects := newFakeObjects()
	tasks := &fakeQueue{}
	svc := NewUploadService(uploads, objects, tasks, config.UploadsConfig{MaxBytes: maxBytes}, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	return svc, uploads, objects, tasks
}

func header(contentType string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return h
}

func TestUploadStoresAndEnqueues(t *testing.T) {
	svc, uploads, objects, tasks := newUploadService(1 << 20)

	result, err := svc.Upload(context.Background(), UploadInput{
		User:   &owner,
		File:   bytes.NewReader(pngHead),
		Header: header("image/png"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	key := result.Upload.ObjectKey
	if !strings.HasPrefix(key, "2026/03/09/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected object key %q", key)
	}
	if result.URL != "http://cdn.test/family-uploads/"+key {
		t.Fatalf("unexpected url %q", result.URL)
	}
	if objects.types[key] != "image/png" {
		t.Fatalf("expected image/png, got %q", objects.types[key])
	}
	if len(uploads.created) != 1 || *uploads.created[0].UserID != owner.ID {
		t.Fatalf("expected one upload owned by %s", owner.ID)
	}
	if len(tasks.tasks) != 1 || tasks.tasks[0].Type != queue.TaskIngest || tasks.tasks[0].ObjectKey != key {
		t.Fatalf("expected ingest task for %s, got %+v", key, tasks.tasks)
	}
}

func TestUploadPublicHasNoOwner(t *testing.T) {
	svc, uploads, _, _ := newUploadService(1 << 20)
	if _, err := svc.Upload(context.Background(), UploadInput{File: bytes.NewReader(pngHead), Header: header("")}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploads.created[0].UserID != nil {
		t.Fatalf("expected public upload without owner")
	}
}

func TestUploadRejects(t *testing.T) {
	cases := []struct {
		name   string
		data   []byte
		header textproto.MIMEHeader
		want   error
	}{
		{"empty", nil, header(""), ErrEmptyFile},
		{"too large", append(append([]byte{}, pngHead...), make([]byte, 64)...), header(""), ErrFileTooLarge},
		{"not an image", []byte("just some text"), header("text/plain"), ErrValidation},
		{"declared mismatch", pngHead, header("image/gif"), ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, uploads, _, _ := newUploadService(32)
			_, err := svc.Upload(context.Background(), UploadInput{User: &owner, File: bytes.NewReader(tc.data), Header: tc.header})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(uploads.created) != 0 {
				t.Fatalf("expected nothing recorded")
			}
		})
	}
}

func TestUploadSanitizesSVG(t *testing.T) {
	svc, _, objects, _ := newUploadService(1 << 20)
	doc := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script><rect width="1" height="1"/></svg>`

	result, err := svc.Upload(context.Background(), UploadInput{User: &owner, File: strings.NewReader(doc), Header: header("image/svg+xml")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	stored := string(objects.objects[result.Upload.ObjectKey])
	if strings.Contains(stored, "script") {
		t.Fatalf("expected script stripped, got %q", stored)
	}
}

func TestUploadListPaging(t *testing.T) {
	svc, _, _, _ := newUploadService(1 << 20)
	for i := 0; i < 3; i++ {
		if _, err := svc.Upload(context.Background(), UploadInput{User: &owner, File: bytes.NewReader(pngHead)}); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}
	page, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 upload on page 2, got %d", len(page))
	}
}
