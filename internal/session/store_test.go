package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/docfill/internal/placeholder"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tempDocFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.docx")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestStore_PutGetDestroy(t *testing.T) {
	st := NewStore(time.Hour, discardLogger())
	path := tempDocFile(t)
	s := New(NewID(), "doc.docx", path, nil)

	st.Put(s)
	if st.Get(s.ID) != s {
		t.Fatal("expected to get the stored session back")
	}

	if !st.Destroy(s.ID) {
		t.Fatal("expected destroy to report success")
	}
	if st.Get(s.ID) != nil {
		t.Error("expected session gone after destroy")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected the session's temp file to be removed")
	}

	if st.Destroy(s.ID) {
		t.Error("destroying a missing session must report false")
	}
}

func TestStore_CleanupEvictsExpired(t *testing.T) {
	st := NewStore(time.Minute, discardLogger())

	stalePath := tempDocFile(t)
	stale := New(NewID(), "stale.docx", stalePath, nil)
	stale.UpdatedAt = time.Now().Add(-time.Hour)

	fresh := New(NewID(), "fresh.docx", "", []*placeholder.Placeholder{{Key: "[A]"}})

	st.Put(stale)
	st.Put(fresh)
	st.Cleanup()

	if st.Get(stale.ID) != nil {
		t.Error("expected the stale session evicted")
	}
	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Error("expected the stale session's temp file removed")
	}
	if st.Get(fresh.ID) == nil {
		t.Error("expected the fresh session kept")
	}
}

func TestStore_DestroyAll(t *testing.T) {
	st := NewStore(time.Hour, discardLogger())
	paths := []string{tempDocFile(t), tempDocFile(t)}
	for _, p := range paths {
		st.Put(New(NewID(), "doc.docx", p, nil))
	}

	st.DestroyAll()

	for _, p := range paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s removed", p)
		}
	}
}
