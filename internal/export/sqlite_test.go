package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSQLite_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "certs.db")
	recs := sampleRecords()
	if err := WriteSQLite(ctx, db, "certificate.txt", recs); err != nil {
		t.Fatalf("WriteSQLite: %v", err)
	}
	got, err := ReadSQLite(ctx, db, "certificate.txt")
	if err != nil {
		t.Fatalf("ReadSQLite: %v", err)
	}
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLite_RerunReplacesSource(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "certs.db")
	recs := sampleRecords()
	for i := 0; i < 2; i++ {
		if err := WriteSQLite(ctx, db, "a.txt", recs); err != nil {
			t.Fatalf("WriteSQLite run %d: %v", i, err)
		}
	}
	if err := WriteSQLite(ctx, db, "b.txt", recs[:1]); err != nil {
		t.Fatalf("WriteSQLite b: %v", err)
	}
	got, err := ReadSQLite(ctx, db, "a.txt")
	if err != nil {
		t.Fatalf("ReadSQLite: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("expected %d rows for a.txt, got %d", len(recs), len(got))
	}
	other, err := ReadSQLite(ctx, db, "b.txt")
	if err != nil || len(other) != 1 {
		t.Fatalf("b.txt rows=%d err=%v", len(other), err)
	}
}
