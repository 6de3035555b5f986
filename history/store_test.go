package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestAdd_OnlyOncePerWord(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "écouter", "<div>v1</div>")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatal("first add should insert")
	}

	added, err = s.Add(ctx, "écouter", "<div>v2</div>")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Error("second add should be a no-op")
	}

	e, err := s.Get(ctx, "écouter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Definition != "<div>v1</div>" {
		t.Fatalf("stored definition: %+v", e)
	}
	if e.ID == "" || e.CreatedAt == 0 {
		t.Errorf("id/created_at not set: %+v", e)
	}
}

func TestGet_Absent(t *testing.T) {
	s := OpenMemory(t)
	e, err := s.Get(context.Background(), "inconnu")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil, got %+v", e)
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for _, w := range []string{"un", "deux", "trois"} {
		if _, err := s.Add(ctx, w, "<p>"+w+"</p>"); err != nil {
			t.Fatalf("add %s: %v", w, err)
		}
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len: got %d", len(items))
	}
	want := []string{"trois", "deux", "un"}
	for i, w := range want {
		if items[i].Word != w {
			t.Errorf("items[%d]: got %q, want %q", i, items[i].Word, w)
		}
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	for _, w := range []string{"a", "b", "c"} {
		if _, err := s.Add(ctx, w, w); err != nil {
			t.Fatal(err)
		}
	}

	ok, err := s.Delete(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("delete b: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, "b")
	if err != nil || ok {
		t.Fatalf("delete b again: ok=%v err=%v", ok, err)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("count: n=%d err=%v", n, err)
	}

	cleared, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared: got %d, want 2", cleared)
	}
	items, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("list after clear: %d items", len(items))
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(path, WithMkdirAll())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Add(context.Background(), "mot", "def"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	e, err := s.Get(context.Background(), "mot")
	if err != nil || e == nil {
		t.Fatalf("persisted entry missing: %v", err)
	}
}
