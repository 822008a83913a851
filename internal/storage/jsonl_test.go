package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadAll_NonExistentFile(t *testing.T) {
	articles, err := ReadAll("/nonexistent/path/articles.jsonl")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(articles) != 0 {
		t.Errorf("ReadAll() returned %v, want nil or empty slice", articles)
	}
}

func TestWriteAll_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	want := testArticles()

	if err := WriteAll(path, want); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadAll() returned %d articles, want %d", len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("article %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWriteAll_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")

	if err := WriteAll(path, testArticles()); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := WriteAll(path, testArticles()[:1]); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ReadAll() returned %d articles, want 1", len(got))
	}
}

func TestReadAll_SkipsEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	content := `{"key":"a","title":"A"}` + "\n\n" + `{"key":"b","title":"B"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "b" {
		t.Errorf("ReadAll() = %+v", got)
	}
}

func TestReadAll_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	content := `{"key":"a"}` + "\n" + `{not json}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Fatal("ReadAll() expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestFindByKey(t *testing.T) {
	articles := testArticles()

	if i, ok := FindByKey(articles, "jones2019"); !ok || i != 1 {
		t.Errorf("FindByKey(jones2019) = (%d, %v), want (1, true)", i, ok)
	}
	if i, ok := FindByKey(articles, "nobody"); ok || i != -1 {
		t.Errorf("FindByKey(nobody) = (%d, %v), want (-1, false)", i, ok)
	}
}
