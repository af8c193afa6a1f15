package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Program.cs", []byte("class A {}"), 0)
	id2 := fs.Add("Program.cs", []byte("class B {}"), 0)
	if id1 == id2 {
		t.Fatalf("each Add must allocate a new id")
	}
	latest, ok := fs.GetLatest("Program.cs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v want %d,true", latest, ok, id2)
	}
	if string(fs.Get(id1).Content) != "class A {}" {
		t.Fatalf("older version must stay reachable")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, v := range expected {
		if file.LineIdx[i] != v {
			t.Fatalf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], v)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class A\n{\n    int x;\n}\n"))

	// "int" starts at line 3, column 5
	start, end := fs.Resolve(Span{File: id, Start: 14, End: 17})
	if start != (LineCol{Line: 3, Col: 5}) || end != (LineCol{Line: 3, Col: 8}) {
		t.Fatalf("Resolve = %v..%v", start, end)
	}
	// the newline byte belongs to the line it terminates
	start, _ = fs.Resolve(Span{File: id, Start: 7, End: 7})
	if start != (LineCol{Line: 1, Col: 8}) {
		t.Fatalf("Resolve(newline) = %v", start)
	}
	if got := fs.Text(Span{File: id, Start: 14, End: 17}); got != "int" {
		t.Fatalf("Text = %q", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cs", []byte("first\nsecond\nthird")))
	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Fatalf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A\r\n{\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "class A\n{\n}\n" {
		t.Fatalf("content = %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", file.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.cs")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
