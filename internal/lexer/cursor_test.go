package lexer

import (
	"testing"

	"declfix/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF behaviour at end")
	}
}

func TestPeekAtAndBumpN(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if cursor.PeekAt(2) != 'c' || cursor.PeekAt(3) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
	cursor.BumpN(10)
	if cursor.Off != 3 {
		t.Fatalf("BumpN must clamp at EOF, got %d", cursor.Off)
	}
}

func TestMarkSpanReset(t *testing.T) {
	file := createFile("public static")
	cursor := NewCursor(file)
	m := cursor.Mark()
	if !cursor.EatString("public") {
		t.Fatalf("EatString should match")
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 6 || sp.File != file.ID {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind")
	}
	if cursor.EatString("public static void") {
		t.Fatalf("EatString past EOF must fail")
	}
	if !cursor.Eat('p') || cursor.Eat('p') {
		t.Fatalf("Eat mismatch")
	}
}
