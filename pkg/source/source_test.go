package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		expected string
	}{
		{"plain utf8", []byte("let x = 5;"), "let x = 5;"},
		{"utf8 bom", []byte("\xEF\xBB\xBFlet x = 5;"), "let x = 5;"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'l', 0, 'e', 0, 't', 0}, "let"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'f', 0, 'n'}, "fn"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		got, err := Decode(tt.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cph")
	if err := os.WriteFile(path, []byte("let a = 1;\nlet b = 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sf, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if sf.Name != "main.cph" || sf.Path != path {
		t.Errorf("unexpected metadata: name=%q path=%q", sf.Name, sf.Path)
	}
	if got := sf.Line(2); got != "let b = 2;" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := sf.Line(10); got != "" {
		t.Errorf("Line(10) = %q, want empty", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.cph")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDisplayPath(t *testing.T) {
	if got := NewReplSource("1").DisplayPath(); got != "<repl>" {
		t.Errorf("repl DisplayPath = %q", got)
	}
	if got := NewSourceFile("x.cph", "/tmp/x.cph", "").DisplayPath(); got != "/tmp/x.cph" {
		t.Errorf("file DisplayPath = %q", got)
	}
	if got := NewEvalSource("1").DisplayPath(); got != "<eval>" {
		t.Errorf("eval DisplayPath = %q", got)
	}
}
