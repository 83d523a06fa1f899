package jsonutil

import (
	"strings"
	"testing"
)

func TestMarshalNoEscapeKeepsHTMLCharacters(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"description": "see <a href=\"https://example.com?a=1&b=2\">docs</a>"})
	if err != nil {
		t.Fatalf("MarshalNoEscape: %v", err)
	}
	if strings.Contains(string(b), `<`) || strings.Contains(string(b), `&`) {
		t.Fatalf("characters were escaped: %s", b)
	}
	if strings.HasSuffix(string(b), "\n") {
		t.Fatal("trailing newline not trimmed")
	}
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	b, err := MarshalNoEscapeIndent(map[string]any{"a": 1, "b": 2}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalNoEscapeIndent: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"a\": 1") {
		t.Fatalf("unexpected layout:\n%s", b)
	}
}
