package cli

import (
	"strings"
	"testing"
)

func TestAddRequiresThreeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"add"}},
		{"post only", []string{"add", "1"}},
		{"no text", []string{"add", "1", "joe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAddRejectsNonNumericPostID(t *testing.T) {
	_, err := executeCommand("add", "abc", "joe", "hello", "--server", "http://127.0.0.1:1")
	if err == nil || !strings.Contains(err.Error(), "invalid post ID") {
		t.Fatalf("expected invalid post ID error, got %v", err)
	}
}

func TestListRejectsNonNumericPostID(t *testing.T) {
	_, err := executeCommand("list", "abc", "--server", "http://127.0.0.1:1")
	if err == nil || !strings.Contains(err.Error(), "invalid post ID") {
		t.Fatalf("expected invalid post ID error, got %v", err)
	}
}

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestEditRequiresText(t *testing.T) {
	_, err := executeCommand("edit", "abc")
	if err == nil {
		t.Fatal("expected error when no text provided")
	}
}

func TestRemoveRequiresOneArg(t *testing.T) {
	for _, args := range [][]string{{"remove"}, {"remove", "a", "b"}} {
		if _, err := executeCommand(args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestServeRejectsUnknownStore(t *testing.T) {
	_, err := executeCommand("serve", "--store", "postgres")
	if err == nil || !strings.Contains(err.Error(), "unknown store") {
		t.Fatalf("expected unknown store error, got %v", err)
	}
}
