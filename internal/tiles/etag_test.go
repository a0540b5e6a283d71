package tiles

import (
	"testing"
	"time"
)

func TestToken(t *testing.T) {
	mtime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deterministic for same path and mtime", func(t *testing.T) {
		a := Token("tiles/10/512/512.png", mtime)
		b := Token("tiles/10/512/512.png", mtime)
		if a != b {
			t.Errorf("Token not deterministic: %q != %q", a, b)
		}
	})

	t.Run("fixed-width hex", func(t *testing.T) {
		token := Token("tiles/10/512/512.png", mtime)
		if len(token) != 32 {
			t.Errorf("Token length = %d, want 32", len(token))
		}
		for _, c := range token {
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				t.Errorf("Token contains non-hex character %q", c)
			}
		}
	})

	t.Run("changes with mtime", func(t *testing.T) {
		a := Token("tiles/10/512/512.png", mtime)
		b := Token("tiles/10/512/512.png", mtime.Add(time.Second))
		if a == b {
			t.Error("Token unchanged after mtime change")
		}
	})

	t.Run("changes with path", func(t *testing.T) {
		a := Token("tiles/10/512/512.png", mtime)
		b := Token("tiles/10/512/513.png", mtime)
		if a == b {
			t.Error("Token identical for different paths")
		}
	})
}

func TestUnchanged(t *testing.T) {
	tests := []struct {
		name         string
		requestToken string
		currentToken string
		expected     bool
	}{
		{"matching tokens", "abc123", "abc123", true},
		{"mismatched tokens", "abc123", "def456", false},
		{"absent client token", "", "abc123", false},
		{"case differs", "ABC123", "abc123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unchanged(tt.requestToken, tt.currentToken); got != tt.expected {
				t.Errorf("Unchanged(%q, %q) = %v, want %v", tt.requestToken, tt.currentToken, got, tt.expected)
			}
		})
	}
}

func TestCoordinatePath(t *testing.T) {
	coord := Coordinate{Z: 10, X: 512, Y: 512, Ext: "png"}
	if got, want := coord.Path("tiles"), "tiles/10/512/512.png"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{"png", true},
		{"jpg", true},
		{"jpeg", true},
		{"gif", false},
		{"webp", false},
		{"PNG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := SupportedExtension(tt.ext); got != tt.expected {
				t.Errorf("SupportedExtension(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}
