package binding

import "testing"

func TestInterpolate(t *testing.T) {
	fields := Fields{
		"position": 3,
		"date":     "2024-01-05",
		"likes":    float64(12),
		"meta": map[string]any{
			"tags": []any{"school", "love"},
		},
	}
	tests := []struct {
		in   string
		want string
	}{
		{"@FessToronto", "@FessToronto"},
		{"#${position} @FessToronto", "#3 @FessToronto"},
		{"posted ${ date }", "posted 2024-01-05"},
		{"${likes} likes", "12 likes"},
		{"tag: ${meta.tags[1]}", "tag: love"},
		{"${missing} stays", "${missing} stays"},
		{"${meta.tags[5]}", "${meta.tags[5]}"},
		{"${meta.tags[x]}", "${meta.tags[x]}"},
		{"${date.year}", "${date.year}"},
	}
	for _, tt := range tests {
		if got := Interpolate(tt.in, fields); got != tt.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInterpolateWithoutFields(t *testing.T) {
	if got := Interpolate("#${position}", nil); got != "#${position}" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}
