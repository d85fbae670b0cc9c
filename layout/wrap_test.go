package layout

import "testing"

func TestWrap(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		columns int
		want    string
	}{
		{"empty", "", 40, ""},
		{"blank", "  \n\t ", 40, ""},
		{"fits one line", "hello world", 40, "hello world"},
		{"exact width", "hello world again", 11, "hello world\nagain"},
		{"collapses whitespace", "a  b\n\nc", 40, "a b c"},
		{"long word overflows", "supercalifragilistic is long", 5, "supercalifragilistic\nis\nlong"},
		{"cjk counts two columns", "你好 世界", 4, "你好\n世界"},
		{"no limit", "a b c", 0, "a b c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.text, tc.columns); got != tc.want {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tc.text, tc.columns, got, tc.want)
			}
		})
	}
}
