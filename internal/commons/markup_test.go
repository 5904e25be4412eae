package commons

import "testing"

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Jane Doe", "Jane Doe"},
		{"anchor", `<a href="https://example.test/u">Jane Doe</a>`, "Jane Doe"},
		{"nested", `<span class="a"><b>Jane</b>   Doe</span>`, "Jane Doe"},
		{"whitespace runs", "Jane\n\t  Doe ", "Jane Doe"},
		{"empty", "", ""},
		{"tags only", "<br><img src='x'>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMarkup(tt.in); got != tt.want {
				t.Fatalf("stripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
