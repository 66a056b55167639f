package svg

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeStripsActiveContent(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)">` +
		`<script>alert(2)</script>` +
		`<foreignObject><body>hi</body></foreignObject>` +
		`<a href="javascript:alert(3)"><circle r='4' onclick='x()'/></a>` +
		`<a href="https://example.com"><rect/></a></svg>`

	out, err := Sanitize([]byte(input))
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}

	got := string(out)
	for _, banned := range []string{"onload", "<script", "foreignObject", "javascript:", "onclick"} {
		if strings.Contains(got, banned) {
			t.Errorf("expected %q to be stripped, got %s", banned, got)
		}
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("expected safe link to survive, got %s", got)
	}
}

func TestSanitizeRejectsNonSVG(t *testing.T) {
	if _, err := Sanitize([]byte("<html></html>")); !errors.Is(err, ErrNotSVG) {
		t.Fatalf("expected ErrNotSVG, got %v", err)
	}
}
