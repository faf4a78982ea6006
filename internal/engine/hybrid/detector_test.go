package hybrid

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestNeedsRender(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		want      bool
		framework string
	}{
		{
			name: "static article",
			html: `<html><body><article><h2>Design</h2><p>Text</p><p>More</p></article><script src="a.js"></script></body></html>`,
			want: false,
		},
		{
			name:      "next.js shell",
			html:      `<html><body><div id="__next"></div><script id="__NEXT_DATA__">{}</script></body></html>`,
			want:      true,
			framework: "Next.js",
		},
		{
			name:      "angular",
			html:      `<html><body><app-root></app-root><script src="main.js"></script></body></html>`,
			want:      true,
			framework: "Angular",
		},
		{
			name: "script only",
			html: `<html><body><div></div><script src="bundle.js"></script></body></html>`,
			want: true,
		},
		{
			name: "no scripts",
			html: `<html><body><div>Plain</div></body></html>`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, framework := NeedsRender(doc(t, tt.html))
			if got != tt.want {
				t.Errorf("NeedsRender() = %v, want %v", got, tt.want)
			}
			if framework != tt.framework {
				t.Errorf("framework = %q, want %q", framework, tt.framework)
			}
		})
	}
}

func TestNeedsRender_NilDoc(t *testing.T) {
	if got, _ := NeedsRender(nil); got {
		t.Error("NeedsRender(nil) = true, want false")
	}
	if got := DetectFramework(nil); got != "" {
		t.Errorf("DetectFramework(nil) = %q", got)
	}
}
