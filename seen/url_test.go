package seen

import "testing"

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "https://www.tiktok.com/@a/video/1", "https://www.tiktok.com/@a/video/1"},
		{"fragment stripped", "https://www.tiktok.com/@a/video/1#comments", "https://www.tiktok.com/@a/video/1"},
		{"share params stripped", "https://www.tiktok.com/@a/video/1?_r=1&_t=xyz", "https://www.tiktok.com/@a/video/1"},
		{"utm stripped", "https://www.tiktok.com/@a/video/1?utm_source=share", "https://www.tiktok.com/@a/video/1"},
		{"uppercase host", "HTTPS://WWW.TikTok.com/@a/video/1", "https://www.tiktok.com/@a/video/1"},
		{"trailing slash", "https://www.tiktok.com/@a/video/1/", "https://www.tiktok.com/@a/video/1"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeURL(c.in); got != c.want {
				t.Errorf("NormalizeURL(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestHashURLStable(t *testing.T) {
	a := hashURL("https://www.tiktok.com/@a/video/1?_r=1")
	b := hashURL("https://www.tiktok.com/@a/video/1")
	if a == "" || a != b {
		t.Errorf("hashes differ for equivalent URLs: %q vs %q", a, b)
	}
}
