package youtube

import "testing"

func TestIsValidSourceAcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch no www", "https://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch http", "http://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"legacy v", "https://youtube.com/v/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/abc123XYZ_-"},
		{"mobile watch", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"uppercase scheme", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=abc123&t=42s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsValidSource(tt.url) {
				t.Errorf("IsValidSource(%q) = false, want true", tt.url)
			}
		})
	}
}

func TestIsValidSourceRejectedShapes(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not a url", "not a url"},
		{"missing scheme", "www.youtube.com/watch?v=abc123"},
		{"wrong scheme", "ftp://www.youtube.com/watch?v=abc123"},
		{"wrong host", "https://vimeo.com/12345"},
		{"lookalike host", "https://notyoutube.com/watch?v=abc123"},
		{"channel page", "https://www.youtube.com/channel/UCxxxx"},
		{"bare watch no id", "https://www.youtube.com/watch?v="},
		{"mobile with www", "https://www.m.youtube.com/watch?v=abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsValidSource(tt.url) {
				t.Errorf("IsValidSource(%q) = true, want false", tt.url)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/abc123", "abc123"},
		{"https://youtube.com/v/abc123", "abc123"},
		{"https://www.youtube.com/shorts/xyz_-9", "xyz_-9"},
		{"https://m.youtube.com/watch?v=abc123", "abc123"},
		{"https://vimeo.com/12345", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractVideoID(tt.url); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
