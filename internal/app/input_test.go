package app

import (
	"reflect"
	"strings"
	"testing"
)

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://www.youtube.com/playlist?list=PL1", true},
		{"https://youtu.be/abc", true},
		{"https://www.youtube.com/embed/abc", true},
		{"https://www.youtube.com/shorts/abc", true},
		{"  https://youtu.be/abc  ", true},
		{"youtu.be/abc", false},
		{"https://vimeo.com/123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupportedURL(tt.url); got != tt.want {
			t.Errorf("IsSupportedURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestReadURLs(t *testing.T) {
	input := `# my list
https://youtu.be/a

  https://www.youtube.com/watch?v=b  
not a url
ftp://example.com/file
`
	got, err := ReadURLs(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"https://youtu.be/a", "https://www.youtube.com/watch?v=b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadURLs() = %v, want %v", got, want)
	}
}

func TestSplitURLs(t *testing.T) {
	got := SplitURLs("https://youtu.be/a, https://youtu.be/b\nfoo https://youtu.be/c")
	want := []string{"https://youtu.be/a", "https://youtu.be/b", "https://youtu.be/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitURLs() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid, rejected := Validate([]string{"https://youtu.be/a", "https://example.com", "https://www.youtube.com/watch?v=b"})

	if !reflect.DeepEqual(valid, []string{"https://youtu.be/a", "https://www.youtube.com/watch?v=b"}) {
		t.Errorf("valid = %v", valid)
	}
	if !reflect.DeepEqual(rejected, []string{"https://example.com"}) {
		t.Errorf("rejected = %v", rejected)
	}
}
