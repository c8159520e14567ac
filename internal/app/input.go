package app

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// supportedURL matches the link shapes the platform uses for videos and
// playlists.
var supportedURL = regexp.MustCompile(`youtube\.com/watch|youtube\.com/playlist|youtu\.be/|youtube\.com/embed|youtube\.com/shorts/|music\.youtube\.com/`)

// IsSupportedURL reports whether u is an http(s) link of a supported shape.
func IsSupportedURL(u string) bool {
	u = strings.TrimSpace(u)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return false
	}
	return supportedURL.MatchString(u)
}

// ReadURLs reads one URL per line. Blank lines, comments (#) and lines that
// are not http(s) links are ignored.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			urls = append(urls, line)
		}
	}
	return urls, scanner.Err()
}

// SplitURLs splits free text (spaces, commas or newlines) into http(s) links.
func SplitURLs(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})

	var urls []string
	for _, f := range fields {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			urls = append(urls, f)
		}
	}
	return urls
}

// Validate splits urls into supported and rejected links, keeping order.
func Validate(urls []string) (valid, rejected []string) {
	for _, u := range urls {
		if IsSupportedURL(u) {
			valid = append(valid, strings.TrimSpace(u))
		} else {
			rejected = append(rejected, u)
		}
	}
	return valid, rejected
}
