// Package media rewrites sponsor and video links into forms a client can
// display directly.
package media

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

var (
	driveFilePattern  = regexp.MustCompile(`drive\.google\.com/file/d/([^/]+)`)
	driveAPIPattern   = regexp.MustCompile(`googleapis\.com/drive/v3/files/([^?]+)`)
	youTubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
		regexp.MustCompile(`youtu\.be/([^?]+)`),
		regexp.MustCompile(`youtube\.com/shorts/([^?]+)`),
		regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
	}
)

// DriveImageURL rewrites a Drive share link to its direct-content URL.
// Other URLs are returned unchanged.
func DriveImageURL(raw string) string {
	if m := driveFilePattern.FindStringSubmatch(raw); m != nil {
		return "https://drive.google.com/uc?export=view&id=" + m[1]
	}
	return raw
}

// YouTubeID extracts the video id from watch, short-link, shorts, and embed URLs.
func YouTubeID(raw string) (string, bool) {
	for _, p := range youTubeIDPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// DriveFileID extracts the file id from Drive share links and Drive API URLs.
func DriveFileID(raw string) (string, bool) {
	for _, p := range []*regexp.Regexp{driveFilePattern, driveAPIPattern} {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// EmbedURL returns the autoplaying iframe source for a video link.
func EmbedURL(raw string) string {
	if id, ok := YouTubeID(raw); ok {
		return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&playsinline=1&controls=1", id)
	}
	if id, ok := DriveFileID(raw); ok {
		return fmt.Sprintf("https://drive.google.com/file/d/%s/preview?autoplay=1", id)
	}
	if strings.Contains(raw, "?") {
		return raw + "&autoplay=1"
	}
	return raw + "?autoplay=1"
}

// IsEmbeddable reports whether the link points at a host EmbedURL knows.
func IsEmbeddable(raw string) bool {
	return strings.Contains(raw, "drive.google.com") ||
		strings.Contains(raw, "googleapis.com/drive") ||
		strings.Contains(raw, "youtube.com") ||
		strings.Contains(raw, "youtu.be")
}

var embedPage = template.Must(template.New("embed").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    html, body { width: 100%; height: 100%; background: #000; overflow: hidden; }
    iframe { position: absolute; top: 0; left: 0; width: 100%; height: 100%; border: none; }
  </style>
</head>
<body>
  <iframe
    src="{{.}}"
    allow="autoplay; fullscreen; encrypted-media; accelerometer; gyroscope; picture-in-picture; web-share"
    allowfullscreen
    frameborder="0"
    playsinline
  ></iframe>
</body>
</html>
`))

// EmbedDocument renders the full-screen HTML page hosting the video iframe.
func EmbedDocument(raw string) (string, error) {
	var buf bytes.Buffer
	if err := embedPage.Execute(&buf, EmbedURL(raw)); err != nil {
		return "", fmt.Errorf("failed to render embed document: %w", err)
	}
	return buf.String(), nil
}
