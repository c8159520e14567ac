// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Detecting media files that were already downloaded
//   - Directory provisioning and report writing
//   - Thumbnail resizing and JPEG conversion for embedded cover art
//
// # Filename Sanitization
//
// SanitizeFileName removes characters that are invalid in filenames:
//
//	safe := ioutils.SanitizeFileName("My: Video? <Test>") // Returns "My Video Test"
//
// # Existing Files
//
// FindExisting checks "{dir}/{sanitized title}{ext}" for each extension in
// order and returns the first that exists:
//
//	ok, name := ioutils.FindExisting("My Song", []string{".mp3", ".m4a"}, "./downloads")
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
package ioutils
