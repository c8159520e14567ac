// Package audio tags finished MP3 downloads with ID3 metadata.
//
// TagProcessor is plugged into the downloader as a post-processing step:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	proc := audio.NewTagProcessor(tagger, http.NewClient(30*time.Second), log)
//	downloader.PostProcessor = proc
//
// The following frames are written:
//   - TIT2 title
//   - TPE1 uploader
//   - TLEN duration in milliseconds
//   - COMM source URL
//   - APIC thumbnail as front cover, resized and converted to JPEG
package audio
