// Package media is the boundary to the external extraction and transcoding
// tools.
//
// Everything ytbatch knows about yt-dlp and ffmpeg lives here. The rest of
// the code talks to the Extractor interface and passes typed FetchOptions
// instead of raw command-line flags:
//
//	x := media.NewYTDLP(log)
//	info, err := x.Probe(ctx, url)              // metadata only
//	list, err := x.ListFlat(ctx, playlistURL)   // flat entry listing
//	res, err := x.Fetch(ctx, url, media.FetchOptions{
//	    Format:         "bestaudio/best",
//	    OutputTemplate: "downloads/Song.%(ext)s",
//	    PostProcess:    &media.PostProcess{Codec: "mp3", Quality: "192"},
//	    SingleItemOnly: true,
//	})
//
// # Tools
//
// Tools.Prepare makes sure the download and tool directories exist, installs
// yt-dlp on demand (or finds it on the PATH) and locates ffmpeg. A missing
// tool is reported as ErrYTDLPNotFound or ErrFFmpegNotFound and should stop
// the program before any download.
package media
