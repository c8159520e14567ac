// Package model defines the core data structures used throughout
// ytbatch.
//
// # Download kind
//
// DownloadKind selects the target format for a whole batch and fixes the
// ordered list of extensions that count as "already downloaded":
//
//	model.KindAudio.Extensions() // .mp3 .m4a .webm .opus
//	model.KindVideo.Extensions() // .mp4 .mkv .webm .avi
//
// # Results
//
// Each requested item yields exactly one DownloadResult. Use the
// constructors so that the outcome and its detail fields stay consistent:
//
//	res := model.NewFailed(url, model.KindVideo, "", "private video")
//	res := model.NewSkipped(url, model.KindAudio, title, "Song.mp3")
//
// # Batch report
//
// BatchReport aggregates the results of one orchestration call. It is
// built once, after all tasks have resolved, and is not modified afterwards:
//
//	report := model.NewBatchReport(id, model.KindVideo, results, false)
//	fmt.Printf("%.0f%%\n", report.SuccessRate()*100)
package model
