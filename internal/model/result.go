package model

import "time"

// DownloadOutcome is the state of a single download attempt.
type DownloadOutcome int

const (
	// OutcomePending is the transient state before an attempt completes.
	OutcomePending DownloadOutcome = iota

	// OutcomeSuccess means the media file was fetched and processed.
	OutcomeSuccess

	// OutcomeFailed means probing or fetching failed.
	OutcomeFailed

	// OutcomeSkipped means a matching file already existed.
	OutcomeSkipped
)

// String returns the upper-case outcome name used in reports.
func (o DownloadOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeFailed:
		return "FAILED"
	case OutcomeSkipped:
		return "SKIPPED"
	default:
		return "PENDING"
	}
}

// IsTerminal reports whether the outcome is final.
func (o DownloadOutcome) IsTerminal() bool {
	return o == OutcomeSuccess || o == OutcomeFailed || o == OutcomeSkipped
}

// VideoInfo is the metadata returned by a probe. It is read-only once built.
type VideoInfo struct {
	// ID is the platform identifier of the item, if known.
	ID string

	// Title is the canonical title. Output filenames are derived from it.
	Title string

	// URL is the source URL that was probed.
	URL string

	// Duration is the media length, nil when the platform did not report it.
	Duration *time.Duration

	// Thumbnail is a URL to a preview image, empty when unavailable.
	Thumbnail string

	// Uploader is the channel or artist name, empty when unavailable.
	Uploader string
}

// DownloadResult records the outcome of one item. It is created once by the
// downloader and never modified after it is handed to the orchestrator.
type DownloadResult struct {
	URL     string
	Kind    DownloadKind
	Outcome DownloadOutcome

	// Title is empty when probing failed.
	Title string

	// Error is non-empty iff Outcome is OutcomeFailed.
	Error string

	// ExistingFile is non-empty iff Outcome is OutcomeSkipped.
	ExistingFile string

	// OutputPath is the file written on success, when known.
	OutputPath string
}

// NewSuccess returns a successful result.
func NewSuccess(url string, kind DownloadKind, title, outputPath string) DownloadResult {
	return DownloadResult{
		URL:        url,
		Kind:       kind,
		Outcome:    OutcomeSuccess,
		Title:      title,
		OutputPath: outputPath,
	}
}

// NewFailed returns a failed result. An empty message is replaced so that
// failed results always carry a description.
func NewFailed(url string, kind DownloadKind, title, message string) DownloadResult {
	if message == "" {
		message = "unknown error"
	}
	return DownloadResult{
		URL:     url,
		Kind:    kind,
		Outcome: OutcomeFailed,
		Title:   title,
		Error:   message,
	}
}

// NewSkipped returns a result for an item whose file already exists.
func NewSkipped(url string, kind DownloadKind, title, existingFile string) DownloadResult {
	return DownloadResult{
		URL:          url,
		Kind:         kind,
		Outcome:      OutcomeSkipped,
		Title:        title,
		ExistingFile: existingFile,
	}
}

func (r DownloadResult) IsSuccess() bool { return r.Outcome == OutcomeSuccess }
func (r DownloadResult) IsFailed() bool  { return r.Outcome == OutcomeFailed }
func (r DownloadResult) IsSkipped() bool { return r.Outcome == OutcomeSkipped }

// DisplayTitle returns the title, or the URL when the title is unknown.
func (r DownloadResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.URL
}
