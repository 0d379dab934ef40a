package messages

// Release check messages.
const (
	UpdateCreateRequestErrFmt  = "create release request: %w"
	UpdateFetchLatestErrFmt    = "fetch latest release: %w"
	UpdateFetchLatestStatusFmt = "fetch latest release: unexpected status %s"
	UpdateDecodeLatestErrFmt   = "decode latest release: %w"
	UpdateMissingTag           = "latest release has no tag name"
)
