package messages

// Filesystem and version helper messages.
const (
	// FsutilAtomicWriteFailedFmt formats atomic write failures.
	FsutilAtomicWriteFailedFmt = "atomic write %s: %w"

	// VersionInvalidFmt formats invalid version strings.
	VersionInvalidFmt = "version %q must be in the form vX.Y.Z or X.Y.Z"
)
