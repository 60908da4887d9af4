package domain

import "time"

// Settings holds the user-configurable conversion defaults.
type Settings struct {
	// ReaderSeparators maps format name to the separator its reader expects.
	ReaderSeparators map[string]string

	// WriterSeparators maps format name to the separator its writer emits.
	WriterSeparators map[string]string

	// SampleIDPattern extracts the sample ID from file names.
	// Empty means use the file name without extension.
	SampleIDPattern string

	// SampleIDGroup selects the pattern group holding the sample ID.
	SampleIDGroup string

	// LibraryDir is where the spectrum library database lives.
	// Empty means the default data directory.
	LibraryDir string

	// WatchSettle is how long watched files must stay quiet before import.
	// Zero means the watcher default.
	WatchSettle time.Duration

	// PlainOutput disables terminal colours.
	PlainOutput bool
}
