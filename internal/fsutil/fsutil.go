// Package fsutil provides shared filesystem helpers.
package fsutil

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// WriteFileAtomic writes data to filename via a temp file and an atomic rename.
// An interrupted write leaves either the old content or the new content on
// disk, never a partially written file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(filename, data, perm); err != nil {
		return fmt.Errorf(messages.FsutilAtomicWriteFailedFmt, filename, err)
	}
	return nil
}
