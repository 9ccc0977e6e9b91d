//go:build unix

package table

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapFile memory-maps a file for reading.
// Returns the mapped byte slice and a cleanup function that must be
// called to unmap the file.
//
// This is useful for processing large files efficiently:
//   - The file is mapped into memory without loading it entirely
//   - The OS handles paging data in/out as needed
//   - ReadBytes borrows the slice and copies only the field values out
//
// Example usage:
//
//	data, cleanup, err := table.MmapFile("large.txt")
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	tbl, err := reader.ReadBytes(data)
//	// Process tbl...
//
// IMPORTANT: Do not use the data slice after calling cleanup().
func MmapFile(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		// Empty file - return empty slice and cleanup that just closes the file
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	cleanup := func() {
		_ = unix.Munmap(data)
		f.Close()
	}

	return data, cleanup, nil
}
