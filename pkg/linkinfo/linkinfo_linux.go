package linkinfo

import (
	"fmt"
	"syscall"
	"time"
)

// Stat returns the identity, link count, size, and modification time for a file.
// This uses direct syscall.Stat() instead of os.Stat() for better performance.
func Stat(path string) (Info, error) {
	var stat syscall.Stat_t
	err := syscall.Stat(path, &stat)
	if err != nil {
		return Info{}, fmt.Errorf("stat file: %w", err)
	}

	return Info{
		ID: FileID{
			Device: uint64(stat.Dev),
			Inode:  uint64(stat.Ino),
		},
		Links:   uint64(stat.Nlink),
		Size:    uint64(stat.Size),
		ModTime: time.Unix(int64(stat.Mtim.Sec), int64(stat.Mtim.Nsec)),
	}, nil
}
