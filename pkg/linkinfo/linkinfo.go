package linkinfo

import (
	"fmt"
	"time"
)

// FileID represents a unique file identifier (device ID + inode number).
type FileID struct {
	Device uint64 // Device ID
	Inode  uint64 // Inode number
}

// String returns a string representation of the FileID.
func (f FileID) String() string {
	return fmt.Sprintf("%d:%d", f.Device, f.Inode)
}

// Equal checks if two FileIDs are equal.
func (f FileID) Equal(other FileID) bool {
	return f.Device == other.Device && f.Inode == other.Inode
}

// Info holds the stat fields needed to classify a file as hardlinked.
type Info struct {
	ID      FileID
	Links   uint64
	Size    uint64
	ModTime time.Time
}
