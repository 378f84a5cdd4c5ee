package persistence

import (
	"github.com/ricochet2200/go-disk-usage/du"
)

// AvailableSpace reports the free space, in bytes, of the filesystem
// holding path.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}
