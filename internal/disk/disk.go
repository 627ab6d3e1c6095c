package disk

import "syscall"

// FreeBytes returns the free space, in bytes, on the filesystem holding path
func FreeBytes(path string) (int64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}

// UsedPercent returns the percentage of used space on the filesystem
// holding path
func UsedPercent(path string) (float64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	total := int64(stat.Blocks) * int64(stat.Bsize)
	if total == 0 {
		return 0, nil
	}
	free := int64(stat.Bavail) * int64(stat.Bsize)
	return float64(total-free) / float64(total) * 100.0, nil
}
