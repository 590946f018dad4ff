//go:build !unix

package store

func volumeAvailable(string) (int64, bool) {
	return 0, false
}
