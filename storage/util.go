package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// feedFiles lists the seven CSVs a feed directory is expected to hold, in
// a fixed order so HashFeedDir is deterministic regardless of directory
// listing order.
var feedFiles = []string{
	"agency.txt",
	"stops.txt",
	"routes.txt",
	"trips.txt",
	"stop_times.txt",
	"calendar.txt",
	"calendar_dates.txt",
}

// HashFeedDir computes the SHA-256 of the concatenation of the seven feed
// files' contents, in feedFiles order, giving the cache a key that
// changes if and only if the feed's data changes. Missing optional files
// (calendar.txt/calendar_dates.txt may be absent if the other one alone
// supplies all service definitions) contribute nothing to the hash.
func HashFeedDir(dir string) (string, error) {
	h := sha256.New()

	for _, name := range feedFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, "opening %s", name)
		}

		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", name)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
