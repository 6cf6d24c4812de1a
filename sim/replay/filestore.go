// Package replay adapts a persisted record/replay directory to the
// environment core. A record directory holds one JSON metadata file per
// saved response; the store surfaces the cacheable ones with their derived
// cache lifetimes.
package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pushsim/pushsim/sim"
)

// savedEntry is the on-disk metadata of one recorded response.
type savedEntry struct {
	Host            string            `json:"host"`
	URI             string            `json:"uri"`
	ResponseHeaders map[string]string `json:"response_headers"`
}

// FileStore reads a record directory and exposes its cacheable files.
// It implements sim.ReplayStore.
type FileStore struct {
	dir string
	log *logrus.Entry
}

// NewFileStore creates a FileStore over the given record directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
		log: logrus.WithFields(logrus.Fields{"component": "replay", "dir": dir}),
	}
}

// CacheableFiles lists every recorded response with a positive cache
// lifetime. Unreadable or malformed entries are skipped with a warning;
// the listing degrades gracefully rather than failing the annotation pass.
func (s *FileStore) CacheableFiles() []sim.CacheableFile {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		s.log.WithError(err).Warn("failed to list record dir")
		return nil
	}

	var files []sim.CacheableFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.WithField("file", path).WithError(err).Warn("failed to read saved entry")
			continue
		}
		var entry savedEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			s.log.WithField("file", path).WithError(err).Warn("failed to parse saved entry")
			continue
		}
		if cacheTime := CacheTime(entry.ResponseHeaders); cacheTime > 0 {
			files = append(files, sim.CacheableFile{
				Host:      entry.Host,
				URI:       entry.URI,
				CacheTime: cacheTime,
			})
		}
	}
	return files
}

// CacheTime derives the cache lifetime in seconds from response headers:
// Cache-Control max-age wins, then the Expires/Date delta. no-store and
// no-cache force 0. Header lookup is case-insensitive.
func CacheTime(headers map[string]string) int64 {
	canonical := make(map[string]string, len(headers))
	for k, v := range headers {
		canonical[strings.ToLower(k)] = v
	}

	if cc, ok := canonical["cache-control"]; ok {
		lower := strings.ToLower(cc)
		if strings.Contains(lower, "no-store") || strings.Contains(lower, "no-cache") {
			return 0
		}
		for _, directive := range strings.Split(lower, ",") {
			directive = strings.TrimSpace(directive)
			if rest, ok := strings.CutPrefix(directive, "max-age="); ok {
				if age, err := strconv.ParseInt(rest, 10, 64); err == nil && age > 0 {
					return age
				}
				return 0
			}
		}
	}

	expires, okExpires := parseHTTPDate(canonical["expires"])
	date, okDate := parseHTTPDate(canonical["date"])
	if okExpires && okDate && expires.After(date) {
		return int64(expires.Sub(date).Seconds())
	}
	return 0
}

func parseHTTPDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC1123, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
