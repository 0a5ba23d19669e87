package helpers

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const sanRegexStr = `[\\/:*?"<>|]`

var sanRegex = regexp.MustCompile(sanRegexStr)

// Sanitise cleans a filename by replacing characters that are illegal on
// common filesystems with an underscore.
func Sanitise(filename string) string {
	return strings.TrimSpace(sanRegex.ReplaceAllString(filename, "_"))
}

// MakeDirs creates directories recursively. Existing directories are not an error.
func MakeDirs(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a file (not directory) exists at the given path.
func FileExists(path string) (bool, error) {
	f, err := os.Stat(path)
	if err == nil {
		return !f.IsDir(), nil
	} else if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MaxDirNameBytes keeps generated folder names under the 255-byte limit most
// filesystems impose, with room for suffixes added by other tools.
const MaxDirNameBytes = 200

// DirName turns name into a single safe path element: illegal characters are
// replaced, trailing dots and spaces removed, and the result cut to
// MaxDirNameBytes on a rune boundary. It returns "" when nothing usable is
// left, including for "." and "..".
func DirName(name string) string {
	name = strings.TrimRight(Sanitise(name), ". ")
	if len(name) > MaxDirNameBytes {
		cut := MaxDirNameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimRight(name[:cut], ". ")
	}
	return name
}

// FileSizes maps the names of regular files directly inside dir to their
// sizes. Subdirectories are not descended into. A missing dir yields an empty map.
func FileSizes(dir string) map[string]int64 {
	sizes := make(map[string]int64)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return sizes
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if info, err := e.Info(); err == nil {
			sizes[e.Name()] = info.Size()
		}
	}
	return sizes
}

// BytesAdded compares dir against an earlier FileSizes snapshot and sums the
// sizes of new files plus the growth of existing ones.
func BytesAdded(dir string, before map[string]int64) int64 {
	var total int64
	for name, size := range FileSizes(dir) {
		if prev, ok := before[name]; !ok {
			total += size
		} else if size > prev {
			total += size - prev
		}
	}
	return total
}
