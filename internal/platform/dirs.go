package platform

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/jmagar/ytgrab-cli/internal/model"
)

// DownloadsDir returns the user's downloads directory.
func DownloadsDir() string {
	if dir := xdg.UserDirs.Download; dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}

// ConfigPath returns the per-user preferences file location.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, model.AppName, "config.json")
}

// ActivityLogPath returns the location of the JSON-lines activity log.
func ActivityLogPath() string {
	return filepath.Join(xdg.CacheHome, model.AppName, "activity.log")
}
