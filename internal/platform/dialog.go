package platform

import (
	"errors"
	"os"

	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/ncruces/zenity"
)

// ZenityDialog shows the native directory chooser.
type ZenityDialog struct {
	Title string
}

// ChooseDirectory opens the chooser at start (when it exists) and returns the
// selected directory, or model.ErrCancelled if the user dismissed it.
func (d ZenityDialog) ChooseDirectory(start string) (string, error) {
	title := d.Title
	if title == "" {
		title = "Choose a download folder"
	}
	opts := []zenity.Option{zenity.Directory(), zenity.Title(title)}
	if start != "" {
		if info, err := os.Stat(start); err == nil && info.IsDir() {
			opts = append(opts, zenity.Filename(start))
		}
	}
	path, err := Isolated(func() (string, error) {
		return zenity.SelectFile(opts...)
	})
	if errors.Is(err, zenity.ErrCanceled) {
		return "", model.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", model.ErrCancelled
	}
	return path, nil
}
