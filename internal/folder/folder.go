// Package folder resolves the destination directory for a download session.
package folder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jmagar/ytgrab-cli/internal/helpers"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/playlist"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
)

// DirectoryDialog lets the user pick a directory. It returns
// model.ErrCancelled when the user dismisses it.
type DirectoryDialog interface {
	ChooseDirectory(start string) (string, error)
}

// TitleResolver looks up a playlist title. It must not fail; failures are
// reported as a fallback result.
type TitleResolver interface {
	Resolve(ctx context.Context, url string) playlist.Result
}

// Selector resolves destination folders.
type Selector struct {
	DownloadsDir func() string
	Dialog       DirectoryDialog
	Titles       TitleResolver
	// OnChosen is called with a directory picked in the dialog.
	OnChosen func(path string)
}

// Resolve returns the folder downloads for sess should be written to.
// It returns model.ErrCancelled if the user dismissed the dialog; callers
// must not start a download in that case.
func (s *Selector) Resolve(ctx context.Context, sess model.Session, prefs model.Preferences) (string, error) {
	base, err := s.basePath(prefs)
	if err != nil {
		return "", err
	}
	if !sess.WantsPlaylistFolder() {
		return base, nil
	}

	title := model.FallbackPlaylistName
	if s.Titles != nil {
		if name := helpers.DirName(s.Titles.Resolve(ctx, sess.Link).Title); name != "" {
			title = name
		}
	}
	dest := filepath.Join(base, title)
	err = helpers.MakeDirs(dest)
	if err != nil && title != model.FallbackPlaylistName {
		// a title the filesystem rejects still must not stop the download
		runlog.Log(runlog.Entry{Event: runlog.EventTitleFallback, Link: sess.Link, Path: dest, Error: err.Error()})
		dest = filepath.Join(base, model.FallbackPlaylistName)
		err = helpers.MakeDirs(dest)
	}
	if err != nil {
		return "", fmt.Errorf("create playlist folder %s: %w", dest, err)
	}
	return dest, nil
}

func (s *Selector) basePath(prefs model.Preferences) (string, error) {
	if prefs.LockDownloadPath {
		if s.DownloadsDir == nil {
			return "", errors.New("no default downloads directory configured")
		}
		return s.DownloadsDir(), nil
	}
	if s.Dialog == nil {
		return "", model.ErrCancelled
	}
	path, err := s.Dialog.ChooseDirectory(prefs.LastDownloadPath)
	if errors.Is(err, model.ErrCancelled) {
		runlog.Event(runlog.EventFolderCancelled)
		return "", model.ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("choose download folder: %w", err)
	}
	if s.OnChosen != nil {
		s.OnChosen(path)
	}
	return path, nil
}
