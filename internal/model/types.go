package model

import "strings"

// Preferences holds the persisted user toggles.
type Preferences struct {
	EmbedThumbnail   bool   `json:"embedThumbnail"`
	DefaultPlaylist  bool   `json:"defaultPlaylist"`
	LockDownloadPath bool   `json:"lockDownloadPath"`
	SkipMainMenu     bool   `json:"skipMainMenu"`
	LastDownloadPath string `json:"lastDownloadPath"`
}

// DefaultPreferences returns the built-in defaults used when nothing usable is on disk.
func DefaultPreferences() Preferences {
	return Preferences{
		EmbedThumbnail:   true,
		DefaultPlaylist:  false,
		LockDownloadPath: true,
		SkipMainMenu:     true,
	}
}

// PreferenceToggle identifies one boolean preference on the settings screen.
type PreferenceToggle int

const (
	ToggleEmbedThumbnail PreferenceToggle = iota
	ToggleDefaultPlaylist
	ToggleLockDownloadPath
	ToggleSkipMainMenu
)

// Toggles lists the settings screen rows in display order.
var Toggles = []PreferenceToggle{
	ToggleEmbedThumbnail,
	ToggleDefaultPlaylist,
	ToggleLockDownloadPath,
	ToggleSkipMainMenu,
}

// Label returns the settings screen label for the toggle.
func (t PreferenceToggle) Label() string {
	switch t {
	case ToggleEmbedThumbnail:
		return "Embed thumbnail"
	case ToggleDefaultPlaylist:
		return "Download whole playlist by default"
	case ToggleLockDownloadPath:
		return "Lock download path"
	case ToggleSkipMainMenu:
		return "Skip main menu on launch"
	default:
		return "Unknown"
	}
}

// Get reports the current value of a toggle.
func (p *Preferences) Get(t PreferenceToggle) bool {
	switch t {
	case ToggleEmbedThumbnail:
		return p.EmbedThumbnail
	case ToggleDefaultPlaylist:
		return p.DefaultPlaylist
	case ToggleLockDownloadPath:
		return p.LockDownloadPath
	case ToggleSkipMainMenu:
		return p.SkipMainMenu
	default:
		return false
	}
}

// Flip inverts a single toggle, leaving every other field untouched.
func (p *Preferences) Flip(t PreferenceToggle) {
	switch t {
	case ToggleEmbedThumbnail:
		p.EmbedThumbnail = !p.EmbedThumbnail
	case ToggleDefaultPlaylist:
		p.DefaultPlaylist = !p.DefaultPlaylist
	case ToggleLockDownloadPath:
		p.LockDownloadPath = !p.LockDownloadPath
	case ToggleSkipMainMenu:
		p.SkipMainMenu = !p.SkipMainMenu
	}
}

// Session is the transient state of one download attempt.
// IsPlaylistDownload is only meaningful when IsPlaylistLink is true;
// for any other link it stays true.
type Session struct {
	Link               string
	IsPlaylistLink     bool
	IsPlaylistDownload bool
	DestinationFolder  string
}

// NewSession builds the session for a confirmed link.
func NewSession(link string, isPlaylistLink bool, prefs Preferences) Session {
	s := Session{
		Link:               strings.TrimSpace(link),
		IsPlaylistLink:     isPlaylistLink,
		IsPlaylistDownload: true,
	}
	if isPlaylistLink {
		s.IsPlaylistDownload = prefs.DefaultPlaylist
	}
	return s
}

// TogglePlaylistDownload flips the whole-playlist choice. It is a no-op for
// links that are not playlists. Returns the updated session.
func (s Session) TogglePlaylistDownload() Session {
	if !s.IsPlaylistLink {
		return s
	}
	s.IsPlaylistDownload = !s.IsPlaylistDownload
	return s
}

// SingleItemOnly reports whether the downloader must be limited to the referenced item.
func (s Session) SingleItemOnly() bool {
	return s.IsPlaylistLink && !s.IsPlaylistDownload
}

// WantsPlaylistFolder reports whether downloads go into a playlist-title subfolder.
func (s Session) WantsPlaylistFolder() bool {
	return s.IsPlaylistLink && s.IsPlaylistDownload
}

// Binaries holds the resolved paths to the external tools.
type Binaries struct {
	Downloader string
	Transcoder string
}

// ArgsDescriptionFunc is set by package main to provide coloured help text.
// If nil, Description() returns an empty string (go-arg will use default help).
var ArgsDescriptionFunc func() string

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Link       string `arg:"positional" help:"Link to start with instead of the clipboard contents."`
	ConfigPath string `arg:"-c,--config" help:"Path to the preferences file."`
	Downloader string `arg:"--ytdlp" help:"Path to the yt-dlp executable."`
	Transcoder string `arg:"--ffmpeg" help:"Path to the ffmpeg executable."`
	NoColor    bool   `arg:"--no-color" help:"Disable coloured output."`
}

// Description provides custom help text for go-arg.
func (Args) Description() string {
	if ArgsDescriptionFunc != nil {
		return ArgsDescriptionFunc()
	}
	return ""
}
