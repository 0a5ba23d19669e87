package model

// DownloadMode selects what the downloader extracts from a link.
type DownloadMode int

const (
	ModeUnknown DownloadMode = 0
	ModeVideo   DownloadMode = 1
	ModeAudio   DownloadMode = 2
)

// String returns the name used in logs and status lines.
func (m DownloadMode) String() string {
	switch m {
	case ModeVideo:
		return "video"
	case ModeAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Fixed values handed to the downloader.
const (
	VideoFormatSelector  = "bestvideo+bestaudio/best"
	AudioFormat          = "mp3"
	AudioQualityBest     = "0"
	OutputTemplateName   = "%(title)s.%(ext)s"
	FallbackPlaylistName = "Playlist"
	AppName              = "ytgrab"
)
