package download

import (
	"path/filepath"

	"github.com/jmagar/ytgrab-cli/internal/model"
)

// Request is everything needed to invoke the downloader once.
type Request struct {
	Session     model.Session
	Mode        model.DownloadMode
	Destination string
	Prefs       model.Preferences
}

// OutputTemplate returns the downloader's output template under dest.
func OutputTemplate(dest string) string {
	return filepath.Join(dest, model.OutputTemplateName)
}

// BuildArgs constructs the downloader argument list for req. transcoder is
// passed through as the downloader's ffmpeg location.
func BuildArgs(req Request, transcoder string) []string {
	args := []string{req.Session.Link}
	switch req.Mode {
	case model.ModeAudio:
		args = append(args,
			"-x",
			"--audio-format", model.AudioFormat,
			"--audio-quality", model.AudioQualityBest,
		)
	default:
		args = append(args, "-f", model.VideoFormatSelector)
	}
	args = append(args, "--output", OutputTemplate(req.Destination))
	if transcoder != "" {
		args = append(args, "--ffmpeg-location", transcoder)
	}
	if req.Prefs.EmbedThumbnail {
		args = append(args, "--embed-thumbnail")
	}
	if req.Session.SingleItemOnly() {
		args = append(args, "--no-playlist")
	}
	return args
}
