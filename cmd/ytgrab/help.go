package main

import (
	"fmt"

	"github.com/jmagar/ytgrab-cli/internal/ui"
)

func argsDescription() string {
	return fmt.Sprintf(`%s♪ Download YouTube videos, audio and playlists with yt-dlp%s

%s◆ MENUS%s
%s─────────────────────────────────────────────────────────────────────────────%s
  %s•%s Press the number next to an option; %s0%s always goes back or exits
  %s•%s The link is taken from the clipboard unless one is given as an argument
  %s•%s Settings (embed thumbnail, playlist default, locked folder, skip menu)
    are saved as soon as they change

%s◆ REQUIREMENTS%s
%s─────────────────────────────────────────────────────────────────────────────%s
  %s•%s %syt-dlp%s and %sffmpeg%s next to this program, in the current directory,
    or on PATH (override with --ytdlp / --ffmpeg)
`,
		ui.ColorBold, ui.ColorReset,
		ui.ColorBold, ui.ColorReset,
		ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorYellow, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset,
		ui.ColorBold, ui.ColorReset,
		ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorYellow, ui.ColorReset, ui.ColorYellow, ui.ColorReset,
	)
}
