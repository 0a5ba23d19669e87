package workflow

import (
	"fmt"

	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/ui"
)

var mainMenuLines = []string{
	"",
	"[1] Start",
	"[2] Settings",
	"",
	"[0] Exit",
}

var linkMenuLines = []string{
	"[1] Confirm",
	"[2] Edit link",
	"[3] Reload from clipboard",
	"",
	"[0] Back to main menu",
}

var modeMenuLines = []string{
	"[1] Download as video",
	"[2] Download as audio",
	"[3] Download whole playlist",
	"",
	"[0] Back to link selection",
}

// playlistRow is the index of the playlist toggle in modeMenuLines.
const playlistRow = 2

// PlaylistHighlight returns the colour of the playlist toggle row: green when
// the whole playlist will be fetched, red for a single item, dark gray when
// the link is not a playlist.
func PlaylistHighlight(sess model.Session) string {
	if !sess.IsPlaylistLink {
		return ui.ColorDarkGray
	}
	if sess.IsPlaylistDownload {
		return ui.ColorGreen
	}
	return ui.ColorRed
}

func (c *Controller) renderMainMenu() {
	if !c.Render {
		return
	}
	ui.ClearScreen()
	ui.PrintHeader(model.AppName)
	ui.RenderMenu(mainMenuLines, ui.MenuStyle{Align: true, Highlight: -1})
	c.flushNotices()
}

func (c *Controller) renderLinkMenu(candidate string) {
	if !c.Render {
		return
	}
	ui.ClearScreen()
	ui.RenderLink("Link:", candidate)
	ui.RenderMenu(linkMenuLines, ui.MenuStyle{Align: true, Highlight: -1})
	c.flushNotices()
}

func (c *Controller) renderModeMenu(sess model.Session) {
	if !c.Render {
		return
	}
	ui.ClearScreen()
	ui.RenderLink("Link:", sess.Link)
	ui.RenderMenu(modeMenuLines, ui.MenuStyle{
		Align:          true,
		Highlight:      playlistRow,
		HighlightColor: PlaylistHighlight(sess),
	})
	c.flushNotices()
}

func (c *Controller) renderSettings() {
	if !c.Render {
		return
	}
	ui.ClearScreen()
	ui.PrintSection("Settings")
	labels := make([]string, len(model.Toggles))
	states := make([]bool, len(model.Toggles))
	for i, t := range model.Toggles {
		labels[i] = fmt.Sprintf("[%d] %s", i+1, t.Label())
		states[i] = c.prefs.Get(t)
	}
	ui.RenderToggleRows(labels, states, []string{"", "[0] Back to main menu"})
	c.flushNotices()
}
