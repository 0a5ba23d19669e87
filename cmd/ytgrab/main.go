package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jmagar/ytgrab-cli/internal/config"
	"github.com/jmagar/ytgrab-cli/internal/download"
	"github.com/jmagar/ytgrab-cli/internal/folder"
	"github.com/jmagar/ytgrab-cli/internal/link"
	"github.com/jmagar/ytgrab-cli/internal/model"
	"github.com/jmagar/ytgrab-cli/internal/platform"
	"github.com/jmagar/ytgrab-cli/internal/playlist"
	"github.com/jmagar/ytgrab-cli/internal/runlog"
	"github.com/jmagar/ytgrab-cli/internal/runtime"
	"github.com/jmagar/ytgrab-cli/internal/ui"
	"github.com/jmagar/ytgrab-cli/internal/workflow"
)

func init() {
	model.ArgsDescriptionFunc = argsDescription
}

func main() {
	os.Exit(run())
}

func run() int {
	args := config.ParseArgs()
	if args.NoColor {
		ui.DisableColors()
	}

	if err := runlog.Init(platform.ActivityLogPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Activity log disabled: %v\n", err)
	}
	defer runlog.Close()
	runlog.Event(runlog.EventStartup)

	bins, err := config.ResolveBinaries(args)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Cannot start: %v", err))
		if errors.Is(err, model.ErrBinaryNotFound) {
			ui.PrintInfo("Install yt-dlp and ffmpeg, or point --ytdlp / --ffmpeg at them.")
		}
		return 1
	}

	store := config.NewStore(args.ConfigPath)
	ctrl := newController(args, bins, store)

	// No deadline: a stuck downloader runs until interrupted. The first
	// interrupt ends the session; a second one gets the default handler.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	context.AfterFunc(ctx, stop)
	runErr := ctrl.Run(ctx)

	if err := store.Save(ctrl.Prefs()); err != nil {
		ui.PrintWarning(fmt.Sprintf("Could not save preferences: %v", err))
	}
	if runErr != nil {
		ui.PrintError(runErr.Error())
		return 1
	}
	return 0
}

// newController wires the platform services into a workflow controller.
func newController(args *model.Args, bins model.Binaries, store *config.Store) *workflow.Controller {
	keys := runtime.NewTerminalKeys()
	var prompter link.Prompter = link.ReadlinePrompter{}
	if !keys.IsTerminal() {
		prompter = link.ReaderPrompter{R: keys.Reader()}
	}

	ctrl := workflow.NewController(store.Load())
	selector := &folder.Selector{
		DownloadsDir: platform.DownloadsDir,
		Dialog:       platform.ZenityDialog{Title: "Choose a download folder"},
		Titles:       playlist.NewResolver(),
		OnChosen:     ctrl.RememberFolder,
	}
	deps := &download.Deps{
		Sink:     ui.PrintProcessLine,
		Prompter: prompter,
		Opener:   platform.FileBrowser{},
	}

	ctrl.Keys = keys
	ctrl.Links = &link.Source{Clipboard: platform.SystemClipboard{}, Prompter: prompter}
	ctrl.Folders = selector
	ctrl.Runner = download.NewOrchestrator(bins, deps)
	ctrl.Store = store
	ctrl.InitialLink = args.Link
	return ctrl
}
