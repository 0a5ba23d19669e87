package platform

import "github.com/skratchdot/open-golang/open"

// FileBrowser opens folders with the platform's default handler.
type FileBrowser struct{}

// Open shows path in the system file browser.
func (FileBrowser) Open(path string) error {
	return open.Start(path)
}
