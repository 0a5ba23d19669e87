// Package platform wraps the operating-system services the workflow consumes:
// clipboard, directory dialog, well-known directories and the file browser.
// Calls that need thread affinity run in an isolated execution context and
// are synchronous from the caller's point of view.
package platform
