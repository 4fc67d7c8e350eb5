package receipt

import "github.com/pkg/browser"

// DocumentOpener shows an exported file to the operator.
type DocumentOpener interface {
	Open(path string) error
}

// SystemOpener uses the host's default viewer (xdg-open, open, or the
// Windows shell).
type SystemOpener struct{}

func (SystemOpener) Open(path string) error {
	return browser.OpenFile(path)
}

// NopOpener is used when OPEN_RECEIPT=false, e.g. on a headless terminal.
type NopOpener struct{}

func (NopOpener) Open(string) error { return nil }
