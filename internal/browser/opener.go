package browser

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/penwyp/pushnote/internal/errors"
)

// Opener opens a URL with the system's default handler.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener picks the platform launcher: $BROWSER, open, wslview,
// rundll32 or xdg-open.
type SystemOpener struct {
	goos     string
	getenv   func(string) string
	isWSL    func() bool
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		isWSL:    isWSL,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Command returns the launcher and its arguments for url.
func (o *SystemOpener) Command(url string) (string, []string) {
	if b := o.getenv("BROWSER"); b != "" {
		return b, []string{url}
	}

	switch {
	case o.goos == "darwin":
		return "open", []string{url}
	case o.goos == "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case o.isWSL():
		return "wslview", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// Open launches the handler and waits for the launcher to exit.
func (o *SystemOpener) Open(ctx context.Context, url string) error {
	name, args := o.Command(url)
	if _, err := o.lookPath(name); err != nil {
		return errors.Wrap(errors.ErrTypeBrowser, name+" not found in PATH", errors.ErrNoOpener).
			WithSuggestion(errors.ErrNoOpener.Suggestion)
	}

	if err := o.run(ctx, name, args...); err != nil {
		return errors.Wrap(errors.ErrTypeBrowser, "failed to open "+url, err)
	}
	return nil
}

func isWSL() bool {
	_, err := os.Stat("/proc/sys/fs/binfmt_misc/WSLInterop")
	return err == nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Run()
}
