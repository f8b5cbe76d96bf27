package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// UI modes accepted by bench --ui.
const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

// uiOptions are the bench flags that shape progress output.
type uiOptions struct {
	Mode    string
	Verbose bool
	NoColor bool
}

// uiModeDecision says how bench reports progress.
type uiModeDecision struct {
	useLive bool
	noColor bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// getenv reads the environment. Tests replace it.
var getenv = os.Getenv

// resolveUIMode picks live or plain progress for bench. Verbose logging always
// uses plain lines. NO_COLOR or --no-color strips styles from the live table,
// and a dumb terminal cannot host the live table at all.
func resolveUIMode(opts uiOptions, stdout io.Writer) (uiModeDecision, error) {
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	if mode == "" {
		mode = uiAuto
	}
	if mode != uiAuto && mode != uiLive && mode != uiPlain {
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", opts.Mode)
	}

	decision := uiModeDecision{noColor: opts.NoColor || getenv("NO_COLOR") != ""}
	if opts.Verbose || mode == uiPlain {
		return decision, nil
	}
	capable := isTerminal(stdout) && getenv("TERM") != "dumb"
	decision.useLive = capable
	if mode == uiLive && !capable {
		decision.warning = "Live UI requested but stdout is not an interactive terminal; falling back to plain output."
	}
	return decision, nil
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
