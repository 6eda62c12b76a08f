package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how output is presented.
type Mode int

const (
	// ModePlain is used for pipes, files, CI logs and NO_COLOR.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading a terminal.
	ModeStyled
)

// DetectMode determines whether output written to w may be styled.
//
// Returns ModePlain if:
//   - FRAUDLENS_NO_COLOR=1 is set
//   - CI=true is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - w is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode(w io.Writer) Mode {
	// Check environment overrides first
	if os.Getenv("FRAUDLENS_NO_COLOR") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// ColorEnabled is a convenience function that returns true if output written
// to w may be styled.
func ColorEnabled(w io.Writer) bool {
	return DetectMode(w) == ModeStyled
}
