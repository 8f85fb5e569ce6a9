// Package reporter implements the console reporter: step progress,
// status lines and the version-selection prompt.
package reporter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

var _ ports.Reporter = (*Console)(nil)

// Console implements ports.Reporter on a terminal.
type Console struct {
	out         *termenv.Output
	in          io.Reader
	interactive bool
	styles      styles
}

// ColorProfile returns the color profile to use. NO_COLOR wins.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a Console writing to w and prompting from in. interactive
// gates the Select prompt.
func New(w io.Writer, in io.Reader, interactive bool, profile termenv.Profile) *Console {
	out := termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
	return &Console{
		out:         out,
		in:          in,
		interactive: interactive,
		styles:      newStyles(profile),
	}
}

// Default creates a Console on stdout/stdin with TTY detection.
func Default() *Console {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	return New(os.Stdout, os.Stdin, interactive, ColorProfile())
}

// Step announces pipeline progress.
func (c *Console) Step(current, total int, msg string) {
	fmt.Fprintf(c.out, "%s %s...\n", c.styles.step.Render(fmt.Sprintf("[%d/%d]", current, total)), msg)
}

// Success prints a success line.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.styles.success.Render("success"), msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.styles.warning.Render("warning"), msg)
}

// Info prints an informational line.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.styles.info.Render("info"), msg)
}

// Command echoes a shell command the user may want to run.
func (c *Console) Command(cmd string) {
	fmt.Fprintf(c.out, "%s %s\n", c.styles.step.Render("$"), c.styles.command.Render(cmd))
}

// Select prompts the user to pick one option and returns its value. It
// keeps asking until the answer parses to a listed option.
func (c *Console) Select(message, answerPrompt string, options []ports.SelectOption) (string, error) {
	if !c.interactive {
		return "", zerr.With(domain.ErrNonInteractive, "prompt", message)
	}

	c.Info(message)
	for i, option := range options {
		fmt.Fprintf(c.out, "  %s %s\n", c.styles.step.Render(strconv.Itoa(i+1)+")"), option.Label)
	}

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprintf(c.out, "%s ", answerPrompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", zerr.Wrap(err, "failed to read selection")
			}
			return "", zerr.With(domain.ErrNonInteractive, "prompt", message)
		}
		answer := strings.TrimSpace(scanner.Text())
		index, err := strconv.Atoi(answer)
		if err == nil && index >= 1 && index <= len(options) {
			return options[index-1].Value, nil
		}
		c.Warn("invalid answer: " + answer)
	}
}
