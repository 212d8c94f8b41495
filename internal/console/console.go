// Package console is the line-oriented front end: numbered menus on a
// reader, styled output on a writer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// ErrNoChoices is returned by Choose for an empty option list.
var ErrNoChoices = errors.New("nothing to choose from")

// ImageResolver locates question images on disk.
type ImageResolver interface {
	ImagePath(ref content.MediaRef) (string, bool)
}

// Console reads answers from in and writes to out.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	images ImageResolver
	logger *zap.Logger
}

// New returns a Console. images and logger may be nil.
func New(in io.Reader, out io.Writer, images ImageResolver, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		images: images,
		logger: logger,
	}
}

// ReadLine returns the next input line without its line ending. io.EOF
// is returned once input is exhausted.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choose prints a numbered menu and returns the chosen option. The learner
// may type the number or the option itself; anything else re-prompts.
func (c *Console) Choose(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: %w", title, ErrNoChoices)
	}
	for {
		c.println(theme.Selected.Render(title))
		for i, o := range options {
			c.printf("  %s %s\n", theme.Hint.Render(strconv.Itoa(i+1)+"."), o)
		}
		c.printf("%s ", theme.Subtitle.Render("Enter your choice:"))

		line, err := c.ReadLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(o, line) {
				return o, nil
			}
		}
		c.println(theme.Incorrect.Render("Invalid choice, try again."))
	}
}

// Pause waits for the learner to press enter.
func (c *Console) Pause(msg string) error {
	c.printf("%s ", theme.Hint.Render(msg))
	_, err := c.ReadLine()
	return err
}

// Notice prints an informational line.
func (c *Console) Notice(msg string) {
	c.println(theme.Hint.Render(msg))
}

// Error prints an error line.
func (c *Console) Error(err error) {
	c.println(theme.Incorrect.Render("Error: " + err.Error()))
}

func (c *Console) showMedia(ref content.MediaRef) {
	if c.images == nil {
		c.println(theme.Hint.Render("[image] " + ref.Name))
		return
	}
	p, ok := c.images.ImagePath(ref)
	if !ok {
		c.logger.Warn("image missing", zap.String("path", p))
		c.println(theme.Incorrect.Render("[image missing] " + p))
		return
	}
	c.println(theme.Hint.Render("[image] " + p))
}

func (c *Console) println(s string) {
	lipgloss.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	lipgloss.Fprintf(c.out, format, args...)
}
