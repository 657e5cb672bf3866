// Package console runs the survey over a terminal: prompts are printed to a writer
// and answers are read line by line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/aretw0/pollster/pkg/runner"
)

// ContactCommand prefixes a line that shares a contact, e.g. "/contact +79990000000".
const ContactCommand = "/contact"

// Console is a single-terminal transport. It implements ports.Messenger and
// produces inbound messages from typed lines.
type Console struct {
	mu      sync.Mutex
	out     *termenv.Output
	choices map[string][]string
}

var _ ports.Messenger = (*Console)(nil)

// New creates a Console writing to w.
func New(w io.Writer) *Console {
	return &Console{
		out:     termenv.NewOutput(w),
		choices: make(map[string][]string),
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SendChoicePrompt prints text followed by numbered choices and remembers them for Resolve.
func (c *Console) SendChoicePrompt(_ context.Context, userID, text string, choices []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.choices[userID] = append([]string(nil), choices...)

	c.println(c.out.String(text).Bold())
	for i, choice := range choices {
		num := c.out.String(fmt.Sprintf("  [%d]", i+1)).Foreground(c.out.Color("#a78bfa"))
		c.println(fmt.Sprintf("%s %s", num, choice))
	}
	return nil
}

// SendContactRequest prints text with a hint for the contact command.
func (c *Console) SendContactRequest(_ context.Context, userID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.choices, userID)

	c.println(c.out.String(text).Bold())
	hint := fmt.Sprintf("  [%s] %s <phone>", "Отправить", ContactCommand)
	c.println(c.out.String(hint).Faint())
	return nil
}

// SendText prints a plain message.
func (c *Console) SendText(_ context.Context, userID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.choices, userID)

	c.println(c.out.String(text).Foreground(c.out.Color("#34d399")))
	return nil
}

func (c *Console) println(s any) {
	fmt.Fprintln(c.out, s)
}

// Parse converts one typed line into an inbound message for userID.
// Numbers are kept as typed; Resolve maps them once the matching prompt is out.
func (c *Console) Parse(userID, line string) domain.Inbound {
	line = strings.TrimRight(line, "\r\n")
	if rest, ok := strings.CutPrefix(line, ContactCommand); ok && (rest == "" || rest[0] == ' ') {
		return domain.NewContactMessage(userID, strings.TrimSpace(rest))
	}
	return domain.NewTextMessage(userID, line)
}

// Resolve replaces a number with the matching button of the last choice prompt sent to the user.
func (c *Console) Resolve(msg domain.Inbound) domain.Inbound {
	if msg.Text == nil {
		return msg
	}
	c.mu.Lock()
	choices := c.choices[msg.UserID]
	c.mu.Unlock()
	if n, err := strconv.Atoi(*msg.Text); err == nil && n >= 1 && n <= len(choices) {
		return domain.NewTextMessage(msg.UserID, choices[n-1])
	}
	return msg
}

// Handler wraps next so numbers are resolved when the message is handled.
// The runner performs a message's effects before handling the user's next one,
// so the choices seen here belong to the question being answered.
func (c *Console) Handler(next runner.Handler) runner.Handler {
	return &resolver{console: c, next: next}
}

type resolver struct {
	console *Console
	next    runner.Handler
}

func (r *resolver) HandleInbound(ctx context.Context, msg domain.Inbound) ([]domain.Effect, error) {
	return r.next.HandleInbound(ctx, r.console.Resolve(msg))
}

// Read scans r line by line and emits inbound messages for userID.
// Lines are not resolved against prompts; wrap the runner's handler with Handler.
// The channel is closed at EOF or when ctx is cancelled.
func (c *Console) Read(ctx context.Context, r io.Reader, userID string) <-chan domain.Inbound {
	out := make(chan domain.Inbound)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- c.Parse(userID, scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
