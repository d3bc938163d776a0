package navigation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleNavigator tracks the current page and prints each transition.
type ConsoleNavigator struct {
	out io.Writer

	mu      sync.Mutex
	current string
}

func NewConsoleNavigator(out io.Writer) *ConsoleNavigator {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleNavigator{out: out}
}

// Current returns the page last navigated to.
func (n *ConsoleNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *ConsoleNavigator) NavigateTo(_ context.Context, target string) error {
	return n.move("navigate", target)
}

func (n *ConsoleNavigator) RedirectTo(_ context.Context, target string) error {
	return n.move("redirect", target)
}

func (n *ConsoleNavigator) SwitchTab(_ context.Context, target string) error {
	return n.move("switch tab", target)
}

func (n *ConsoleNavigator) ReLaunch(_ context.Context, target string) error {
	return n.move("relaunch", target)
}

func (n *ConsoleNavigator) move(action, target string) error {
	n.mu.Lock()
	n.current = target
	n.mu.Unlock()

	_, err := fmt.Fprintf(n.out, "-> %s %s\n", action, target)
	return err
}
