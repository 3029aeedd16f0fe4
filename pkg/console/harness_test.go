package console

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/config"
	"github.com/rileyhilliard/console/pkg/logger"
	"github.com/rileyhilliard/console/pkg/require"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// scriptedPrompter answers from a fixed list and counts reads.
type scriptedPrompter struct {
	mu      sync.Mutex
	answers []string
	reads   int
	secrets int
	err     error
}

func script(answers ...string) *scriptedPrompter {
	return &scriptedPrompter{answers: answers}
}

func (p *scriptedPrompter) Prompt(ctx context.Context, hint string, secret bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	if secret {
		p.secrets++
	}
	if p.reads >= len(p.answers) {
		return "", io.EOF
	}
	answer := p.answers[p.reads]
	p.reads++
	return answer, nil
}

func (p *scriptedPrompter) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.Default()
	s.Output.Color = ui.ColorNever
	s.Tasks.Dir = t.TempDir()
	s.Tasks.Interval = time.Millisecond
	return s
}

func newTestKernel(t *testing.T, opts ...KernelOption) (*Kernel, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	base := []KernelOption{
		WithSettings(testSettings(t)),
		WithOutput(&out),
		WithInput(&bytes.Buffer{}),
		WithDecorated(false),
		WithLogger(logger.Noop()),
		WithRequirementCache(require.NewCache()),
	}
	return NewKernel(append(base, opts...)...), &out
}

// testCommand records the invocation it handled.
type testCommand struct {
	def    Definition
	handle func(ctx context.Context, in *Invocation) (int, error)

	handled bool
	last    *Invocation
}

func (c *testCommand) Definition() Definition { return c.def }

func (c *testCommand) Handle(ctx context.Context, in *Invocation) (int, error) {
	c.handled = true
	c.last = in
	if c.handle != nil {
		return c.handle(ctx, in)
	}
	return 0, nil
}

type validatingCommand struct {
	*testCommand
	rules validation.RuleSet
}

func (c validatingCommand) Rules() validation.RuleSet { return c.rules }

type transformingCommand struct {
	*testCommand
	rules  validation.RuleSet
	before transform.Map
	after  transform.Map
}

func (c transformingCommand) Rules() validation.RuleSet   { return c.rules }
func (c transformingCommand) Transformers() transform.Map { return c.before }
func (c transformingCommand) TransformersAfterValidation() transform.Map {
	return c.after
}

type requiringCommand struct {
	*testCommand
	reqs []require.Requirement
}

func (c requiringCommand) Requirements() []require.Requirement { return c.reqs }

type interactingCommand struct {
	*testCommand
	rules    validation.RuleSet
	interact func(ctx context.Context, in *Invocation) error
}

func (c interactingCommand) Rules() validation.RuleSet { return c.rules }

func (c interactingCommand) Interact(ctx context.Context, in *Invocation) error {
	return c.interact(ctx, in)
}

type messagingCommand struct {
	validatingCommand
	messages   map[string]string
	attributes map[string]string
}

func (c messagingCommand) Messages() map[string]string   { return c.messages }
func (c messagingCommand) Attributes() map[string]string { return c.attributes }

type statsCommand struct {
	*testCommand
	show bool
}

func (c statsCommand) ShowPerformanceStats() bool { return c.show }
