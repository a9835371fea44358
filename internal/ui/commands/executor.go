package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/source"
)

// Executor runs the storage side of the UI as bubbletea commands. The
// collection controller never persists anything; the model asks this
// executor to load, save and watch.
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor for paths
func NewExecutor(ctx context.Context, logger *zap.Logger, paths []string) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		ctx: &CommandContext{
			Ctx:    ctx,
			Logger: logger,
			Paths:  paths,
		},
	}
}

// HasSources reports whether there is anything to load
func (e *Executor) HasSources() bool {
	return len(e.ctx.Paths) > 0
}

// Set returns the most recently loaded source set
func (e *Executor) Set() *source.Set {
	return e.ctx.set
}

// ExecuteLoad loads every source
func (e *Executor) ExecuteLoad(reload bool) tea.Cmd {
	if !e.HasSources() {
		return nil
	}
	return NewLoadCommand(e.ctx, reload).Execute()
}

// ExecuteSaveOrder writes items back to their sources in order
func (e *Executor) ExecuteSaveOrder(items []domain.Item) tea.Cmd {
	return NewSaveOrderCommand(e.ctx, e.ctx.set, items).Execute()
}

// ExecuteWatch starts watching the sources and waits for the first change
func (e *Executor) ExecuteWatch(delay time.Duration) tea.Cmd {
	if !e.HasSources() {
		return nil
	}
	cmd, err := startWatch(e.ctx, delay)
	if err != nil {
		e.ctx.Logger.Warn("source watching disabled", zap.Error(err))
		return nil
	}
	return cmd
}

// ExecuteWait waits for the next change after one was handled
func (e *Executor) ExecuteWait() tea.Cmd {
	return NewWaitCommand(e.ctx).Execute()
}

// Accept unwraps internal messages. A loaded set is adopted and turned into
// ItemsLoadedMsg; other messages pass through unchanged.
func (e *Executor) Accept(msg tea.Msg) tea.Msg {
	if m, ok := msg.(loadedMsg); ok {
		e.ctx.set = m.set
		return ItemsLoadedMsg{Items: m.set.Items, Reload: m.reload}
	}
	return msg
}
