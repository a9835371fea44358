package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"collectionview/internal/domain"
	"collectionview/internal/source"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx    context.Context
	Logger *zap.Logger
	Paths  []string

	set     *source.Set
	changes <-chan source.Change
}

// ItemsLoadedMsg carries the result of (re)loading every source
type ItemsLoadedMsg struct {
	Items  []domain.Item
	Reload bool
	Err    error
}

// OrderSavedMsg reports a write-back of the committed order
type OrderSavedMsg struct {
	Count int
	Err   error
}

// SourceChangedMsg reports that a watched source was modified on disk
type SourceChangedMsg struct {
	Change source.Change
}

// LoadCommand loads every source concurrently
type LoadCommand struct {
	ctx    *CommandContext
	reload bool
}

// NewLoadCommand creates a new load command
func NewLoadCommand(ctx *CommandContext, reload bool) *LoadCommand {
	return &LoadCommand{ctx: ctx, reload: reload}
}

// Execute performs the load off the UI goroutine
func (c *LoadCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		set, err := source.LoadAll(c.ctx.Ctx, c.ctx.Paths...)
		if err != nil {
			c.ctx.Logger.Warn("failed to load sources", zap.Strings("paths", c.ctx.Paths), zap.Error(err))
			return ItemsLoadedMsg{Reload: c.reload, Err: err}
		}
		c.ctx.Logger.Info("sources loaded", zap.Int("items", len(set.Items)), zap.Bool("reload", c.reload))
		return loadedMsg{set: set, reload: c.reload}
	}
}

// loadedMsg hands the new set to the executor before the model sees the items
type loadedMsg struct {
	set    *source.Set
	reload bool
}

// SaveOrderCommand writes a committed order back to the sources
type SaveOrderCommand struct {
	ctx   *CommandContext
	set   *source.Set
	items []domain.Item
}

// NewSaveOrderCommand creates a new save order command
func NewSaveOrderCommand(ctx *CommandContext, set *source.Set, items []domain.Item) *SaveOrderCommand {
	return &SaveOrderCommand{ctx: ctx, set: set, items: items}
}

// Execute performs the write-back
func (c *SaveOrderCommand) Execute() tea.Cmd {
	if c.set == nil {
		return nil
	}
	return func() tea.Msg {
		if err := c.set.SaveOrder(c.ctx.Ctx, c.items); err != nil {
			c.ctx.Logger.Error("failed to save order", zap.Error(err))
			return OrderSavedMsg{Err: err}
		}
		c.ctx.Logger.Debug("order saved", zap.Int("items", len(c.items)))
		return OrderSavedMsg{Count: len(c.items)}
	}
}

// WaitCommand blocks until the watcher reports the next change
type WaitCommand struct {
	ctx *CommandContext
}

// NewWaitCommand creates a new wait command
func NewWaitCommand(ctx *CommandContext) *WaitCommand {
	return &WaitCommand{ctx: ctx}
}

// Execute waits for one change; a closed watcher ends the chain
func (c *WaitCommand) Execute() tea.Cmd {
	changes := c.ctx.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return SourceChangedMsg{Change: change}
	}
}

// startWatch opens the watcher and returns the first wait
func startWatch(ctx *CommandContext, delay time.Duration) (tea.Cmd, error) {
	changes, err := source.Watch(ctx.Ctx, ctx.Logger, delay, ctx.Paths...)
	if err != nil {
		return nil, err
	}
	ctx.changes = changes
	return NewWaitCommand(ctx).Execute(), nil
}
