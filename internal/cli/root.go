package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"collectionview/internal/config"
	"collectionview/internal/domain"
	"collectionview/internal/source"
	"collectionview/internal/ui"
	"collectionview/internal/ui/commands"
	"collectionview/internal/ui/coordinator"
)

// New builds the collectionview command tree
func New(version string) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "collectionview",
		Short: "Browse, search, filter, sort and reorder a collection of items.",
		Long: `collectionview opens an interactive view over items read from TOML, YAML
or SQLite files. Items can be selected, searched, filtered, sorted, shown as a
list, grid or table, and reordered by dragging when no query is active.`,
		Example: `
collectionview --source lessons.toml
collectionview --source a.yaml --source b.toml --watch
collectionview list --source lessons.toml --search go --sort title`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), v)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default .collectionview.toml, then the user config dir).")
	pf.StringSlice("source", nil, "Item file or directory to load; repeat for several. Overrides source.paths.")
	pf.Bool("verbose", false, "Log at debug level.")

	f := cmd.Flags()
	f.String("view", "", "Initial view mode: list, grid or table.")
	f.String("markdown-style", "", "Glamour style for the detail popup, e.g. dark, light, notty.")
	f.Bool("watch", false, "Reload when a source file changes.")
	f.Bool("no-mouse", false, "Disable mouse support.")

	bindFlags(v, cmd, map[string]string{
		config.KeyConfig:        "config",
		config.KeySource:        "source",
		config.KeyVerbose:       "verbose",
		config.KeyViewMode:      "view",
		config.KeyMarkdownStyle: "markdown-style",
		config.KeyWatch:         "watch",
		config.KeyNoMouse:       "no-mouse",
	})

	addList(cmd, v)
	addVersion(cmd, version)
	return cmd
}

// bindFlags binds each viper key to the named flag, persistent or local
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

func runTUI(ctx context.Context, v *viper.Viper) error {
	logger, err := newLogger(v.GetBool(config.KeyVerbose), LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(v, logger)
	if err != nil {
		return err
	}
	paths, err := cfg.SourcePaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no item sources: pass --source or set source.paths in the config file")
	}
	if paths, err = source.Discover(ctx, logger.Named("source"), paths...); err != nil {
		return err
	}

	coord, err := newCoordinator(cfg, logger)
	if err != nil {
		return err
	}
	defer coord.Close()

	model := ui.NewModel(coord, ui.Options{
		Logger:        logger.Named("ui"),
		Executor:      commands.NewExecutor(ctx, logger.Named("source"), paths),
		MarkdownStyle: cfg.UISettings.MarkdownStyle,
		SaveOrder:     cfg.Source.SaveOrder,
		Watch:         cfg.Source.Watch,
		WatchDelay:    source.DefaultWatchDelay,
		TableColumns:  cfg.Collection.Columns,
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("starting", zap.Strings("sources", paths), zap.Stringer("view", coord.ViewMode()))
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadConfig reads the config file named by --config, or the default
// location, and applies flag and environment overrides
func loadConfig(v *viper.Viper, logger *zap.Logger) (*config.Config, error) {
	svc := config.NewConfigService(logger.Named("config"))

	var (
		cfg *config.Config
		err error
	)
	if path := v.GetString(config.KeyConfig); path != "" {
		cfg, err = svc.LoadFromPath(path)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyOverrides(v); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCoordinator builds a controller for the configured collection, with
// the configured initial sort already applied
func newCoordinator(cfg *config.Config, logger *zap.Logger) (*coordinator.Coordinator[domain.Item], error) {
	filters, err := cfg.BuildFilters()
	if err != nil {
		return nil, err
	}

	f := cfg.Features
	coord := coordinator.NewCoordinator[domain.Item](nil,
		coordinator.WithLogger(logger.Named("collection")),
		coordinator.WithFeatures(coordinator.Features{
			Selection:         f.Selection,
			Search:            f.Search,
			Filter:            f.Filter,
			Sort:              f.Sort,
			Reorder:           f.Reorder,
			ViewModeSwitching: f.ViewModeSwitching,
		}),
		coordinator.WithSearchFields(cfg.Collection.SearchFields...),
		coordinator.WithFilters(filters...),
		coordinator.WithSortable(cfg.Collection.SortFields...),
		coordinator.WithViewMode(cfg.ViewMode()),
	)

	if key := cfg.Collection.SortKey; key != "" {
		if err := applySort(coord, key, domain.ParseSortDirection(cfg.Collection.SortDirection)); err != nil {
			coord.Close()
			return nil, err
		}
	}
	return coord, nil
}

// applySort sorts by key, explaining an unknown key with the closest
// sortable field
func applySort(coord *coordinator.Coordinator[domain.Item], key string, dir domain.SortDirection) error {
	sortable := coord.Sortable()
	if len(sortable) == 0 || slices.Contains(sortable, key) {
		coord.SetSort(key, dir)
		return nil
	}
	if suggestion, ok := config.SuggestField(key, sortable); ok {
		return fmt.Errorf("unknown sort field %q, did you mean %q?", key, suggestion)
	}
	return fmt.Errorf("unknown sort field %q (sortable: %v)", key, sortable)
}
