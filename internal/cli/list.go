package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"collectionview/internal/config"
	"collectionview/internal/domain"
	"collectionview/internal/printer"
	"collectionview/internal/source"
	"collectionview/internal/ui/coordinator"
)

type listOptions struct {
	search  string
	filters []string
	sortKey string
	desc    bool
	showID  bool
}

func addList(topLevel *cobra.Command, v *viper.Viper) {
	lo := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the items after search, filters and sort.",
		Example: `
collectionview list --source lessons.toml
collectionview list --search rust --filter level=2 --sort title --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if v.GetBool(config.KeyVerbose) {
				var err error
				if logger, err = newLogger(true, "stderr"); err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}
			return runList(cmd, v, lo, logger)
		},
	}

	cmd.Flags().StringVar(&lo.search, "search", "", "Only items matching this search term.")
	cmd.Flags().StringArrayVar(&lo.filters, "filter", nil, "Filter as id=value; repeat to combine.")
	cmd.Flags().StringVar(&lo.sortKey, "sort", "", "Sort by this field.")
	cmd.Flags().BoolVar(&lo.desc, "desc", false, "Sort descending.")
	cmd.Flags().BoolVar(&lo.showID, "ids", false, "Print item ids.")

	topLevel.AddCommand(cmd)
}

func runList(cmd *cobra.Command, v *viper.Viper, lo *listOptions, logger *zap.Logger) error {
	cfg, err := loadConfig(v, logger)
	if err != nil {
		return err
	}
	paths, err := cfg.SourcePaths()
	if err != nil {
		return err
	}

	if paths, err = source.Discover(cmd.Context(), logger, paths...); err != nil {
		return err
	}
	set, err := source.LoadAll(cmd.Context(), paths...)
	if err != nil {
		return err
	}

	coord, err := newCoordinator(cfg, logger)
	if err != nil {
		return err
	}
	defer coord.Close()
	coord.SetItems(set.Items)

	if err := lo.apply(coord); err != nil {
		return err
	}

	p := printer.New(cfg.Collection.Columns, lo.showID)
	p.Out = cmd.OutOrStdout()
	p.Summary(coord.VisibleCount(), coord.TotalCount(), coord.Query())
	p.Collection(coord.Visible())
	return nil
}

// apply pushes the flag query into the controller
func (lo *listOptions) apply(coord *coordinator.Coordinator[domain.Item]) error {
	if lo.search != "" && !coord.SetSearch(lo.search) {
		return fmt.Errorf("search is disabled for this collection")
	}

	for _, raw := range lo.filters {
		id, value, ok := strings.Cut(raw, "=")
		if !ok || id == "" {
			return fmt.Errorf("filter %q: want id=value", raw)
		}
		if err := knownFilter(coord, id); err != nil {
			return err
		}
		coord.SetFilter(id, value)
	}

	if lo.sortKey != "" {
		dir := domain.SortAsc
		if lo.desc {
			dir = domain.SortDesc
		}
		if err := applySort(coord, lo.sortKey, dir); err != nil {
			return err
		}
	}
	return nil
}

func knownFilter(coord *coordinator.Coordinator[domain.Item], id string) error {
	defs := coord.Filters()
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		if d.ID == id {
			return nil
		}
		ids = append(ids, d.ID)
	}
	if suggestion, ok := config.SuggestField(id, ids); ok {
		return fmt.Errorf("unknown filter %q, did you mean %q?", id, suggestion)
	}
	return fmt.Errorf("unknown filter %q (filters: %v)", id, ids)
}
