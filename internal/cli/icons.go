package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/icons"
	pb "github.com/tessera-shell/tessera/proto"
)

var (
	flagLocal bool
	flagFiles bool
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Inspect icon resolution",
}

var iconsResolveCmd = &cobra.Command{
	Use:   "resolve <class>...",
	Short: "Resolve the icon for one or more window classes",
	Long: `Resolve the icon for window classes the way the dock does.

By default the daemon answers, sharing its memoized cache. With --local the
icon index is built in-process from the current settings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIconsResolve,
}

var iconsIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the icon search paths and report what was found",
	RunE:  runIconsIndex,
}

func init() {
	iconsResolveCmd.Flags().BoolVar(&flagLocal, "local", false, "resolve without the daemon")
	iconsIndexCmd.Flags().BoolVar(&flagFiles, "files", false, "list every candidate icon file")

	iconsCmd.AddCommand(iconsIndexCmd)
	iconsCmd.AddCommand(iconsResolveCmd)
}

// IndexReport summarizes an icon scan.
type IndexReport struct {
	SearchPaths    []string `json:"search_paths" yaml:"search_paths"`
	Candidates     int      `json:"candidates" yaml:"candidates"`
	DesktopEntries int      `json:"desktop_entries" yaml:"desktop_entries"`
	Files          []string `json:"files,omitempty" yaml:"files,omitempty"`
	Errors         []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func runIconsResolve(cmd *cobra.Command, args []string) error {
	if flagLocal {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		set, _ := icons.Load(settings.Icons)
		list := &pb.IconList{
			Candidates:     int32(set.Index.Len()),
			DesktopEntries: int32(set.Desktop.Len()),
		}
		for _, class := range args {
			icon := set.Lookup.Icon(class)
			list.Icons = append(list.Icons, &pb.ResolvedIcon{Class: class, Path: icon.Path, Name: icon.Name})
		}
		list.Searches = int32(set.Lookup.Resolver().Searches())
		list.CachedClasses = int32(set.Lookup.Resolver().Cache().Len())
		return printValue(cmd.OutOrStdout(), list)
	}

	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	list, err := pb.NewDockServiceClient(conn).ResolveIcon(ctx, &pb.ResolveIconRequest{Classes: args})
	if err != nil {
		return fmt.Errorf("failed to resolve icons: %w", err)
	}
	return printValue(cmd.OutOrStdout(), list)
}

func runIconsIndex(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	set, scanErr := icons.Load(settings.Icons)

	report := IndexReport{
		SearchPaths:    config.ExpandHomeAll(settings.Icons.SearchPaths),
		Candidates:     set.Index.Len(),
		DesktopEntries: set.Desktop.Len(),
		Errors:         icons.Errors(scanErr),
	}
	if flagFiles {
		report.Files = set.Index.Candidates()
	}
	return printValue(cmd.OutOrStdout(), report)
}
