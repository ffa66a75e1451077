package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/tessera-shell/tessera/internal/bar"
	"github.com/tessera-shell/tessera/internal/config"
	pb "github.com/tessera-shell/tessera/proto"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the bar's system gauges",
	Long: `Show CPU usage, CPU and GPU temperature and power draw as the bar
gauges display them. With --local one sample is taken in-process.`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().BoolVar(&flagLocal, "local", false, "sample without the daemon")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	if flagLocal {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		sources := bar.SystemSources(settings.Bar)
		// CPU usage is a delta between two reads; prime the first one.
		_, _ = sources.CPUPercent(ctx)
		time.Sleep(250 * time.Millisecond)

		m := bar.NewSampler(settings.Bar, sources, nil).Sample(ctx)
		return printValue(cmd.OutOrStdout(), &pb.MetricsReply{Metrics: m, Ready: true})
	}

	conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	reply, err := pb.NewBarServiceClient(conn).GetMetrics(ctx, &emptypb.Empty{})
	if err != nil {
		return fmt.Errorf("failed to get metrics: %w", err)
	}
	return printValue(cmd.OutOrStdout(), reply)
}
