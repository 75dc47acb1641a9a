package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kisun-bit/lvmctl/config"
	"github.com/kisun-bit/lvmctl/disk/lvm"
	"github.com/kisun-bit/lvmctl/util/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lvmctl",
	Short: "Inspect LVM volume groups and create logical volumes",
	Long: `lvmctl reads the vgs, pvs and lvs reports of the lvm toolset and shows
volume groups together with their physical and logical volumes. RAID
volumes are resolved down to the devices backing their images.

It can also create linear, striped and RAID logical volumes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flags().Lookup("dry-run"); f != nil && f.Changed {
			return nil
		}
		if unix.Geteuid() != 0 {
			return fmt.Errorf("lvmctl must run as root (euid %d)", unix.Geteuid())
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/lvmctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every lvm invocation")

	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(vgCmd)
	rootCmd.AddCommand(lvsCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(versionCmd)
}

// newClient wires the config file into an lvm client.
func newClient() (*lvm.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	log := logger.NewLogger("lvmctl", level, os.Stderr)
	logger.SetupDefaultLogger(log)

	return lvm.NewClient(
		lvm.WithLVM(cfg.LVMPath),
		lvm.WithRunner(lvm.ExecRunner{Timeout: cfg.Timeout()}),
		lvm.WithLogger(log),
		lvm.WithSegmentDetail(cfg.SegmentDetail),
	), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// lvm's own message is printed as is
		if diag, ok := lvm.Diagnostic(err); ok && diag != "" {
			fmt.Fprintln(os.Stderr, diag)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
