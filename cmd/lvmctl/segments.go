package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kisun-bit/lvmctl/disk/lvm"
	"github.com/spf13/cobra"
)

var segmentsQuery bool

var segmentsCmd = &cobra.Command{
	Use:   "segments <vg> <lv>",
	Short: "Show the devices backing a logical volume",
	Long: `Show the devices a logical volume lives on. RAID volumes are followed
through their images down to the physical volumes.

By default the lvs report already read for the inventory is used. --query runs
one segment query per level of the RAID tree instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		vgName, lvName := args[0], args[1]

		var segs []lvm.Segment
		if segmentsQuery {
			res, err := client.ResolveBackingDevices(cmd.Context(), vgName, lvName)
			if err != nil {
				return err
			}
			segs = res
		} else {
			inv, err := client.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			res, err := inv.BackingDevices(vgName, lvName)
			if err != nil {
				return err
			}
			segs = res
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tSTART\tEND\tEXTENTS")
		for _, seg := range segs {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", seg.Device, seg.Start, seg.End(), seg.Count)
		}
		return w.Flush()
	},
}

func init() {
	segmentsCmd.Flags().BoolVar(&segmentsQuery, "query", false, "ask lvm for the segments of each sub-volume")
}
