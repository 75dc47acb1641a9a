package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kisun-bit/lvmctl/disk/lvm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var vgCmd = &cobra.Command{
	Use:   "vg <name>",
	Short: "Show the details of one volume group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		inv, err := client.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		vg, ok := inv.VolumeGroup(args[0])
		if !ok {
			return errors.Wrapf(lvm.ErrNotFound, "volume group %s", args[0])
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, kv := range vg.Info() {
			fmt.Fprintf(w, "%s\t%s\n", kv.Name, kv.Value)
		}
		fmt.Fprintln(w)
		for _, pv := range inv.PhysicalVolumesIn(vg.Name) {
			fmt.Fprintf(w, "PV\t%s\n", pv)
		}
		for _, lv := range inv.UserVolumesIn(vg.Name) {
			fmt.Fprintf(w, "LV\t%s\n", lv.Brief())
		}
		return w.Flush()
	},
}
