package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/kisun-bit/lvmctl/disk/lvm"
	"github.com/spf13/cobra"
)

var lvsAll bool

var lvsCmd = &cobra.Command{
	Use:   "lvs [vg...]",
	Short: "List logical volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		lvs, err := client.LogicalVolumes(cmd.Context(), args...)
		if err != nil {
			return err
		}

		shown := make([]lvm.LogicalVolume, 0, len(lvs))
		for _, lv := range lvs {
			if lvsAll || !lv.IsSubVolume() {
				shown = append(shown, lv)
			}
		}
		sort.SliceStable(shown, func(i, j int) bool {
			if shown[i].VgName != shown[j].VgName {
				return shown[i].VgName < shown[j].VgName
			}
			return shown[i].PlainName() < shown[j].PlainName()
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VG\tLV\tTYPE\tSIZE\tSTRIPES\tATTR")
		for _, lv := range shown {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				lv.VgName, lv.Name, lv.SegType, humanize.Bytes(lv.Size), lv.Stripes, lv.Attr)
		}
		return w.Flush()
	},
}

func init() {
	lvsCmd.Flags().BoolVarP(&lvsAll, "all", "a", false, "include RAID images and other hidden volumes")
}
