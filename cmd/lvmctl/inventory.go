package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	inventoryJSON  bool
	inventoryQuery string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show volume groups with their physical and logical volumes",
	Long: `Show every volume group next to its physical and logical volumes.

With --json the whole inventory is printed as JSON. --query selects a part of
it using a gjson path, e.g.

  lvmctl inventory --query 'vgs.#.name'
  lvmctl inventory --query 'lvs.#(segtype=="raid5").name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		inv, err := client.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		if inventoryJSON || inventoryQuery != "" {
			doc, err := inv.JSON()
			if err != nil {
				return err
			}
			if inventoryQuery == "" {
				fmt.Println(gjson.Get(doc, "@pretty").String())
				return nil
			}
			res := gjson.Get(doc, inventoryQuery)
			if !res.Exists() {
				return fmt.Errorf("query %q matched nothing", inventoryQuery)
			}
			fmt.Println(res.String())
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VG\tPV\tLV")
		for _, row := range inv.Rows() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.VgName, row.PvName, row.LvName)
		}
		if free := inv.UnassignedPhysicalVolumes(); len(free) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "UNASSIGNED PV")
			for _, pv := range free {
				fmt.Fprintln(w, pv.Path)
			}
		}
		return w.Flush()
	},
}

func init() {
	inventoryCmd.Flags().BoolVar(&inventoryJSON, "json", false, "print the inventory as JSON")
	inventoryCmd.Flags().StringVarP(&inventoryQuery, "query", "q", "", "print only the part selected by a gjson path")
}
