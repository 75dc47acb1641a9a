package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kisun-bit/lvmctl/disk/lvm"
	"github.com/spf13/cobra"
)

var createOpts struct {
	vg         string
	name       string
	size       string
	unit       string
	segType    string
	stripes    string
	stripeSize string
	mirrors    string
	pvs        []string
	dryRun     bool
	yes        bool
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a logical volume",
	Example: `  lvmctl create --vg vg01 --name data --size 10 --unit G
  lvmctl create --vg vg01 --name pub --size 30 --unit G --type raid5 --stripes 2 --pv /dev/sdb1 --pv /dev/sdc1 --pv /dev/sdd1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := createRequest()
		if err != nil {
			return err
		}
		command, err := lvm.BuildCreateCommand(req)
		if err != nil {
			return err
		}
		if createOpts.dryRun {
			fmt.Println(command.String())
			return nil
		}
		if !createOpts.yes && !confirm(command.String()) {
			return fmt.Errorf("aborted")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		store := lvm.NewStore(client)
		name, err := store.Create(cmd.Context(), req)
		if name == "" {
			return err
		}
		fmt.Printf("created %s/%s\n", req.VgName, name)
		if err != nil {
			return err
		}
		if lv, ok := store.Current().LogicalVolume(req.VgName, name); ok {
			fmt.Println(lv.Brief())
		}
		return nil
	},
}

// createRequest turns the raw flag values into a request; counts are
// validated the same way report columns are.
func createRequest() (lvm.VolumeCreateRequest, error) {
	var (
		stripes, mirrors uint16
		stripeSize       uint64
		err              error
	)
	if createOpts.stripes != "" {
		if stripes, err = lvm.ParseCount(createOpts.stripes); err != nil {
			return lvm.VolumeCreateRequest{}, fmt.Errorf("--stripes: %w", err)
		}
	}
	if createOpts.mirrors != "" {
		if mirrors, err = lvm.ParseCount(createOpts.mirrors); err != nil {
			return lvm.VolumeCreateRequest{}, fmt.Errorf("--mirrors: %w", err)
		}
	}
	if createOpts.stripeSize != "" {
		if stripeSize, err = lvm.ParseSize(createOpts.stripeSize); err != nil {
			return lvm.VolumeCreateRequest{}, fmt.Errorf("--stripe-size: %w", err)
		}
		if stripeSize > 1<<32-1 {
			return lvm.VolumeCreateRequest{}, fmt.Errorf("--stripe-size: %s out of range", createOpts.stripeSize)
		}
	}
	topology, err := lvm.NewTopology(lvm.SegType(createOpts.segType), stripes, uint32(stripeSize), mirrors)
	if err != nil {
		return lvm.VolumeCreateRequest{}, err
	}
	return lvm.VolumeCreateRequest{
		Name:            createOpts.name,
		VgName:          createOpts.vg,
		Size:            createOpts.size,
		Unit:            lvm.SizeUnit(strings.ToUpper(createOpts.unit)),
		Topology:        topology,
		PhysicalVolumes: createOpts.pvs,
	}, nil
}

func confirm(command string) bool {
	fmt.Printf("%s\nProceed? [y/N] ", command)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createOpts.vg, "vg", "", "volume group to create the volume in")
	f.StringVarP(&createOpts.name, "name", "n", "", "name of the new logical volume")
	f.StringVarP(&createOpts.size, "size", "L", "", "size, a positive integer in --unit")
	f.StringVar(&createOpts.unit, "unit", "G", "size unit: M, G or T")
	f.StringVar(&createOpts.segType, "type", "linear", "linear, striped, raid0, raid1, raid5, raid6 or raid10")
	f.StringVarP(&createOpts.stripes, "stripes", "i", "", "number of stripes")
	f.StringVarP(&createOpts.stripeSize, "stripe-size", "I", "", "stripe size in KiB")
	f.StringVarP(&createOpts.mirrors, "mirrors", "m", "", "number of mirrors")
	f.StringArrayVar(&createOpts.pvs, "pv", nil, "physical volume to allocate from, may be repeated")
	f.BoolVar(&createOpts.dryRun, "dry-run", false, "print the lvm command and exit")
	f.BoolVarP(&createOpts.yes, "yes", "y", false, "do not ask for confirmation")
	_ = createCmd.MarkFlagRequired("vg")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("size")
}
