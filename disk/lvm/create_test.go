package lvm_test

import (
	"github.com/pkg/errors"
	gc "gopkg.in/check.v1"

	"github.com/kisun-bit/lvmctl/disk/lvm"
)

type createSuite struct{}

var _ = gc.Suite(&createSuite{})

func (s *createSuite) TestLinear(c *gc.C) {
	cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name:   "data",
		VgName: "vg01",
		Size:   "10",
		Unit:   lvm.UnitGiga,
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.Bytes, gc.Equals, uint64(10000000000))
	c.Assert(cmd.SegType, gc.Equals, lvm.SegTypeLinear)
	c.Assert(cmd.Args(), gc.DeepEquals, []string{
		"lvcreate", "-y", "--type", "linear", "-L", "10000000000b", "-n", "data", "vg01",
	})
	c.Assert(cmd.String(), gc.Equals, "lvm lvcreate -y --type linear -L 10000000000b -n data vg01")
}

func (s *createSuite) TestUnitMultipliers(c *gc.C) {
	for _, t := range []struct {
		unit lvm.SizeUnit
		want uint64
	}{
		{lvm.UnitMega, 3000000},
		{lvm.UnitGiga, 3000000000},
		{lvm.UnitTera, 3000000000000},
	} {
		cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
			Name: "data", VgName: "vg01", Size: "3", Unit: t.unit, Topology: lvm.Linear{},
		})
		c.Check(err, gc.IsNil)
		c.Check(cmd.Bytes, gc.Equals, t.want, gc.Commentf("unit %s", t.unit))
	}
}

func (s *createSuite) TestRaid10OmitsUnsetMirrors(c *gc.C) {
	topology, err := lvm.NewTopology(lvm.SegTypeRaid10, 2, 0, 0)
	c.Assert(err, gc.IsNil)
	cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name: "fast", VgName: "vg01", Size: "100", Unit: lvm.UnitGiga, Topology: topology,
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.SegType, gc.Equals, lvm.SegTypeRaid10)
	c.Assert(cmd.Options, gc.DeepEquals, []string{"-i", "2"})
	for _, arg := range cmd.Args() {
		c.Check(arg, gc.Not(gc.Equals), "-m")
		c.Check(arg, gc.Not(gc.Equals), "")
	}
}

func (s *createSuite) TestRaid10AllOptions(c *gc.C) {
	cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name: "fast", VgName: "vg01", Size: "100", Unit: lvm.UnitGiga,
		Topology: lvm.RAID10{Stripes: 2, StripeSize: 64, Mirrors: 1},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.Options, gc.DeepEquals, []string{"-i", "2", "-I", "64k", "-m", "1"})
}

func (s *createSuite) TestRaid5WithDevices(c *gc.C) {
	cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name:            "lvpub",
		VgName:          "vg01",
		Size:            "30",
		Unit:            lvm.UnitGiga,
		Topology:        lvm.Striped{Level: lvm.SegTypeRaid5, Stripes: 3},
		PhysicalVolumes: []string{"/dev/sdb1", " /dev/sdc1 ", "/dev/sdb1", "", "/dev/sdd1", "/dev/sde1"},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.Devices, gc.DeepEquals, []string{"/dev/sdb1", "/dev/sdc1", "/dev/sdd1", "/dev/sde1"})
	c.Assert(cmd.Args(), gc.DeepEquals, []string{
		"lvcreate", "-y", "--type", "raid5", "-L", "30000000000b", "-n", "lvpub", "-i", "3",
		"vg01", "/dev/sdb1", "/dev/sdc1", "/dev/sdd1", "/dev/sde1",
	})
}

func (s *createSuite) TestMirrorAndStriped(c *gc.C) {
	cmd, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name: "m", VgName: "vg01", Size: "1", Unit: lvm.UnitGiga, Topology: lvm.Mirror{Mirrors: 1},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.SegType, gc.Equals, lvm.SegTypeRaid1)
	c.Assert(cmd.Options, gc.DeepEquals, []string{"-m", "1"})

	cmd, err = lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name: "s", VgName: "vg01", Size: "1", Unit: lvm.UnitGiga, Topology: lvm.Striped{StripeSize: 128},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.SegType, gc.Equals, lvm.SegTypeStriped)
	c.Assert(cmd.Options, gc.DeepEquals, []string{"-I", "128k"})

	cmd, err = lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
		Name: "l", VgName: "vg01", Size: "1", Unit: lvm.UnitGiga, Topology: lvm.Linear{},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(cmd.Options, gc.HasLen, 0)
	c.Assert(cmd.Devices, gc.HasLen, 0)
}

func (s *createSuite) TestNewTopology(c *gc.C) {
	for _, t := range []struct {
		segType lvm.SegType
		want    lvm.Topology
	}{
		{"", lvm.Linear{}},
		{lvm.SegTypeLinear, lvm.Linear{}},
		{lvm.SegTypeStriped, lvm.Striped{Level: lvm.SegTypeStriped, Stripes: 2, StripeSize: 64}},
		{lvm.SegTypeRaid0, lvm.Striped{Level: lvm.SegTypeRaid0, Stripes: 2, StripeSize: 64}},
		{lvm.SegTypeRaid6, lvm.Striped{Level: lvm.SegTypeRaid6, Stripes: 2, StripeSize: 64}},
		{lvm.SegTypeRaid1, lvm.Mirror{Mirrors: 3}},
		{lvm.SegTypeRaid10, lvm.RAID10{Stripes: 2, StripeSize: 64, Mirrors: 3}},
	} {
		got, err := lvm.NewTopology(t.segType, 2, 64, 3)
		c.Check(err, gc.IsNil)
		c.Check(got, gc.DeepEquals, t.want, gc.Commentf("%q", t.segType))
	}

	_, err := lvm.NewTopology("thin-pool", 0, 0, 0)
	c.Assert(errors.Cause(err), gc.Equals, lvm.ErrInvalidRequest)
}

func (s *createSuite) TestPercentUnitsNotImplemented(c *gc.C) {
	for _, unit := range []lvm.SizeUnit{lvm.UnitPercentFree, lvm.UnitPercentVG} {
		_, err := lvm.BuildCreateCommand(lvm.VolumeCreateRequest{
			Name: "data", VgName: "vg01", Size: "100", Unit: unit,
		})
		c.Check(errors.Cause(err), gc.Equals, lvm.ErrNotImplemented, gc.Commentf("%s", unit))
	}
}

func (s *createSuite) TestInvalidRequests(c *gc.C) {
	valid := lvm.VolumeCreateRequest{Name: "data", VgName: "vg01", Size: "10", Unit: lvm.UnitGiga}
	for i, t := range []struct {
		mutate func(*lvm.VolumeCreateRequest)
		cause  error
	}{
		{func(r *lvm.VolumeCreateRequest) { r.Unit = "K" }, lvm.ErrInvalidRequest},
		{func(r *lvm.VolumeCreateRequest) { r.Name = "  " }, lvm.ErrInvalidRequest},
		{func(r *lvm.VolumeCreateRequest) { r.VgName = "" }, lvm.ErrInvalidRequest},
		{func(r *lvm.VolumeCreateRequest) { r.Size = "0" }, lvm.ErrInvalidRequest},
		{func(r *lvm.VolumeCreateRequest) { r.Size = "ten" }, lvm.ErrMalformedNumber},
		{func(r *lvm.VolumeCreateRequest) { r.Size = "-1" }, lvm.ErrMalformedNumber},
		{func(r *lvm.VolumeCreateRequest) { r.Size, r.Unit = "18446744073709551615", lvm.UnitTera }, lvm.ErrMalformedNumber},
	} {
		req := valid
		t.mutate(&req)
		_, err := lvm.BuildCreateCommand(req)
		c.Check(errors.Cause(err), gc.Equals, t.cause, gc.Commentf("case %d", i))
	}
}
