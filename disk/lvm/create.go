package lvm

import (
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"
	"strconv"
	"strings"
)

type SizeUnit string

const (
	UnitMega        SizeUnit = "M"
	UnitGiga        SizeUnit = "G"
	UnitTera        SizeUnit = "T"
	UnitPercentFree SizeUnit = "%FREE"
	UnitPercentVG   SizeUnit = "%VG"
)

// Multiplier is the number of bytes in one unit. Percentage units have none.
func (u SizeUnit) Multiplier() (uint64, bool) {
	switch u {
	case UnitMega:
		return 1000 * 1000, true
	case UnitGiga:
		return 1000 * 1000 * 1000, true
	case UnitTera:
		return 1000 * 1000 * 1000 * 1000, true
	}
	return 0, false
}

func (u SizeUnit) IsPercent() bool {
	return u == UnitPercentFree || u == UnitPercentVG
}

// Topology carries the options that only make sense for one segment type.
// Zero-valued options are not passed to lvcreate.
type Topology interface {
	SegType() SegType
	options() []string
}

type Linear struct{}

func (Linear) SegType() SegType  { return SegTypeLinear }
func (Linear) options() []string { return nil }

// Striped covers the segment types that take a stripe count and stripe size:
// striped, raid0, raid5 and raid6. StripeSize is in KiB.
type Striped struct {
	Level      SegType
	Stripes    uint16
	StripeSize uint32
}

func (s Striped) SegType() SegType {
	if s.Level == "" {
		return SegTypeStriped
	}
	return s.Level
}

func (s Striped) options() []string {
	return stripeOptions(s.Stripes, s.StripeSize)
}

type RAID10 struct {
	Stripes    uint16
	StripeSize uint32
	Mirrors    uint16
}

func (RAID10) SegType() SegType { return SegTypeRaid10 }

func (r RAID10) options() []string {
	return append(stripeOptions(r.Stripes, r.StripeSize), mirrorOptions(r.Mirrors)...)
}

// Mirror is raid1.
type Mirror struct {
	Mirrors uint16
}

func (Mirror) SegType() SegType { return SegTypeRaid1 }

func (m Mirror) options() []string { return mirrorOptions(m.Mirrors) }

func stripeOptions(stripes uint16, stripeSize uint32) []string {
	opts := make([]string, 0, 4)
	if stripes > 0 {
		opts = append(opts, "-i", strconv.Itoa(int(stripes)))
	}
	if stripeSize > 0 {
		opts = append(opts, "-I", strconv.FormatUint(uint64(stripeSize), 10)+"k")
	}
	return opts
}

func mirrorOptions(mirrors uint16) []string {
	if mirrors == 0 {
		return nil
	}
	return []string{"-m", strconv.Itoa(int(mirrors))}
}

// NewTopology builds the variant for segType from loosely typed form input.
// Options the segment type does not take are ignored.
func NewTopology(segType SegType, stripes uint16, stripeSize uint32, mirrors uint16) (Topology, error) {
	switch segType {
	case SegTypeLinear, "":
		return Linear{}, nil
	case SegTypeStriped, SegTypeRaid0, SegTypeRaid5, SegTypeRaid6:
		return Striped{Level: segType, Stripes: stripes, StripeSize: stripeSize}, nil
	case SegTypeRaid10:
		return RAID10{Stripes: stripes, StripeSize: stripeSize, Mirrors: mirrors}, nil
	case SegTypeRaid1:
		return Mirror{Mirrors: mirrors}, nil
	}
	return nil, errors.Wrapf(ErrInvalidRequest, "unsupported segment type %q", segType)
}

// VolumeCreateRequest describes a logical volume to create. An empty
// PhysicalVolumes list lets lvm choose the devices.
type VolumeCreateRequest struct {
	Name            string
	VgName          string
	Size            string
	Unit            SizeUnit
	Topology        Topology
	PhysicalVolumes []string
}

// CreateCommand is a validated lvcreate invocation.
type CreateCommand struct {
	VgName  string
	LvName  string
	Bytes   uint64
	SegType SegType
	Options []string
	Devices []string
}

// Args is the argument list passed to the lvm binary.
func (c CreateCommand) Args() []string {
	args := []string{"lvcreate", "-y", "--type", string(c.SegType),
		"-L", strconv.FormatUint(c.Bytes, 10) + "b", "-n", c.LvName}
	args = append(args, c.Options...)
	args = append(args, c.VgName)
	return append(args, c.Devices...)
}

// String renders the command the way it would be typed, for confirmation
// prompts and logs.
func (c CreateCommand) String() string {
	return "lvm " + strings.Join(c.Args(), " ")
}

// BuildCreateCommand validates req and assembles the lvcreate arguments.
// It has no side effects, so a rejected request never reaches lvm.
func BuildCreateCommand(req VolumeCreateRequest) (CreateCommand, error) {
	if req.Unit.IsPercent() {
		return CreateCommand{}, errors.Wrapf(ErrNotImplemented, "size unit %s", req.Unit)
	}
	multiplier, ok := req.Unit.Multiplier()
	if !ok {
		return CreateCommand{}, errors.Wrapf(ErrInvalidRequest, "unknown size unit %q", req.Unit)
	}
	if strings.TrimSpace(req.Name) == "" {
		return CreateCommand{}, errors.Wrap(ErrInvalidRequest, "logical volume name is empty")
	}
	if strings.TrimSpace(req.VgName) == "" {
		return CreateCommand{}, errors.Wrap(ErrInvalidRequest, "volume group name is empty")
	}
	size, err := ParseSize(req.Size)
	if err != nil {
		return CreateCommand{}, err
	}
	bytes, err := mulBytes(size, multiplier)
	if err != nil {
		return CreateCommand{}, err
	}

	topology := req.Topology
	if topology == nil {
		topology = Linear{}
	}

	devices := make([]string, 0, len(req.PhysicalVolumes))
	for _, pv := range req.PhysicalVolumes {
		if pv = strings.TrimSpace(pv); pv != "" {
			devices = append(devices, pv)
		}
	}
	devices = funk.UniqString(devices)

	return CreateCommand{
		VgName:  strings.TrimSpace(req.VgName),
		LvName:  strings.TrimSpace(req.Name),
		Bytes:   bytes,
		SegType: topology.SegType(),
		Options: topology.options(),
		Devices: devices,
	}, nil
}
