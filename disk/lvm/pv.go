package lvm

import (
	"fmt"
	"github.com/dustin/go-humanize"
)

// PhysicalVolume belongs to VgName by name only; an empty VgName means unassigned.
// Size, Free, Attr and UUID are zero when the report did not carry them.
type PhysicalVolume struct {
	Path   string `json:"path"`
	VgName string `json:"vg_name"`
	Size   uint64 `json:"size,omitempty"`
	Free   uint64 `json:"free,omitempty"`
	Attr   string `json:"attr,omitempty"`
	UUID   string `json:"uuid,omitempty"`
}

// PV attributes
const (
	PV_ATTR_MISSING = 1 << iota
	PV_ATTR_EXPORTED
	PV_ATTR_DUPLICATE
	PV_ATTR_ALLOCATABLE
	PV_ATTR_USED
)

func ParsePvAttrs(attrStr string) (int, error) {
	if len(attrStr) < 3 {
		return -1, fmt.Errorf("invalid pv_attr: %q", attrStr)
	}
	attrVal := 0
	if attrStr[2] != '-' {
		attrVal |= PV_ATTR_MISSING
	}
	if attrStr[1] != '-' {
		attrVal |= PV_ATTR_EXPORTED
	}
	switch attrStr[0] {
	case 'd':
		attrVal |= PV_ATTR_DUPLICATE
	case 'a':
		attrVal |= PV_ATTR_ALLOCATABLE
	case 'u':
		attrVal |= PV_ATTR_USED
	case '-':
	default:
		return -1, fmt.Errorf("invalid pv_attr: %s", attrStr)
	}
	return attrVal, nil
}

func (p PhysicalVolume) Flags() int {
	f, err := ParsePvAttrs(p.Attr)
	if err != nil {
		return 0
	}
	return f
}

func (p PhysicalVolume) IsAssigned() bool    { return p.VgName != "" }
func (p PhysicalVolume) IsMissing() bool     { return p.Flags()&PV_ATTR_MISSING > 0 }
func (p PhysicalVolume) IsExported() bool    { return p.Flags()&PV_ATTR_EXPORTED > 0 }
func (p PhysicalVolume) IsAllocatable() bool { return p.Flags()&PV_ATTR_ALLOCATABLE > 0 }

// Brief, e.g. PV-/dev/sda3[LVM]:(Used/Total:-/40 GB)
func (p PhysicalVolume) Brief() string {
	if p.Size == 0 {
		return fmt.Sprintf("PV-%s[LVM]:(Used/Total:-/-)", p.Path)
	}
	used := uint64(0)
	if p.Free <= p.Size {
		used = p.Size - p.Free
	}
	return fmt.Sprintf("PV-%s[LVM]:(Used/Total:%s/%s)", p.Path, humanize.Bytes(used), humanize.Bytes(p.Size))
}
