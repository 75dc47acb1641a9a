package lvm

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"strconv"
)

type VolumeGroup struct {
	Name    string `json:"name"`
	Size    uint64 `json:"size"`
	Free    uint64 `json:"free"`
	PvCount uint16 `json:"pv_count"`
	Attr    string `json:"attr"`
	UUID    string `json:"uuid"`
}

// VG attributes
const (
	VG_ATTR_WRITABLE = 1 << iota
	VG_ATTR_READONLY
	VG_ATTR_RESIZABLE
	VG_ATTR_EXPORTED
	VG_ATTR_PARTIAL
	VG_ATTR_CONTIGUOUS
	VG_ATTR_CLING
	VG_ATTR_NORMAL
	VG_ATTR_ANYWHERE
	VG_ATTR_CLUSTERED
	VG_ATTR_SHARED
)

// ParseVgAttrs decodes the six vg_attr characters.
func ParseVgAttrs(attrStr string) (int, error) {
	if len(attrStr) < 6 {
		return -1, fmt.Errorf("invalid vg_attr: %q", attrStr)
	}
	attrVal := 0
	switch attrStr[5] {
	case 'c':
		attrVal |= VG_ATTR_CLUSTERED
	case 's':
		attrVal |= VG_ATTR_SHARED
	case '-':
	default:
		return -1, fmt.Errorf("invalid vg_attr[5]: %s", attrStr)
	}
	switch attrStr[4] {
	case 'c':
		attrVal |= VG_ATTR_CONTIGUOUS
	case 'l':
		attrVal |= VG_ATTR_CLING
	case 'n':
		attrVal |= VG_ATTR_NORMAL
	case 'a':
		attrVal |= VG_ATTR_ANYWHERE
	default:
		return -1, fmt.Errorf("invalid vg_attr[4]: %s", attrStr)
	}
	if attrStr[3] != '-' {
		attrVal |= VG_ATTR_PARTIAL
	}
	if attrStr[2] != '-' {
		attrVal |= VG_ATTR_EXPORTED
	}
	if attrStr[1] != '-' {
		attrVal |= VG_ATTR_RESIZABLE
	}
	switch attrStr[0] {
	case 'w':
		attrVal |= VG_ATTR_WRITABLE
	case 'r':
		attrVal |= VG_ATTR_READONLY
	default:
		return -1, fmt.Errorf("invalid vg_attr[0]: %s", attrStr)
	}
	return attrVal, nil
}

// Flags returns the decoded attribute bits, or 0 when the attr column is unreadable.
func (v VolumeGroup) Flags() int {
	f, err := ParseVgAttrs(v.Attr)
	if err != nil {
		return 0
	}
	return f
}

func (v VolumeGroup) Used() uint64 {
	if v.Free > v.Size {
		return 0
	}
	return v.Size - v.Free
}

// UsedPercent is in the range [0, 100].
func (v VolumeGroup) UsedPercent() float64 {
	if v.Size == 0 {
		return 0
	}
	return float64(v.Used()) * 100 / float64(v.Size)
}

func (v VolumeGroup) IsWritable() bool  { return v.Flags()&VG_ATTR_WRITABLE > 0 }
func (v VolumeGroup) IsReadonly() bool  { return v.Flags()&VG_ATTR_READONLY > 0 }
func (v VolumeGroup) IsResizable() bool { return v.Flags()&VG_ATTR_RESIZABLE > 0 }
func (v VolumeGroup) IsExported() bool  { return v.Flags()&VG_ATTR_EXPORTED > 0 }
func (v VolumeGroup) IsPartial() bool   { return v.Flags()&VG_ATTR_PARTIAL > 0 }
func (v VolumeGroup) IsClustered() bool { return v.Flags()&VG_ATTR_CLUSTERED > 0 }
func (v VolumeGroup) IsShared() bool    { return v.Flags()&VG_ATTR_SHARED > 0 }

// AllocationPolicy names the policy encoded in vg_attr[4].
func (v VolumeGroup) AllocationPolicy() string {
	f := v.Flags()
	switch {
	case f&VG_ATTR_CONTIGUOUS > 0:
		return "contiguous"
	case f&VG_ATTR_CLING > 0:
		return "cling"
	case f&VG_ATTR_NORMAL > 0:
		return "normal"
	case f&VG_ATTR_ANYWHERE > 0:
		return "anywhere"
	}
	return ""
}

// NameValue is one row of a detail view.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Info lists the properties shown by the volume group detail view.
func (v VolumeGroup) Info() []NameValue {
	return []NameValue{
		{Name: "VG Name", Value: v.Name},
		{Name: "Format", Value: "lvm2"},
		{Name: "VG Size", Value: humanize.Bytes(v.Size)},
		{Name: "Free", Value: humanize.Bytes(v.Free)},
		{Name: "Used", Value: strconv.FormatFloat(v.UsedPercent(), 'f', 1, 64) + "%"},
		{Name: "PV Count", Value: strconv.Itoa(int(v.PvCount))},
		{Name: "Attr", Value: v.Attr},
		{Name: "VG UUID", Value: v.UUID},
	}
}

// Brief, e.g. VG-vg01[LVM]:(Used/Total:12 GB/120 GB)
func (v VolumeGroup) Brief() string {
	return fmt.Sprintf("VG-%s[LVM]:(Used/Total:%s/%s)", v.Name, humanize.Bytes(v.Used()), humanize.Bytes(v.Size))
}
