package lvm

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/thoas/go-funk"
	"strings"
)

type SegType string

const (
	SegTypeLinear  SegType = "linear"
	SegTypeStriped SegType = "striped"
	SegTypeRaid0   SegType = "raid0"
	SegTypeRaid1   SegType = "raid1"
	SegTypeRaid5   SegType = "raid5"
	SegTypeRaid6   SegType = "raid6"
	SegTypeRaid10  SegType = "raid10"
)

var knownSegTypes = []string{
	string(SegTypeLinear), string(SegTypeStriped), string(SegTypeRaid0), string(SegTypeRaid1),
	string(SegTypeRaid5), string(SegTypeRaid6), string(SegTypeRaid10),
}

// Known reports whether lvmctl understands the topology. Other segtypes
// (thin, cache, ...) are kept verbatim in records.
func (s SegType) Known() bool {
	return funk.ContainsString(knownSegTypes, string(s))
}

func (s SegType) IsRaid() bool {
	return strings.HasPrefix(string(s), "raid")
}

// Segment is a contiguous extent range on Device. Device is a device path or,
// inside a RAID tree, a bracketed sub-volume name.
type Segment struct {
	Device string `json:"device"`
	Start  uint64 `json:"start"`
	Count  uint64 `json:"count"`
}

// End is the last extent of the range; it equals Start for an empty range.
func (s Segment) End() uint64 {
	if s.Count == 0 {
		return s.Start
	}
	return s.Start + s.Count - 1
}

// IsSubVolumeRef reports whether Device names another logical volume.
func (s Segment) IsSubVolumeRef() bool {
	return isBracketed(s.Device)
}

type LogicalVolume struct {
	Name        string    `json:"name"`
	VgName      string    `json:"vg_name"`
	Size        uint64    `json:"size"`
	Attr        string    `json:"attr"`
	SegType     SegType   `json:"segtype"`
	UUID        string    `json:"uuid"`
	Stripes     uint16    `json:"stripes"`
	DataStripes uint16    `json:"data_stripes"`
	Parent      string    `json:"parent,omitempty"`
	Segments    []Segment `json:"segments"`
}

// IsSubVolume is true for RAID images/metadata and other hidden volumes; they are
// never offered to the user as independent volumes.
func (l LogicalVolume) IsSubVolume() bool {
	return l.Parent != "" || isBracketed(l.Name)
}

// PlainName is the name without the brackets lvm puts around hidden volumes.
func (l LogicalVolume) PlainName() string {
	return stripBrackets(l.Name)
}

// FullName is the vg/lv form accepted by the lvm commands.
func (l LogicalVolume) FullName() string {
	return l.VgName + "/" + l.PlainName()
}

func (l LogicalVolume) key() string {
	return lvKey(l.VgName, l.Name)
}

// Brief, e.g. LV-vg01/lvpub[raid5]:(Size:30 GB)
func (l LogicalVolume) Brief() string {
	return fmt.Sprintf("LV-%s/%s[%s]:(Size:%s)", l.VgName, l.Name, l.SegType, humanize.Bytes(l.Size))
}

// LV attribute positions
const (
	LV_ATTR_VOL_TYPE = iota
	LV_ATTR_PERMISSIONS
	LV_ATTR_ALLOC_POLICY
	LV_ATTR_FIXED
	LV_ATTR_STATE
	LV_ATTR_DEVICE
	LV_ATTR_TARGET_TYPE
	LV_ATTR_BLOCKS
	LV_ATTR_HEALTH
	LV_ATTR_SKIP
)

const (
	LV_ATTR_VOL_TYPE_RAID         = 'r'
	LV_ATTR_VOL_TYPE_RAID_NOSYNC  = 'R'
	LV_ATTR_VOL_TYPE_IMAGE        = 'i'
	LV_ATTR_VOL_TYPE_IMAGE_NOSYNC = 'I'
	LV_ATTR_VOL_TYPE_META         = 'e'
	LV_ATTR_VOL_TYPE_MIRROR       = 'm'
	LV_ATTR_VOL_TYPE_THIN_POOL    = 't'
	LV_ATTR_VOL_TYPE_THIN_VOLUME  = 'V'
	LV_ATTR_VOL_TYPE_SNAPSHOT     = 's'
	LV_ATTR_VOL_TYPE_ORIGIN       = 'o'
	LV_ATTR_VOL_TYPE_NONE         = '-'
	LV_ATTR_STATE_ACTIVE          = 'a'
	LV_ATTR_PERMISSIONS_WRITEABLE = 'w'
	LV_ATTR_PERMISSIONS_READ_ONLY = 'r'
	LV_ATTR_TARGET_TYPE_RAID      = 'r'
	LV_ATTR_HEALTH_PARTIAL        = 'p'
	LV_ATTR_HEALTH_REFRESH_NEEDED = 'r'
	LV_ATTR_HEALTH_MISMATCHES     = 'm'
	LV_ATTR_HEALTH_WRITEMOSTLY    = 'w'
	LV_ATTR_HEALTH_UNKNOWN        = 'X'
)

// ParseLvAttrs splits lv_attr into its positional characters. lvm prints
// ten characters, older releases fewer; missing positions read as '-'.
func ParseLvAttrs(attrStr string) ([10]byte, error) {
	var attrs [10]byte
	if len(attrStr) < 6 || len(attrStr) > 10 {
		return attrs, fmt.Errorf("invalid lv_attr: %q", attrStr)
	}
	for i := range attrs {
		attrs[i] = '-'
		if i < len(attrStr) {
			attrs[i] = attrStr[i]
		}
	}
	return attrs, nil
}

func (l LogicalVolume) attr(pos int) byte {
	attrs, err := ParseLvAttrs(l.Attr)
	if err != nil {
		return 0
	}
	return attrs[pos]
}

func (l LogicalVolume) IsActive() bool {
	return l.attr(LV_ATTR_STATE) == LV_ATTR_STATE_ACTIVE
}

func (l LogicalVolume) IsWritable() bool {
	return l.attr(LV_ATTR_PERMISSIONS) == LV_ATTR_PERMISSIONS_WRITEABLE
}

// IsPartial reports a RAID volume running with a missing device.
func (l LogicalVolume) IsPartial() bool {
	return l.attr(LV_ATTR_HEALTH) == LV_ATTR_HEALTH_PARTIAL
}

func lvKey(vg, lv string) string {
	return vg + "/" + stripBrackets(lv)
}

func isBracketed(name string) bool {
	return len(name) >= 2 && name[0] == '[' && name[len(name)-1] == ']'
}

func stripBrackets(name string) string {
	if isBracketed(name) {
		return name[1 : len(name)-1]
	}
	return name
}
