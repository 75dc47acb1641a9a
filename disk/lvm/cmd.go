package lvm

import (
	"strings"
)

const reportSeparator = ","

// reportArgs are shared by every report: no headings, byte units with the
// "B" suffix kept, and a separator that never appears inside a column.
func reportArgs(subcommand string, columns []string) []string {
	return []string{subcommand, "--noheadings", "--units", "b", "--separator", reportSeparator,
		"-o", strings.Join(columns, ",")}
}

func ArgsForVgNames() []string {
	return []string{"vgs", "--noheadings", "-o", "vg_name"}
}

func ArgsForVgs(filterVgNames ...string) []string {
	return append(reportArgs("vgs", vgColumns), filterVgNames...)
}

func ArgsForPvs(filterDevices ...string) []string {
	return append(reportArgs("pvs", pvColumns), filterDevices...)
}

// ArgsForLvs includes hidden sub-volumes (-a) so RAID trees can be rebuilt.
func ArgsForLvs(filterVgNames ...string) []string {
	columns := append(append([]string{}, lvColumns...), "seg_pe_ranges")
	args := append(reportArgs("lvs", columns), "-a")
	return append(args, filterVgNames...)
}

// ArgsForLvSegments queries the extent ranges of one volume, vg/lv form.
func ArgsForLvSegments(vgName, lvName string) []string {
	return []string{"lvs", "--noheadings", "--separator", reportSeparator, "-a",
		"-o", "seg_pe_ranges", vgName + "/" + stripBrackets(lvName)}
}

func ArgsForLvmVersion() []string {
	return []string{"version"}
}
