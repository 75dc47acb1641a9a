package lvm

import (
	"context"
	"github.com/kisun-bit/lvmctl/util/basic"
	"github.com/kisun-bit/lvmctl/util/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"strings"
	"time"
)

const (
	DefaultLVMPath        = "/sbin/lvm"
	DefaultCommandTimeout = 30 * time.Second
)

// Client reads lvm reports and creates logical volumes through the lvm binary.
type Client struct {
	lvmPath       string
	runner        Runner
	log           *zap.SugaredLogger
	segmentDetail bool
}

type ClientOption func(*Client)

// WithLVM sets the path of the lvm executable.
func WithLVM(path string) ClientOption {
	return func(c *Client) {
		c.lvmPath = path
	}
}

func WithRunner(r Runner) ClientOption {
	return func(c *Client) {
		c.runner = r
	}
}

func WithLogger(l *zap.SugaredLogger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithSegmentDetail makes Refresh run one segment query per RAID volume
// instead of resolving sub-volumes from the lvs report alone.
func WithSegmentDetail(enabled bool) ClientOption {
	return func(c *Client) {
		c.segmentDetail = enabled
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		lvmPath: DefaultLVMPath,
		runner:  ExecRunner{Timeout: DefaultCommandTimeout},
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// report runs a report command and returns its stdout.
func (c *Client) report(ctx context.Context, args []string) (string, error) {
	line := c.commandLine(args)
	c.log.Debugf("run `%s`", line)
	r, err := c.runner.Run(ctx, c.lvmPath, args...)
	if err != nil {
		c.log.Warnf("failed to run `%s`: %v", line, err)
		return "", err
	}
	if r.Exit != 0 {
		c.log.Warnf("`%s` returned %d. error_output=`%s`", line, r.Exit, r.Stderr)
		return "", &CommandError{Command: line, ExitCode: r.Exit, Stderr: r.Stderr, Err: ErrReportFailed}
	}
	return r.Stdout, nil
}

func (c *Client) commandLine(args []string) string {
	return c.lvmPath + " " + strings.Join(args, " ")
}

// Version returns the first line of `lvm version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	o, err := c.report(ctx, ArgsForLvmVersion())
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(strings.TrimSpace(o), "\n")
	return strings.TrimSpace(first), nil
}

func (c *Client) VolumeGroupNames(ctx context.Context) ([]string, error) {
	o, err := c.report(ctx, ArgsForVgNames())
	if err != nil {
		return nil, err
	}
	return ParseVolumeGroupNames(o), nil
}

func (c *Client) VolumeGroups(ctx context.Context, filterVgNames ...string) ([]VolumeGroup, error) {
	o, err := c.report(ctx, ArgsForVgs(filterVgNames...))
	if err != nil {
		return nil, err
	}
	return ParseVolumeGroups(o)
}

func (c *Client) VolumeGroup(ctx context.Context, name string) (VolumeGroup, error) {
	vgs, err := c.VolumeGroups(ctx, name)
	if err != nil {
		return VolumeGroup{}, err
	}
	if len(vgs) == 0 {
		return VolumeGroup{}, errors.Wrapf(ErrNotFound, "volume group %s", name)
	}
	return vgs[0], nil
}

func (c *Client) PhysicalVolumes(ctx context.Context, filterDevices ...string) ([]PhysicalVolume, error) {
	o, err := c.report(ctx, ArgsForPvs(filterDevices...))
	if err != nil {
		return nil, err
	}
	return ParsePhysicalVolumes(o)
}

func (c *Client) LogicalVolumes(ctx context.Context, filterVgNames ...string) ([]LogicalVolume, error) {
	o, err := c.report(ctx, ArgsForLvs(filterVgNames...))
	if err != nil {
		return nil, err
	}
	return ParseLogicalVolumes(o)
}

// SegmentDevices runs the dedicated segment query for one volume and returns
// each device it mentions once. Sub-volume references are not followed.
func (c *Client) SegmentDevices(ctx context.Context, vgName, lvName string) ([]Segment, error) {
	o, err := c.report(ctx, ArgsForLvSegments(vgName, lvName))
	if err != nil {
		return nil, err
	}
	return ResolveSegmentDevices(o)
}

// ResolveBackingDevices follows a volume's sub-volume references with one
// segment query per level until only real devices are left.
func (c *Client) ResolveBackingDevices(ctx context.Context, vgName, lvName string) ([]Segment, error) {
	segs, err := c.SegmentDevices(ctx, vgName, lvName)
	if err != nil {
		return nil, err
	}
	return Flatten(segs, func(name string) ([]Segment, error) {
		return c.SegmentDevices(ctx, vgName, name)
	})
}

// Refresh reads volume groups, physical volumes and logical volumes, in that
// order, and builds a new inventory. Any failure discards the partial result.
func (c *Client) Refresh(ctx context.Context) (*Inventory, error) {
	start := time.Now()
	vgs, err := c.VolumeGroups(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refresh volume groups")
	}
	pvs, err := c.PhysicalVolumes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refresh physical volumes")
	}
	lvs, err := c.LogicalVolumes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refresh logical volumes")
	}
	inv := NewInventory(vgs, pvs, lvs)

	if c.segmentDetail {
		devices := make(map[string][]Segment)
		for _, lv := range lvs {
			if lv.IsSubVolume() || !lv.SegType.IsRaid() {
				continue
			}
			if basic.Cancelled(ctx) {
				return nil, errors.Wrap(ctx.Err(), "refresh segments")
			}
			segs, err := c.ResolveBackingDevices(ctx, lv.VgName, lv.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "refresh segments of %s", lv.FullName())
			}
			devices[lv.key()] = segs
		}
		inv = inv.withDevices(devices)
	}

	c.log.Debugf("inventory refreshed: %d vgs, %d pvs, %d lvs in %v",
		len(vgs), len(pvs), len(lvs), time.Since(start))
	return inv, nil
}

// CreateVolume validates req, runs lvcreate and returns the new volume's name.
// Nothing is run when validation fails. Failures are not retried.
func (c *Client) CreateVolume(ctx context.Context, req VolumeCreateRequest) (string, error) {
	command, err := BuildCreateCommand(req)
	if err != nil {
		return "", err
	}
	line := c.commandLine(command.Args())
	c.log.Infof("run `%s`", line)
	r, err := c.runner.Run(ctx, c.lvmPath, command.Args()...)
	if err != nil {
		c.log.Warnf("failed to run `%s`: %v", line, err)
		if errors.Is(err, ErrLaunchFailed) || errors.Is(err, ErrTimeout) {
			return "", err
		}
		return "", errors.Wrap(ErrLaunchFailed, err.Error())
	}
	if r.Exit != 0 {
		c.log.Warnf("failed to create logical volume named %s. return-code=%d error_output=`%s`",
			command.LvName, r.Exit, r.Stderr)
		return "", &CommandError{Command: line, ExitCode: r.Exit, Stderr: r.Stderr, Err: ErrCreationFailed}
	}
	return command.LvName, nil
}
