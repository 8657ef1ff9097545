package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/hmd"
	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/backend/sim"
	"github.com/gogpu/hmd/internal/glstate"
	"github.com/gogpu/hmd/pose"
	"github.com/gogpu/hmd/session"
	"github.com/gogpu/hmd/swapchain"
)

// options holds the command-line configuration.
type options struct {
	backend  string
	width    int
	height   int
	frames   int
	teardown string
	verbose  bool
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.backend, "backend", "", "runtime to use (default: preferred registered runtime)")
	fs.IntVar(&o.width, "width", 1344, "per-eye swap chain width")
	fs.IntVar(&o.height, "height", 1600, "per-eye swap chain height")
	fs.IntVar(&o.frames, "frames", 3, "number of frames to render")
	fs.StringVar(&o.teardown, "teardown", session.TeardownNever.String(), "session teardown policy (never|on-zero)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log runtime activity to stderr")
}

// NewRootCmd builds the hmddemo command.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "hmddemo",
		Short:         "Render frames into a head-mounted display swap chain",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose {
				hmd.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
				defer hmd.SetLogger(nil)
			}
			return run(cmd.OutOrStdout(), opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func run(out io.Writer, opts *options) error {
	policy, err := session.ParseTeardownPolicy(opts.teardown)
	if err != nil {
		return err
	}
	if opts.frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.frames)
	}

	rt, err := selectRuntime(opts.backend)
	if err != nil {
		return err
	}

	mgr := session.NewManager(rt, session.WithTeardownPolicy(policy))
	defer mgr.Shutdown()

	sess, err := mgr.Acquire()
	if err != nil {
		return err
	}
	adapter := sess.Adapter()
	fmt.Fprintf(out, "runtime: %s\n", rt.Name())
	fmt.Fprintf(out, "session: %s\n", sess.ID())
	fmt.Fprintf(out, "adapter: %s (%s)\n", adapter.Name, adapter.Type)

	gl := glstate.New()
	target, err := swapchain.New(sess, gl)
	if err != nil {
		return err
	}
	defer target.Destroy()

	if err := target.Resize(opts.width, opts.height); err != nil {
		return err
	}
	fmt.Fprintf(out, "swap chain: %dx%d %s x%d\n", target.Width(), target.Height(), target.Format(), target.Length())

	feeder, _ := rt.(*sim.Runtime)
	for frame := range opts.frames {
		if feeder != nil {
			feedHands(feeder, frame)
		}
		if err := renderFrame(out, sess, target, frame); err != nil {
			return err
		}
	}

	target.Destroy()
	if errs := gl.Errors(); len(errs) > 0 {
		return fmt.Errorf("graphics state: %v", errs[0])
	}
	if err := mgr.Release(sess); err != nil {
		return err
	}
	fmt.Fprintf(out, "released: refs=%d policy=%s open=%t\n", mgr.RefCount(), mgr.Policy(), sess.Valid())
	return nil
}

func selectRuntime(name string) (backend.Runtime, error) {
	if name == "" {
		if rt := backend.Default(); rt != nil {
			return rt, nil
		}
		return nil, hmd.ErrUnavailable
	}
	rt := backend.Get(name)
	if rt == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(backend.Available(), ", "))
	}
	return rt, nil
}

func renderFrame(out io.Writer, sess *session.Session, target *swapchain.Target, frame int) error {
	if err := target.Bind(swapchain.FramebufferDraw); err != nil {
		return err
	}
	tex := target.Attached()
	if err := target.Unbind(swapchain.FramebufferDraw); err != nil {
		return err
	}
	if err := target.Commit(); err != nil {
		return err
	}

	fmt.Fprintf(out, "frame %d: texture %d\n", frame, tex)
	for _, hand := range []pose.Handedness{pose.Left, pose.Right} {
		p, err := sess.HandPose(hand)
		if err != nil {
			fmt.Fprintf(out, "  %-5s untracked\n", hand)
			continue
		}
		fmt.Fprintf(out, "  %-5s t=%v r=%v\n", hand, p.Translation, p.Rotation)
	}
	return nil
}

// feedHands moves both simulated controllers on a slow circle in front of
// the viewer, turning them about the vertical axis.
func feedHands(rt *sim.Runtime, frame int) {
	angle := float64(frame) * math.Pi / 30
	for _, hand := range []pose.Handedness{pose.Left, pose.Right} {
		side := 0.2
		if hand == pose.Left {
			side = -side
		}
		rt.SetHandState(hand, pose.PoseState{
			Position:        pose.V3(side+0.05*math.Cos(angle), 1.2+0.05*math.Sin(angle), -0.4),
			Orientation:     pose.AngleAxis(angle, pose.UnitY),
			LinearVelocity:  pose.V3(-0.05*math.Sin(angle), 0.05*math.Cos(angle), 0),
			AngularVelocity: pose.V3(0, math.Pi/30, 0),
		})
	}
}
