// Command oneline plans a single continuous pen path through a strokes file.
//
//	oneline -strokes face.yaml [-config oneline.yaml] [-out plan.yaml] [-png preview.png]
//
// The plan is written as YAML to -out, or to stdout. With -png, the traced
// pen trajectory is rendered to a preview image.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/penplot/oneline"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

type options struct {
	config  string
	strokes string
	out     string
	png     string
	size    int
	debug   bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("oneline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.config, "config", "", "config `file` (YAML); defaults apply when empty")
	fs.StringVar(&o.strokes, "strokes", "", "strokes `file` (YAML)")
	fs.StringVar(&o.out, "out", "", "write the plan to `file` instead of stdout")
	fs.StringVar(&o.png, "png", "", "render the traced path to `file`")
	fs.IntVar(&o.size, "size", 1080, "preview size in pixels")
	fs.BoolVar(&o.debug, "debug", false, "log every search attempt")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.strokes == "" {
		return options{}, errors.New("-strokes is required")
	}
	if o.size < 16 {
		return options{}, errors.Errorf("-size %d is too small", o.size)
	}
	return o, nil
}

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	o, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		klog.Fatalf("%v", err)
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	oneline.SetLogger(slog.New(newKlogHandler(level)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, o, os.Stdout)
	stop()
	if err != nil {
		klog.Errorf("%+v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	cfg := oneline.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = oneline.LoadConfig(o.config); err != nil {
			return err
		}
	}

	strokes, err := readStrokesFile(o.strokes)
	if err != nil {
		return err
	}
	st := oneline.NewStore(strokes)
	if err := st.Validate(); err != nil {
		klog.Warningf("%s: %v; such strokes are never drawn", o.strokes, err)
	}

	planner, err := oneline.NewPlanner(st, cfg)
	if err != nil {
		return err
	}
	klog.Infof("%d strokes, %d links within %g", st.Len(), planner.Graph().Edges(), planner.Config().Cutoff)

	plan, err := planner.Plan(ctx, nil)
	if err != nil {
		return err
	}
	if plan.Empty() {
		klog.Warningf("no path found after %d attempts", plan.Attempts)
	}

	if err := writePlan(o.out, plan, stdout); err != nil {
		return err
	}

	if o.png != "" {
		samples, err := planner.Trace(plan)
		if err != nil {
			return err
		}
		if err := savePreview(o.png, renderPreview(samples, st.BoundingBox(), o.size)); err != nil {
			return err
		}
		klog.Infof("%d pen samples rendered to %s", len(samples), o.png)
	}
	return nil
}

func readStrokesFile(path string) ([]oneline.Stroke, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open strokes file")
	}
	defer f.Close()
	strokes, err := oneline.ReadStrokes(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return strokes, nil
}

func writePlan(path string, plan oneline.Plan, stdout io.Writer) error {
	if path == "" {
		return oneline.WritePlan(stdout, plan)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create plan file")
	}
	if err := oneline.WritePlan(f, plan); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write plan file")
	}
	fmt.Fprintf(stdout, "plan %s: %d strokes written to %s\n", plan.RunID, len(plan.Path), path)
	return nil
}
