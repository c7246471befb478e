package ipc

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/driftworks/driftpaper/internal/assets"
	"github.com/driftworks/driftpaper/internal/scheduler"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

// Daemon bridges the IPC handlers to the running scheduler. Requests are
// resolved here (image loading, transition defaults) so the event loop only
// ever sees ready-to-apply commands.
type Daemon struct {
	sched  *scheduler.Scheduler
	loader *assets.Loader
	stop   func()
}

func NewDaemon(sched *scheduler.Scheduler, loader *assets.Loader, stop func()) *Daemon {
	return &Daemon{sched: sched, loader: loader, stop: stop}
}

// SetWallpaper loads the requested source and dispatches it to the loop,
// waiting for the loop's verdict.
func (d *Daemon) SetWallpaper(ctx context.Context, req WallpaperRequest) error {
	source, err := requestSource(req)
	if err != nil {
		return err
	}

	img, err := d.loader.Load(source)
	if err != nil {
		return err
	}

	mode := texture.ParseResizeMode(req.Resize)
	if req.Resize == "" {
		mode = texture.ParseResizeMode(viper.GetString("resize"))
	}

	reply := make(chan error, 1)
	d.sched.Dispatch(scheduler.Command{
		Outputs: req.Outputs,
		Image:   img,
		Label:   source,
		Resize:  mode,
		Spec:    BuildSpec(req.Transition),
		Reply:   reply,
	})

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Outputs snapshots the loop's per-output state.
func (d *Daemon) Outputs(ctx context.Context) ([]scheduler.OutputStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.sched.Status(ctx)
}

// Stop shuts the daemon down.
func (d *Daemon) Stop() {
	if d.stop != nil {
		d.stop()
	}
}

// requestSource validates the one-of source fields.
func requestSource(req WallpaperRequest) (string, error) {
	set := 0
	source := ""
	for _, v := range []string{req.Path, req.Color, req.URL} {
		if v != "" {
			set++
			source = v
		}
	}
	if set == 0 {
		return "", errors.New("one of path, color or url is required")
	}
	if set > 1 {
		return "", errors.New("path, color and url are mutually exclusive")
	}
	return source, nil
}

// BuildSpec merges a request override over the configured transition
// defaults.
func BuildSpec(o *TransitionOverride) transition.Spec {
	named := namedBeziers()

	spec := transition.Spec{
		Kind:     transition.ParseKind(viper.GetString("transition_type")),
		Duration: viper.GetUint64("transition_duration"),
		FPS:      viper.GetUint64("transition_fps"),
		Bezier:   parseBezierOr(viper.GetString("bezier"), named, transition.Ease()),
	}
	if enabled := viper.GetStringSlice("enabled_transitions"); len(enabled) > 0 {
		spec.EnabledKinds = parseKinds(enabled)
	}

	if o == nil {
		return spec
	}
	if o.Type != "" {
		spec.Kind = transition.ParseKind(o.Type)
	}
	if o.Duration != nil {
		spec.Duration = *o.Duration
	}
	if o.FPS != nil {
		spec.FPS = *o.FPS
	}
	if o.Bezier != "" {
		spec.Bezier = parseBezierOr(o.Bezier, named, spec.Bezier)
	}
	if o.Enabled != nil {
		spec.EnabledKinds = parseKinds(o.Enabled)
	}
	return spec
}

func namedBeziers() map[string][4]float32 {
	named := make(map[string][4]float32)
	for name, raw := range viper.GetStringMapString("bezier_curves") {
		b, err := transition.ParseBezier(raw, nil)
		if err != nil {
			continue
		}
		named[name] = [4]float32{b.X1, b.Y1, b.X2, b.Y2}
	}
	return named
}

func parseBezierOr(raw string, named map[string][4]float32, fallback transition.Bezier) transition.Bezier {
	if raw == "" {
		return fallback
	}
	b, err := transition.ParseBezier(raw, named)
	if err != nil {
		log.Warn("ignoring invalid bezier", "value", raw, "error", err)
		return fallback
	}
	return b
}

func parseKinds(names []string) []transition.Kind {
	kinds := make([]transition.Kind, 0, len(names))
	for _, n := range names {
		kinds = append(kinds, transition.ParseKind(n))
	}
	return kinds
}
