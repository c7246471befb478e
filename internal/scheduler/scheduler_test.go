package scheduler

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/driftworks/driftpaper/internal/display"
	"github.com/driftworks/driftpaper/internal/texture"
	"github.com/driftworks/driftpaper/internal/transition"
)

type recordedWallpaper struct {
	output, label string
}

type fakeRecorder struct {
	ch chan recordedWallpaper
}

func (r *fakeRecorder) Record(output, label string) {
	r.ch <- recordedWallpaper{output: output, label: label}
}

func runScheduler(t *testing.T, infos []display.Info, recorder Recorder) (*Scheduler, *display.StaticSource, func()) {
	t.Helper()

	source := display.NewStaticSource(infos)
	sched := New(clockwork.NewRealClock(), source, nil, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	return sched, source, func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("scheduler did not stop")
		}
	}
}

func waitForStatus(t *testing.T, sched *Scheduler, pred func([]OutputStatus) bool) []OutputStatus {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		statuses, err := sched.Status(ctx)
		cancel()
		if err == nil && pred(statuses) {
			return statuses
		}

		select {
		case <-deadline:
			t.Fatalf("condition never met, last status: %+v", statuses)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerAppliesCommand(t *testing.T) {
	recorder := &fakeRecorder{ch: make(chan recordedWallpaper, 4)}
	sched, _, shutdown := runScheduler(t, []display.Info{
		{Name: "main", Width: 64, Height: 32, Scale: 1},
	}, recorder)
	defer shutdown()

	waitForStatus(t, sched, func(s []OutputStatus) bool { return len(s) == 1 })

	reply := make(chan error, 1)
	sched.Dispatch(Command{
		Image:  texture.Solid(64, 32, color.RGBA{R: 255, A: 255}),
		Label:  "red",
		Resize: texture.ResizeCrop,
		Spec: transition.Spec{
			Kind:     transition.KindFade,
			Duration: 30,
			FPS:      120,
			Bezier:   transition.Linear(),
		},
		Reply: reply,
	})

	select {
	case err := <-reply:
		if err != nil {
			t.Fatalf("command rejected: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from loop")
	}

	select {
	case rec := <-recorder.ch:
		if rec.output != "main" || rec.label != "red" {
			t.Errorf("recorded %+v", rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("wallpaper never recorded")
	}

	statuses := waitForStatus(t, sched, func(s []OutputStatus) bool {
		return len(s) == 1 && s[0].Wallpaper == "red" && !s[0].Animating
	})
	if statuses[0].Name != "main" || statuses[0].Width != 64 {
		t.Errorf("status = %+v", statuses[0])
	}
}

func TestSchedulerRejectsUnknownOutput(t *testing.T) {
	sched, _, shutdown := runScheduler(t, []display.Info{
		{Name: "main", Width: 32, Height: 32, Scale: 1},
	}, nil)
	defer shutdown()

	waitForStatus(t, sched, func(s []OutputStatus) bool { return len(s) == 1 })

	reply := make(chan error, 1)
	sched.Dispatch(Command{
		Outputs: []string{"nonexistent"},
		Image:   texture.Solid(8, 8, color.RGBA{A: 255}),
		Label:   "x",
		Resize:  texture.ResizeCrop,
		Spec:    transition.Spec{Kind: transition.KindNone, Bezier: transition.Linear()},
		Reply:   reply,
	})

	select {
	case err := <-reply:
		if err == nil {
			t.Error("command for unknown output accepted")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from loop")
	}
}

func TestSchedulerRejectsMissingImage(t *testing.T) {
	sched, _, shutdown := runScheduler(t, []display.Info{
		{Name: "main", Width: 32, Height: 32, Scale: 1},
	}, nil)
	defer shutdown()

	reply := make(chan error, 1)
	sched.Dispatch(Command{Label: "empty", Reply: reply})

	select {
	case err := <-reply:
		if err != ErrNoImage {
			t.Errorf("err = %v, want ErrNoImage", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from loop")
	}
}

func TestSchedulerRestoresWallpaperOnAdd(t *testing.T) {
	source := display.NewStaticSource(nil)
	sched := New(clockwork.NewRealClock(), source, nil, nil)
	sched.OnAdded = func(info display.Info) *Command {
		return &Command{
			Outputs: []string{info.Name},
			Image:   texture.Solid(16, 16, color.RGBA{B: 255, A: 255}),
			Label:   "restored",
			Resize:  texture.ResizeCrop,
			Spec:    transition.Spec{Kind: transition.KindNone, Duration: 0, Bezier: transition.Linear()},
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	source.Inject(display.Event{
		Kind: display.OutputAdded,
		Info: display.Info{Name: "hotplug", Width: 16, Height: 16, Scale: 1},
	})

	waitForStatus(t, sched, func(s []OutputStatus) bool {
		return len(s) == 1 && s[0].Wallpaper == "restored"
	})
}

func TestSchedulerHandlesRemoveAndResize(t *testing.T) {
	sched, source, shutdown := runScheduler(t, []display.Info{
		{Name: "a", Width: 32, Height: 32, Scale: 1},
		{Name: "b", Width: 32, Height: 32, Scale: 1},
	}, nil)
	defer shutdown()

	waitForStatus(t, sched, func(s []OutputStatus) bool { return len(s) == 2 })

	source.Inject(display.Event{
		Kind: display.OutputResized,
		Info: display.Info{Name: "a", Width: 64, Height: 48, Scale: 1},
	})
	waitForStatus(t, sched, func(s []OutputStatus) bool {
		for _, st := range s {
			if st.Name == "a" && st.Width == 64 && st.Height == 48 {
				return true
			}
		}
		return false
	})

	source.Inject(display.Event{
		Kind: display.OutputRemoved,
		Info: display.Info{Name: "b"},
	})
	waitForStatus(t, sched, func(s []OutputStatus) bool {
		return len(s) == 1 && s[0].Name == "a"
	})
}
