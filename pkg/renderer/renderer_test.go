package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/observability"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"./adrt", Command{Path: "./adrt", Args: []string{}}},
		{"adrt --threads 4", Command{Path: "adrt", Args: []string{"--threads", "4"}}},
		{`"/opt/ray tracer/adrt" -q`, Command{Path: "/opt/ray tracer/adrt", Args: []string{"-q"}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.Path != tt.want.Path || !slices.Equal(got.Args, tt.want.Args) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "   ", `"unterminated`} {
		if _, err := Parse(in); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Parse(%q) error = %v, want INVALID_CONFIG", in, err)
		}
	}
}

func TestArgv(t *testing.T) {
	c := Command{Path: "./adrt", Args: []string{"-q"}}
	got := c.Argv(640, 480, "rtScene.db")
	want := []string{"-q", "-s", "640,480", "-f", "rtScene.db"}
	if !slices.Equal(got, want) {
		t.Errorf("Argv() = %q, want %q", got, want)
	}
	if len(c.Args) != 1 {
		t.Error("Argv must not modify the command")
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := Command{Path: "/opt/ray tracer/adrt", Args: []string{"-q", "it's"}}
	back, err := Parse(c.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", c.String(), err)
	}
	if back.Path != c.Path || !slices.Equal(back.Args, c.Args) {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
}

func TestLaunch(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	c := Command{Path: sh, Args: []string{"-c", `printf '%s\n' "$@" > args.txt`, "adrt"}}

	counter := observability.NewCounter()
	observability.SetRendererHooks(counter)
	defer observability.Reset()

	p, err := Launch(context.Background(), c, 320, 240, "rtScene.db", Options{Dir: dir})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if p.Pid() <= 0 {
		t.Error("Pid should be positive")
	}
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "-s\n320,240\n-f\nrtScene.db\n"; got != want {
		t.Errorf("renderer args = %q, want %q", got, want)
	}
	if s := counter.Snapshot(); s.Launches != 1 || s.RendererErrors != 0 {
		t.Errorf("hooks = %+v", s)
	}
}

func TestLaunchFailures(t *testing.T) {
	_, err := Launch(context.Background(), Command{Path: "./does-not-exist"}, 10, 10, "rtScene.db", Options{Dir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeRenderer) {
		t.Errorf("missing binary error = %v, want RENDERER_FAILED", err)
	}

	_, err = Launch(context.Background(), Command{Path: "adrt"}, 0, 10, "rtScene.db", Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero width error = %v, want INVALID_INPUT", err)
	}
}

func TestWaitNonZeroExit(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	p, err := Launch(context.Background(), Command{Path: sh, Args: []string{"-c", "exit 3", "adrt"}}, 1, 1, "x", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Wait(); !errors.Is(err, errors.ErrCodeRenderer) {
		t.Errorf("Wait() error = %v, want RENDERER_FAILED", err)
	}
}
