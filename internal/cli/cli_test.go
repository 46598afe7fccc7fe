package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/cache"
	"github.com/matzehuels/pigeon/pkg/coords"
	"github.com/matzehuels/pigeon/pkg/pipeline"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	want := []string{"render", "convert", "layouts", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

// parseRender parses args against a fresh render flag set and resolves the
// resulting options.
func parseRender(t *testing.T, args ...string) (pipeline.Options, *renderFlags) {
	t.Helper()
	f := newRenderFlags()
	cmd := &cobra.Command{Use: "render"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	opts, err := f.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	return opts, f
}

func TestRenderFlagsDefaults(t *testing.T) {
	opts, f := parseRender(t)

	want := pipeline.DefaultOptions()
	if opts.Algorithm != want.Algorithm || opts.Output != want.Output || opts.Margin != want.Margin {
		t.Errorf("defaults = %+v, want %+v", opts, want)
	}
	if opts.Seeded {
		t.Error("seed should be drawn at random when --seed is absent")
	}
	if f.cacheDir != defaultCacheDir {
		t.Errorf("cacheDir = %q, want %q", f.cacheDir, defaultCacheDir)
	}
}

func TestRenderFlagsOverride(t *testing.T) {
	opts, f := parseRender(t,
		"-l", "kamada_kawai",
		"-o", "out.png",
		"--edges",
		"--user-edges",
		"--sample", "50",
		"--seed", "0",
		"--threshold", "0.25",
		"--label-upper=false",
		"--cache-dir", "layouts",
		"--no-cache",
	)

	if opts.Algorithm != "kamada_kawai" || opts.Output != "out.png" {
		t.Errorf("algorithm/output = %q/%q", opts.Algorithm, opts.Output)
	}
	if !opts.DrawEdges || !opts.UserEdgesOnly {
		t.Error("--edges and --user-edges should be set")
	}
	if opts.Sample != 50 {
		t.Errorf("Sample = %d, want 50", opts.Sample)
	}
	if !opts.Seeded || opts.Seed != 0 {
		t.Errorf("explicit --seed 0 should be kept, got seed=%d seeded=%v", opts.Seed, opts.Seeded)
	}
	if opts.Threshold != 0.25 {
		t.Errorf("Threshold = %v, want 0.25", opts.Threshold)
	}
	if opts.Labels.Upper {
		t.Error("--label-upper=false should disable upper-casing")
	}
	if f.cacheDir != "layouts" || !f.noCache {
		t.Errorf("cache flags = %q/%v", f.cacheDir, f.noCache)
	}
}

func TestRenderFlagsMarginFollowsDPI(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"default", nil, pipeline.DefaultMargin},
		{"dpi only", []string{"--dpi", "150"}, 150},
		{"explicit margin", []string{"--dpi", "150", "--margin", "20"}, 20},
		{"zero margin", []string{"--margin", "0"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := parseRender(t, tt.args...)
			if opts.Margin != tt.want {
				t.Errorf("Margin = %d, want %d", opts.Margin, tt.want)
			}
		})
	}
}

func TestRenderFlagsConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pigeon.toml")
	body := "algorithm = \"circle\"\noutput = \"from-config.png\"\nmargin = 42\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	opts, _ := parseRender(t, "--config", path, "-o", "from-flag.png")
	if opts.Algorithm != "circle" {
		t.Errorf("Algorithm = %q, want value from config", opts.Algorithm)
	}
	if opts.Margin != 42 {
		t.Errorf("Margin = %d, want 42 from config", opts.Margin)
	}
	if opts.Output != "from-flag.png" {
		t.Errorf("Output = %q, flag should win over config", opts.Output)
	}
}

func TestRenderFlagsConfigDPI(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "pigeon.toml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		body string
		args []string
		want int
	}{
		{"config dpi only", "dpi = 150\n", nil, 150},
		{"config dpi and margin", "dpi = 150\nmargin = 20\n", nil, 20},
		{"flag dpi keeps config margin", "margin = 20\n", []string{"--dpi", "150"}, 20},
		{"flag dpi over config dpi", "dpi = 150\n", []string{"--dpi", "72"}, 72},
		{"flag margin wins", "dpi = 150\n", []string{"--margin", "5"}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", write(t, tt.body)}, tt.args...)
			opts, _ := parseRender(t, args...)
			if opts.Margin != tt.want {
				t.Errorf("Margin = %d, want %d", opts.Margin, tt.want)
			}
		})
	}
}

func TestRenderFlagsMissingConfig(t *testing.T) {
	f := newRenderFlags()
	cmd := &cobra.Command{Use: "render"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.resolve(cmd); err == nil {
		t.Error("resolve() expected error for a missing config file")
	}
}

func TestDegenerateAxes(t *testing.T) {
	tests := []struct {
		x, y bool
		want string
	}{
		{true, false, "x"},
		{false, true, "y"},
		{true, true, "x and y"},
	}
	for _, tt := range tests {
		got := degenerateAxes(coords.Degenerate{X: tt.x, Y: tt.y})
		if got != tt.want {
			t.Errorf("degenerateAxes(%v,%v) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, alg := range []string{"fdp", "neato"} {
		if err := fc.Set(ctx, cache.LayoutKey(alg), []byte("[]")); err != nil {
			t.Fatal(err)
		}
	}
	other := filepath.Join(dir, "notes.json")
	if err := os.WriteFile(other, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	captureStdout(t)
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"cache", "clear", "--cache-dir", dir})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	keys, err := fc.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after clear = %v, want none", keys)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("clear removed unrelated file: %v", err)
	}
}

func TestLayoutsCommand(t *testing.T) {
	buf := captureStdout(t)
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"layouts"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layouts error: %v", err)
	}
	for _, want := range []string{"kamada_kawai", "alias of neato", "fruchterman_reingold", "(default)", "eades"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("layouts output missing %q", want)
		}
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	buf := captureStdout(t)
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"cache", "path", "--cache-dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestRenderCommandRejectsUnknownLayout(t *testing.T) {
	dir := t.TempDir()
	root := New(io.Discard, log.DebugLevel).RootCommand()
	root.SetArgs([]string{"render", "-l", "spiral", "--cache-dir", dir, "-o", filepath.Join(dir, "out.png")})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatal("render expected error for an unknown layout")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.png")); !os.IsNotExist(err) {
		t.Error("failed render should not write an output file")
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionGenerators {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, log.InfoLevel).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
}
