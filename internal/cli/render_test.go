package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	errs "github.com/niosHD/symbolator/pkg/errors"
)

const fifoVHDL = `entity fifo is
  generic (DEPTH : natural := 16);
  port (
    --# {{clocks|}}
    clk   : in std_logic;
    rst_n : in std_logic;
    --# {{data|Data}}
    din   : in std_logic_vector(7 downto 0);
    dout  : out std_logic_vector(7 downto 0)
  );
end entity;
`

func TestPick(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	var format string
	var title bool
	cmd.Flags().StringVar(&format, "format", "svg", "")
	cmd.Flags().BoolVar(&title, "title", false, "")

	if got := pick(cmd, "format", "svg", ""); got != "svg" {
		t.Errorf("empty config: got %q, want flag default", got)
	}
	if got := pick(cmd, "format", "svg", "png"); got != "png" {
		t.Errorf("config set, flag unchanged: got %q, want config", got)
	}
	if got := pick(cmd, "title", false, true); !got {
		t.Error("config true should apply when flag unchanged")
	}

	if err := cmd.Flags().Set("format", "pdf"); err != nil {
		t.Fatal(err)
	}
	if got := pick(cmd, "format", "pdf", "png"); got != "pdf" {
		t.Errorf("explicit flag: got %q, want flag", got)
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	src := filepath.Join(t.TempDir(), "fifo.vhd")
	if err := os.WriteFile(src, []byte(fifoVHDL), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "symbols")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"render", src, "-o", out, "--title"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "fifo-fifo.svg"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output should be an SVG document")
	}
}

func TestRenderCommandConfigDefaults(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[output]\nformat = \"json\"\n[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "fifo.vhd")
	if err := os.WriteFile(src, []byte(fifoVHDL), 0o644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "render", "-i", src, "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "fifo-fifo.json")); err != nil {
		t.Errorf("config format should apply: %v", err)
	}
}

func TestRenderCommandStdin(t *testing.T) {
	isolate(t)
	var stdout bytes.Buffer

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetIn(strings.NewReader(fifoVHDL))
	root.SetOut(&stdout)
	root.SetArgs([]string{"render", "-", "--lang", "vhdl", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout.String(), "<svg") {
		t.Errorf("stdout should hold the SVG, got %d bytes", stdout.Len())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"no input", []string{"render"}, errs.ErrCodeInvalidInput},
		{"missing path", []string{"render", "/does/not/exist.vhd"}, errs.ErrCodeInvalidPath},
		{"bad format", []string{"render", "x.vhd", "-f", "gif"}, errs.ErrCodeInvalidFormat},
		{"stdin without lang", []string{"render", "-"}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetIn(strings.NewReader(""))
			root.SetArgs(tt.args)
			err := root.Execute()
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
