// Package main provides the amf CLI. It renders saved answers from
// files, URLs or stdin, replays recorded sessions, and talks to an
// answer backend live.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/amf"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	defaultChunkSize = 3
	defaultDelay     = 20 * time.Millisecond
)

func init() {
	version.SetDefaultModule("pkt.systems/amf")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "amf: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		themeName string
		widthFlag int
		osc8Flag  string
		outPath   string
		boring    bool
		noThink   bool
		simulate  bool
		simChunk  int
		simDelay  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "amf [flags] [inputs...]",
		Short: "Render streamed answers: Markdown, math and agent tags in the terminal",
		Long: `amf renders answer text the way it arrives from a reasoning backend:
Markdown with inline and display math, plus think, search and
search_result regions. Inputs are files, http(s) URLs or stdin.

Without a subcommand, amf renders its inputs once. Use "amf chat" to
stream a live answer from a backend, "amf replay" to play back a
recorded session.`,
		Version:       version.Current(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			reader, closer, err := openInputs(args)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			writer, closeOut, err := resolveOutput(outPath)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}
			if closeOut != nil {
				defer func() { _ = closeOut.Close() }()
			}

			theme, err := resolveTheme(cmd, themeName, cfg, boring, writer)
			if err != nil {
				return err
			}
			width := resolveWidth(widthFlag, cfg)
			osc8, err := resolveOSC8(osc8Flag)
			if err != nil {
				return fmt.Errorf("invalid --osc8 %q: %w", osc8Flag, err)
			}
			opts := []amf.RenderOption{amf.WithOSC8(osc8), amf.WithThink(!noThink)}

			if simulate {
				if !isTerminal(writer) {
					fmt.Fprintln(os.Stderr, "warning: output is not a terminal; ignoring --simulate")
				} else {
					return amf.Simulate(amf.SimulateRequest{
						Reader:    reader,
						Writer:    writer,
						Width:     width,
						Theme:     theme,
						ChunkSize: simChunk,
						Delay:     simDelay,
						MaxRows:   terminalRows(writer),
						Options:   opts,
					})
				}
			}

			return amf.Render(amf.RenderRequest{
				Reader:  reader,
				Writer:  writer,
				Width:   width,
				Theme:   theme,
				Options: opts,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&noThink, "no-think", false, "Hide think regions")
	flags.BoolVar(&simulate, "simulate", false, "Replay input as a simulated stream")
	flags.IntVar(&simChunk, "simulate-chunk", defaultChunkSize, "Max runes per simulated chunk")
	flags.DurationVar(&simDelay, "simulate-delay", defaultDelay, "Delay per simulated chunk")

	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newReplayCmd())

	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	return cmd
}

// normalizeFlagName lets --no_think style spellings resolve to their
// dashed forms.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// resolveTheme picks the output theme. An explicit --theme always
// wins; otherwise the config file's theme applies, and non-terminal
// output falls back to escape-free rendering.
func resolveTheme(cmd *cobra.Command, name string, cfg cliConfig, boring bool, out io.Writer) (amf.Theme, error) {
	if boring {
		return amf.NewTheme("boring", amf.Styles{}), nil
	}
	if !cmd.Flags().Changed("theme") {
		switch {
		case cfg.Theme != "":
			name = cfg.Theme
		case !isTerminal(out):
			return amf.NewTheme("boring", amf.Styles{}), nil
		}
	}
	theme, ok := amf.ThemeByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (run \"amf themes\" to list them)", name)
	}
	return theme, nil
}

func resolveWidth(width int, cfg cliConfig) int {
	if width > 0 {
		return width
	}
	if cfg.Width > 0 {
		return cfg.Width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

// terminalRows returns the height budget for live repaints, or 0 when
// w is not a terminal.
func terminalRows(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if _, h, err := term.GetSize(fd); err == nil && h > 1 {
			return h - 1
		}
	}
	return 0
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return amf.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func strconvAtoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
