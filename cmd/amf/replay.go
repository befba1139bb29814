package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/amf"
	"pkt.systems/amf/chat"
)

func newReplayCmd() *cobra.Command {
	var (
		themeName string
		widthFlag int
		noThink   bool
		speed     float64
	)

	cmd := &cobra.Command{
		Use:   "replay <transcript>",
		Short: "Play back a recorded session at its original pace",
		Long: `replay reads a JSONL transcript written by "amf chat --record" and
renders the answer the way it originally streamed, pacing tokens by
their recorded timestamps. When stdout is not a terminal the answer
renders in one shot instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(normalizePath(args[0]))
			if err != nil {
				return fmt.Errorf("open transcript: %w", err)
			}
			defer func() { _ = f.Close() }()

			session, err := chat.ReadSession(f)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			theme, err := resolveTheme(cmd, themeName, cfg, false, os.Stdout)
			if err != nil {
				return err
			}
			width := resolveWidth(widthFlag, cfg)
			opts := []amf.RenderOption{amf.WithOSC8(amf.DetectOSC8Support()), amf.WithThink(!noThink)}

			if !isTerminal(os.Stdout) || speed <= 0 {
				answer := session.Answer()
				if strings.TrimSpace(answer) == "" {
					return fmt.Errorf("transcript holds no answer")
				}
				if err := amf.Render(amf.RenderRequest{
					Reader:  strings.NewReader(answer),
					Writer:  os.Stdout,
					Width:   width,
					Theme:   theme,
					Options: opts,
				}); err != nil {
					return err
				}
				printSearches(os.Stdout, answer, theme, width, opts)
				return nil
			}

			if meta := session.Meta; meta.Query != "" {
				fmt.Fprintf(os.Stderr, "%s · %s\n» %s\n\n", meta.Model, meta.Mode, meta.Query)
			}

			live := amf.NewLiveRenderer(os.Stdout, theme, width, opts...)
			live.SetMaxRows(terminalRows(os.Stdout))

			var prev time.Time
			first := true
			for _, te := range session.Events {
				if te.Event.Type != chat.EventToken {
					if te.At.After(prev) {
						prev = te.At
					}
					continue
				}
				if !first {
					if wait := replayDelay(prev, te.At, speed); wait > 0 {
						time.Sleep(wait)
					}
				}
				first = false
				if te.At.After(prev) {
					prev = te.At
				}
				if _, err := live.Write([]byte(te.Event.Content)); err != nil {
					return err
				}
			}

			if err := live.Finish(); err != nil {
				return err
			}
			printSearches(os.Stdout, live.Buffer(), theme, width, opts)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.BoolVar(&noThink, "no-think", false, "Hide think regions")
	flags.Float64Var(&speed, "speed", 1.0, "Playback speed multiplier (0 renders instantly)")
	return cmd
}

// replayDelay returns the pause before an event recorded at ts.
// Transcripts without timestamps fall back to a fixed cadence, and
// long stalls replay shortened.
func replayDelay(prev, ts time.Time, speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	if prev.IsZero() || ts.IsZero() {
		return defaultDelay
	}
	if !ts.After(prev) {
		return 0
	}
	d := time.Duration(float64(ts.Sub(prev)) / speed)
	if d > 2*time.Second {
		d = 2 * time.Second
	}
	return d
}
