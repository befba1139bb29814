package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/amf"
	"pkt.systems/amf/chat"
)

func newChatCmd() *cobra.Command {
	var (
		backend   string
		model     string
		mode      string
		themeName string
		widthFlag int
		noThink   bool
		record    string
		images    []string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "chat [query...]",
		Short: "Ask the answer backend and render the reply live",
		Long: `chat sends a query to the answer backend and renders the reply as it
streams in. The answer repaints in place as tokens arrive, so think
regions, searches and math look the same as in a saved answer.

The query is taken from the arguments, or from stdin when none are
given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read query: %w", err)
				}
				query = strings.TrimSpace(string(data))
			}
			if query == "" {
				return fmt.Errorf("no query given")
			}

			cfg := loadConfig()
			client := chat.NewClient(cfg.backendURL(backend))

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			hctx, hcancel := context.WithTimeout(ctx, 5*time.Second)
			err := client.Health(hctx)
			hcancel()
			if err != nil {
				return fmt.Errorf("backend %s: %w", client.BaseURL(), err)
			}

			model, err := resolveModel(ctx, client, model, cfg)
			if err != nil {
				return err
			}
			if mode == "" {
				mode = cfg.Mode
			}
			if mode == "" {
				mode = chat.ModeDirect
			}
			if !chat.ValidMode(mode) {
				return fmt.Errorf("unknown mode %q (one of %s)", mode, strings.Join(chat.Modes(), ", "))
			}

			theme, err := resolveTheme(cmd, themeName, cfg, false, os.Stdout)
			if err != nil {
				return err
			}
			width := resolveWidth(widthFlag, cfg)
			opts := []amf.RenderOption{amf.WithOSC8(amf.DetectOSC8Support()), amf.WithThink(!noThink)}

			var sw *chat.SessionWriter
			if record != "" {
				f, err := os.Create(normalizePath(record))
				if err != nil {
					return fmt.Errorf("open transcript: %w", err)
				}
				defer func() { _ = f.Close() }()
				sw, err = chat.NewSessionWriter(f, chat.SessionMeta{Query: query, Model: model, Mode: mode})
				if err != nil {
					return err
				}
			}

			req := &chat.InferRequest{Query: query, Model: model, Mode: mode, Images: images}
			slog.Debug("inference starting", "backend", client.BaseURL(), "model", model, "mode", mode)

			if isTerminal(os.Stdout) {
				return chatLive(ctx, client, req, sw, theme, width, opts)
			}
			return chatPlain(ctx, client, req, sw, theme, width, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&backend, "backend", "", "Backend base URL (default $AMF_BACKEND or config file)")
	flags.StringVarP(&model, "model", "m", "", "Model identifier (default: backend's first model)")
	flags.StringVar(&mode, "mode", "", "Reasoning mode: direct_reasoning|naive_rag|agentic_search")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.BoolVar(&noThink, "no-think", false, "Hide think regions")
	flags.StringVarP(&record, "record", "r", "", "Write the event stream to a JSONL transcript")
	flags.StringArrayVar(&images, "image", nil, "Attach an image file (repeatable)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log backend status events to stderr")

	return cmd
}

// chatLive streams the answer into an in-place repainting view.
func chatLive(ctx context.Context, client *chat.Client, req *chat.InferRequest, sw *chat.SessionWriter, theme amf.Theme, width int, opts []amf.RenderOption) error {
	live := amf.NewLiveRenderer(os.Stdout, theme, width, opts...)
	live.SetMaxRows(terminalRows(os.Stdout))

	var streamErr error
	interrupted := false
	for ev, err := range client.Infer(ctx, req) {
		if err != nil {
			if ctx.Err() != nil {
				interrupted = true
			} else {
				streamErr = err
			}
			break
		}
		recordEvent(&sw, ev)
		switch ev.Type {
		case chat.EventToken:
			if _, err := live.Write([]byte(ev.Content)); err != nil {
				return err
			}
		case chat.EventStatus:
			slog.Debug("backend status", "stage", ev.Stage, "message", ev.Message)
		case chat.EventError:
			streamErr = ev.Err()
		}
	}

	if err := live.Finish(); err != nil {
		return err
	}
	printSearches(os.Stdout, live.Buffer(), theme, width, opts)
	if interrupted {
		fmt.Fprintln(os.Stderr, "interrupted")
		return nil
	}
	return streamErr
}

// chatPlain collects the whole answer and renders it once. Used when
// stdout is not a terminal and in-place repaints would be noise.
func chatPlain(ctx context.Context, client *chat.Client, req *chat.InferRequest, sw *chat.SessionWriter, theme amf.Theme, width int, opts []amf.RenderOption) error {
	var buf strings.Builder
	var streamErr error
	for ev, err := range client.Infer(ctx, req) {
		if err != nil {
			if ctx.Err() == nil {
				streamErr = err
			}
			break
		}
		recordEvent(&sw, ev)
		switch ev.Type {
		case chat.EventToken:
			buf.WriteString(ev.Content)
		case chat.EventStatus:
			slog.Debug("backend status", "stage", ev.Stage, "message", ev.Message)
		case chat.EventError:
			streamErr = ev.Err()
		}
	}

	if buf.Len() > 0 {
		if err := amf.Render(amf.RenderRequest{
			Reader:  strings.NewReader(buf.String()),
			Writer:  os.Stdout,
			Width:   width,
			Theme:   theme,
			Options: opts,
		}); err != nil {
			return err
		}
		printSearches(os.Stdout, buf.String(), theme, width, opts)
	}
	return streamErr
}

// recordEvent appends ev to the transcript if one is open. A failed
// write disables further recording instead of killing the stream.
func recordEvent(sw **chat.SessionWriter, ev chat.Event) {
	if *sw == nil {
		return
	}
	if err := (*sw).Record(ev); err != nil {
		slog.Warn("transcript write failed", "err", err)
		*sw = nil
	}
}

// printSearches writes the list of completed searches below the answer.
func printSearches(w io.Writer, buffer string, theme amf.Theme, width int, opts []amf.RenderOption) {
	items := amf.SearchesFromSegments(amf.SplitSegments(buffer))
	if len(items) == 0 {
		return
	}
	rend := amf.NewRenderer(theme, width, opts...)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rend.RenderSearches(items))
}

// resolveModel picks the model: flag, config file, then the backend's
// first advertised model.
func resolveModel(ctx context.Context, client *chat.Client, flag string, cfg cliConfig) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.Model != "" {
		return cfg.Model, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	models, err := client.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	if len(models) == 0 {
		return "", fmt.Errorf("backend %s lists no models", client.BaseURL())
	}
	return models[0].Model, nil
}

// setupLogging routes slog to stderr so answers stay clean on stdout.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newStopCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:           "stop <task-id>",
		Short:         "Ask the backend to cancel a running task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client := chat.NewClient(cfg.backendURL(backend))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			res, err := client.Stop(ctx, args[0])
			if err != nil {
				return err
			}
			if !res.Stopped() {
				return fmt.Errorf("backend %s knows no task %q", client.BaseURL(), res.TaskID)
			}
			fmt.Fprintf(os.Stdout, "stopping %s\n", res.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Backend base URL (default $AMF_BACKEND or config file)")
	return cmd
}
