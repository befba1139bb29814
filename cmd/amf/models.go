package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"pkt.systems/amf/chat"
)

func newModelsCmd() *cobra.Command {
	var (
		backend    string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:           "models",
		Short:         "List the models the backend can serve",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			client := chat.NewClient(cfg.backendURL(backend))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			models, err := client.Models(ctx)
			if err != nil {
				return err
			}
			return writeModels(os.Stdout, models, formatFlag)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&backend, "backend", "", "Backend base URL (default $AMF_BACKEND or config file)")
	flags.StringVar(&formatFlag, "format", "table", "Output format: table|plain|json")
	return cmd
}

// writeModels writes the model inventory to w in the requested format.
func writeModels(w io.Writer, models []chat.ModelInfo, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeModelsTable(w, models)
	case "plain":
		return writeModelsPlain(w, models)
	case "json":
		return writeModelsJSON(w, models)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeModelsTable(w io.Writer, models []chat.ModelInfo) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 48},
	})

	tw.AppendHeader(table.Row{"Model", "Display Name", "Model Name", "Base URL"})
	for _, m := range models {
		tw.AppendRow(table.Row{m.Model, m.DisplayName, m.ModelName, m.BaseURL})
	}
	if len(models) == 0 {
		tw.AppendRow(table.Row{"-", "(no models)", "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func writeModelsPlain(w io.Writer, models []chat.ModelInfo) error {
	for _, m := range models {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Model, m.DisplayName, m.ModelName, m.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

func writeModelsJSON(w io.Writer, models []chat.ModelInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(models)
}
