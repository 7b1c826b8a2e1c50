// Command stickers renders maintenance sticker sheets from an equipment
// export on the command line, or runs the web service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/stickers/internal/application"
	"github.com/JonMunkholm/stickers/internal/config"
	"github.com/JonMunkholm/stickers/internal/core"
	"github.com/JonMunkholm/stickers/internal/logging"
	"github.com/JonMunkholm/stickers/internal/render"
	"github.com/JonMunkholm/stickers/internal/sheet"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stickers",
		Short:         "Print maintenance stickers from an equipment export",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides LOG_LEVEL: debug, info, warn, error")

	cmd.AddCommand(
		newRenderCmd(opts),
		newPlanCmd(opts),
		newTemplatesCmd(),
		newServeCmd(opts),
	)
	return cmd
}

type loadFlags struct {
	template string
	maxName  int
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "grid template key (default from config)")
	cmd.Flags().IntVar(&f.maxName, "max-name", 0, "maximum equipment name length (50-500)")
}

// loadBatch reads, ingests and plans a file without a PDF writer or history.
func loadBatch(cfg *config.Config, path string, f loadFlags) (*core.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	svc, err := core.NewService(sheet.Decoder, nil, nil, application.ServiceOptions(cfg))
	if err != nil {
		return nil, err
	}
	return svc.Load(core.Request{
		FileName:      filepath.Base(path),
		Data:          data,
		Template:      f.template,
		MaxNameLength: f.maxName,
	})
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    loadFlags
		output   string
		fontPath string
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a sticker PDF from an .xlsx or .csv export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			batch, err := loadBatch(cfg, args[0], flags)
			if err != nil {
				return err
			}

			if output == "" {
				output = cfg.Stickers.Filename
			}
			if fontPath == "" {
				fontPath = cfg.Stickers.FontPath
			}

			writer := render.NewPDFWriter(fontPath, cfg.Stickers.FontFamily, application.RenderOptions(cfg.Stickers))
			if err := writer.WriteFile(output, batch.Records, batch.Plan); err != nil {
				return err
			}

			printSummary(cmd, batch)
			fmt.Fprintf(cmd.OutOrStdout(), "PDF: %s\n", output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default from config)")
	cmd.Flags().StringVar(&fontPath, "font", "", "UTF-8 TrueType font with Cyrillic glyphs")
	return cmd
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Show how many sheets a file needs without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := loadBatch(opts.cfg, args[0], flags)
			if err != nil {
				return err
			}
			printSummary(cmd, batch)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printSummary(cmd *cobra.Command, batch *core.Batch) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Шаблон: %s (%s)\n", batch.Template.Key, batch.Template.Name)
	for _, line := range core.Summarize(batch.Plan).Lines() {
		fmt.Fprintln(out, line)
	}
	if batch.Stats.Skipped > 0 {
		fmt.Fprintf(out, "Пропущено строк: %d\n", batch.Stats.Skipped)
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List sticker grid templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range core.Templates() {
				fmt.Fprintf(out, "%-5s %-22s %3d  %s\n", t.Key, t.Name, t.Capacity(), t.Description)
			}
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return application.Serve(ctx, opts.cfg)
		},
	}
}
