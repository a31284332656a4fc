package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/app"
	"github.com/marcos-nsantos/resize-cache/internal/domain"
	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/config"
	"github.com/marcos-nsantos/resize-cache/internal/infrastructure/observability"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/batch"
)

type options struct {
	path      string
	width     int
	height    int
	zoom      int
	mode      string
	fileTypes []string
	verbose   bool
}

type runner func(cmd *cobra.Command, opts options) error

func newRootCmd(run runner) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "thumbgen",
		Short: "Generate resized images for a folder",
		Long: `thumbgen resizes every image below a path of the upload folder and stores
the results in the image cache, exactly as the thumbnail endpoint would.

Example usage:
  thumbgen --width 200 --height 200
  thumbgen -p files/gallery -w 800 --height 0 -m proportional
  thumbgen -p files/hero.jpg -w 1600 --height 600 -m crop -z 50`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	modes := strings.Join([]string{
		string(valueobject.ModeCrop),
		string(valueobject.ModeBox),
		string(valueobject.ModeProportional),
	}, ", ")

	flags := cmd.Flags()
	flags.StringVarP(&opts.path, "path", "p", "", "file or folder to scan, relative to the project root (default: upload path)")
	flags.IntVarP(&opts.width, "width", "w", 0, "width in pixels")
	flags.IntVar(&opts.height, "height", 0, "height in pixels")
	flags.IntVarP(&opts.zoom, "zoom", "z", 0, "zoom level between 0 and 100")
	flags.StringVarP(&opts.mode, "mode", "m", string(valueobject.ModeProportional), "resize mode; one of "+modes)
	flags.StringSliceVar(&opts.fileTypes, "filetypes", batch.DefaultFileTypes, "allowed file extensions")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if opts.verbose {
		level, format = "debug", observability.FormatConsole
	}
	logger, err := observability.NewLogger(level, format, "thumbgen")
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()

	resizeCfg, err := valueobject.NewResizeConfiguration(opts.width, opts.height, valueobject.ResizeMode(opts.mode), opts.zoom)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fsys := afero.NewOsFs()
	imaging, err := app.NewImaging(ctx, cfg, fsys, logger)
	if err != nil {
		return err
	}
	defer imaging.Close()

	svc := batch.NewService(fsys, imaging.Factory, batch.Config{
		Enabled:     cfg.Thumbnail.Enabled,
		ProjectRoot: imaging.ProjectRoot,
		UploadPath:  cfg.Image.UploadPath,
	}, logger)

	report, err := svc.Run(ctx, batch.Request{
		Path:      opts.path,
		FileTypes: opts.fileTypes,
		Config:    resizeCfg,
	}, progressPrinter(out))
	if errors.Is(err, domain.ErrDisabled) {
		fmt.Fprintln(out, domain.Message(err))
		return nil
	}
	if err != nil {
		if report == nil {
			return errors.New(domain.Message(err))
		}
		logger.Warn("batch interrupted", zap.Error(err))
	}

	if report.Total > 0 {
		fmt.Fprintln(out)
	}
	renderReport(out, report)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "-- End of Command --")

	return nil
}
