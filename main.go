package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dataset-uploader/config"
	"dataset-uploader/di"
	"dataset-uploader/models"
	"dataset-uploader/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	envFile    string
	verbose    bool

	settings config.Settings
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dataset-uploader",
	Short: "Upload forecaster datasets to TargControl from a spreadsheet",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.LoadSettings(configPath, envFile)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var uploadFlags struct {
	file            string
	apiKey          string
	domain          string
	patterns        int
	dayStart        string
	dayEnd          string
	nightStart      string
	nightEnd        string
	variant         string
	metric          string
	nightSlotPolicy string
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Create one dataset per spreadsheet row",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := settings.RunConfigInput()
		flags := cmd.Flags()
		if flags.Changed("api-key") {
			in.APIKey = uploadFlags.apiKey
		}
		if flags.Changed("domain") {
			in.Domain = uploadFlags.domain
		}
		if flags.Changed("patterns") {
			in.PatternCount = uploadFlags.patterns
		}
		if flags.Changed("day-start") {
			in.StartDay = uploadFlags.dayStart
		}
		if flags.Changed("day-end") {
			in.EndDay = uploadFlags.dayEnd
		}
		if flags.Changed("night-start") {
			in.StartNight = uploadFlags.nightStart
		}
		if flags.Changed("night-end") {
			in.EndNight = uploadFlags.nightEnd
		}
		if flags.Changed("variant") {
			in.Variant = uploadFlags.variant
		}
		if flags.Changed("metric") {
			in.MetricName = uploadFlags.metric
		}
		if flags.Changed("night-slot-policy") {
			in.NightSlotPolicy = uploadFlags.nightSlotPolicy
		}

		cfg, err := models.NewRunConfig(in)
		if err != nil {
			return err
		}

		file, err := os.Open(uploadFlags.file)
		if err != nil {
			return fmt.Errorf("failed to open spreadsheet: %w", err)
		}
		defer file.Close()

		container, err := di.NewContainer(settings, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		report, err := container.DatasetUploadService.Run(cmd.Context(), cfg, file, func(done, total int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\rprogress: %d/%d", done, total)
			if done == total {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
		})
		if err != nil {
			return err
		}
		util.PrintBatchReportPartially(report)
		return nil
	},
}

var catalogFlags struct {
	apiKey string
	domain string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List locations, skills, metrics and available patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, domain := settings.APIKey, settings.Domain
		if cmd.Flags().Changed("api-key") {
			apiKey = catalogFlags.apiKey
		}
		if cmd.Flags().Changed("domain") {
			domain = catalogFlags.domain
		}

		container, err := di.NewContainer(settings, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		listing, err := container.DatasetUploadService.Catalog(cmd.Context(), domain, apiKey)
		if listing != nil {
			util.PrintCatalogListing(listing)
		}
		return err
	},
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			settings.ServerAddress = serveAddr
		}

		container, err := di.NewContainer(settings, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		return container.UploaderHttpServer.Start(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML settings file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with secrets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	f := uploadCmd.Flags()
	f.StringVarP(&uploadFlags.file, "file", "f", "", "spreadsheet (.xlsx) to upload")
	f.StringVar(&uploadFlags.apiKey, "api-key", "", "TargControl API key (default $"+config.ENV_API_KEY+")")
	f.StringVar(&uploadFlags.domain, "domain", config.TARGCONTROL_DEFAULT_DOMAIN, "TargControl deployment domain")
	f.IntVar(&uploadFlags.patterns, "patterns", int(models.SinglePattern), "patterns per dataset (1 or 2)")
	f.StringVar(&uploadFlags.dayStart, "day-start", config.DEFAULT_START_TIME_DAY, "day pattern start time")
	f.StringVar(&uploadFlags.dayEnd, "day-end", config.DEFAULT_END_TIME_DAY, "day pattern end time")
	f.StringVar(&uploadFlags.nightStart, "night-start", config.DEFAULT_START_TIME_NIGHT, "night pattern start time")
	f.StringVar(&uploadFlags.nightEnd, "night-end", config.DEFAULT_END_TIME_NIGHT, "night pattern end time")
	f.StringVar(&uploadFlags.variant, "variant", string(models.ConstantVariant), "scheduling variant: constant or catalog")
	f.StringVar(&uploadFlags.metric, "metric", "", "metric name for the catalog variant (default: first metric)")
	f.StringVar(&uploadFlags.nightSlotPolicy, "night-slot-policy", string(models.NightSlotFail),
		"when no night pattern slot is available: fail or degrade")
	_ = uploadCmd.MarkFlagRequired("file")

	catalogCmd.Flags().StringVar(&catalogFlags.apiKey, "api-key", "", "TargControl API key (default $"+config.ENV_API_KEY+")")
	catalogCmd.Flags().StringVar(&catalogFlags.domain, "domain", config.TARGCONTROL_DEFAULT_DOMAIN, "TargControl deployment domain")

	serveCmd.Flags().StringVar(&serveAddr, "addr", config.SERVER_ADDRESS, "listen address")

	rootCmd.AddCommand(uploadCmd, catalogCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
