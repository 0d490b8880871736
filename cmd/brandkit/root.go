package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"brandkit/internal/assemble"
	"brandkit/internal/domain"
	"brandkit/internal/extract"
	"brandkit/internal/httpapi"
	"brandkit/internal/infra"
	"brandkit/internal/pipeline"
	"brandkit/internal/providers/claude"
	"brandkit/internal/providers/flux"
	"brandkit/internal/refine"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brandkit",
		Short:         "Generate logos, social post assets, and content calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLogoCmd(),
		newCarouselCmd(),
		newStoryCmd(),
		newCalendarCmd(),
		newHashtagsCmd(),
		newExtractCmd(),
		newServeCmd(),
	)
	return root
}

// bootstrap wires config, logger, backend clients, and pipeline deps. It
// fails fast when a required credential is missing.
func bootstrap() (pipeline.Deps, *infra.Config, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return pipeline.Deps{}, nil, err
	}
	logger := infra.NewLogger(cfg.AppEnv)

	textClient, err := claude.NewClient(claude.Options{
		APIKey:     cfg.ClaudeAPIKey,
		Model:      cfg.ClaudeModel,
		BaseURL:    cfg.ClaudeBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.ClaudeTimeout},
	})
	if err != nil {
		return pipeline.Deps{}, nil, err
	}
	downloadClient := &http.Client{Timeout: cfg.DownloadTimeout}
	primary, err := flux.NewClient(flux.Options{
		APIKey:             cfg.FalAPIKey,
		Model:              cfg.PrimaryModel,
		BaseURL:            cfg.FalBaseURL,
		HTTPClient:         &http.Client{Timeout: cfg.FluxTimeout},
		DownloadHTTPClient: downloadClient,
	})
	if err != nil {
		return pipeline.Deps{}, nil, err
	}
	secondary, err := flux.NewClient(flux.Options{
		APIKey:             cfg.FalAPIKey,
		Model:              cfg.SecondaryModel,
		BaseURL:            cfg.FalBaseURL,
		HTTPClient:         &http.Client{Timeout: cfg.FluxTimeout},
		DownloadHTTPClient: downloadClient,
	})
	if err != nil {
		return pipeline.Deps{}, nil, err
	}

	return pipeline.Deps{
		Refiner:   refine.NewRefiner(textClient, logger),
		Primary:   primary,
		Secondary: secondary,
		Assembler: assemble.NewAssembler(logger),
		Engine:    extract.NewEngine(),
		BaseDir:   cfg.OutputDir,
		Logger:    logger,
	}, cfg, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogoCmd() *cobra.Command {
	var brief pipeline.LogoBrief
	var style string
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Generate a company logo",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := domain.ParseLogoStyle(style)
			if !ok {
				return fmt.Errorf("unknown style %q (use 1-6 or a style name)", style)
			}
			brief.Style = parsed

			deps, _, err := bootstrap()
			if err != nil {
				return err
			}
			out, err := pipeline.NewLogo(deps).Run(cmd.Context(), brief)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&brief.CompanyName, "company", "", "company name (required)")
	cmd.Flags().StringVar(&brief.CompanyDescription, "description", "", "what the company does")
	cmd.Flags().StringVar(&brief.Industry, "industry", "", "industry, e.g. technology")
	cmd.Flags().StringVar(&brief.Tone, "tone", "", "brand tone, e.g. modern")
	cmd.Flags().StringVar(&brief.PreferredColor, "color", "", "preferred color palette")
	cmd.Flags().StringVar(&style, "style", "5", "logo style: 1 WordMark, 2 LetterMark, 3 Pictorial Mark, 4 Abstract, 5 Combination Mark, 6 Emblem")
	cmd.Flags().StringVar(&brief.Prompt, "prompt", "", "free-form design direction")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newCarouselCmd() *cobra.Command {
	return newBatchCmd("carousel", domain.CategoryCarousel, "Generate a carousel image per prompt")
}

func newStoryCmd() *cobra.Command {
	return newBatchCmd("story", domain.CategoryStory, "Generate vertical story images")
}

func newBatchCmd(use string, category domain.ContentCategory, short string) *cobra.Command {
	var brief pipeline.BatchBrief
	brief.Category = category
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _, err := bootstrap()
			if err != nil {
				return err
			}
			out, err := pipeline.NewBatch(deps).Run(cmd.Context(), brief)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringSliceVar(&brief.Prompts, "prompts", nil, "one prompt per image (required)")
	cmd.Flags().StringVar(&brief.Platform, "platform", "instagram", "target platform")
	cmd.Flags().StringVar(&brief.Company, "company", "", "company name for file naming")
	_ = cmd.MarkFlagRequired("prompts")
	return cmd
}

func newCalendarCmd() *cobra.Command {
	var brief pipeline.CalendarBrief
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Draft a content calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _, err := bootstrap()
			if err != nil {
				return err
			}
			out, err := pipeline.NewCalendar(deps).Run(cmd.Context(), brief)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&brief.Prompt, "prompt", "", "campaign theme (required)")
	cmd.Flags().StringSliceVar(&brief.Platforms, "platforms", []string{"instagram"}, "target platforms")
	cmd.Flags().IntVar(&brief.DurationWeeks, "weeks", 1, "calendar length in weeks")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newHashtagsCmd() *cobra.Command {
	var (
		tags           []string
		contentContext string
		platform       string
	)
	cmd := &cobra.Command{
		Use:   "hashtags",
		Short: "Refine a hashtag list for reach",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _, err := bootstrap()
			if err != nil {
				return err
			}
			refined := deps.Refiner.RefineHashtags(cmd.Context(), tags, contentContext, platform)
			return printJSON(cmd, map[string][]string{"hashtags": refined})
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "hashtags to refine (required)")
	cmd.Flags().StringVar(&contentContext, "context", "", "what the post is about")
	cmd.Flags().StringVar(&platform, "platform", "instagram", "target platform")
	_ = cmd.MarkFlagRequired("tags")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract typed results from a generation transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if file != "" {
				raw, err = os.ReadFile(file)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			out := extract.NewEngine().Extract(string(raw))
			if out.Single != nil {
				return printJSON(cmd, out.Single)
			}
			return printJSON(cmd, out.Batch)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "transcript file (default: stdin)")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipelines over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cfg, err := bootstrap()
			if err != nil {
				return err
			}
			logger := deps.Logger
			app := httpapi.NewApp(
				pipeline.NewLogo(deps),
				pipeline.NewBatch(deps),
				pipeline.NewCalendar(deps),
				deps.Refiner,
				deps.Engine,
				cfg.OutputDir,
				logger,
			)
			srv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      httpapi.NewRouter(app, cfg, logger),
				ReadTimeout:  cfg.HTTPReadTimeout,
				WriteTimeout: cfg.HTTPWriteTimeout,
				IdleTimeout:  cfg.HTTPIdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("port", cfg.Port).Msg("http server listening")
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-stop:
				logger.Info().Msg("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPWriteTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
}
