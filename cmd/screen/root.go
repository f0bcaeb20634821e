package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type screenOptions struct {
	jobFile         string
	jobText         string
	concurrency     int
	isolateFailures bool
	debug           bool
}

func newRootCmd() *cobra.Command {
	opts := &screenOptions{}

	cmd := &cobra.Command{
		Use:   "screen [flags] <resume.pdf|resume.docx>...",
		Short: "Rank local resume files against a job description",
		Long: `Screen extracts the text of each resume, scores it against the job
description with the configured LLM provider and prints the ranked results as JSON.
Files are read in place and never deleted.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runScreen(cmd, opts, args)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "path to a text file holding the job description")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "job description given inline")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "resumes processed at once (defaults to SCREENING_CONCURRENCY)")
	cmd.Flags().BoolVar(&opts.isolateFailures, "isolate-failures", false, "report failing files instead of aborting the batch")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")

	return cmd
}

func runScreen(cmd *cobra.Command, opts *screenOptions, args []string) error {
	jobDescription, err := readJobDescription(opts)
	if err != nil {
		return err
	}

	files, err := localResumes(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	concurrency := cfg.Screening.Concurrency
	if opts.concurrency > 0 {
		concurrency = opts.concurrency
	}

	// stdout only carries the report.
	zl, err := logger.NewStderr(opts.debug || cfg.Server.LogDebug)
	if err != nil {
		return err
	}
	defer zl.Sync()
	if !cfg.DotEnvLoaded {
		zl.Debug("no .env file found, using environment and defaults")
	}

	llmClient, err := services.NewLLMClient(cfg.LLM, zl)
	if err != nil {
		return err
	}

	screening := services.NewScreeningService(
		services.NewTextExtractor(services.NewPDFParserService(), services.NewDOCXParserService()),
		services.NewMatchScorer(llmClient, cfg.LLM.Temperature, zl),
		services.NewStorageService(cfg.Storage.UploadPath),
		services.ScreeningOptions{
			Concurrency:     concurrency,
			IsolateFailures: opts.isolateFailures || cfg.Screening.IsolateFailures,
		},
		zl,
	)

	result, err := screening.Screen(cmd.Context(), files, jobDescription)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(models.ScreenResponse{
		Success:      true,
		TotalResumes: len(files),
		Results:      result.Results,
		Failures:     result.Failures,
	})
}

func readJobDescription(opts *screenOptions) (string, error) {
	if opts.jobText != "" {
		return opts.jobText, nil
	}
	if opts.jobFile == "" {
		return "", errors.New("a job description is required (--job or --job-text)")
	}

	data, err := os.ReadFile(opts.jobFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

// localResumes maps command line paths to unstaged resumes, using the file
// extension as the declared media type.
func localResumes(paths []string) ([]models.UploadedResume, error) {
	files := make([]models.UploadedResume, 0, len(paths))

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("resume %s: %w", p, err)
		}

		var mediaType string
		switch strings.ToLower(filepath.Ext(p)) {
		case ".pdf":
			mediaType = models.MediaTypePDF
		case ".docx":
			mediaType = models.MediaTypeDOCX
		default:
			return nil, fmt.Errorf("resume %s: %w", p, services.ErrUnsupportedFormat)
		}

		files = append(files, models.UploadedResume{
			Path:         p,
			MediaType:    mediaType,
			OriginalName: filepath.Base(p),
		})
	}

	return files, nil
}
