// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/internal/lessons"
	"github.com/pdiddy/tpadmin/internal/lessonsync"
	"github.com/pdiddy/tpadmin/internal/watch"
	"github.com/pdiddy/tpadmin/pkg/types"
)

const defaultLessonsPath = "./data/lessons.txt"

var uploadLessonsCmd = &cobra.Command{
	Use:   "uploadLessons",
	Short: "Upload lessons from the lesson text file to firestore.",
	Long: `uploadLessons parses the lesson file and replaces the whole lessons
collection with its contents: every existing lesson document is deleted and
each parsed lesson is stored under a new document id. The number of uploaded
lessons is remembered as the default total for updateConfig.

Header lines start with '#' and carry "category|title"; every other non-blank
line is one lesson.`,
	Args: cobra.NoArgs,
	RunE: action(runUploadLessons),
}

func init() {
	f := uploadLessonsCmd.Flags()
	f.StringP("emulator", "e", "", "run against the local firestore emulator (true/false)")
	f.StringP("filePath", "f", defaultLessonsPath, "lesson text file path")
	f.String("ordering", string(types.OrderSequential), "delete/insert phase ordering: sequential or concurrent")
	f.Int("batch-size", lessonsync.BatchLimit, "maximum writes per committed batch")
	f.Bool("dry-run", false, "parse and report without writing to the store")
	f.String("export", "", "also write the parsed lessons to a .yaml or .json file")
	f.Bool("watch", false, "upload again whenever the lesson file changes")

	rootCmd.AddCommand(uploadLessonsCmd)
}

// uploadOptions are the uploadLessons flags that are not store settings.
type uploadOptions struct {
	DryRun     bool
	ExportPath string
	Watch      bool
}

func runUploadLessons(cmd *cobra.Command, env runEnv) error {
	emulatorFlag, _ := cmd.Flags().GetString("emulator")
	filePath, _ := cmd.Flags().GetString("filePath")
	ordering, _ := cmd.Flags().GetString("ordering")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	exportPath, _ := cmd.Flags().GetString("export")
	watchFile, _ := cmd.Flags().GetBool("watch")

	emulator, err := parseBoolFlag("emulator", emulatorFlag)
	if err != nil {
		return err
	}

	cfg := types.UploadConfig{
		StoreConfig: storeConfig(emulator),
		FilePath:    filePath,
		Ordering:    types.Ordering(ordering),
		BatchSize:   batchSize,
	}
	opts := uploadOptions{DryRun: dryRun, ExportPath: exportPath, Watch: watchFile}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return uploadLessons(ctx, cfg, opts, env)
}

// uploadLessons runs one upload, and with opts.Watch keeps uploading on
// every change to the lesson file until ctx is canceled.
func uploadLessons(ctx context.Context, cfg types.UploadConfig, opts uploadOptions, env runEnv) error {
	if opts.DryRun {
		_, err := readLessons(cfg.FilePath, opts, env)
		return err
	}

	store, err := docstore.Open(ctx, cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer store.Close()

	syncer, err := lessonsync.New(store, lessonsync.Options{
		Ordering:  cfg.Ordering,
		BatchSize: cfg.BatchSize,
		Logger:    env.log,
	})
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		return uploadOnce(ctx, cfg.FilePath, opts, syncer, env)
	}
	if err := once(ctx); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	env.out.Info("Watching %s for changes (Ctrl-C to stop)...", cfg.FilePath)
	return watch.Watch(ctx, cfg.FilePath, watch.DefaultDebounce, once, func(err error) error {
		env.out.Error(err)
		return nil
	})
}

func uploadOnce(ctx context.Context, path string, opts uploadOptions, syncer *lessonsync.Syncer, env runEnv) error {
	parsed, err := readLessons(path, opts, env)
	if err != nil {
		return err
	}

	if len(parsed) == 0 {
		env.out.Warn("%s has no lessons; the lessons collection will be emptied.", path)
	}
	env.out.Info("Deleting lessons collection and uploading %d lessons to firestore...", len(parsed))
	res, err := syncer.SyncLessons(ctx, parsed)
	if err != nil {
		return err
	}

	if err := env.counts.Save(len(parsed)); err != nil {
		return fmt.Errorf("saving uploaded lesson count: %w", err)
	}
	env.log.Info("lessons uploaded", "deleted", res.Deleted, "inserted", res.Inserted, "batches", res.Batches)
	env.out.Success("All lessons are uploaded successfully. (%d removed, %d added)", res.Deleted, res.Inserted)
	return nil
}

func readLessons(path string, opts uploadOptions, env runEnv) ([]types.Lesson, error) {
	env.out.Info("Reading lessons from %s", path)
	parsed, err := lessons.ParseLessons(path)
	if err != nil {
		return nil, err
	}
	env.out.Success("All lessons are successfully read.")

	summary := lessons.Summarize(parsed)
	for _, c := range summary.Categories {
		env.out.Plain("  %-6s %-30s %d", c.Category, c.Title, c.Count)
	}
	env.out.Plain("  %d lessons", summary.Total)

	if opts.ExportPath != "" {
		if err := lessons.Export(opts.ExportPath, parsed); err != nil {
			return nil, fmt.Errorf("exporting lessons: %w", err)
		}
		env.out.Success("Exported lessons to %s", opts.ExportPath)
	}
	return parsed, nil
}
