// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tpadmin/internal/appconfig"
	"github.com/pdiddy/tpadmin/internal/docstore"
	"github.com/pdiddy/tpadmin/pkg/types"
)

var updateConfigCmd = &cobra.Command{
	Use:   "updateConfig",
	Short: "Update config document in firestore.",
	Long: `updateConfig replaces the configs/configs_id document that clients read
before syncing lessons. Without --totalLessonCount the count recorded by the
last uploadLessons run is used.`,
	Args: cobra.NoArgs,
	RunE: action(runUpdateConfig),
}

func init() {
	f := updateConfigCmd.Flags()
	f.StringP("emulator", "e", "", "run against the local firestore emulator (true/false)")
	f.StringP("downloadAll", "d", "", "force clients to download all lessons (true/false)")
	f.String("totalLessonCount", strconv.Itoa(appconfig.UseUploadedCount), "total count of all lessons (-1: last uploaded count)")
	f.String("newLessonIds", "", "comma-separated ids of new lessons")

	rootCmd.AddCommand(updateConfigCmd)
}

func runUpdateConfig(cmd *cobra.Command, env runEnv) error {
	emulatorFlag, _ := cmd.Flags().GetString("emulator")
	downloadAllFlag, _ := cmd.Flags().GetString("downloadAll")
	totalFlag, _ := cmd.Flags().GetString("totalLessonCount")
	newIDs, _ := cmd.Flags().GetString("newLessonIds")

	emulator, err := parseBoolFlag("emulator", emulatorFlag)
	if err != nil {
		return err
	}
	downloadAll, err := parseBoolFlag("downloadAll", downloadAllFlag)
	if err != nil {
		return err
	}
	total, err := appconfig.ParseTotalLessonCount(totalFlag)
	if err != nil {
		return err
	}

	opts := appconfig.Options{
		DownloadAll:      downloadAll,
		TotalLessonCount: total,
		NewLessonIDs:     newIDs,
	}
	_, err = updateConfig(context.Background(), storeConfig(emulator), opts, env)
	return err
}

func updateConfig(ctx context.Context, cfg types.StoreConfig, opts appconfig.Options, env runEnv) (types.ConfigDocument, error) {
	doc, err := appconfig.Build(opts, env.counts)
	if err != nil {
		return types.ConfigDocument{}, err
	}

	store, err := docstore.Open(ctx, cfg)
	if err != nil {
		return types.ConfigDocument{}, err
	}
	defer store.Close()

	if err := appconfig.Write(ctx, store, doc); err != nil {
		return types.ConfigDocument{}, err
	}

	env.log.Info("config updated", "download_all", doc.DownloadAll, "total", doc.TotalLessonCount, "new_ids", doc.NewLessonIDs)
	env.out.Success("Config updated: downloadAll=%t totalLessonCount=%d newLessonIds=%v",
		doc.DownloadAll, doc.TotalLessonCount, doc.NewLessonIDs)
	return doc, nil
}

// parseBoolFlag accepts the true/false strings the flags take. An empty value
// is false.
func parseBoolFlag(name, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &appconfig.ConfigError{Field: name, Value: value, Reason: "expected true or false"}
	}
	return b, nil
}
