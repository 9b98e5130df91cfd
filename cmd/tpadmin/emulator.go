package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tpadmin/internal/emulator"
)

var emulatorCmd = &cobra.Command{
	Use:   "emulator",
	Short: "Run the Firestore emulator in a local container",
	Long: `emulator starts the Firestore emulator with docker (or podman when docker
is unavailable) and keeps it in the foreground until interrupted. Other
commands reach it with --emulator true.`,
	Args: cobra.NoArgs,
	RunE: action(func(cmd *cobra.Command, env runEnv) error {
		image, _ := cmd.Flags().GetString("image")
		port, _ := cmd.Flags().GetInt("port")

		rt, err := emulator.DetectRuntime()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return emulator.Start(ctx, rt, emulator.Options{
			Image:     image,
			Port:      port,
			ProjectID: loadedCredentials.ProjectID,
		}, os.Stdout)
	}),
}

func init() {
	emulatorCmd.Flags().String("image", emulator.DefaultImage, "emulator container image")
	emulatorCmd.Flags().Int("port", emulator.DefaultPort, "host port for the emulator")

	rootCmd.AddCommand(emulatorCmd)
}
