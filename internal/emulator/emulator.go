// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emulator

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/tpadmin/pkg/types"
)

const (
	// DefaultImage ships the gcloud CLI with the emulator components.
	DefaultImage = "gcr.io/google.com/cloudsdktool/google-cloud-cli:emulators"

	// DefaultPort matches docstore.DefaultEmulatorHost.
	DefaultPort = 8080

	containerName = "tpadmin-firestore"
)

// Options configures Start.
type Options struct {
	Image string
	Port  int
	// ProjectID is the project the emulator serves.
	ProjectID string
}

// Start pulls the emulator image if needed and runs the Firestore emulator
// in the foreground until ctx is canceled.
func Start(ctx context.Context, rt Runtime, opts Options, out io.Writer) error {
	image := opts.Image
	if image == "" {
		image = DefaultImage
	}
	port := opts.Port
	if port <= 0 {
		port = DefaultPort
	}
	project := opts.ProjectID
	if project == "" {
		project = types.EmulatorProjectID
	}

	if err := rt.ImageExists(image); err != nil {
		fmt.Fprintf(out, "pulling %s\n", image)
		if err := rt.Pull(ctx, image, out); err != nil {
			return err
		}
	}

	spec := RunSpec{
		Image: image,
		Name:  containerName,
		Ports: map[int]int{port: DefaultPort},
		Args: []string{
			"gcloud", "emulators", "firestore", "start",
			fmt.Sprintf("--host-port=0.0.0.0:%d", DefaultPort),
			"--project=" + project,
		},
	}
	fmt.Fprintf(out, "starting firestore emulator with %s on localhost:%d\n", rt.Name(), port)
	return rt.Run(ctx, spec, out)
}
