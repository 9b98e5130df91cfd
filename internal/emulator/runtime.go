// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emulator runs the Firestore emulator in a local container so the
// upload commands can be exercised with --emulator.
package emulator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// stopGrace is how long a canceled command may take to exit after the
	// interrupt before it is killed.
	stopGrace = 10 * time.Second
)

// Runtime is a container engine able to run the emulator image.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	ImageExists(image string) error

	// Pull fetches image from its registry.
	Pull(ctx context.Context, image string, out io.Writer) error

	// Run starts a container in the foreground and blocks until it exits or
	// ctx is canceled. Canceling stops the container and is not an error.
	Run(ctx context.Context, spec RunSpec, out io.Writer) error
}

// RunSpec describes one foreground container.
type RunSpec struct {
	Image string
	Name  string
	// Ports maps host ports to container ports.
	Ports map[int]int
	Args  []string
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunStreaming(ctx context.Context, name string, args []string, out io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunStreaming interrupts the command when ctx is canceled so container
// clients can forward the stop, and kills it after stopGrace.
func (o *osExecutor) RunStreaming(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopGrace
	return cmd.Run()
}

// runtime implements Runtime for a specific container binary. Docker and
// Podman differ only in binary name and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Pull(ctx context.Context, image string, out io.Writer) error {
	if err := r.exec.RunStreaming(ctx, r.bin, []string{"pull", image}, out); err != nil {
		return fmt.Errorf("pulling %s with %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec, out io.Writer) error {
	err := r.exec.RunStreaming(ctx, r.bin, runArgs(spec), out)
	if ctx.Err() != nil {
		if spec.Name != "" {
			// Fails harmlessly when --rm already removed the container.
			_ = r.exec.RunSilent(r.bin, "stop", spec.Name)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

func runArgs(spec RunSpec) []string {
	args := []string{"run", "--rm"}
	if spec.Name != "" {
		args = append(args, "--name", spec.Name)
	}
	for host, ctr := range spec.Ports {
		args = append(args, "-p", fmt.Sprintf("%d:%d", host, ctr))
	}
	args = append(args, spec.Image)
	return append(args, spec.Args...)
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
