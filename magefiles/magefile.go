// Package main contains Mage build targets for tpadmin developer tooling.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/tpadmin/internal/emulator"
	"github.com/pdiddy/tpadmin/internal/lessons"
)

const (
	lessonsFile = "data/lessons.txt"
	wordsFile   = "data/words.txt"
)

// starterFiles are created by Init when missing so the default flag paths work.
var starterFiles = map[string]string{
	lessonsFile:         "#1|Home row\nasdf jkl;\n",
	wordsFile:           "",
	".secrets/.gitkeep": "",
}

// Init creates the data and secrets directories with starter files.
func Init() error {
	for path, content := range starterFiles {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Project files initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "tpadmin"
	cmdPkg  = "./cmd/tpadmin"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	if err := sh.RunV("go", "test", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Emulator runs the Firestore emulator container until interrupted.
func Emulator(ctx context.Context) error {
	mg.Deps(Init)
	rt, err := emulator.DetectRuntime()
	if err != nil {
		return err
	}
	return emulator.Start(ctx, rt, emulator.Options{}, os.Stdout)
}

// Stats prints content metrics from the default data files and the
// non-blank Go line counts of the module.
func Stats() error {
	mg.Deps(Init)

	parsed, err := lessons.ParseLessons(lessonsFile)
	if err != nil {
		return err
	}
	summary := lessons.Summarize(parsed)
	list, err := lessons.ParseWords(wordsFile)
	if err != nil {
		return err
	}
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lessons (%s):   %d in %d categories\n", lessonsFile, summary.Total, len(summary.Categories))
	fmt.Printf("Words (%s):       %d\n", wordsFile, len(list))
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines counts non-blank lines of .go files under root, split into
// production and _test.go files. Hidden and underscore directories are
// skipped like the go tool skips them.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}
