package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/remold-dev/remold/engine"
)

// expandPaths resolves the given arguments into the .py files they
// name: files are taken as-is, directories are walked recursively.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".py") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return files, nil
}

func runFiles(cmd *cli.Command, paths []string) error {
	session, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}
	files, err := expandPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .py files found")
	}

	type result struct {
		change *engine.Change
		err    error
	}
	results := make([]result, len(files))

	var group errgroup.Group
	group.SetLimit(cfg.Workers)
	for i, file := range files {
		group.Go(func() error {
			change, err := session.RunFile(file)
			results[i] = result{change: change, err: err}
			return nil
		})
	}
	group.Wait()

	colored := !cfg.NoColor && os.Getenv("NO_COLOR") == "" &&
		term.IsTerminal(int(os.Stdout.Fd()))

	reformatted, unchanged, failed := 0, 0, 0
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error: %v\n", res.err)
			continue
		}
		if res.change == nil {
			unchanged++
			continue
		}
		reformatted++
		if cfg.Apply {
			if err := res.change.Write(); err != nil {
				return err
			}
			fmt.Printf("reformatted %s\n", res.change.File.Path)
		} else {
			diff, err := res.change.Diff()
			if err != nil {
				return err
			}
			fmt.Print(colorizeDiff(diff, colored))
		}
	}

	fmt.Println("All done!")
	if msg := dumpStats(reformatted, unchanged, failed); msg != "" {
		fmt.Println(msg)
	}
	if failed > 0 {
		return cli.Exit("", 2)
	}
	if reformatted > 0 && !cfg.Apply {
		return cli.Exit("", 1)
	}
	return nil
}

func dumpStats(reformatted, unchanged, failed int) string {
	var parts []string
	count := func(n int, status string) {
		if n == 0 {
			return
		}
		msg := fmt.Sprintf("%d file", n)
		if n > 1 {
			msg += "s"
		}
		parts = append(parts, msg+" "+status)
	}
	count(reformatted, "reformatted")
	count(unchanged, "left unchanged")
	count(failed, "failed")
	return strings.Join(parts, ", ")
}

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func colorizeDiff(diff string, colored bool) string {
	if !colored {
		return diff
	}
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
