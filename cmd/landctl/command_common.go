package main

import (
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"

	"landctl/internal/types"
)

const version = "dev"

const reasonColumnWidth = 48

type pullTargetFlags struct {
	repo *string
	pull *int
}

func addPullTargetFlags(fs *flag.FlagSet) pullTargetFlags {
	return pullTargetFlags{
		repo: fs.String("repo", "", "repository as owner/name"),
		pull: fs.Int("pull", 0, "pull request number"),
	}
}

func (f pullTargetFlags) resolve() (string, int, error) {
	repo := strings.TrimSpace(*f.repo)
	if repo == "" {
		return "", 0, errors.New("repo is required")
	}
	if *f.pull <= 0 {
		return "", 0, errors.New("pull is required")
	}
	return repo, *f.pull, nil
}

func printJobs(output io.Writer, jobs []*types.LandingJob) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSTATUS\tREPOSITORY\tREQUESTER\tUPDATED")
	for _, job := range jobs {
		if job == nil {
			continue
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			job.ID, job.Status.Display(), job.Repository, job.Requester, formatTableTime(job.UpdatedAt))
	}
	_ = writer.Flush()
}

func formatTableTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// truncateCell keeps wide runes from blowing a column past its budget;
// tabwriter only counts cells, not display width.
func truncateCell(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
