// Package tools hands converted programs to external helpers.
package tools

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"badig/pkg/infolog"
	"badig/pkg/utils"
)

// ListExt is the extension of the tokenizer list file.
const ListExt = ".lmx"

// MaxListWidth is the widest list line, in bytes.
const MaxListWidth = 32

// Job describes one tokenization.
type Job struct {
	ASCII  string
	Binary string
	// List is empty when no list file is wanted.
	List        string
	Width       int
	DeleteASCII bool
	Verbose     int
}

// NewJob names the outputs after the saved ASCII file.
func NewJob(ascii, binaryExt string, width int, deleteASCII bool, verbose int) Job {
	stem := utils.Stem(ascii)
	j := Job{
		ASCII:       ascii,
		Binary:      stem + binaryExt,
		Width:       min(max(width, 0), MaxListWidth),
		DeleteASCII: deleteASCII,
		Verbose:     verbose,
	}
	if j.Width > 0 {
		j.List = stem + ListExt
	}
	return j
}

// Tokenizer turns an ASCII listing into a binary program. It returns what the
// tool printed.
type Tokenizer interface {
	Tokenize(ctx context.Context, job Job) ([]string, error)
}

// ExecTokenizer runs an executable. Args may hold the placeholders {ascii},
// {binary}, {list}, {width} and {verbose}.
type ExecTokenizer struct {
	Command string
	Args    []string
}

func (t ExecTokenizer) args(job Job) []string {
	args := t.Args
	if len(args) == 0 {
		args = []string{"{ascii}", "{binary}", "-vb", "{verbose}"}
		if job.Width > 0 {
			args = append(args, "-el", "{width}")
		}
	}
	r := strings.NewReplacer(
		"{ascii}", job.ASCII,
		"{binary}", job.Binary,
		"{list}", job.List,
		"{width}", strconv.Itoa(job.Width),
		"{verbose}", strconv.Itoa(job.Verbose),
	)
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}

func (t ExecTokenizer) Tokenize(ctx context.Context, job Job) ([]string, error) {
	if t.Command == "" {
		return nil, errors.New("tokenizer not configured")
	}
	cmd := exec.CommandContext(ctx, t.Command, t.args(job)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	lines := splitLines(out.String())
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return lines, fmt.Errorf("tokenizer exited with code %d", ee.ExitCode())
		}
		return lines, fmt.Errorf("tokenizer: %w", err)
	}
	return lines, nil
}

func splitLines(s string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		if l := strings.TrimRight(sc.Text(), " \r"); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Handoff tokenizes the saved program and removes the ASCII file when asked.
func Handoff(ctx context.Context, tk Tokenizer, job Job, log *infolog.Logger) error {
	log.Main("Tokenizing: %s", job.ASCII)
	lines, err := tk.Tokenize(ctx, job)
	for _, l := range lines {
		log.Item("%s", l)
	}
	if err != nil {
		return infolog.Failf("Tokenizing failed: %v", err)
	}
	log.Sub("Saved: %s", job.Binary)
	if job.List != "" {
		log.Sub("List: %s", job.List)
	}

	if job.DeleteASCII {
		if err := os.Remove(job.ASCII); err != nil {
			return infolog.Failf("Could not delete the ASCII file: %v", err)
		}
		log.Sub("Deleted: %s", job.ASCII)
	}
	return nil
}
