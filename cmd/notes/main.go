// Command notes is a small note-taking CLI demonstrating funcli's struct-args
// mode: commands are functions taking a tagged struct, so defaults, enums and
// short aliases all live in the declaration.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/scbrown/funcli"
	"github.com/scbrown/funcli/bind"
	"github.com/scbrown/funcli/internal/cliutil"
	"github.com/scbrown/funcli/internal/store"
	"github.com/scbrown/funcli/introspect"
)

// noteFormat selects the list output style.
type noteFormat string

func (noteFormat) Choices() []string { return []string{"table", "json"} }

func defaultDBPath() string {
	if p := os.Getenv("NOTES_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes.db"
	}
	return filepath.Join(home, ".notes", "notes.db")
}

func openStore() (*store.Store, error) {
	s, err := store.Open(defaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

type addArgs struct {
	Text string `flag:"text" help:"note text"`
	Tag  string `flag:"tag" default:"general" help:"category tag"`
	Pin  bool   `flag:"pin" help:"pin the note to the top of listings"`
}

// add stores a new note.
func add(a addArgs) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	n := store.Note{
		ID:        uuid.NewString(),
		Text:      a.Text,
		Tag:       a.Tag,
		Pinned:    a.Pin,
		CreatedAt: time.Now(),
	}
	if err := s.Add(context.Background(), n); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Added note %s (tag: %s)\n", n.ID, n.Tag)
	return nil
}

type listArgs struct {
	Limit  int        `flag:"limit" default:"20" help:"maximum notes to show"`
	Tag    string     `flag:"tag" help:"only show notes with this tag"`
	Format noteFormat `flag:"format" default:"table" help:"output format"`
}

// list prints stored notes, newest first.
func list(a listArgs) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	notes, err := s.List(context.Background(), a.Limit, a.Tag)
	if err != nil {
		return err
	}

	if a.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	}

	t := cliutil.NewTable(os.Stdout, "ID", "NOTE", "TAG", "ADDED")
	for _, n := range notes {
		id := n.ID
		if len(id) > 8 {
			id = id[:8]
		}
		text := n.Text
		if n.Pinned {
			text = "* " + text
		}
		t.Row(id, text, n.Tag, humanize.Time(n.CreatedAt))
	}
	return t.Flush()
}

func main() {
	cfg := funcli.Config{Introspector: introspect.Struct{}}
	if err := bind.Run([]any{add, list}, "notes", os.Args[1:], cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
