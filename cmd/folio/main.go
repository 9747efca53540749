// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command folio is the offline companion to the API server.
//
// It segments chapter text, derives deterministic ids and steps the schema
// migrations, all without running the HTTP server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/migration"
	"github.com/taibuivan/folio/pkg/identity"
	"github.com/taibuivan/folio/pkg/ordinal"
	"github.com/taibuivan/folio/pkg/textseg"
)

// CLI defines the command-line interface for folio.
type CLI struct {
	Segment SegmentCmd `cmd:"" help:"Split chapter text into paragraphs and sentences"`
	ID      IDCmd      `cmd:"" name:"id" help:"Derive the name-based UUID of a value"`
	DN      DNGroup    `cmd:"" name:"dn" help:"Build canonical distinguished names and their ids"`
	Migrate MigrateCmd `cmd:"" help:"Apply or roll back schema migrations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// # Segment

// SegmentCmd prints the decomposition a chapter resync would store.
type SegmentCmd struct {
	File string `arg:"" optional:"" help:"Text file to segment (stdin when omitted)" type:"existingfile"`
}

type segmentedSentence struct {
	ID      string `json:"id"`
	Number  int    `json:"sentence_number"`
	Content string `json:"content"`
}

type segmentedParagraph struct {
	ID        string              `json:"id"`
	Number    int                 `json:"paragraph_number"`
	Content   string              `json:"content"`
	Sentences []segmentedSentence `json:"sentences"`
}

func (c *SegmentCmd) Run(stdin io.Reader, out io.Writer) error {
	source := stdin
	if c.File != "" {
		file, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("open %s: %w", c.File, err)
		}
		defer file.Close()
		source = file
	}

	raw, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return writeJSON(out, segment(string(raw)))
}

func segment(raw string) []segmentedParagraph {
	paragraphs := []segmentedParagraph{}
	for position, text := range textseg.Paragraphs(textseg.Normalize(raw)) {
		paragraph := segmentedParagraph{
			ID:        identity.NewOpaque().String(),
			Number:    ordinal.First + position,
			Content:   text,
			Sentences: []segmentedSentence{},
		}
		for index, sentence := range textseg.Sentences(textseg.CollapseWhitespace(text)) {
			paragraph.Sentences = append(paragraph.Sentences, segmentedSentence{
				ID:      identity.NewOpaque().String(),
				Number:  ordinal.First + index,
				Content: sentence,
			})
		}
		paragraphs = append(paragraphs, paragraph)
	}
	return paragraphs
}

// # Identifiers

// IDCmd derives a UUIDv5 for a hostname, URL, OID or canonical DN.
type IDCmd struct {
	Namespace string `short:"n" default:"x500" enum:"dns,url,oid,x500" help:"Name space (dns, url, oid, x500)"`
	Value     string `arg:"" help:"Value to derive the id from"`
}

func (c *IDCmd) Run(out io.Writer) error {
	namespace, err := identity.ParseNamespace(c.Namespace)
	if err != nil {
		return err
	}

	id, err := identity.ForNamespace(c.Value, namespace)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, id.String())
	return err
}

// DNGroup contains the per-entity DN builders.
type DNGroup struct {
	Author    DNAuthorCmd    `cmd:"" help:"Author DN from last and first name"`
	Publisher DNPublisherCmd `cmd:"" help:"Publisher DN from its name"`
	Chapter   DNChapterCmd   `cmd:"" help:"Chapter DN from title, book id and number"`
}

type DNAuthorCmd struct {
	Last  string `required:"" help:"Last name"`
	First string `required:"" help:"First name"`
}

func (c *DNAuthorCmd) Run(out io.Writer) error {
	return printDN(out, identity.AuthorDN(c.Last, c.First))
}

type DNPublisherCmd struct {
	Name string `arg:"" help:"Publisher name"`
}

func (c *DNPublisherCmd) Run(out io.Writer) error {
	return printDN(out, identity.PublisherDN(c.Name))
}

type DNChapterCmd struct {
	Title  string `required:"" help:"Chapter title"`
	Book   string `required:"" help:"Owning book id"`
	Number int    `required:"" help:"Chapter number"`
}

func (c *DNChapterCmd) Run(out io.Writer) error {
	if c.Number < ordinal.First {
		return fmt.Errorf("chapter number must be at least %d", ordinal.First)
	}
	return printDN(out, identity.ChapterDN(c.Title, c.Book, c.Number))
}

func printDN(out io.Writer, dn string) error {
	return writeJSON(out, map[string]string{
		"dn": dn,
		"id": identity.Deterministic(dn).String(),
	})
}

// # Migrations

// MigrateCmd steps the schema using the same runner as the API server.
type MigrateCmd struct {
	Direction     string `arg:"" enum:"up,down" help:"up applies pending migrations, down rolls back"`
	Steps         int    `default:"1" help:"Migrations to roll back with down"`
	DatabaseURL   string `name:"database-url" env:"DATABASE_URL" required:"" help:"PostgreSQL URL"`
	MigrationPath string `name:"path" env:"MIGRATION_PATH" default:"./data/migrations" help:"Migrations directory"`
}

func (c *MigrateCmd) Run(logger *slog.Logger) error {
	if strings.EqualFold(c.Direction, "down") {
		return migration.RunDown(c.DatabaseURL, c.MigrationPath, c.Steps, logger)
	}
	return migration.RunUp(c.DatabaseURL, c.MigrationPath, logger)
}

// # Version

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintf(out, "%s %s\n", constants.AppName, constants.AppVersion)
	return err
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// newParser builds the kong parser with the process streams bound, so tests
// can substitute buffers.
func newParser(cli *CLI, stdin io.Reader, stdout, stderr io.Writer, options ...kong.Option) (*kong.Kong, error) {
	logger := slog.New(slog.NewTextHandler(stderr, nil)).With(slog.String("app", "folio"))

	options = append([]kong.Option{
		kong.Name("folio"),
		kong.Description("Folio offline tools: segmentation, identifiers and migrations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.BindTo(stdin, (*io.Reader)(nil)),
		kong.BindTo(stdout, (*io.Writer)(nil)),
		kong.Bind(logger),
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	parser.FatalIfErrorf(ctx.Run())
}
