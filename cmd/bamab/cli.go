package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/config"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/gemini"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/media"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/pipeline"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/render"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/store"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/web"
)

// generatorFactory defers building the generation client until a command
// actually needs it, so list/show/delete work without an API key.
type generatorFactory func(ctx context.Context) (pipeline.Generator, error)

// geminiFactory builds the real Gemini-backed generator from config.
func geminiFactory(cfg *config.Config) generatorFactory {
	return func(ctx context.Context) (pipeline.Generator, error) {
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config, newGenerator generatorFactory) *cli.App {
	app := &cli.App{
		Name:    "bamab",
		Usage:   "Lekdetectie report generator and archive",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(st, cfg, newGenerator),
			listCmd(st),
			searchCmd(st),
			showCmd(st, cfg),
			deleteCmd(st),
			serveCmd(st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// deleteOutput is the JSON result of the delete command.
type deleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// generateCmd creates the generate command.
func generateCmd(st *store.Store, cfg *config.Config, newGenerator generatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a report from project details and photos, and archive it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "client", Usage: "Client name"},
			&cli.StringFlag{Name: "address", Usage: "Site address"},
			&cli.StringFlag{Name: "city", Usage: "City"},
			&cli.StringFlag{Name: "date", Value: time.Now().Format("2006-01-02"), Usage: "Inspection date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "reference", Usage: "Reference number"},
			&cli.StringFlag{Name: "phone", Usage: "Client phone number"},
			&cli.StringFlag{Name: "email", Usage: "Client email address"},
			&cli.StringFlag{Name: "notes", Usage: "Inspection notes"},
			&cli.StringSliceFlag{Name: "photo", Aliases: []string{"p"}, Usage: "Photo file (repeatable, order is kept)"},
			&cli.StringSliceFlag{Name: "caption", Aliases: []string{"c"}, Usage: "Caption for the photo at the same position (repeatable)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Also write the rendered document to this HTML file"},
		},
		Action: func(c *cli.Context) error {
			photos, err := loadPhotos(c.StringSlice("photo"), c.StringSlice("caption"))
			if err != nil {
				return outputError(err)
			}

			generator, err := newGenerator(c.Context)
			if err != nil {
				return outputError(err)
			}

			input := pipeline.GenerateInput{
				Metadata: report.ProjectMetadata{
					ClientName:      c.String("client"),
					Address:         c.String("address"),
					City:            c.String("city"),
					Date:            c.String("date"),
					ReferenceNumber: c.String("reference"),
					Phone:           c.String("phone"),
					Email:           c.String("email"),
				},
				Notes:  c.String("notes"),
				Photos: photos,
			}

			session := pipeline.NewSession(generator, st)
			output, err := session.Generate(c.Context, input)
			if err != nil {
				return outputError(err)
			}

			if outPath := c.String("out"); outPath != "" {
				if err := writeDocument(outPath, output.Record, photos, cfg.OrgName); err != nil {
					return outputError(err)
				}
			}

			return outputJSON(output.Record)
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List archived reports, newest first",
		Action: func(c *cli.Context) error {
			return outputJSON(st.Sorted())
		},
	}
}

// searchCmd creates the search command.
func searchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search archived reports by client name or reference number",
		ArgsUsage: "<term>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("geef een zoekterm op"))
			}
			return outputJSON(st.Search(c.Args().First()))
		},
	}
}

// showCmd creates the show command.
func showCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show an archived report",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the rendered document to this HTML file instead of printing JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("geef een rapport-id op"))
			}

			rec, err := st.Get(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if outPath := c.String("out"); outPath != "" {
				// Archived reports render without photos; payloads are not stored.
				if err := writeDocument(outPath, rec, nil, cfg.OrgName); err != nil {
					return outputError(err)
				}
				return nil
			}

			return outputJSON(rec)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an archived report (no error if it does not exist)",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("geef een rapport-id op"))
			}

			id := c.Args().First()
			if err := st.Remove(id); err != nil {
				return outputError(err)
			}

			return outputJSON(deleteOutput{Deleted: true, ID: id})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the report archive over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(st, cfg.OrgName, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// loadPhotos reads photo files in flag order and pairs each with the
// caption at the same position. Missing captions stay empty; extra
// captions are ignored.
func loadPhotos(paths, captions []string) ([]report.PhotoItem, error) {
	photos := make([]report.PhotoItem, 0, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIO(i+1, err)
		}
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}
		photos = append(photos, report.PhotoItem{
			ID:       filepath.Base(path),
			Data:     data,
			MIMEType: media.DetectMIME(path, data),
			Caption:  caption,
		})
	}
	return photos, nil
}

// writeDocument renders a record to the printable page and writes it out.
func writeDocument(path string, rec report.SavedReportRecord, photos []report.PhotoItem, orgName string) error {
	in := render.Input{
		Markdown:  rec.Markdown,
		OrgName:   orgName,
		CreatedAt: time.UnixMilli(rec.Timestamp),
	}
	for i := range photos {
		in.Photos = append(in.Photos, render.Photo{
			DataURL: photos[i].PreviewURL(),
			Caption: photos[i].Caption,
		})
	}

	html, err := render.Document(in)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}

// outputJSON marshals and prints JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if repErr, ok := err.(*errors.ReportError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", repErr.Code, repErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
