package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bodgit/splash"
	"github.com/bodgit/splash/blt"
	"github.com/bodgit/splash/effect"
	"github.com/bodgit/splash/record"
	"github.com/urfave/cli/v2"
)

const defaultDB = "splash.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openDB(c *cli.Context) (*splash.AssetDB, *log.Logger, error) {
	logger := newLogger(c)
	db, err := splash.NewAssetDB(c.String("db"), logger)
	return db, logger, err
}

func render(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, logger, err := openDB(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	b, err := db.Get(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	t, err := effect.ParseTransition(c.String("transition"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fb, err := blt.NewFramebuffer(c.Int("width"), c.Int("height"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	output := c.String("output")

	var surface blt.Surface = fb
	var rec *record.Recorder
	switch strings.ToLower(filepath.Ext(output)) {
	case ".gif":
		rec = record.New(fb, c.Int("every"), logger)
		surface = rec
	case ".png":
	default:
		return cli.NewExitError(errors.New("output must be a .gif or .png file"), 1)
	}

	s := splash.New(surface, logger)
	// Nothing is watching, so don't wait between frames. When recording,
	// each pause is where a frame is captured.
	s.Effects().Sleep = func(time.Duration) {}
	if rec != nil {
		s.Effects().Sleep = rec.Pause
	}

	if _, err := s.Show(b, c.Uint("x"), c.Uint("y"), t); err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(output)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if rec != nil {
		err = rec.Encode(f)
	} else {
		err = png.Encode(f, &fb.Buffer)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "splash"
	app.Usage = "Boot splash image catalog and renderer"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPLASH_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import every BMP and QOI image under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, logger, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				n, err := db.Import(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Printf("Imported %d images\n", n)

				return nil
			},
		},
		{
			Name:        "add",
			Usage:       "Add a single BMP or QOI image",
			Description: "",
			ArgsUsage:   "NAME FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, _, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				b, err := os.ReadFile(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if _, err := db.Add(c.Args().First(), b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List images",
			Description: "",
			Action: func(c *cli.Context) error {
				db, _, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				assets, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
				for _, a := range assets {
					fmt.Fprintf(w, "%s\t%v\t%dx%d\t%s\n", a.Name, a.Format, a.Width, a.Height, a.SHA1)
				}

				return w.Flush()
			},
		},
		{
			Name:        "remove",
			Usage:       "Remove an image",
			Description: "",
			ArgsUsage:   "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, _, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.Remove(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render an image onto an offscreen surface",
			Description: fmt.Sprintf("Transitions: %s", strings.Join(effect.Transitions(), ", ")),
			ArgsUsage:   "NAME",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Value: 640,
					Usage: "surface width",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: 480,
					Usage: "surface height",
				},
				&cli.UintFlag{
					Name:  "x",
					Usage: "left edge of the image",
				},
				&cli.UintFlag{
					Name:  "y",
					Usage: "top edge of the image",
				},
				&cli.StringFlag{
					Name:    "transition",
					Aliases: []string{"t"},
					Value:   effect.None.String(),
					Usage:   "transition used to reveal the image",
				},
				&cli.IntFlag{
					Name:  "every",
					Value: 1,
					Usage: "capture a GIF frame at every Nth step of the transition",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "splash.gif",
					Usage:   "output file, .gif for an animation or .png for the final frame",
				},
			},
			Action: render,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
