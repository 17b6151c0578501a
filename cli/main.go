// Command ytgrab is a terminal client for a remote media downloader
// service: it looks up video metadata, submits download jobs, follows
// them to completion, and saves the produced artifacts locally.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"ytgrab/api"
	"ytgrab/config"
	"ytgrab/cookies"
	transport "ytgrab/http"
	"ytgrab/session"
	"ytgrab/youtube"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, failureStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ytgrab",
		Usage: "download video and audio through a remote downloader service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a config file (default ~/.config/ytgrab/config.yaml)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "service base URL, overrides the config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
		},
		Commands: []*cli.Command{
			infoCommand(),
			downloadCommand(),
			historyCommand(),
			healthCommand(),
			cookiesCommand(),
		},
	}
}

// setup layers the configuration (defaults, file, env, flags) and wires
// the service client on top of it.
func setup(c *cli.Context) (*config.Config, *api.Client, error) {
	var (
		cfg *config.Config
		err error
	)
	if p := c.String("config"); p != "" {
		cfg, err = config.LoadFrom(p)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}
	if v := c.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	tcfg := transport.DefaultConfig()
	tcfg.BaseURL = cfg.BaseURL
	tcfg.Timeout = cfg.RequestTimeout
	tcfg.UserAgent = cfg.UserAgent
	return cfg, api.NewClient(transport.New(tcfg)), nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show metadata for a video URL",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			_, client, err := setup(c)
			if err != nil {
				return err
			}
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one URL argument")
			}
			ctx, stop := signalContext(c)
			defer stop()

			info, err := client.FetchInfo(ctx, c.Args().First())
			if err != nil {
				return err
			}
			fmt.Println(renderInfo(info))
			return nil
		},
	}
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "download a video or extract its audio",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "audio",
				Usage: "extract audio instead of downloading video",
			},
			&cli.StringFlag{
				Name:  "quality",
				Usage: "quality label (video: 3gp..1080p, audio: 128kbps..320kbps); empty picks the default",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "directory to save the artifact in, overrides the config file",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "report the artifact URL instead of saving the file",
			},
		},
		Action: runDownload,
	}
}

func runDownload(c *cli.Context) error {
	cfg, client, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one URL argument")
	}
	format := youtube.FormatVideo
	if c.Bool("audio") {
		format = youtube.FormatAudio
	}
	outputDir := cfg.OutputDir
	if v := c.String("output"); v != "" {
		outputDir = v
	}

	ctx, stop := signalContext(c)
	defer stop()

	ev := newConsoleEvents(cfg.PollMaxAttempts)
	ctrl := session.NewController(client, ev, session.Config{
		PollInterval: cfg.PollInterval,
		MaxAttempts:  cfg.PollMaxAttempts,
		SettleDelay:  cfg.SettleDelay,
	})

	if _, err := ctrl.Submit(ctx, c.Args().First(), format, c.String("quality")); err != nil {
		fmt.Println(renderFailure(err))
		return cli.Exit("", 1)
	}

	for {
		select {
		case <-ctx.Done():
			ctrl.Dismiss()
			return ctx.Err()
		case s := <-ev.states:
			if line := renderTick(s, cfg.PollMaxAttempts); line != "" {
				fmt.Println(line)
			}
		case r := <-ev.results:
			var savedTo string
			if !c.Bool("no-save") && r.DownloadURL != "" {
				savedTo, err = saveArtifact(ctx, client, r, outputDir)
				if err != nil {
					return fmt.Errorf("save artifact: %w", err)
				}
			}
			fmt.Println(renderResult(r, savedTo))
			return nil
		case err := <-ev.errs:
			fmt.Println(renderFailure(err))
			return cli.Exit("", 1)
		}
	}
}

// saveArtifact streams the produced file from the service into
// outputDir, named after the sanitized title.
func saveArtifact(ctx context.Context, client *api.Client, r session.DownloadResult, outputDir string) (string, error) {
	body, size, err := client.File(ctx, r.DownloadURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	ext := path.Ext(r.DownloadURL)
	if ext == "" {
		if r.Format == youtube.FormatAudio {
			ext = ".mp3"
		} else {
			ext = ".mp4"
		}
	}
	dest := filepath.Join(outputDir, sanitizeFilename(r.Title)+ext)

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(size, "saving")
	if _, err := io.Copy(io.MultiWriter(f, bar), body); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recent downloads recorded by the service",
		Action: func(c *cli.Context) error {
			_, client, err := setup(c)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(c)
			defer stop()

			entries, err := client.History(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no downloads yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tFORMAT\tQUALITY\tSTATUS\tCREATED")
			for _, e := range entries {
				title := e.Title
				if len(title) > 40 {
					title = title[:37] + "..."
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, title, e.FormatType, e.Quality, e.Status, e.CreatedAt)
			}
			return w.Flush()
		},
	}
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check that the service is reachable",
		Action: func(c *cli.Context) error {
			_, client, err := setup(c)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(c)
			defer stop()

			h, err := client.Health(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s (%s)\n", successStyle.Render(h.Status), h.Service, h.Timestamp)
			return nil
		},
	}
}

func cookiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "cookies",
		Usage: "manage the cookies.txt blob the service uses for restricted videos",
		Subcommands: []*cli.Command{
			{
				Name:      "upload",
				Usage:     "upload a Netscape-format cookies.txt file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					_, client, err := setup(c)
					if err != nil {
						return err
					}
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one file argument")
					}
					ctx, stop := signalContext(c)
					defer stop()

					mgr := cookies.NewManager(client)
					if err := mgr.Upload(ctx, c.Args().First()); err != nil {
						return err
					}
					if st := mgr.Last(); st != nil && st.Exists {
						fmt.Printf("cookies uploaded (%s on the service)\n", formatSize(st.Size))
					} else {
						fmt.Println("cookies uploaded")
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "show whether the service holds a cookies file",
				Action: func(c *cli.Context) error {
					_, client, err := setup(c)
					if err != nil {
						return err
					}
					ctx, stop := signalContext(c)
					defer stop()

					st, err := cookies.NewManager(client).Status(ctx)
					if err != nil {
						return err
					}
					if st.Exists {
						fmt.Printf("cookies file present, %s\n", formatSize(st.Size))
					} else {
						fmt.Println("no cookies file on the service")
					}
					return nil
				},
			},
		},
	}
}

// consoleEvents bridges controller notifications to the command loop.
// Sends never block the polling goroutine; state ticks are dropped if
// the loop falls behind, terminal outcomes are buffered.
type consoleEvents struct {
	states  chan session.Session
	results chan session.DownloadResult
	errs    chan error
}

func newConsoleEvents(maxAttempts int) *consoleEvents {
	return &consoleEvents{
		states:  make(chan session.Session, maxAttempts+8),
		results: make(chan session.DownloadResult, 1),
		errs:    make(chan error, 1),
	}
}

func (e *consoleEvents) OnStateChange(s session.Session) {
	select {
	case e.states <- s:
	default:
	}
}

func (e *consoleEvents) OnResult(r session.DownloadResult) {
	select {
	case e.results <- r:
	default:
	}
}

func (e *consoleEvents) OnError(err error) {
	select {
	case e.errs <- err:
	default:
	}
}
