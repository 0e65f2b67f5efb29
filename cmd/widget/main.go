package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"yt-summarizer/internal/app"
	"yt-summarizer/internal/client"
	"yt-summarizer/internal/config"
	"yt-summarizer/internal/input"
	"yt-summarizer/internal/logger"
	"yt-summarizer/internal/render"
)

const maxClipboardBytes = 64 << 10

type options struct {
	url  string
	html bool
	out  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg := config.LoadWidget()
	log := logger.NewWithWriter(cfg.LogLevel, os.Stderr)

	var clipboard io.Reader
	if stdinPiped() {
		clipboard = os.Stdin
	}

	if err := run(ctx, cfg, log, os.Args[1:], clipboard, os.Stdout); err != nil {
		log.Error("widget failed", "err", err)
		os.Exit(1)
	}
}

// stdinPiped reports whether standard input carries clipboard text rather than a terminal.
func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}

func parseFlags(args []string) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("widget", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.url, "url", "", "YouTube URL typed by hand")
	fs.BoolVar(&opts.html, "html", false, "render the web view page instead of the widget text")
	fs.StringVar(&opts.out, "out", "", "write output to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, fmt.Errorf("parse flags: %w", err)
	}
	return opts, fs.Args(), nil
}

func run(ctx context.Context, cfg config.WidgetConfig, log *slog.Logger, args []string, clipboard io.Reader, stdout io.Writer) error {
	opts, shared, err := parseFlags(args)
	if err != nil {
		return err
	}

	src := input.Sources{Manual: opts.url, Shared: shared}
	if clipboard != nil {
		b, err := io.ReadAll(io.LimitReader(clipboard, maxClipboardBytes))
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		src.Clipboard = string(b)
	}

	view, err := resolveView(ctx, cfg, log, src)
	if err != nil {
		return err
	}

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if opts.html {
		return render.Page(w, view)
	}
	return render.Widget(w, view)
}

// resolveView finds the URL, asks the server for a summary and maps the outcome.
// Without a URL no request is made.
func resolveView(ctx context.Context, cfg config.WidgetConfig, log *slog.Logger, src input.Sources) (render.View, error) {
	videoURL, err := input.Resolve(src)
	if errors.Is(err, input.ErrNoInputDetected) {
		log.Info("no YouTube URL detected")
		return render.NoInput(), nil
	}
	if err != nil {
		return render.View{}, err
	}

	c, err := client.New(client.Config{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout}, log)
	if err != nil {
		return render.View{}, fmt.Errorf("create client: %w", err)
	}

	return render.FromOutcome(videoURL, c.Summarize(ctx, videoURL)), nil
}
