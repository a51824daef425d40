package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"SketchBoard/internal/board"
	"SketchBoard/internal/codec"
	"SketchBoard/internal/config"
	"SketchBoard/internal/net"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		openPath string
		browse   bool
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "sketchboard [share-link]",
		Short: "Freehand sketch board with a live view for the local network",
		Long: "Without arguments sketchboard opens an editable board and, if the mirror is\n" +
			"enabled, shares it read-only on the local network. Given a share link such as\n" +
			net.Scheme + "192.168.1.20:8888 it follows that board instead.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				board.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			switch {
			case browse:
				return runBrowse()
			case len(args) == 1:
				return runViewer(cfg, args[0])
			}
			return runHost(cfg, cfgPath, openPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML or YAML configuration file, reloaded on change")
	cmd.Flags().StringVarP(&openPath, "open", "o", "", "sketch file to open")
	cmd.Flags().BoolVar(&browse, "browse", false, "list boards shared on the local network and exit")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine events to stderr")
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runHost(cfg config.Config, cfgPath, openPath string) error {
	log.Println("Starting as HOST")
	b := board.New(cfg)
	if openPath != "" {
		if err := openSketch(b, openPath); err != nil {
			return err
		}
	}

	myApp := app.NewWithID("io.sketchboard")
	bw := ui.NewBoardWidget(b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfgPath != "" {
		go func() {
			err := config.Watch(ctx, cfgPath, func(c config.Config) {
				fyne.Do(func() { b.SetConfig(c) })
			})
			if err != nil {
				log.Printf("[HOST] config reload disabled: %v", err)
			}
		}()
	}

	shareLink := ""
	if cfg.Mirror.Enabled {
		shareLink = startMirror(ctx, cfg.Mirror, bw)
	}
	ui.RunApp(myApp, bw, shareLink)
	return nil
}

// startMirror serves read-only snapshots of the board and returns the share link.
func startMirror(ctx context.Context, m config.Mirror, bw *ui.BoardWidget) string {
	hub := net.NewHub()
	publish := func(doc *state.Document) {
		data, err := codec.Marshal(doc)
		if err != nil {
			log.Printf("[HOST] snapshot failed: %v", err)
			return
		}
		hub.Publish(data)
	}
	bw.OnDocumentChange = publish
	publish(bw.Board().Document())

	go func() {
		if err := hub.ListenAndServe(ctx, fmt.Sprintf(":%d", m.Port)); err != nil {
			log.Printf("[HOST] %v", err)
		}
	}()

	if m.Advertise {
		server, err := net.Advertise(m.Port)
		if err != nil {
			log.Printf("[HOST] not advertising: %v", err)
		} else {
			context.AfterFunc(ctx, func() { server.Shutdown() })
		}
	}

	link := net.Link(net.OutgoingIP(), m.Port)
	log.Printf("[HOST] share link: %s", link)
	return link
}

func openSketch(b *board.Board, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening sketch: %w", err)
	}
	defer f.Close()
	if err := b.Load(f); err != nil {
		var fe *codec.FormatError
		if errors.As(err, &fe) {
			return fmt.Errorf("%s is not a sketch file: %w", path, err)
		}
		return err
	}
	return nil
}

func runViewer(cfg config.Config, link string) error {
	url, err := net.ParseLink(link)
	if err != nil {
		return err
	}
	log.Printf("Starting as VIEWER of %s", url)
	myApp := app.NewWithID("io.sketchboard.viewer")
	ui.RunViewer(myApp, board.New(cfg), url)
	return nil
}

func runBrowse() error {
	found := 0
	err := net.Browse(2*time.Second, func(addr string) {
		found++
		fmt.Println(net.Scheme + addr)
	})
	if err != nil {
		return err
	}
	if found == 0 {
		fmt.Fprintln(os.Stderr, "no boards found")
	}
	return nil
}
