package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"WormBoard/internal/board"
	"WormBoard/internal/config"
	"WormBoard/internal/export"
	"WormBoard/internal/logging"
	boardnet "WormBoard/internal/net"
	"WormBoard/internal/shapes"
	"WormBoard/internal/state"
	"WormBoard/internal/ui"
)

const appTitle = "WormBoard"

var (
	configPath = flag.String("config", "wormboard.toml", "path to the TOML config file")
	toolName   = flag.String("tool", "", "tool active at start: pencil, wand or line")
	browse     = flag.Bool("browse", false, "list boards shared on the local network and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *toolName != "" {
		cfg.Tool = *toolName
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Bad -tool flag: %v", err)
		}
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))

	if *browse {
		runBrowse()
		return
	}
	if args := flag.Args(); len(args) > 0 && strings.HasPrefix(args[0], boardnet.LinkScheme) {
		runViewer(cfg, args[0])
		return
	}
	runHost(cfg)
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	session := board.New(cfg)

	seed, err := loadSeed(cfg)
	if err != nil {
		log.Printf("Could not load seed, starting empty: %v", err)
	}
	session.Load(seed)

	widget := ui.NewBoardWidget(session, cfg.DotSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *boardnet.Hub
	if cfg.Share.Enabled {
		hub = startSharing(ctx, cfg, widget)
		if err := hub.Broadcast(session.OrderedPoints()); err != nil {
			log.Printf("Failed to share initial board: %v", err)
		}
	}

	session.OnChange = func(points []state.OrderedPoint) {
		widget.SetPoints(points)
		if hub == nil {
			return
		}
		if err := hub.Broadcast(points); err != nil {
			log.Printf("Failed to share board: %v", err)
		}
	}

	ui.RunApp(appTitle, widget, func(w fyne.Window) fyne.CanvasObject {
		return ui.NewToolbar(widget, w, cfg)
	})
}

func startSharing(ctx context.Context, cfg config.Config, widget *ui.BoardWidget) *boardnet.Hub {
	hub := boardnet.NewHub()
	go func() {
		if err := boardnet.Serve(ctx, cfg.Share.Port, hub); err != nil {
			log.Printf("Sharing stopped: %v", err)
			widget.SetStatus("Sharing stopped")
		}
	}()

	if cfg.Share.Advertise {
		server, err := boardnet.Advertise(cfg.Share.Port)
		if err != nil {
			log.Printf("Board will not be discoverable: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				server.Shutdown()
			}()
		}
	}

	link := boardnet.ShareLink(boardnet.OutgoingIP(), cfg.Share.Port)
	log.Printf("Share link: %s", link)
	widget.SetStatus("Share link: " + link)
	return hub
}

// loadSeed returns the points committed as the board's first batch.
func loadSeed(cfg config.Config) ([]state.Point, error) {
	if cfg.Seed.File != "" {
		f, err := os.Open(cfg.Seed.File)
		if err != nil {
			return nil, fmt.Errorf("could not open seed file: %w", err)
		}
		defer f.Close()
		return export.ReadJSON(f)
	}
	return shapes.Build(shapes.Spec{
		Shape:  cfg.Seed.Shape,
		Origin: state.Pt(cfg.Seed.X, cfg.Seed.Y),
		Size:   cfg.Seed.Size,
		Angle:  cfg.Seed.Angle,
	}, cfg.DotSize)
}

func runViewer(cfg config.Config, link string) {
	log.Println("Starting as VIEWER")
	widget := ui.NewBoardWidget(nil, cfg.DotSize)
	go followHost(link, widget)
	ui.RunApp(appTitle+" (viewer)", widget, nil)
}

func followHost(link string, widget *ui.BoardWidget) {
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	url, err := boardnet.ParseLink(link)
	if err != nil {
		widget.SetStatus(err.Error())
		return
	}
	viewer, err := boardnet.Dial(url)
	if err != nil {
		widget.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer viewer.Close()

	widget.SetStatus("Following " + link)
	log.Println("Viewer connected to", url)
	viewer.OnSnapshot(func(snap boardnet.Snapshot) {
		fyne.Do(func() {
			widget.SetPoints(snap.Points)
		})
	})
	<-viewer.Done()
	widget.SetStatus("Disconnected from host")
}

func runBrowse() {
	found := 0
	err := boardnet.Browse(3*time.Second, func(link string) {
		found++
		fmt.Println(link)
	})
	if err != nil {
		log.Fatalf("Browse failed: %v", err)
	}
	if found == 0 {
		fmt.Fprintln(os.Stderr, "No shared boards found.")
	}
}
