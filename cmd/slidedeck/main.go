package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"slidedeck/internal/catalog"
	"slidedeck/internal/config"
	"slidedeck/internal/inspect"
	"slidedeck/internal/logging"
	"slidedeck/internal/presentation"
	"slidedeck/internal/tui"
	"slidedeck/internal/watch"
)

var (
	configPath  = flag.String("config", "", "Path to config file (default: $SLIDEDECK_CONFIG or ~/.config/slidedeck/config.toml)")
	layoutFlag  = flag.String("layout", "", "Initial layout: single, chunk-two or sliding-window")
	wrapFlag    = flag.Bool("wrap", false, "Wrap around at either end of the deck")
	previewFlag = flag.Bool("preview", false, "Show the look-ahead preview")
	interval    = flag.Float64("interval", 0, "Autoplay interval in seconds")
	autoplayOn  = flag.Bool("autoplay", false, "Start autoplay immediately")
	reverse     = flag.Bool("reverse", false, "Autoplay backwards")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	logFile     = flag.String("log", "", "Write log output to this file")
	listOnly    = flag.Bool("list", false, "Print the slide order and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [DIR | FILE... | -]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logging.FromEnv()
	if cfg.Log.Debug {
		logging.DebugEnabled = true
	}

	d, err := resolveDeck(flag.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.CatalogOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	build := func() (catalog.SlideSet, error) {
		return catalog.Build(d.source, opts)
	}
	slides, err := build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *listOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, p := range slides.Paths() {
			fmt.Println(p)
		}
		return
	}

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "slidedeck")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		logging.Silence()
	}

	if err := run(cfg, d, slides, build); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overlays flags given on the command line onto the loaded config.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "layout":
			cfg.Show.Layout = *layoutFlag
		case "wrap":
			cfg.Show.Wrap = *wrapFlag
		case "preview":
			cfg.Show.Preview = *previewFlag
		case "interval":
			cfg.Show.Interval = *interval
		case "autoplay":
			cfg.Show.Autoplay = *autoplayOn
		case "reverse":
			cfg.Show.Reverse = *reverse
		case "debug":
			cfg.Log.Debug = *debug
		case "log":
			cfg.Log.File = *logFile
		}
	})
}

func run(cfg config.Config, d deck, slides catalog.SlideSet, build func() (catalog.SlideSet, error)) error {
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	images := inspect.NewImages()
	screen := tui.NewScreen(tui.ScreenOptions{
		Title:    deckTitle(cfg.Deck.Title, d.dir),
		Style:    cfg.UI.Style,
		WordWrap: cfg.UI.WordWrap,
		Images:   images,
	})
	exec := &tui.Executor{}

	sess, err := presentation.Start(slides, presentation.Options{
		Settings:    settings,
		NotesSuffix: cfg.Deck.NotesSuffix,
		Renderer:    screen,
		Panel:       screen,
		Inspector:   images,
		Executor:    exec,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	var reload func() (catalog.SlideSet, error)
	if d.dir != "" {
		reload = build
	}
	p := tea.NewProgram(tui.New(sess, screen, reload), tea.WithAltScreen())
	exec.Attach(p)

	// Autoplay starts only once the program can receive posted firings.
	if cfg.Show.Autoplay {
		if err := sess.StartAutoplay(); err != nil {
			return err
		}
	}

	if d.dir != "" && cfg.Deck.Watch {
		w, err := watch.New(d.dir, watch.DefaultDebounce, func() { p.Send(tui.ReloadMsg{}) })
		if err != nil {
			log.Printf("WARN: not watching %s: %v", d.dir, err)
		} else {
			defer w.Stop()
		}
	}

	log.Printf("INFO: presenting %d slides, layout %s", slides.Len(), settings.Layout)
	_, err = p.Run()
	return err
}
