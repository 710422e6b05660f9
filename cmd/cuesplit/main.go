package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/renard/cue-splitter/internal/config"
	"github.com/renard/cue-splitter/internal/ffmpeg"
	"github.com/renard/cue-splitter/internal/split"
	"github.com/renard/cue-splitter/internal/watch"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

const templateHelp = `You can use string templates to control generated file names.
Variables inside angle brackets <> will be replaced with values.
Allowed variables:
  - <artist>: Artist name
  - <album>: Album name
  - <title>: Song title
  - <no>: The song number, padded with zeroes to the left if necessary
  - <year>: The release year of the album
  - <dir-name>: Name of the directory containing the .cue file
  - <ext>: File extension without any leading dot

Any other variable is an error`

func main() {
	// Command line flags
	var encodeArgs stringList
	var (
		templateFlag     = flag.String("template", "", "Template string to determine file names")
		outFlag          = flag.String("out", "", "Output directory path; defaults to <cue dir>/split")
		jobsFlag         = flag.Int("jobs", 0, "Maximum number of parallel ffmpeg invocations; defaults to about half the logical CPU cores")
		presetFlag       = flag.String("preset", "", "High-level preset for encoding (defaults to flac)")
		extFlag          = flag.String("ext", "", "The extension without the leading dot, substituted in the template string")
		ffmpegFlag       = flag.String("ffmpeg", "", "Path to the ffmpeg executable")
		configFlag       = flag.String("config", "", "Path to config file")
		dryRunFlag       = flag.Bool("dry-run", false, "Do not actually split files; useful for checking if there will be errors")
		forceFlag        = flag.Bool("force", false, "Overwrite existing output files without asking")
		noOverwriteFlag  = flag.Bool("no-overwrite", false, "Ignore tracks that already exist in the filesystem without prompting")
		noCopyFlag       = flag.Bool("no-copy", false, "Do not attempt to avoid re-encoding")
		playlistFlag     = flag.Bool("playlist", false, "Create a playlist file per disc")
		retagFlag        = flag.Bool("retag", false, "Write ID3 tags to split MP3 files")
		ledgerFlag       = flag.String("ledger", "", "Path to a ledger database; already split sheets are skipped")
		watchFlag        = flag.Bool("watch", false, "Keep running and split new cue sheets as they appear")
		verboseFlag      = flag.Bool("verbose", false, "Show verbose output")
		listPresetsFlag  = flag.Bool("list-presets", false, "Show available presets")
		templateHelpFlag = flag.Bool("template-help", false, "Print help for the template syntax")
	)
	flag.Var(&encodeArgs, "encode-arg", "Encoding option to pass to ffmpeg (repeatable, requires -ext)")

	flag.Parse()

	if *templateHelpFlag {
		fmt.Println(templateHelp)
		return
	}
	if *listPresetsFlag {
		for _, p := range ffmpeg.Presets() {
			fmt.Printf("%s: %s\n", p, strings.Join(p.Args(), " "))
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Println("cuesplit - split cuesheet + image files into separate tracks")
		fmt.Println()
		fmt.Println("Requires an ffmpeg executable.")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  cuesplit [options] <path to a cuesheet file or a directory>")
		fmt.Println()
		fmt.Println("For interactive mode, use: cuesplit-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if *forceFlag && *noOverwriteFlag {
		fmt.Fprintln(os.Stderr, "error: -force and -no-overwrite are mutually exclusive")
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags on top of the config file
	if *templateFlag != "" {
		settings.Template = *templateFlag
	}
	if *outFlag != "" {
		settings.OutDir = *outFlag
	}
	if *jobsFlag > 0 {
		settings.Jobs = *jobsFlag
	}
	if *presetFlag != "" {
		settings.Preset = *presetFlag
	}
	if len(encodeArgs) > 0 {
		settings.EncodeArgs = encodeArgs
	}
	if *extFlag != "" {
		settings.Ext = *extFlag
	}
	if *ffmpegFlag != "" {
		settings.FFmpegPath = *ffmpegFlag
	}
	if *ledgerFlag != "" {
		settings.LedgerPath = *ledgerFlag
	}
	if *forceFlag {
		settings.Overwrite = config.OverwriteAlways
	}
	if *noOverwriteFlag {
		settings.Overwrite = config.OverwriteNever
	}
	settings.NoCopy = settings.NoCopy || *noCopyFlag
	settings.DryRun = settings.DryRun || *dryRunFlag
	settings.CreatePlaylist = settings.CreatePlaylist || *playlistFlag
	settings.RetagMP3 = settings.RetagMP3 || *retagFlag
	settings.Verbose = settings.Verbose || *verboseFlag

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	if *watchFlag {
		if err := watchAndSplit(ctx, settings, path); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := splitPath(ctx, settings, path); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// splitPath runs one full scan-plan-split cycle for path.
func splitPath(ctx context.Context, settings *config.Settings, path string) error {
	manager, err := split.NewManager(settings, printProgress(settings.Verbose))
	if err != nil {
		return err
	}
	defer manager.Close()

	if err := manager.Initialize(ctx, path); err != nil {
		return err
	}

	if settings.DryRun {
		for _, job := range manager.Jobs() {
			for _, out := range job.OutFiles {
				fmt.Println(out)
			}
		}
	}

	return manager.Run(ctx)
}

// watchAndSplit splits everything under path once, then keeps splitting
// cue sheets as they appear.
func watchAndSplit(ctx context.Context, settings *config.Settings, path string) error {
	if err := splitPath(ctx, settings, path); err != nil {
		// A library with nothing new to do is fine in watch mode.
		if !strings.Contains(err.Error(), "no .cue files found") {
			return err
		}
	}

	// Watcher callbacks fire from timer goroutines; splits run one at
	// a time.
	var mu sync.Mutex
	w, err := watch.New(path, func(cuePath string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("> New cue sheet: %s\n", cuePath)
		if err := splitPath(ctx, settings, cuePath); err != nil {
			fmt.Fprintf(os.Stderr, "error splitting %s: %v\n", cuePath, err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s for cue sheets...\n", path)
	return w.Run(ctx)
}

// printProgress returns a progress callback that writes plain lines to
// stdout.
func printProgress(verbose bool) func(split.ProgressEvent) {
	return func(event split.ProgressEvent) {
		if event.Level == split.LevelVerbose && !verbose {
			return
		}

		prefix := "  "
		switch event.Level {
		case split.LevelError:
			prefix = "x "
		case split.LevelWarning:
			prefix = "! "
		case split.LevelSuccess:
			prefix = "+ "
		case split.LevelInfo:
			prefix = "> "
		}

		fmt.Println(prefix + event.Message)
	}
}
