package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/snapdeck/snapdeck/internal/config"
	"github.com/snapdeck/snapdeck/internal/engine"
	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/hotkeys"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/ipc"
	"github.com/snapdeck/snapdeck/internal/panel"
	"github.com/snapdeck/snapdeck/internal/platform"
	"github.com/snapdeck/snapdeck/internal/preset"
	"github.com/snapdeck/snapdeck/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: snapdeck daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: snapdeck daemon")
			os.Exit(2)
		}
		runDaemon()
	case "apply":
		os.Exit(runApply(os.Args[2:]))
	case "presets":
		os.Exit(runPresets(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "undo":
		os.Exit(runUndo(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "panel":
		os.Exit(runPanel(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: snapdeck <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the snapdeck daemon (foreground)")
	fmt.Fprintln(w, "  apply <preset>      Apply a layout preset or trigger command")
	fmt.Fprintln(w, "  presets             List available presets and commands")
	fmt.Fprintln(w, "  windows             List windows eligible for layout")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  undo                Restore the last pre-preset geometry")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its config")
	fmt.Fprintln(w, "  panel               Open the interactive preset panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'snapdeck <command> --help' for command-specific options.")
}

// selfIdentifier builds the predicate that keeps the daemon's own helper
// windows (panel, palette) out of layout inventories.
func selfIdentifier(identity []string) inventory.SelfIdentifier {
	needles := make([]string, 0, len(identity))
	for _, s := range identity {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			needles = append(needles, s)
		}
	}
	return func(appName, appPath, title string) bool {
		hay := strings.ToLower(appName + "\x00" + appPath + "\x00" + title)
		for _, n := range needles {
			if strings.Contains(hay, n) {
				return true
			}
		}
		return false
	}
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d hotkeys, gap: %dpx, padding: %dpx)",
		len(cfg.Hotkeys), cfg.GapSize, cfg.ScreenPadding)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	isSelf := selfIdentifier(cfg.SelfIdentity)

	providers := session.Providers{
		ManagementContext: func() (*inventory.Window, *geometry.Area, error) {
			area, err := backend.WorkArea()
			if err != nil {
				return nil, nil, err
			}
			win, err := backend.ActiveWindow()
			if err != nil {
				// Work area alone is still a usable context
				return nil, &area, nil
			}
			return win, &area, nil
		},
		ActiveWindow:   backend.ActiveWindow,
		Windows:        backend.ListWindows,
		DisplayMetrics: backend.DisplayMetrics,
	}

	resolver := session.NewResolver(providers, isSelf)
	executor := platform.NewBatchExecutor(backend)

	// The IPC server records the last status for GET_STATUS, but it needs
	// the queue to exist first. Indirect through a captured pointer.
	var ipcServer *ipc.Server
	queue := engine.New(resolver, executor, cfg.GapSize, cfg.ScreenPadding, func(st engine.Status) {
		if ipcServer != nil {
			ipcServer.RecordStatus(st)
		}
	})
	dispatcher := engine.NewDispatcher(queue)

	hotkeyHandler, err := hotkeys.NewHandler(backend, dispatcher)
	if err != nil {
		log.Fatalf("Failed to initialize hotkeys: %v", err)
	}
	if err := hotkeyHandler.RegisterBindings(cfg.Hotkeys); err != nil {
		log.Fatalf("Failed to register hotkeys: %v", err)
	}
	log.Printf("Hotkeys registered")

	reloadChan := make(chan struct{}, 1)

	ipcServer, err = ipc.NewServer(queue, dispatcher, backend, isSelf, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	log.Println("snapdeck daemon started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	reloadConfig := func() {
		newCfg, err := config.Load()
		if err != nil {
			log.Printf("Config reload failed: %v", err)
			return
		}
		queue.UpdateLayoutSettings(newCfg.GapSize, newCfg.ScreenPadding)
		// Hotkey grabs cannot be rebound without reconnecting; changes to
		// the hotkeys map need a daemon restart.
		log.Println("Config reloaded successfully")
	}

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					reloadConfig()
				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down snapdeck daemon...")
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				log.Println("Reload requested via IPC...")
				reloadConfig()
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	backend.EventLoop()
}

func runApply(args []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck apply <preset>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Apply a layout preset by ID (e.g. left-half, grid-2x2) or trigger")
		fmt.Fprintln(os.Stderr, "command (e.g. window-left-half, windows-organize).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "apply takes exactly one argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	result, err := client.ApplyPreset(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Error)
		return 1
	}
	return 0
}

func runPresets(args []string) int {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck presets [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List preset IDs and trigger commands. Works without a running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "presets takes no arguments")
		fs.Usage()
		return 2
	}

	// Preset tables are static; no need to go through the daemon.
	presets := make([]string, 0)
	for _, id := range preset.All() {
		presets = append(presets, string(id))
	}
	commands := preset.TriggerCommands()
	sort.Strings(commands)

	if *jsonOut {
		out, err := json.MarshalIndent(ipc.PresetsData{Presets: presets, Commands: commands}, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	fmt.Println("Presets:")
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println("")
	fmt.Println("Trigger commands:")
	for _, c := range commands {
		fmt.Printf("  %s\n", c)
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the windows currently eligible for layout, in slot order.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	for _, w := range data.Windows {
		title := w.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%-12s %4dx%-4d at %4d,%-4d  %s: %s\n",
			w.ID, w.Width, w.Height, w.X, w.Y, w.App, title)
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("last_preset:    %s\n", status.LastPreset)
	fmt.Printf("last_state:     %s\n", status.LastState)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runUndo(args []string) int {
	fs := flag.NewFlagSet("undo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck undo")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Restore the windows touched by the last preset to their prior geometry.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "undo takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Undo(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdeck reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to reload its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPanel(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: snapdeck panel")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Open the interactive preset panel. Moving the cursor previews the")
		fmt.Fprintln(os.Stdout, "highlighted preset; Enter keeps it, Esc restores the previous layout.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "panel takes no arguments")
		return 2
	}

	if err := panel.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  snapdeck config validate [--file path]")
	fmt.Fprintln(w, "  snapdeck config print [--file path]")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate", "print":
		fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("file", "", "Config file path (default: ~/.config/snapdeck/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}

		var cfg *config.Config
		var err error
		if *path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if args[0] == "validate" {
			fmt.Println("Configuration OK")
			return 0
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(out))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
