package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/1broseidon/dpiwatch/internal/config"
	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/ipc"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "plan":
		os.Exit(runPlan(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: dpiwatch <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  watch               Keep a window adapted to its monitor's DPI (foreground)")
	fmt.Fprintln(w, "  status              Show the watched window's DPI state")
	fmt.Fprintln(w, "  monitors            List monitors and their effective DPI")
	fmt.Fprintln(w, "  plan                Show where a window would move on a DPI change")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dpiwatch <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpiwatch status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the state of a running 'dpiwatch watch' via IPC.")
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

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(status)
	}
	fmt.Printf("window_id:          0x%x\n", status.WindowID)
	fmt.Printf("title:              %s\n", status.Title)
	fmt.Printf("resize_method:      %s\n", status.ResizeMethod)
	fmt.Printf("old_dpi:            %g\n", status.OldDPI)
	fmt.Printf("new_dpi:            %g\n", status.NewDPI)
	fmt.Printf("factor:             %g\n", status.Factor)
	fmt.Printf("phase:              %s\n", status.Phase)
	fmt.Printf("pending_adjustment: %v\n", status.PendingAdjustment)
	fmt.Printf("adjustments:        %d\n", status.Adjustments)
	fmt.Printf("uptime_seconds:     %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	path := fs.String("config", "", "Config file path (default: ~/.config/dpiwatch/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpiwatch monitors [--json] [--config PATH]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	displays, err := liveDisplays(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	infos := ipc.MonitorInfos(displays)
	if *asJSON {
		return printJSON(ipc.MonitorsData{Monitors: infos})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tNAME\tGEOMETRY\tDPI")
	for _, m := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d+%d+%d\t%g\n", m.Handle, m.Name, m.Width, m.Height, m.X, m.Y, m.DPI)
	}
	tw.Flush()
	return 0
}

// liveDisplays connects to the display server for a one-off monitor query.
func liveDisplays(configPath string) ([]platform.Display, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	backend, err := platform.NewLinuxBackendFromDisplay(linuxOptions(cfg))
	if err != nil {
		return nil, err
	}
	defer backend.Disconnect()
	return backend.Displays()
}

func loadConfig(path string) (*config.Config, error) {
	var (
		res *config.LoadResult
		err error
	)
	if path == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(path)
	}
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func linuxOptions(cfg *config.Config) platform.LinuxOptions {
	return platform.LinuxOptions{
		Display:   cfg.Display,
		DPISnap:   cfg.DPISnap,
		Overrides: cfg.MonitorDPI,
	}
}

func resizeMethod(m config.ResizeMethod) dpi.ResizeMethod {
	if m == config.ResizeDelayed {
		return dpi.Delayed
	}
	return dpi.Immediate
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
