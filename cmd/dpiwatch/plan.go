package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/dpiwatch/internal/mcp"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

func runPlan(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	rect := fs.String("rect", "", "Window frame as LEFT,TOP,RIGHT,BOTTOM")
	client := fs.String("client", "", "Client size as WIDTH,HEIGHT (default: frame size)")
	from := fs.Float64("from", 0, "Current DPI")
	to := fs.Float64("to", 0, "Target DPI")
	asJSON := fs.Bool("json", false, "Print JSON")
	path := fs.String("config", "", "Config file path (default: ~/.config/dpiwatch/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpiwatch plan --rect L,T,R,B --from DPI --to DPI [--client W,H] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show where a window would be placed after a DPI change, using the")
		fmt.Fprintln(os.Stderr, "current monitor layout.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	edges, err := parseInts(*rect, 4)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--rect: %v\n", err)
		return 2
	}
	in := mcp.PlanRelocationInput{
		Left: edges[0], Top: edges[1], Right: edges[2], Bottom: edges[3],
		OldDPI: *from,
		NewDPI: *to,
	}
	if *client != "" {
		size, err := parseInts(*client, 2)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--client: %v\n", err)
			return 2
		}
		in.ClientWidth, in.ClientHeight = size[0], size[1]
	}

	displays, err := liveDisplays(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	out, err := mcp.PlanRelocation(platform.Layout(displays), in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		return printJSON(out)
	}
	if out.Found {
		fmt.Printf("anchor:  %s (monitor %d)\n", out.Anchor, out.Monitor)
	} else {
		fmt.Println("anchor:  none (rescale in place)")
	}
	fmt.Printf("rect:    %d,%d,%d,%d\n", out.Left, out.Top, out.Right, out.Bottom)
	fmt.Printf("delta:   %+d x %+d\n", out.WidthDelta, out.HeightDelta)
	fmt.Printf("factor:  %g\n", out.Factor)
	return 0
}

// parseInts parses exactly n comma-separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out[i] = v
	}
	return out, nil
}
