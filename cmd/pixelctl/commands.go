package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ipxl/pixelctl/internal/config"
	"github.com/ipxl/pixelctl/internal/device"
	"github.com/ipxl/pixelctl/internal/discovery"
	"github.com/ipxl/pixelctl/internal/render"
	"github.com/ipxl/pixelctl/internal/transport"
	"github.com/ipxl/pixelctl/internal/tui"
)

// Persistent device flags
var (
	deviceAddress string
	bridgeHost    string
	bridgePort    int
	timeoutSec    int
)

// Command-specific flags
var (
	scanTimeout int

	textScreen  int
	fontName    string
	fontSize    float64
	noAntialias bool
	lineSpacing int
	fontsDir    string

	clockStyle  int
	clock12h    bool
	clockNoDate bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceAddress, "address", "", "Panel hardware address (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&bridgeHost, "bridge", "", "Bridge hostname or IP")
	rootCmd.PersistentFlags().IntVar(&bridgePort, "bridge-port", discovery.DefaultPort, "Bridge WebSocket port")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 30, "Overall command timeout in seconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(pickCmd)
}

// scanCmd discovers panels on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for iPIXEL panels on the network",
	Long: `Scan for iPIXEL panels using mDNS/DNS-SD discovery.

This command listens for mDNS advertisements from bridges and displays
all reachable panels with their hardware addresses, bridge endpoints,
and signal strength.`,
	Example: `  # Scan for 10 seconds (default)
  pixelctl scan

  # Quick 3-second scan
  pixelctl scan --scan-timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for iPIXEL panels (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No panels found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the panel is powered on and in range of the bridge")
		fmt.Println("  - Verify the bridge is on this network segment")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --address and --bridge flags to skip discovery")
		return nil
	}

	fmt.Printf("Found %d panel(s):\n\n", len(devices))

	registry, regErr := config.LoadRegistry()

	for i, dev := range devices {
		fmt.Printf("%d. %s\n", i+1, dev.Name)
		fmt.Printf("   Address: %s\n", dev.Address)
		fmt.Printf("   Bridge:  %s:%d\n", dev.BridgeHost(), dev.Port)
		if dev.RSSI != 0 {
			fmt.Printf("   Signal:  %d dBm\n", dev.RSSI)
		}
		if regErr == nil {
			if meta := registry.GetDevice(dev.Address); meta != nil && meta.Nickname != "" {
				fmt.Printf("   Name:    %s\n", meta.Nickname)
			}
		}
		fmt.Println()

		if regErr == nil {
			registry.UpdateDeviceLastSeen(dev.Address, dev.BridgeHost(), dev.Port, dev.RSSI)
		}
	}

	if regErr == nil {
		if err := registry.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save device registry: %v\n", err)
		}
	}

	fmt.Println("Use 'pixelctl info --address <addr>' to view panel details")
	fmt.Println("Use 'pixelctl text \"hello\" --address <addr>' to display text")

	return nil
}

// infoCmd queries and displays panel information
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show panel geometry and firmware versions",
	Long: `Query a panel for its device type, pixel dimensions, and firmware
versions. Panels that do not answer the query are reported with the
default 64x16 geometry.`,
	Example: `  # Query a specific panel
  pixelctl info --address 11:22:33:44:E2:F1

  # With an explicit bridge
  pixelctl info --address 11:22:33:44:E2:F1 --bridge 192.168.1.50`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	session, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	info := session.DeviceInfo(ctx)

	fmt.Printf("Panel %s\n", session.Address())
	fmt.Printf("  Type:         %s\n", info.DeviceType)
	fmt.Printf("  Dimensions:   %dx%d\n", info.Width, info.Height)
	fmt.Printf("  MCU version:  %s\n", info.MCUVersion)
	fmt.Printf("  WiFi version: %s\n", info.WiFiVersion)

	return nil
}

// powerCmd switches the panel on or off
var powerCmd = &cobra.Command{
	Use:   "power on|off",
	Short: "Turn the panel on or off",
	Example: `  pixelctl power on --address 11:22:33:44:E2:F1
  pixelctl power off --address 11:22:33:44:E2:F1`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runPower,
}

func runPower(cmd *cobra.Command, args []string) error {
	var on bool
	switch strings.ToLower(args[0]) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return fmt.Errorf("invalid power state %q (use on or off)", args[0])
	}

	ctx, cancel := commandContext()
	defer cancel()

	session, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := session.SetPower(ctx, on); err != nil {
		return fmt.Errorf("power command failed: %w", err)
	}

	if on {
		fmt.Println("✓ Panel turned on")
	} else {
		fmt.Println("✓ Panel turned off")
	}
	return nil
}

// textCmd renders text and displays it on the panel
var textCmd = &cobra.Command{
	Use:   "text <message>",
	Short: "Display text on the panel",
	Long: `Render text to the panel's pixel grid and display it.

The font size is chosen automatically to fit the panel unless --size is
given. Use \n in the message for multi-line text. TrueType fonts are
loaded from the fonts directory by name; without --font a built-in
bitmap face is used.`,
	Example: `  # Simple message with auto-sized font
  pixelctl text "HELLO" --address 11:22:33:44:E2:F1

  # Two lines, custom font, fixed size
  pixelctl text "12:30\nLunch" --font rain-dl --size 8

  # Crisp 1-bit rendering
  pixelctl text "OPEN" --no-antialias`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	textCmd.Flags().IntVar(&textScreen, "screen", 1, "Target screen buffer (1-based)")
	textCmd.Flags().StringVar(&fontName, "font", "", "TrueType font name (without extension)")
	textCmd.Flags().Float64Var(&fontSize, "size", 0, "Fixed font size in points (0 = auto)")
	textCmd.Flags().BoolVar(&noAntialias, "no-antialias", false, "Disable antialiasing (1-bit rendering)")
	textCmd.Flags().IntVar(&lineSpacing, "spacing", 0, "Extra pixels between lines")
	textCmd.Flags().StringVar(&fontsDir, "fonts-dir", "", "Directory searched for fonts")
}

func runText(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	session, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	text := unescapeText(args[0])
	opts := renderOptions(cmd)

	if err := session.DisplayText(ctx, text, byte(textScreen), opts); err != nil {
		return fmt.Errorf("display failed: %w", err)
	}

	fmt.Println("✓ Text displayed")
	return nil
}

// clockCmd switches the panel to a built-in clock face
var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Switch the panel to a built-in clock face",
	Example: `  # Default clock style, 24-hour, with date
  pixelctl clock --address 11:22:33:44:E2:F1

  # Style 2, 12-hour, no date
  pixelctl clock --style 2 --12h --no-date`,
	RunE: runClock,
}

func init() {
	clockCmd.Flags().IntVar(&clockStyle, "style", 0, "Clock face style")
	clockCmd.Flags().BoolVar(&clock12h, "12h", false, "Use 12-hour time format")
	clockCmd.Flags().BoolVar(&clockNoDate, "no-date", false, "Hide the date")
}

func runClock(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	session, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := session.SetClockMode(ctx, byte(clockStyle), !clock12h, !clockNoDate); err != nil {
		return fmt.Errorf("clock command failed: %w", err)
	}

	fmt.Println("✓ Clock mode set")
	return nil
}

// modeCmd routes a display update through the mode dispatcher
var modeCmd = &cobra.Command{
	Use:   "mode <name> [text]",
	Short: "Select a display mode",
	Long: `Select a display mode by name. Supported modes:

  text_image  render text to the panel (default; requires a text argument)
  clock       built-in clock face
  rhythm      music-reactive mode (not implemented)
  fun         built-in effects mode (not implemented)

Unknown mode names fall back to text_image.`,
	Example: `  pixelctl mode text_image "HELLO" --address 11:22:33:44:E2:F1
  pixelctl mode clock --style 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMode,
}

func init() {
	modeCmd.Flags().IntVar(&textScreen, "screen", 1, "Target screen buffer (1-based)")
	modeCmd.Flags().StringVar(&fontName, "font", "", "TrueType font name (without extension)")
	modeCmd.Flags().Float64Var(&fontSize, "size", 0, "Fixed font size in points (0 = auto)")
	modeCmd.Flags().BoolVar(&noAntialias, "no-antialias", false, "Disable antialiasing (1-bit rendering)")
	modeCmd.Flags().IntVar(&lineSpacing, "spacing", 0, "Extra pixels between lines")
	modeCmd.Flags().StringVar(&fontsDir, "fonts-dir", "", "Directory searched for fonts")
	modeCmd.Flags().IntVar(&clockStyle, "style", 0, "Clock face style")
	modeCmd.Flags().BoolVar(&clock12h, "12h", false, "Use 12-hour time format")
	modeCmd.Flags().BoolVar(&clockNoDate, "no-date", false, "Hide the date")
}

func runMode(cmd *cobra.Command, args []string) error {
	mode := device.ParseMode(args[0])

	var text string
	if len(args) >= 2 {
		text = unescapeText(args[1])
	}
	if mode == device.ModeTextImage && text == "" {
		return fmt.Errorf("mode %s requires a text argument", mode)
	}

	ctx, cancel := commandContext()
	defer cancel()

	session, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	req := device.UpdateRequest{
		Text:       text,
		Render:     renderOptions(cmd),
		Screen:     byte(textScreen),
		ClockStyle: byte(clockStyle),
		Format24:   !clock12h,
		ShowDate:   !clockNoDate,
	}

	if err := session.Update(ctx, mode, req); err != nil {
		return fmt.Errorf("mode update failed: %w", err)
	}

	fmt.Printf("✓ Mode %s applied\n", mode)
	return nil
}

// pickCmd launches the interactive device picker
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Launch the interactive device picker",
	Long: `Launch a full-screen TUI that scans for panels and lets you select
one. The selected panel's address and bridge are saved as defaults for
subsequent commands.`,
	Example: `  pixelctl pick
  # Or simply (picker is default):
  pixelctl`,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the picker requires an interactive terminal; use 'pixelctl scan' instead")
	}

	model := tui.NewPickerModel(time.Duration(scanTimeout) * time.Second)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	picker, ok := final.(tui.PickerModel)
	if !ok {
		return nil
	}

	selected := picker.GetSelectedDevice()
	if selected == nil {
		return nil
	}

	fmt.Printf("Selected %s (%s)\n", selected.Name, selected.Address)

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	registry.UpdateDeviceLastSeen(selected.Address, selected.BridgeHost(), selected.Port, selected.RSSI)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Println("Saved as the default panel for future commands.")
	return nil
}

// commandContext returns a context bounded by the --timeout flag.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
}

// openSession resolves the target panel and its bridge, dials the
// bridge, and returns a connected session. The cleanup function
// disconnects the session.
func openSession(ctx context.Context) (*device.Session, func(), error) {
	address, host, port, err := resolveDevice(ctx)
	if err != nil {
		return nil, nil, err
	}

	bridge := transport.NewBridge(host, port, address)
	session := device.NewSession(address, bridge)

	if err := session.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s via %s:%d: %w", address, host, port, err)
	}

	cleanup := func() {
		if err := session.Disconnect(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: disconnect failed: %v\n", err)
		}
	}
	return session, cleanup, nil
}

// resolveDevice determines the panel address and bridge endpoint from
// flags, the saved registry, and finally discovery.
func resolveDevice(ctx context.Context) (address, host string, port int, err error) {
	address = deviceAddress
	host = bridgeHost
	port = bridgePort

	registry, regErr := config.LoadRegistry()

	// A saved device can fill in whatever the flags left out.
	if address != "" && host == "" && regErr == nil {
		if meta := registry.GetDevice(address); meta != nil && meta.Bridge != nil {
			host = meta.Bridge.Host
			if meta.Bridge.Port != 0 {
				port = meta.Bridge.Port
			}
		}
	}

	// No address: fall back to the most recently seen saved device.
	if address == "" && regErr == nil {
		var latest time.Time
		for addr, meta := range registry.Devices {
			if meta.Bridge != nil && meta.LastSeen.After(latest) {
				latest = meta.LastSeen
				address = addr
				host = meta.Bridge.Host
				if meta.Bridge.Port != 0 {
					port = meta.Bridge.Port
				}
			}
		}
	}

	if address != "" && host != "" {
		return address, host, port, nil
	}

	// Last resort: discover.
	fmt.Println("No panel specified, attempting auto-discovery...")
	scanner := discovery.NewScanner()
	scanner.Timeout = 5 * time.Second

	devices, scanErr := scanner.ScanForDevicesWithContext(ctx)
	if scanErr != nil {
		return "", "", 0, fmt.Errorf("discovery failed: %w", scanErr)
	}

	if address != "" {
		for _, dev := range devices {
			if strings.EqualFold(dev.Address, address) {
				return dev.Address, dev.BridgeHost(), dev.Port, nil
			}
		}
		return "", "", 0, fmt.Errorf("panel %s not found. Use --bridge to specify its bridge manually", address)
	}

	if len(devices) == 0 {
		return "", "", 0, fmt.Errorf("no panels found. Use --address and --bridge flags to specify one manually")
	}
	if len(devices) > 1 {
		fmt.Printf("Found %d panels:\n", len(devices))
		for i, dev := range devices {
			fmt.Printf("%d. %s (%s)\n", i+1, dev.Name, dev.Address)
		}
		return "", "", 0, fmt.Errorf("multiple panels found. Use --address to specify which one")
	}

	dev := devices[0]
	fmt.Printf("Found panel: %s (%s)\n\n", dev.Name, dev.Address)
	return dev.Address, dev.BridgeHost(), dev.Port, nil
}

// renderOptions builds render options from saved preferences and flags.
// Flags that were set explicitly override the saved defaults.
func renderOptions(cmd *cobra.Command) render.Options {
	opts := render.DefaultOptions()

	if registry, err := config.LoadRegistry(); err == nil {
		prefs := registry.RenderPreferences()
		opts.FontName = prefs.FontName
		opts.FontSize = prefs.FontSize
		opts.Antialias = prefs.Antialias
		opts.LineSpacing = prefs.LineSpacing
		opts.FontsDir = prefs.FontsDir
	}

	if cmd.Flags().Changed("font") {
		opts.FontName = fontName
	}
	if cmd.Flags().Changed("size") {
		opts.FontSize = fontSize
	}
	if cmd.Flags().Changed("no-antialias") {
		opts.Antialias = !noAntialias
	}
	if cmd.Flags().Changed("spacing") {
		opts.LineSpacing = lineSpacing
	}
	if cmd.Flags().Changed("fonts-dir") {
		opts.FontsDir = fontsDir
	}

	return opts
}

// unescapeText expands backslash escapes typed on the command line so
// "12:30\nLunch" becomes a two-line message.
func unescapeText(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\t`, "\t")
	return r.Replace(s)
}
