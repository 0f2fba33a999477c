package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ipxl/pixelctl/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	devices []*discovery.Device
	err     error
}

// pickerKeyMap defines key bindings for the device list
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualKeyMap defines key bindings for manual address entry mode
type manualKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (m manualKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

func (m manualKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Confirm, m.Cancel},
	}
}

// deviceItem wraps a discovered Device for use with bubbles/list
type deviceItem struct {
	device *discovery.Device
}

func (d deviceItem) FilterValue() string {
	return d.device.Name + " " + d.device.Address + " " + d.device.Host
}

func (d deviceItem) Title() string {
	if d.device.Name == "" {
		return d.device.Address
	}
	return d.device.Name
}

func (d deviceItem) Description() string {
	if d.device.RSSI != 0 {
		return fmt.Sprintf("%s • %s:%d • %d dBm",
			d.device.Address, d.device.BridgeHost(), d.device.Port, d.device.RSSI)
	}
	return fmt.Sprintf("%s • %s:%d", d.device.Address, d.device.BridgeHost(), d.device.Port)
}

// deviceDelegate renders device cards in the list
type deviceDelegate struct {
	width int
}

func (d deviceDelegate) Height() int  { return 6 }
func (d deviceDelegate) Spacing() int { return 1 }

func (d deviceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d deviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(deviceItem)
	if !ok {
		return
	}

	device := di.device
	selected := index == m.Index()

	var content strings.Builder
	if selected {
		content.WriteString(SelectedItemStyle.Render("→ " + di.Title()))
	} else {
		content.WriteString("  " + di.Title())
	}
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("  Address: %s\n", device.Address))
	content.WriteString(fmt.Sprintf("  Bridge:  %s:%d", device.BridgeHost(), device.Port))
	if device.RSSI != 0 {
		content.WriteString(fmt.Sprintf("\n  Signal:  %d dBm", device.RSSI))
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2)

	cardWidth := d.width - 6
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}
	cardStyle = cardStyle.Width(cardWidth)

	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// PickerModel is the device picker screen: scan, list, select.
type PickerModel struct {
	Scanning   bool
	DeviceList list.Model
	Selected   bool
	Err        error

	ScanTimeout time.Duration

	// Manual address entry state
	ManualMode   bool
	AddressInput textinput.Model

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          pickerKeyMap
	ManualKeys    manualKeyMap
}

// NewPickerModel creates a new device picker model
func NewPickerModel(scanTimeout time.Duration) PickerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	addressInput := textinput.New()
	addressInput.Placeholder = "11:22:33:44:E2:F1"
	addressInput.CharLimit = 17
	addressInput.Width = 30

	delegate := deviceDelegate{width: MinTerminalWidth}
	deviceList := list.New([]list.Item{}, delegate, 0, 0)
	deviceList.Title = "Discovered Panels"
	deviceList.SetShowStatusBar(false)
	deviceList.SetFilteringEnabled(true)
	deviceList.Styles.Title = TitleStyle

	keys := pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual address"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	manualKeys := manualKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	if scanTimeout <= 0 {
		scanTimeout = discovery.DefaultScanTimeout
	}

	return PickerModel{
		DeviceList:   deviceList,
		ScanTimeout:  scanTimeout,
		AddressInput: addressInput,
		Spinner:      s,
		Help:         help.New(),
		Keys:         keys,
		ManualKeys:   manualKeys,
	}
}

// Init starts scanning immediately
func (m PickerModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanDevices(m.ScanTimeout),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DeviceList.SetWidth(msg.Width - 4)
		m.DeviceList.SetHeight(msg.Height - 8)

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.devices))
		for i, dev := range msg.devices {
			items[i] = deviceItem{device: dev}
		}
		m.DeviceList.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.ManualMode && !m.Scanning {
		m.DeviceList, cmd = m.DeviceList.Update(msg)
	}

	return m, cmd
}

func (m PickerModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", " ":
		if selectedItem := m.DeviceList.SelectedItem(); selectedItem != nil {
			m.Selected = true
			return m, tea.Quit
		}

	case "r":
		m.DeviceList.SetItems([]list.Item{})
		m.Err = nil
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			scanDevices(m.ScanTimeout),
			m.Spinner.Tick,
		)

	case "m":
		m.ManualMode = true
		m.AddressInput.SetValue("")
		m.AddressInput.Focus()
	}

	return m, nil
}

func (m PickerModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		m.ManualMode = false
		m.AddressInput.SetValue("")
		m.AddressInput.Blur()
		return m, nil

	case "enter":
		value := m.AddressInput.Value()
		if value != "" {
			device := &discovery.Device{
				Address:      value,
				Name:         value,
				Host:         "",
				Port:         discovery.DefaultPort,
				DiscoveredAt: time.Now(),
			}
			newItem := deviceItem{device: device}
			items := append([]list.Item{newItem}, m.DeviceList.Items()...)
			m.DeviceList.SetItems(items)
			m.DeviceList.Select(0)
			m.ManualMode = false
			m.AddressInput.SetValue("")
			m.AddressInput.Blur()
			return m, nil
		}
	}

	m.AddressInput, cmd = m.AddressInput.Update(msg)
	return m, cmd
}

// View renders the picker
func (m PickerModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content string
	switch {
	case m.ManualMode:
		content = m.renderManualEntry()
	case m.Scanning:
		content = m.renderScanning(width)
	default:
		content = m.renderResults()
	}

	var helpText string
	if m.ManualMode {
		helpText = m.Help.View(m.ManualKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}

	return RenderAppFrame(content, helpText, m.Width, m.Height)
}

func (m PickerModel) renderScanning(width int) string {
	elapsed := int(time.Since(m.ScanStartTime).Seconds())

	title := fmt.Sprintf("%s SEARCHING FOR PANELS", m.Spinner.View())
	subtitle := "Browsing the network for iPIXEL panels..."
	elapsedText := fmt.Sprintf("Elapsed: %ds", elapsed)

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(title),
		"",
		SubtitleStyle.Render(subtitle),
		"",
		SubtitleStyle.Render(elapsedText),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

func (m PickerModel) renderResults() string {
	var b strings.Builder

	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the bridge is powered on\n")
		b.WriteString("    • Verify the bridge is on this network segment\n")
		b.WriteString("    • Check that mDNS (UDP 5353) is not firewalled\n")
	} else if len(m.DeviceList.Items()) == 0 {
		warningStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString("  ")
		b.WriteString(warningStyle.Render("⚠ No panels found on your network"))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the panel is powered on and in range of the bridge\n")
		b.WriteString("    • Verify the bridge is on this network segment\n")
		b.WriteString("    • Try rescanning with 'r', or enter an address with 'm'\n")
	} else {
		b.WriteString(m.DeviceList.View())
	}

	return b.String()
}

func (m PickerModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Render("Enter panel hardware address"))
	b.WriteString("\n\n")
	b.WriteString("  Address: ")
	b.WriteString(m.AddressInput.View())
	b.WriteString("\n\n")

	return b.String()
}

// GetSelectedDevice returns the selected device (if any)
func (m PickerModel) GetSelectedDevice() *discovery.Device {
	if m.Selected {
		if selectedItem := m.DeviceList.SelectedItem(); selectedItem != nil {
			if item, ok := selectedItem.(deviceItem); ok {
				return item.device
			}
		}
	}
	return nil
}

// scanDevices returns a command that performs device discovery
func scanDevices(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		scanner := discovery.NewScanner()
		scanner.Timeout = timeout

		devices, err := scanner.ScanForDevices()
		return scanCompleteMsg{
			devices: devices,
			err:     err,
		}
	}
}
