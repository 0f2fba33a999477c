// Package tui implements the interactive device picker for pixelctl.
//
// The picker is a full-screen Bubble Tea program: it scans the network
// for iPIXEL panels, lists them as cards, and lets the user select one
// to operate on. A panel not visible to discovery can still be entered
// by hardware address.
//
// # Framework Components
//
// The picker leverages Bubble Tea framework components throughout:
//   - bubbles/spinner: Loading indicator while scanning
//   - bubbles/list: Device list with filtering
//   - bubbles/textinput: Manual address entry
//   - bubbles/help: Context-aware help system
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	model := tui.NewPickerModel(10 * time.Second)
//	program := tea.NewProgram(model, tea.WithAltScreen())
//
//	final, err := program.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if picker, ok := final.(tui.PickerModel); ok {
//	    if device := picker.GetSelectedDevice(); device != nil {
//	        // operate on device
//	    }
//	}
//
// # Key Bindings
//
//   - ↑/↓ navigate, Enter select, r rescan, m manual address, q quit
//   - Manual entry: Enter confirm, ESC cancel
//
// Help text automatically updates based on screen state.
//
// # State Management
//
// Models contain all state, Update() returns new model + commands, and
// View() is a pure function of model state. Discovery runs as an async
// command and reports back through a completion message.
package tui
