package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing status lines. Logs go to stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorInk   = lipgloss.Color("252") // near white - values, bold labels
	colorGreen = lipgloss.Color("35")  // success
	colorAmber = lipgloss.Color("220") // warnings
	colorBlue  = lipgloss.Color("75")  // commands
	colorGray  = lipgloss.Color("245") // keys, info icons
	colorDim   = lipgloss.Color("240") // muted text
	colorTeal  = lipgloss.Color("36")  // spinner
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values and file paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorInk)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(28)
	styleBold        = lipgloss.NewStyle().Foreground(colorInk).Bold(true)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

// status pairs an icon with the style it is drawn in.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(format string, args ...any) {
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+fmt.Sprintf(format, args...))
}

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value in two columns.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the render summary on one line. The bold count is set in
// bold, like the labels it counts.
func printStats(nodeCount, edgeCount, inside int, cached bool) {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
		styleBold.Render(fmt.Sprintf("%d inside", inside)),
	}
	if cached {
		parts = append(parts, styleCached.Render("cached layout"))
	} else {
		parts = append(parts, StyleDim.Render("fresh layout"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, sep))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
