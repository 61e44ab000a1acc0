// Package output renders command results for terminals, pipes and scripts.
//
// A Renderer resolves an OutputMode once: styled text on a TTY, markdown
// when piped, or JSON on request. Commands switch on EffectiveMode and use
// the helpers here so that colour never leaks into non-terminal output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OutputMode selects how results are written.
type OutputMode string //nolint:revive // stutter kept for readability at call sites

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a config or flag value into an OutputMode. Unknown or empty
// values mean auto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the resolved mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    OutputMode
	isTTY   bool
	styles  *Styles
	printer *message.Printer
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, IsTTY(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state. Used in tests.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:     out,
		errOut:  errOut,
		mode:    Mode(string(mode)),
		isTTY:   isTTY,
		styles:  NewStyles(lr),
		printer: message.NewPrinter(language.English),
	}
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// EffectiveMode resolves auto: text on a TTY, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the renderer writes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a heading. Text mode styles it; markdown uses # prefixes.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
	r.Println("")
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success, "✓", msg)
}

// Warning writes a warning to stderr.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Warning: "+msg)
}

// Error writes an error message to stderr.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Error: "+msg)
}

// Muted writes de-emphasised text.
func (r *Renderer) Muted(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Muted.Render(msg))
		return
	}
	r.Println(msg)
}

// StatusLine writes "icon name detail" for one item.
func (r *Renderer) StatusLine(name, status, detail string) {
	icon := "-"
	style := r.styles.Muted
	switch status {
	case "success":
		icon, style = "✓", r.styles.Success
	case "warning":
		icon, style = "!", r.styles.Warning
	case "error":
		icon, style = "✗", r.styles.Error
	}

	line := name
	if detail != "" {
		line += " " + detail
	}
	if r.EffectiveMode() == ModeText {
		r.Println("  " + style.Render(icon) + " " + line)
		return
	}
	r.Println("- " + icon + " " + line)
}

func (r *Renderer) status(style lipgloss.Style, icon, msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(style.Render(icon + " " + msg))
		return
	}
	r.Println(icon + " " + msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Number formats n with thousands separators.
func (r *Renderer) Number(n float64) string {
	if n == float64(int64(n)) {
		return r.printer.Sprintf("%d", int64(n))
	}
	return r.printer.Sprintf("%.2f", n)
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item "- **key**: value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
