package installer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

var (
	accent    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	heading   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hint      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	installed = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	okMark   = installed.Render("✅")
	warnMark = hint.Render("⚠️")
)

type column struct {
	title string
	width int
}

var columns = []column{
	{"#", 3}, {"ID", 10}, {"Name", 10}, {"Lang", 7}, {"G", 2}, {"Quality", 8}, {"Size", 8}, {"Status", 0},
}

// ShowCatalog prints the voice table with install status and usage hints.
func (i *Installer) ShowCatalog(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", heading.Render(fmt.Sprintf("📦 Available %s voices for download:", i.cat.Backend())))

	titles := make([]string, len(columns))
	for n, c := range columns {
		titles[n] = c.title
	}
	fmt.Fprintln(w, row(titles))
	fmt.Fprintln(w, strings.Repeat("─", 75))

	for n, v := range i.cat.Voices() {
		status := ""
		if i.cat.VoiceInstalled(v) {
			status = installed.Render("✅ installed")
		}
		fmt.Fprintln(w, row([]string{
			fmt.Sprint(n + 1),
			v.ID,
			v.Name,
			v.Lang,
			string(v.Gender),
			v.Quality,
			humanize.Bytes(uint64(v.SizeMB) * 1000 * 1000),
			status,
		}))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, hint.Render("💡 Usage:"))
	fmt.Fprintln(w, "   bibo -d <id>        Download single voice")
	fmt.Fprintln(w, "   bibo -d all         Download all voices")
	fmt.Fprintln(w, "   bibo -d 1,3,5       Download by numbers")
	fmt.Fprintln(w)
}

func row(cells []string) string {
	var b strings.Builder
	for n, cell := range cells {
		if width := columns[n].width; width > 0 {
			b.WriteString(runewidth.FillRight(cell, width))
			b.WriteByte(' ')
			continue
		}
		b.WriteString(cell)
	}
	return strings.TrimRight(b.String(), " ")
}
