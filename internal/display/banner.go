package display

import (
	_ "embed"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art centred for the current terminal
// width, followed by the tagline. Replace banner.txt to change the art.
func RenderBanner(tagline string) string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	if tagline != "" {
		lines = append(lines, "", tagline)
	}
	return centre(lines, termWidth())
}

// centre pads every line so the block sits in the middle of width
// columns. Lines keep their relative indentation.
func centre(lines []string, width int) string {
	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, utf8.RuneCountInString(l))
	}

	pad := ""
	if width > maxW {
		pad = strings.Repeat(" ", (width-maxW)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
