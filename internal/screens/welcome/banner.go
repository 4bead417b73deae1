package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/ui/theme"
)

const bannerArt = `
 ██╗    ██╗ ██████╗ ██████╗ ██████╗ ███╗   ███╗ █████╗ ████████╗██╗  ██╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██╔████╔██║███████║   ██║   ███████║
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "W O R D M A T H"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 72

// RenderBanner returns the WORDMATH banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the banner.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
