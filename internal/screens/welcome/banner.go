package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playarcade/internal/ui/theme"
)

const bannerArt = `
╔═╗╦  ╔═╗╦ ╦  ╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗
╠═╝║  ╠═╣╚╦╝  ╠═╣╠╦╝║  ╠═╣ ║║║╣ 
╩  ╩═╝╩ ╩ ╩   ╩ ╩╩╚═╚═╝╩ ╩═╩╝╚═╝`

const bannerCompact = "P L A Y A R C A D E"

// RenderBanner returns the banner in the primary color, compact below 36
// columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 36 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
