package coordinator

import "github.com/pengelbrecht/stretchy/internal/page"

// DistanceFromTop is how far a page's content has travelled from its
// resting position. Inverted pages rest at the bottom of their content.
func DistanceFromTop(m page.ScrollMetrics, inverted bool) float64 {
	if inverted {
		return m.ContentHeight - m.ViewportHeight + m.Insets.Bottom - m.OffsetY
	}
	return m.OffsetY + m.Insets.Top
}

// Reanchor moves distance into the view's inset and rests its offset, so
// DistanceFromTop is unchanged while further motion scrolls the content.
// Normal pages take the distance as a top inset at offset zero; inverted
// pages take it as a bottom inset at their natural bottom offset.
func Reanchor(view page.ScrollView, m page.ScrollMetrics, distance float64, inverted bool) {
	insets := m.Insets
	if inverted {
		insets.Bottom = distance
		view.SetContentInset(insets)
		view.SetContentOffsetY(m.ContentHeight - m.ViewportHeight)
		return
	}
	insets.Top = distance
	view.SetContentInset(insets)
	view.SetContentOffsetY(0)
}
