package render

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/pefman/wot-session-overlay/internal/session"
)

// ========================= Overlay rendering =========================
// Pure presentation: every function here maps a session snapshot to bytes and
// nothing else. Rendering the same snapshot twice yields identical output, so
// callers can re-render freely after every event.

// Percent formats the win rate for display; "n/a" before the first counted
// battle (the win rate is NaN with zero battles).
func Percent(rate float64) string {
	if math.IsNaN(rate) {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}

// Title builds the browser tab title.
func Title(sn session.Snapshot) string {
	if sn.Disconnected {
		return fmt.Sprintf("[offline] %s — Session Win Rate", Percent(sn.WinRate()))
	}
	return fmt.Sprintf("%s — Session Win Rate", Percent(sn.WinRate()))
}

// Content builds the HTML body fragment shown by the overlay page.
func Content(sn session.Snapshot) string {
	banner := ""
	if sn.Disconnected {
		banner = `<div class="banner">Connection to the game client lost — reload the overlay after restarting the mod.</div>`
	}
	return fmt.Sprintf(
		`%s<div class="rate">%s</div><div class="tally">%d victories / %d defeats (%d battles)</div>`,
		banner, Percent(sn.WinRate()), sn.Victories, sn.Defeats, sn.Battles())
}

// Favicon color bands. Gray before the first battle, red/amber/green by rate.
const (
	colorIdle  = "#8a8f98"
	colorBad   = "#e04f4f"
	colorOK    = "#e0a84f"
	colorGood  = "#4fe08a"
	colorLostX = "#e04f4f"
)

func faviconColor(rate float64) string {
	switch {
	case math.IsNaN(rate):
		return colorIdle
	case rate < 0.45:
		return colorBad
	case rate < 0.55:
		return colorOK
	default:
		return colorGood
	}
}

// Favicon builds an SVG favicon for the snapshot: a filled circle in the win
// rate band color, crossed out while disconnected.
func Favicon(sn session.Snapshot) []byte {
	cross := ""
	if sn.Disconnected {
		cross = fmt.Sprintf(`<line x1="3" y1="3" x2="13" y2="13" stroke="%s" stroke-width="2"/>`, colorLostX)
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16"><circle cx="8" cy="8" r="7" fill="%s"/>%s</svg>`,
		faviconColor(sn.WinRate()), cross)
	return []byte(svg)
}

// FaviconDataURI is the same favicon as a data: URI for swapping the page
// icon without a second HTTP round-trip.
func FaviconDataURI(sn session.Snapshot) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(Favicon(sn))
}
