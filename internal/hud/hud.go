// Package hud keeps the optional status overlay: a permanent status line and
// a banner that fades out after each repopulation.
package hud

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/olivierh59500/sakura-go/internal/driver"
)

// BannerDuration is how long the repopulation banner takes to fade, in seconds.
const BannerDuration = 2.5

// Overlay tracks what the HUD shows. It is renderer-agnostic; hosts draw
// Lines with Alpha applied to the banner.
type Overlay struct {
	stats      driver.Stats
	lastResets uint64
	fade       *gween.Tween
	alpha      float32
	banner     string
}

// New returns an empty overlay.
func New() *Overlay {
	return &Overlay{}
}

// Update records the latest driver stats and advances the banner fade by
// dt seconds. A change in the reset count restarts the banner.
func (o *Overlay) Update(st driver.Stats, dt float32) {
	o.stats = st
	if st.Resets != o.lastResets {
		o.lastResets = st.Resets
		o.banner = fmt.Sprintf("repopulating: density %.2f, target %d", st.Density, st.Target)
		o.fade = gween.New(1, 0, BannerDuration, ease.InQuad)
		o.alpha = 1
		return
	}
	if o.fade == nil {
		return
	}
	v, done := o.fade.Update(dt)
	o.alpha = v
	if done {
		o.alpha = 0
		o.fade = nil
	}
}

// Status returns the always-on status line.
func (o *Overlay) Status() string {
	return fmt.Sprintf("petals %d/%d  density %.2f  frames %s",
		o.stats.Particles, o.stats.Target, o.stats.Density, humanize.Comma(int64(o.stats.Frames)))
}

// Banner returns the repopulation banner text and its current opacity.
// The opacity is 0 once the fade has finished.
func (o *Overlay) Banner() (string, float32) {
	if o.alpha <= 0 {
		return "", 0
	}
	return o.banner, o.alpha
}
