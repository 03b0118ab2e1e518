package player

import (
	"time"

	"github.com/dshills/smartseek/internal/seek"
)

// Page is the set of videos shown by the host.
type Page struct {
	videos  []*Video
	editing bool
}

// NewPage creates a page with the given videos in display order.
func NewPage(videos ...*Video) *Page {
	return &Page{videos: videos}
}

// Videos returns the page's videos.
func (p *Page) Videos() []*Video {
	return p.videos
}

// Media implements controller.Page.
func (p *Page) Media() []seek.Media {
	media := make([]seek.Media, len(p.videos))
	for i, v := range p.videos {
		media[i] = v
	}
	return media
}

// EditingText implements controller.Page.
func (p *Page) EditingText() bool {
	return p.editing
}

// SetEditing simulates a text field gaining or losing focus.
func (p *Page) SetEditing(editing bool) {
	p.editing = editing
}

// Target returns the video a seek would apply to, or nil.
func (p *Page) Target() *Video {
	m := seek.SelectTarget(p.Media())
	if m == nil {
		return nil
	}
	return m.(*Video)
}

// Advance moves every playing video forward by dt.
func (p *Page) Advance(dt time.Duration) {
	for _, v := range p.videos {
		v.Advance(dt)
	}
}
