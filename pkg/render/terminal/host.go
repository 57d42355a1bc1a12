// pkg/render/terminal/host.go
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

const helpLine = "space run  r retry  R reset  c clear  n next  p pause  q quit"

// Host plays a campaign in a terminal. The bottom row is a status line;
// the rest of the screen shows the scene.
type Host struct {
	screen   tcell.Screen
	campaign *engine.Campaign
	logger   *logging.Logger
	canvas   *render.Canvas
	interval time.Duration
	drag     render.Drag
	last     time.Time
}

// NewHost creates a terminal host drawing at fps frames per second
func NewHost(screen tcell.Screen, campaign *engine.Campaign, logger *logging.Logger, fps int) *Host {
	if logger == nil {
		logger = logging.Discard()
	}
	if fps <= 0 {
		fps = 60
	}
	return &Host{
		screen:   screen,
		campaign: campaign,
		logger:   logger,
		canvas:   render.NewCanvas(1, 1),
		interval: time.Second / time.Duration(fps),
	}
}

// Run initialises the screen and plays until the player quits or ctx is
// cancelled
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer h.screen.Fini()

	h.screen.EnableMouse()
	h.screen.HideCursor()
	h.resize()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(h.screen, events, done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	h.last = time.Now()

	h.logger.Info(ctx, "terminal host started", "level", string(h.campaign.Level().ID))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			h.frame(now)
		}
	}
}

// eventSource is the polling half of tcell.Screen
type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards events until the source is finalised or done is
// closed. events is closed when the source runs dry.
func pollEvents(src eventSource, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		h.resize()
		h.campaign.Session().Pause()
		h.screen.Sync()
	}
	return true
}

// handleKey returns false when the player asked to quit
func (h *Host) handleKey(key tcell.Key, r rune) bool {
	cmd, action := KeyCommand(key, r)
	switch action {
	case render.ActionQuit:
		return false
	case render.ActionNextLevel:
		h.nextLevel()
	default:
		h.campaign.Session().Handle(cmd)
	}
	return true
}

func (h *Host) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pos := h.canvas.CellToWorld(x, y)
	if !h.drag.Down() {
		pos = h.snapToTail(x, y, pos)
	}
	if cmd := h.drag.Update(primaryPressed(buttons), pos); cmd != nil {
		h.campaign.Session().Handle(cmd)
	}
}

// snapToTail returns the exact tail position when a cell next to the
// tail's cell is picked. Cells are far wider than the grab radius.
func (h *Host) snapToTail(x, y int, pos physics.Vector2D) physics.Vector2D {
	points := h.campaign.Session().Points()
	tail := points[len(points)-1]
	tx, ty := h.canvas.WorldToCell(tail)
	if abs(x-tx) <= 1 && abs(y-ty) <= 1 {
		return tail
	}
	return pos
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (h *Host) nextLevel() {
	h.drag.Reset()
	err := h.campaign.Next()
	switch {
	case errors.Is(err, engine.ErrLastLevel):
		h.logger.Info(context.Background(), "already on the last level", "level", string(h.campaign.Level().ID))
	case err != nil:
		h.logger.Error(context.Background(), "failed to switch level", err)
	}
}

func (h *Host) resize() {
	w, ht := h.screen.Size()
	h.canvas.Resize(w, max(ht-1, 1))
}

func (h *Host) frame(now time.Time) {
	dt := now.Sub(h.last).Seconds()
	h.last = now
	h.campaign.Session().Tick(dt)
	h.draw()
}

func (h *Host) draw() {
	s := h.campaign.Session()
	if err := render.Draw(h.canvas, s.View()); err != nil {
		h.logger.Error(context.Background(), "failed to draw frame", err)
		return
	}

	w, ht := h.canvas.Size()
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			cell := h.canvas.Cell(x, y)
			h.screen.SetContent(x, y, cell.Rune, nil, cellStyle(cell.Style))
		}
	}

	status := fmt.Sprintf(" %s | %s | tick %d | %s", s.Level.ID, s.Phase(), s.Ticks(), helpLine)
	statusStyle := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		h.screen.SetContent(x, ht, r, nil, statusStyle)
		x++
	}
	for ; x < w; x++ {
		h.screen.SetContent(x, ht, ' ', nil, statusStyle)
	}

	h.screen.Show()
}

func cellStyle(s render.Style) tcell.Style {
	c := s.Color()
	style := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	if s == render.StyleBanner {
		style = style.Bold(true)
	}
	return style
}
