package autocomplete

// Surface is the live text-editing surface hosting the engine. Any editor
// that can expose a buffer, a cursor offset, and a splice primitive can
// drive the controller.
type Surface interface {
	// Text returns the full buffer contents.
	Text() string
	// Cursor returns the byte offset of the caret within Text.
	Cursor() int
	// Replace splices text over the [start, end) span of the buffer.
	Replace(start, end int, text string)
	// SetCursor moves the caret to a byte offset.
	SetCursor(offset int)
	// NotifyInput fires the host's input/undo pipeline after a
	// programmatic edit, as if the user had typed it.
	NotifyInput()
}

// Metrics supplies the pixel geometry needed to anchor the suggestion
// panel. Hosts that never render a panel may leave it nil.
type Metrics interface {
	// MeasureWidth returns the rendered width of text in the editor font.
	MeasureWidth(text string) float64
	// LineHeight returns the editor line height in pixels.
	LineHeight() float64
	// Bounds returns the editor content box in viewport coordinates.
	Bounds() Rect
	// Scroll returns the editor's horizontal and vertical scroll offsets.
	Scroll() (x, y float64)
	// Viewport returns the visible viewport size.
	Viewport() (w, h float64)
}

// Rect is a pixel rectangle in viewport coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Position is the on-screen anchor for the suggestion panel.
type Position struct {
	X, Y  float64
	Above bool // panel flipped above the caret for lack of room below
}
