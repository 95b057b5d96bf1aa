// Package geom provides the integer screen geometry shared by the panel,
// the dock planner and the animator.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in virtual-desktop coordinates. Coordinates can be
// negative when a secondary monitor sits left of or above the primary one.
type Point struct {
	X int
	Y int
}

// Rect is a window frame in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor holds the bounds of one display. Right and Bottom are the
// exclusive edges, as reported by GetMonitorInfo.
type Monitor struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// String renders the rect in the persisted "WxH+X+Y" form.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Right returns the x coordinate just past the rect.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the rect.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. Both edges are inclusive so a
// pointer resting on the border still counts as interaction.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.Width && r.Y <= p.Y && p.Y <= r.Y+r.Height
}

// Sane reports whether r is large enough to be restored as the full panel.
func (r Rect) Sane(minWidth int) bool {
	return r.Width > minWidth && r.Height > 1
}

// WithSize returns r resized in place, keeping its origin.
func (r Rect) WithSize(w, h int) Rect {
	r.Width, r.Height = w, h
	return r
}

// Distance returns the squared distance between the origins of two rects.
func Distance(a, b Rect) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// ParseRect parses a "WxH+X+Y" string. Offsets may carry a sign
// ("300x460+-1920+40" for a monitor left of the primary one).
func ParseRect(s string) (Rect, error) {
	s = strings.TrimSpace(s)
	w, rest, ok := strings.Cut(s, "x")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q has no size separator", ErrBadGeometry, s)
	}
	parts := strings.Split(rest, "+")
	if len(parts) != 3 {
		return Rect{}, fmt.Errorf("%w: %q is not WxH+X+Y", ErrBadGeometry, s)
	}

	nums := make([]int, 0, 4)
	for _, field := range append([]string{w}, parts...) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q: %v", ErrBadGeometry, s, err)
		}
		nums = append(nums, n)
	}
	if nums[0] < 0 || nums[1] < 0 {
		return Rect{}, fmt.Errorf("%w: %q has a negative size", ErrBadGeometry, s)
	}

	return Rect{Width: nums[0], Height: nums[1], X: nums[2], Y: nums[3]}, nil
}

// ParseSane parses s and rejects rects not wider than minWidth.
func ParseSane(s string, minWidth int) (Rect, error) {
	r, err := ParseRect(s)
	if err != nil {
		return Rect{}, err
	}
	if !r.Sane(minWidth) {
		return Rect{}, fmt.Errorf("%w: %s", ErrDegenerate, r)
	}
	return r, nil
}

// Width returns the monitor width.
func (m Monitor) Width() int { return m.Right - m.Left }

// Height returns the monitor height.
func (m Monitor) Height() int { return m.Bottom - m.Top }

// Contains reports whether p lies within the monitor, edges inclusive.
func (m Monitor) Contains(p Point) bool {
	return m.Left <= p.X && p.X <= m.Right && m.Top <= p.Y && p.Y <= m.Bottom
}

// Clamp moves p onto the monitor.
func (m Monitor) Clamp(p Point) Point {
	return Point{X: clamp(p.X, m.Left, m.Right), Y: clamp(p.Y, m.Top, m.Bottom)}
}

// Fit shifts r so that it lies on the monitor where possible. A rect larger
// than the monitor is pinned to the top-left corner.
func (m Monitor) Fit(r Rect) Rect {
	r.X = clamp(r.X, m.Left, m.Right-r.Width)
	r.Y = clamp(r.Y, m.Top, m.Bottom-r.Height)
	return r
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
