package core

// Camera maps world coordinates to framebuffer coordinates by adding a
// signed offset, the eye: screen = world + eye.
type Camera struct {
	eye    Point
	width  int
	height int
}

// NewCamera creates a camera for a viewport of the given size with a zero eye.
func NewCamera(width, height int) *Camera {
	return &Camera{width: width, height: height}
}

// Eye returns the current camera offset.
func (c *Camera) Eye() Point {
	return c.eye
}

// SetEye replaces the camera offset.
func (c *Camera) SetEye(eye Point) {
	c.eye = eye
}

// LookTarget returns the eye that Look(world) would set.
func (c *Camera) LookTarget(world Point) Point {
	return Point{X: world.X + c.width/2, Y: world.Y + c.height/2}
}

// Look sets eye = world + (W/2, H/2). Look(Point{}) puts the world origin
// at the view center; in general the world point -world ends up there.
func (c *Camera) Look(world Point) {
	c.eye = c.LookTarget(world)
}

// CenterTarget returns the eye that CenterOn(world) would set.
func (c *Camera) CenterTarget(world Point) Point {
	return c.LookTarget(Point{X: -world.X, Y: -world.Y})
}

// CenterOn moves the camera so that world maps to (W/2, H/2).
func (c *Camera) CenterOn(world Point) {
	c.eye = c.CenterTarget(world)
}

// WorldToScreen returns the framebuffer coordinate of world, or false when
// the point falls on the negative side of either axis. Points past the right
// or bottom edge are still reported; the framebuffer rejects them on write.
func (c *Camera) WorldToScreen(world Point) (Point, bool) {
	x := world.X + c.eye.X
	y := world.Y + c.eye.Y
	if x < 0 || y < 0 || int64(x) > maxCoord || int64(y) > maxCoord {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// maxCoord is the largest coordinate a 32-bit unsigned framebuffer index
// can carry.
const maxCoord int64 = 1<<32 - 1
