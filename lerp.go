package portal

// lerp linearly interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InterpolateCenter returns the layer's center at the given progress: the
// linear interpolation of the source and destination centers, plus a constant
// offset applied additively. Progress 0 yields the source center (+offset),
// progress 1 the destination center (+offset).
func InterpolateCenter(src, dst Rect, progress float64, offset Vec2) Vec2 {
	sc := src.Center()
	dc := dst.Center()
	return Vec2{
		X: lerp(sc.X, dc.X, progress) + offset.X,
		Y: lerp(sc.Y, dc.Y, progress) + offset.Y,
	}
}

// InterpolateScale returns the per-axis scale factor applied to the source
// size at the given progress: exactly (1, 1) at progress 0, and
// (dst.Width/src.Width, dst.Height/src.Height) at progress 1. A zero source
// dimension falls back to identity scale on that axis instead of dividing by
// zero.
func InterpolateScale(src, dst Rect, progress float64) Vec2 {
	sx, sy := 1.0, 1.0
	if src.Width != 0 {
		sx = dst.Width / src.Width
	}
	if src.Height != 0 {
		sy = dst.Height / src.Height
	}
	return Vec2{
		X: lerp(1, sx, progress),
		Y: lerp(1, sy, progress),
	}
}

// FrameAt composes InterpolateCenter and InterpolateScale into the layer's
// frame at the given progress: the source size scaled per axis, centered at
// the interpolated center point.
func FrameAt(src, dst Rect, progress float64) Rect {
	return FrameAtOffset(src, dst, progress, Vec2{})
}

// FrameAtOffset is FrameAt with a constant center offset applied additively.
func FrameAtOffset(src, dst Rect, progress float64, offset Vec2) Rect {
	center := InterpolateCenter(src, dst, progress, offset)
	scale := InterpolateScale(src, dst, progress)
	w := src.Width * scale.X
	h := src.Height * scale.Y
	return Rect{
		X:      center.X - w/2,
		Y:      center.Y - h/2,
		Width:  w,
		Height: h,
	}
}

// ProgressFrom maps a scroll offset onto transition progress: exactly 0 at or
// before start, exactly 1 at or after start+span, linear in between. A zero
// or negative span returns 1 rather than producing NaN or Inf.
func ProgressFrom(offset, start, span float64) float64 {
	if span <= 0 {
		return 1
	}
	p := (offset - start) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
