package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/cmoyates/platformer/level"
)

const (
	// epsilon guards the geometric sign and zero tests; exact float
	// comparisons are off the table for these predicates.
	epsilon = 1e-6

	// touchMargin widens the collision distance into a touch distance so
	// a body resting exactly at its radius still registers contact for
	// normals and timers.
	touchMargin = 0.5

	// wallNormalThreshold is how horizontal a contact normal must be to
	// count as a wall.
	wallNormalThreshold = 0.8
	// groundNormalY / ceilingNormalY are the vertical steepness cutoffs
	// (y is down, so ground normals are negative).
	groundNormalY  = -0.01
	ceilingNormalY = 0.01
)

// Resolve corrects the body against the level's polygons after the
// controller has integrated a tentative position: it pushes the body
// out of penetrated edges, teleports it back to PrevPosition when its
// center ended up on the solid side of a loop, rebuilds the contact
// normal from every touched edge, resets the grounded/walled timers,
// and removes the inward part of the velocity.
//
// Brute force over every polygon edge past a bounding-box reject; there
// is no spatial index and no continuous collision, so a fast enough
// body can tunnel through thin geometry.
func Resolve(lvl *level.Level, body *Body, contact *ContactState) {
	adjustment := cp.Vector{}
	newNormal := cp.Vector{}

	for pi := range lvl.Polygons {
		poly := &lvl.Polygons[pi]
		pos := body.Position
		bodyBB := cp.BB{
			L: pos.X - body.Radius - touchMargin,
			B: pos.Y - body.Radius - touchMargin,
			R: pos.X + body.Radius + touchMargin,
			T: pos.Y + body.Radius + touchMargin,
		}
		if !poly.Bounds.Intersects(bodyBB) {
			continue
		}

		colliding := false
		for i := 1; i < len(poly.Points); i++ {
			start, end := poly.Points[i-1], poly.Points[i]

			// Only edges whose open side faces where the body came from
			// can be approached; everything else is back-facing.
			if sideOfLine(start, end, body.PrevPosition) >= 0 {
				continue
			}

			distSq, closest := closestOnSegment(start, end, pos)
			collidingLine := distSq <= body.Radius*body.Radius
			colliding = colliding || collidingLine
			touching := distSq <= (body.Radius+touchMargin)*(body.Radius+touchMargin)

			if touching {
				normalDir := normalizeOrZero(pos.Sub(closest))
				// Ceilings contribute neither normals nor timers.
				if normalDir.Y <= ceilingNormalY {
					newNormal = newNormal.Add(normalDir)

					if math.Abs(normalDir.X) >= wallNormalThreshold {
						contact.WallTimer = MaxWallTime
						if normalDir.X > 0 {
							contact.WallDirection = WallLeft
						} else {
							contact.WallDirection = WallRight
						}
						contact.HasWallJumped = false
					}
					if normalDir.Y < groundNormalY {
						contact.GroundedTimer = MaxGroundedTime
						contact.WallTimer = 0
						contact.HasWallJumped = false
					}
				}
			}

			if collidingLine {
				delta := normalizeOrZero(pos.Sub(closest))
				if delta.Y > ceilingNormalY {
					// Hit a surface from below; kill vertical motion.
					body.Velocity.Y = 0
				}
				delta = delta.Mult(body.Radius - math.Sqrt(distSq))
				if math.Abs(delta.X) > math.Abs(adjustment.X) {
					adjustment.X = delta.X
				}
				if math.Abs(delta.Y) > math.Abs(adjustment.Y) {
					adjustment.Y = delta.Y
				}
			}
		}

		// Center crossed onto the solid side of this loop: snap back to
		// where the body was before integrating. This is a documented
		// teleport correction, not a minimal push-out.
		if colliding && poly.Contains(pos) != (poly.Winding < 0) {
			body.Position = body.PrevPosition
		}
	}

	contact.Normal = normalizeOrZero(newNormal)

	// Strip the velocity component pointing into the surface.
	if d := body.Velocity.Dot(contact.Normal); d < 0 {
		body.Velocity = body.Velocity.Sub(contact.Normal.Mult(d))
	}

	body.Position = body.Position.Add(adjustment)
}

// normalizeOrZero returns the unit vector of v, or the zero vector when
// v is too short to carry a direction. cp's Normalize divides by a
// near-zero length for the zero vector and produces NaN, which would
// poison every downstream projection.
func normalizeOrZero(v cp.Vector) cp.Vector {
	if v.LengthSq() < epsilon*epsilon {
		return cp.Vector{}
	}
	return v.Normalize()
}

// closestOnSegment returns the squared distance from pt to the segment
// and the closest point on it, clamping the projection to the segment's
// ends so corners resolve along their true nearest direction.
func closestOnSegment(start, end, pt cp.Vector) (float64, cp.Vector) {
	seg := end.Sub(start)
	lenSq := seg.LengthSq()
	if lenSq < epsilon*epsilon {
		return pt.DistanceSq(start), start
	}
	t := pt.Sub(start).Dot(seg) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := start.Add(seg.Mult(t))
	return pt.DistanceSq(closest), closest
}

// sideOfLine returns -1 when pt is on the open (air) side of the
// directed line, +1 on the solid side, and 0 within tolerance of the
// line itself.
func sideOfLine(start, end, pt cp.Vector) int {
	det := end.Sub(start).Cross(pt.Sub(start))
	if det > epsilon {
		return 1
	}
	if det < -epsilon {
		return -1
	}
	return 0
}
