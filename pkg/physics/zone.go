// pkg/physics/zone.go
package physics

// Zone is a closed disc in world space. Targets, red zones and the
// closed margins around targets are all zones.
type Zone struct {
	Center Vector2D `json:"center"`
	Radius float64  `json:"radius"`
}

// Contains reports whether p lies inside or on the boundary of the zone
func (z Zone) Contains(p Vector2D) bool {
	return z.Center.DistanceSquared(p) <= z.Radius*z.Radius
}

// Project returns the point on the zone boundary in the direction of p.
// A point at the exact center projects onto the center.
func (z Zone) Project(p Vector2D) Vector2D {
	return z.Center.Add(p.Sub(z.Center).Normalize().Scale(z.Radius))
}

// Extend returns a zone with the same center and its radius grown by margin
func (z Zone) Extend(margin float64) Zone {
	return Zone{Center: z.Center, Radius: z.Radius + margin}
}

// Overlaps checks if two zones intersect
func (z Zone) Overlaps(other Zone) bool {
	sum := z.Radius + other.Radius
	return z.Center.DistanceSquared(other.Center) <= sum*sum
}
