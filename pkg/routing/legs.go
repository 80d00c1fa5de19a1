package routing

// Leg is a traveller-facing grouping of consecutive segments with the
// same transport mode and, for transit, the same line.
type Leg struct {
	Mode string
	Line string // serving line for transit legs

	FromID   string
	FromName string
	FromLat  float64
	FromLon  float64
	ToID     string
	ToName   string
	ToLat    float64
	ToLon    float64

	DurationMinutes    float64  // aggregated, buffer-inclusive
	RawDurationMinutes float64  // aggregated travel time without buffers
	BufferMinutes      float64  // aggregated station-access buffer (bicycle)
	DistanceKm         *float64 // aggregated, bicycle legs only
	StopCount          int      // traversed segments within the leg
}

// GroupLegs folds a segment list into journey legs. A new leg starts on
// every mode change and, for transit segments, on every line change.
// Pure transform: empty input produces an empty leg list.
func GroupLegs(segments []Segment) []Leg {
	if len(segments) == 0 {
		return nil
	}

	var legs []Leg
	var cur *Leg

	for i := range segments {
		seg := &segments[i]

		startNew := cur == nil ||
			cur.Mode != seg.Mode ||
			(seg.Mode == "tube" && cur.Line != seg.Line)

		if startNew {
			if cur != nil {
				legs = append(legs, *cur)
			}
			cur = &Leg{
				Mode:               seg.Mode,
				Line:               seg.Line,
				FromID:             seg.FromNode,
				FromName:           seg.FromName,
				FromLat:            seg.FromLat,
				FromLon:            seg.FromLon,
				ToID:               seg.ToNode,
				ToName:             seg.ToName,
				ToLat:              seg.ToLat,
				ToLon:              seg.ToLon,
				DurationMinutes:    seg.DurationMinutes,
				RawDurationMinutes: seg.RawDurationMinutes,
				BufferMinutes:      seg.BufferMinutes,
				StopCount:          1,
			}
			if seg.DistanceKm != nil {
				d := *seg.DistanceKm
				cur.DistanceKm = &d
			}
			continue
		}

		cur.ToID = seg.ToNode
		cur.ToName = seg.ToName
		cur.ToLat = seg.ToLat
		cur.ToLon = seg.ToLon
		cur.DurationMinutes += seg.DurationMinutes
		cur.RawDurationMinutes += seg.RawDurationMinutes
		cur.BufferMinutes += seg.BufferMinutes
		cur.StopCount++

		if seg.DistanceKm != nil {
			if cur.DistanceKm == nil {
				d := *seg.DistanceKm
				cur.DistanceKm = &d
			} else {
				*cur.DistanceKm += *seg.DistanceKm
			}
		}
	}

	legs = append(legs, *cur)
	return legs
}
