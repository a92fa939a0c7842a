package interval

// Overlap returns the length of the intersection of [start,end) and
// [rangeStart,rangeEnd), or 0 when they are disjoint. Every day-range
// clipping in the aggregation and timeline layers goes through this one
// primitive.
func Overlap(start, end, rangeStart, rangeEnd int64) int64 {
	overlapStart := max(start, rangeStart)
	overlapEnd := min(end, rangeEnd)
	if overlapStart >= overlapEnd {
		return 0
	}
	return overlapEnd - overlapStart
}

// SumPerTimer sums time per timer within [dayStart,dayEnd). Timers with no
// overlap are omitted. When includeActive is set, each running timer also
// contributes its open span clipped at now.
func SumPerTimer(p *Processed, dayStart, dayEnd int64, includeActive bool, now int64) map[string]int64 {
	perTimer := make(map[string]int64)

	for timer, ivs := range p.Intervals {
		var total int64
		for _, iv := range ivs {
			total += Overlap(iv.Start, iv.End, dayStart, dayEnd)
		}
		if total > 0 {
			perTimer[timer] = total
		}
	}

	if includeActive {
		for timer, start := range p.Active {
			if overlap := Overlap(start, now, dayStart, dayEnd); overlap > 0 {
				perTimer[timer] += overlap
			}
		}
	}

	return perTimer
}

// SumTotal is the whole-day total across all timers. It is defined as the
// sum of SumPerTimer's values so the aggregate can never disagree with the
// per-timer figures.
func SumTotal(p *Processed, dayStart, dayEnd int64, includeActive bool, now int64) int64 {
	var total int64
	for _, ms := range SumPerTimer(p, dayStart, dayEnd, includeActive, now) {
		total += ms
	}
	return total
}
