package video

// spriteEntry is one OAM entry selected for the current scanline.
type spriteEntry struct {
	oamIndex int
	y, x     int
	tile     uint8
	flags    uint8
}

// orderForPainting returns entries in the order they must be drawn so that
// the correct sprite wins each overlapping pixel by being painted last.
//
// DMG priority: lower X wins (ties broken by lower OAM index), so entries
// are stably sorted by X ascending and painted in reverse (highest X
// first, the eventual winner last).
//
// CGB priority: OAM index alone decides, so entries are painted in
// reverse OAM order without any X sort.
func orderForPainting(entries []spriteEntry, cgb bool) []spriteEntry {
	ordered := make([]spriteEntry, len(entries))
	copy(ordered, entries)

	if !cgb {
		// stable insertion sort by X ascending; scanlines hold at most 10
		// entries so this is cheap and avoids pulling in sort.Slice for a
		// tiny, already-mostly-sorted list.
		for i := 1; i < len(ordered); i++ {
			for j := i; j > 0 && ordered[j].x < ordered[j-1].x; j-- {
				ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
			}
		}
	}

	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	return ordered
}
