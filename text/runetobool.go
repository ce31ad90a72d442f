package text

// coverageMap records which runes a font covers.
// Uses 2 bits per rune: (checked, hasGlyph), in lazily allocated blocks of
// 256 runes, so sparse lookups across Unicode stay small.
//
// coverageMap is not safe for concurrent use; FontSource guards it.
type coverageMap struct {
	blocks map[uint32]*coverageBlock // keyed by rune >> 8
}

// coverageBlock holds 256 runes (512 bits = 64 bytes).
type coverageBlock struct {
	bits [8]uint64
}

func newCoverageMap() *coverageMap {
	return &coverageMap{blocks: make(map[uint32]*coverageBlock)}
}

// bitPos returns the block key, word index and bit offset of r.
func coverageBitPos(r rune) (blockIdx, wordIdx, bitPos uint32) {
	u := uint32(r) //nolint:gosec // negative runes land in their own block
	bitIdx := (u & 0xFF) * 2
	return u >> 8, bitIdx / 64, bitIdx % 64
}

// get returns (hasGlyph, checked).
// If checked is false, the rune hasn't been looked up yet.
func (m *coverageMap) get(r rune) (hasGlyph, checked bool) {
	blockIdx, wordIdx, bitPos := coverageBitPos(r)
	b, ok := m.blocks[blockIdx]
	if !ok {
		return false, false
	}
	word := b.bits[wordIdx]
	return (word>>(bitPos+1))&1 != 0, (word>>bitPos)&1 != 0
}

// set stores the hasGlyph value for a rune and marks it checked.
func (m *coverageMap) set(r rune, hasGlyph bool) {
	blockIdx, wordIdx, bitPos := coverageBitPos(r)
	b, ok := m.blocks[blockIdx]
	if !ok {
		b = &coverageBlock{}
		m.blocks[blockIdx] = b
	}

	b.bits[wordIdx] |= 1 << bitPos
	if hasGlyph {
		b.bits[wordIdx] |= 1 << (bitPos + 1)
	} else {
		b.bits[wordIdx] &^= 1 << (bitPos + 1)
	}
}

// reset removes all entries.
func (m *coverageMap) reset() {
	clear(m.blocks)
}
