package export

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint is a BLAKE2b-256 digest over everything generation decides:
// dimensions, each cell's terrain, flags, passability and walls, and the
// room list in placement order. Two dungeons share a fingerprint only if
// they are identical.
func Fingerprint(d *dungeon.Dungeon) string {
	h, _ := blake2b.New256(nil) // only fails for oversize keys

	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}

	putInt(d.Width)
	putInt(d.Height)

	cell := make([]byte, 0, 3+2*4)
	for _, c := range d.Cells() {
		cell = cell[:0]
		cell = append(cell, byte(c.Terrain), flag(c.Open), flag(c.InRoom))
		for _, dir := range dungeon.AllDirections() {
			cell = append(cell, flag(c.IsPassable(dir)), byte(c.Walls[dir]))
		}
		h.Write(cell)
	}

	rooms := d.Rooms()
	putInt(len(rooms))
	for _, r := range rooms {
		putInt(r.ID)
		putInt(r.Row)
		putInt(r.Column)
		putInt(r.Size.Width)
		putInt(r.Size.Height)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
