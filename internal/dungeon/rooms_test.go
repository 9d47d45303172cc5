package dungeon

import "testing"

// markRoom registers a room and carves its tiles as placeRoom would.
func markRoom(d *Dungeon, room *Room) {
	for _, c := range d.RoomCells(room) {
		c.Terrain = Floor
		c.InRoom = true
		c.Open = true
	}
	d.addRoom(room)
}

func TestCanPlaceRoomMargins(t *testing.T) {
	d := New(10, 10)
	size := Size{Width: 3, Height: 3}

	tests := []struct {
		row, column int
		want        bool
	}{
		{1, 1, true},
		{0, 1, false},  // touches the north edge
		{1, 0, false},  // touches the west edge
		{6, 6, true},   // bottom 9, right 9
		{7, 6, false},  // bottom reaches the grid edge
		{6, 7, false},  // right reaches the grid edge
	}

	for _, tc := range tests {
		room := &Room{Size: size, Row: tc.row, Column: tc.column}
		if got := canPlaceRoom(d, room); got != tc.want {
			t.Errorf("canPlaceRoom at (%d,%d) = %v, want %v", tc.row, tc.column, got, tc.want)
		}
	}
}

func TestCanPlaceRoomAvoidsOtherRooms(t *testing.T) {
	d := New(12, 12)
	markRoom(d, &Room{ID: 0, Size: Size{3, 3}, Row: 1, Column: 1})

	// Overlapping, touching, and one tile apart
	if canPlaceRoom(d, &Room{Size: Size{3, 3}, Row: 2, Column: 2}) {
		t.Error("overlapping room accepted")
	}
	if canPlaceRoom(d, &Room{Size: Size{3, 3}, Row: 1, Column: 4}) {
		t.Error("room touching another room accepted")
	}
	if !canPlaceRoom(d, &Room{Size: Size{3, 3}, Row: 1, Column: 5}) {
		t.Error("room one tile away rejected")
	}
}

func TestCanPlaceRoomRequiresRockCorners(t *testing.T) {
	d := New(10, 10)
	d.Cell(1, 1).Terrain = Floor

	if canPlaceRoom(d, &Room{Size: Size{3, 3}, Row: 2, Column: 2}) {
		t.Error("room accepted with a floor corner")
	}
}

func TestCanPlaceRoomRejectsWideEntrances(t *testing.T) {
	d := New(12, 12)
	room := &Room{Size: Size{3, 3}, Row: 2, Column: 2}

	// Single width corridor into the north side
	d.Cell(0, 3).Terrain = Floor
	d.Cell(1, 3).Terrain = Floor
	if !canPlaceRoom(d, room) {
		t.Fatal("single width entrance rejected")
	}

	// Widen it to two tiles
	d.Cell(1, 4).Terrain = Floor
	if canPlaceRoom(d, room) {
		t.Error("two tile wide entrance accepted")
	}
}

func TestRoomRing(t *testing.T) {
	d := New(10, 10)
	room := &Room{Size: Size{3, 2}, Row: 2, Column: 2}

	ring := roomRing(d, room)
	if len(ring) != 2*3+2*2 {
		t.Fatalf("ring has %d tiles, want 10", len(ring))
	}
	for _, tile := range ring {
		c := tile.cell
		if room.Contains(c.Row, c.Column) {
			t.Errorf("ring tile (%d,%d) lies inside the room", c.Row, c.Column)
		}
		inward := d.Neighbor(c, tile.outward.Opposite())
		if inward == nil || !room.Contains(inward.Row, inward.Column) {
			t.Errorf("ring tile (%d,%d) outward %s does not point away from the room", c.Row, c.Column, tile.outward)
		}
	}
}

func TestResolveIsolatedRoomTunnels(t *testing.T) {
	d := New(12, 12)
	for row := 1; row < 11; row++ {
		d.Cell(row, 9).Terrain = Floor
	}
	room := &Room{ID: 3, Size: Size{3, 3}, Row: 4, Column: 2}
	markRoom(d, room)

	resolveIsolatedRooms(d, NewRandomizer(5))

	if len(d.Rooms()) != 1 {
		t.Fatalf("room removed, rooms = %d", len(d.Rooms()))
	}
	if isIsolated(d, room) {
		t.Error("room still isolated after tunnelling")
	}

	tunnels := 0
	for row := 4; row <= 6; row++ {
		carved := true
		for column := 5; column <= 8; column++ {
			c := d.Cell(row, column)
			if c.Terrain != Floor || !c.Open {
				carved = false
			}
		}
		if carved {
			tunnels++
		}
	}
	if tunnels != 1 {
		t.Errorf("found %d tunnels to the corridor, want 1", tunnels)
	}
}

func TestResolveIsolatedRoomRemovesUnreachable(t *testing.T) {
	d := New(10, 10)
	room := &Room{ID: 0, Size: Size{3, 3}, Row: 3, Column: 3}
	markRoom(d, room)

	resolveIsolatedRooms(d, NewRandomizer(1))

	if len(d.Rooms()) != 0 {
		t.Fatalf("unreachable room kept")
	}
	for _, c := range d.Cells() {
		if c.Terrain != Rock || c.InRoom || c.Open {
			t.Errorf("tile (%d,%d) not reverted: %s in_room=%v open=%v", c.Row, c.Column, c.Terrain, c.InRoom, c.Open)
		}
	}
}

func TestRoomProcessorStopsWhenSizesExhausted(t *testing.T) {
	// No room of this size fits in a 5x5 grid
	d := New(5, 5)
	cfg := Configuration{MinRoomWidth: 6, MaxRoomWidth: 6, MinRoomHeight: 6, MaxRoomHeight: 6, RoomCount: 3}

	roomProcessor{}.Process(d, cfg, NewRandomizer(1))

	if len(d.Rooms()) != 0 {
		t.Errorf("placed %d rooms, want 0", len(d.Rooms()))
	}
}

func TestRemoveSize(t *testing.T) {
	sizes := []Size{{1, 1}, {2, 1}, {3, 1}}
	sizes = removeSize(sizes, Size{2, 1})
	if len(sizes) != 2 || sizes[0] != (Size{1, 1}) || sizes[1] != (Size{3, 1}) {
		t.Errorf("removeSize() = %v", sizes)
	}
}
