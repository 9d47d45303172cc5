package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lawnchairsociety/dungeongen/internal/export"
)

// render writes the map one row per line, framed with column tens for
// orientation on wide maps.
func render(w io.Writer, doc *export.Document, legend bool) {
	var ruler strings.Builder
	ruler.WriteString("    ")
	for column := 0; column < doc.Width; column++ {
		if column%10 == 0 {
			ruler.WriteByte(byte('0' + (column/10)%10))
		} else {
			ruler.WriteByte(' ')
		}
	}
	fmt.Fprintln(w, strings.TrimRight(ruler.String(), " "))

	for i, row := range doc.Rows {
		fmt.Fprintf(w, "%3d %s\n", i, row)
	}

	if legend {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %c rock   %c floor   %c door (north-south)   %c door (east-west)\n",
			export.GlyphRock, export.GlyphFloor, export.GlyphDoorNorthSouth, export.GlyphDoorEastWest)
	}
}

func summary(doc *export.Document) string {
	doors := doc.Count(export.GlyphDoorNorthSouth) + doc.Count(export.GlyphDoorEastWest)
	return fmt.Sprintf("seed=%d size=%dx%d rooms=%d doors=%d floor=%d fingerprint=%s",
		doc.Seed, doc.Width, doc.Height, len(doc.Rooms), doors, doc.Count(export.GlyphFloor), doc.Fingerprint)
}
