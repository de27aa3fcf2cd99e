package globalord_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/globalord"
	"github.com/hupe1980/globalord/fielddata"
	"github.com/hupe1980/globalord/ordinals"
)

// Example merges two segment dictionaries into one global ordinal space
// and resolves a document's value across the segment boundary.
func Example() {
	ctx := context.Background()

	// Two independently built segments of the same field.
	wa := fielddata.NewWriter(1, fielddata.AnalysisKeyword)
	wa.Add(0, "apple")
	wa.Add(1, "cherry")

	wb := fielddata.NewWriter(2, fielddata.AnalysisKeyword)
	wb.Add(0, "banana")
	wb.Add(1, "cherry")
	wb.Add(2, "date")

	p := globalord.New(
		globalord.WithCacheCapacity(16 << 20),
	)

	view, err := p.Load(ctx, globalord.Snapshot{
		ID:       "reader-1",
		Segments: []ordinals.TermSource{wa.Seal(), wb.Seal()},
	})
	if err != nil {
		log.Fatal(err)
	}

	for term, err := range view.Terms() {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d %s\n", term.Ordinal, term.Value)
	}

	// Document 1 in segment B holds "cherry"; its global ordinal decodes
	// through segment A, the first contributor.
	for ord := range view.Segment(1).GlobalOrdinals(1) {
		value, err := view.ValueForGlobalOrdinal(ord)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("doc 1 -> %d (%s)\n", ord, value)
	}

	// Output:
	// 0 apple
	// 1 banana
	// 2 cherry
	// 3 date
	// doc 1 -> 2 (cherry)
}
