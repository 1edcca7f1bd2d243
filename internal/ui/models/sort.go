package models

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

// SortKey selects the display ordering of the grid.
type SortKey int

const (
	// SortDate orders newest first.
	SortDate SortKey = iota
	// SortTitle orders by the first word of the description.
	SortTitle
	// SortSize orders largest area first.
	SortSize
)

// SortKeys lists every key in cycling order.
var SortKeys = []SortKey{SortDate, SortTitle, SortSize}

func (k SortKey) String() string {
	switch k {
	case SortTitle:
		return "title"
	case SortSize:
		return "size"
	default:
		return "date"
	}
}

// Label is the capitalized name shown in the sort selector.
func (k SortKey) Label() string {
	switch k {
	case SortTitle:
		return "Title"
	case SortSize:
		return "Size"
	default:
		return "Date"
	}
}

// Next returns the key after k, wrapping from size back to date.
func (k SortKey) Next() SortKey {
	return SortKeys[(int(k)+1)%len(SortKeys)]
}

// ParseSortKey accepts "date", "title" or "size" in any case.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "":
		return SortDate, nil
	case "title":
		return SortTitle, nil
	case "size":
		return SortSize, nil
	default:
		return SortDate, fmt.Errorf("unknown sort key %q (want date, title or size)", s)
	}
}

// SortImages returns a sorted copy of images. The sort is stable, so equal
// keys keep their input order.
func SortImages(images []api.Image, key SortKey) []api.Image {
	sorted := make([]api.Image, len(images))
	copy(sorted, images)

	switch key {
	case SortTitle:
		// A Collator keeps scratch buffers and is not safe to share.
		col := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].TitleWord(), sorted[j].TitleWord()) < 0
		})
	case SortSize:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Area() > sorted[j].Area()
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedTime().After(sorted[j].CreatedTime())
		})
	}

	return sorted
}
