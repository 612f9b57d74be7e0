package timeline

import (
	"github.com/matzehuels/timelanes/pkg/errors"
	"github.com/matzehuels/timelanes/pkg/lanes"
)

// Row is one laid-out interval.
type Row struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title,omitempty"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`

	// Lane is local to the category block, starting at 1.
	Lane int `json:"lane"`

	// Y is the absolute row: the block offset plus Lane.
	Y int `json:"y"`
}

// Block is the vertical extent of one category.
type Block struct {
	Category string `json:"category"`
	Offset   int    `json:"offset"`
	Lanes    int    `json:"lanes"`
}

// Layout is the result of [Build].
type Layout struct {
	Rows   []Row   `json:"rows"`
	Blocks []Block `json:"blocks"`

	// Height is the number of rows spanned by all blocks and the gaps
	// between them.
	Height int `json:"height"`

	// Hidden counts intervals dropped by the window or category toggles.
	Hidden int `json:"hidden"`
}

// Block returns the block of category, if present.
func (l Layout) Block(category string) (Block, bool) {
	for _, b := range l.Blocks {
		if b.Category == category {
			return b, true
		}
	}
	return Block{}, false
}

// Build validates req, filters it, assigns lanes and stacks the blocks.
func Build(req Request) (Layout, error) {
	if err := req.Validate(); err != nil {
		return Layout{}, err
	}

	visible := req.Visible()
	a, err := lanes.Assign(visible, req.CategoryOrder, req.Policies, lanes.WithDefaultPolicy(req.DefaultPolicy))
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInterval, err, "assign lanes")
	}

	blocks := Stack(a, req.BlockGap)
	offsets := make(map[string]int, len(blocks))
	for _, b := range blocks {
		offsets[b.Category] = b.Offset
	}

	rows := make([]Row, len(visible))
	for i, iv := range visible {
		lane := a.Lane(i)
		rows[i] = Row{
			ID:       iv.ID,
			Category: iv.Category,
			Title:    iv.Title,
			Start:    iv.Start,
			End:      iv.End,
			Lane:     lane,
			Y:        offsets[iv.Category] + lane,
		}
	}

	return Layout{
		Rows:   rows,
		Blocks: blocks,
		Height: height(blocks),
		Hidden: len(req.Intervals) - len(visible),
	}, nil
}

// Stack places the category blocks of a one after another, leaving gap empty
// rows between neighbours.
func Stack(a lanes.Assignment, gap int) []Block {
	blocks := make([]Block, 0, len(a.Categories))
	offset := 0
	for i, cat := range a.Categories {
		if i > 0 {
			offset += gap
		}
		n := a.LanesByCategory[cat]
		blocks = append(blocks, Block{Category: cat, Offset: offset, Lanes: n})
		offset += n
	}
	return blocks
}

func height(blocks []Block) int {
	if len(blocks) == 0 {
		return 0
	}
	last := blocks[len(blocks)-1]
	return last.Offset + last.Lanes
}
