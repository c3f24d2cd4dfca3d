package tui

import (
	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Board geometry in terminal cells. The renderer and the hit tester both
// derive positions from these constants, so they must change together.
//
// Layout of one list box:
//
//	╭────────────────────────╮  boardTop
//	│ {List title} ({count}) │  header row
//	│ ╭────────────────────╮ │
//	│ │ {Card title}       │ │  cardHeight rows per card
//	│ ╰────────────────────╯ │
//	│                        │  footer row (drop area of empty lists)
//	╰────────────────────────╯
const (
	listWidth  = 28
	listGap    = 1
	cardHeight = 3
	boardTop   = 1

	// list chrome: top border, header, footer, bottom border
	listChrome = 4
	// border plus padding on each side of a card
	cardInset = 2
)

// dragActivationDistance is how far (in cells) the pointer must travel with
// the button held before a press becomes a drag
const dragActivationDistance = 1

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type hitKind int

const (
	hitNone hitKind = iota
	hitBoard
	hitList
	hitListHeader
	hitCard
)

// hit is what lies under a terminal cell
type hit struct {
	kind   hitKind
	listID types.ListID
	cardID types.CardID
}

// target converts a hit into a drag target
func (h hit) target() drag.Target {
	switch h.kind {
	case hitCard:
		return drag.OverCard(h.cardID)
	case hitList, hitListHeader:
		return drag.OverList(h.listID)
	case hitBoard:
		return drag.OverBoard()
	default:
		return drag.None
	}
}

type region struct {
	rect
	hit hit
}

// layout holds the screen regions of one rendered board
type layout struct {
	cards   []region
	headers []region
	lists   []region
	board   rect
}

func listX(i int) int {
	return i * (listWidth + listGap)
}

func listHeight(cards int) int {
	return listChrome + cards*cardHeight
}

// computeLayout places every list and card of snap on a width x height screen
func computeLayout(snap *board.Snapshot, width, height int) layout {
	var lay layout
	lay.board = rect{x: 0, y: boardTop, w: width, h: max(height-boardTop-1, 0)}

	for i, l := range snap.Lists() {
		x := listX(i)
		lay.lists = append(lay.lists, region{
			rect: rect{x: x, y: boardTop, w: listWidth, h: listHeight(len(l.Cards))},
			hit:  hit{kind: hitList, listID: l.ID},
		})
		lay.headers = append(lay.headers, region{
			rect: rect{x: x, y: boardTop + 1, w: listWidth, h: 1},
			hit:  hit{kind: hitListHeader, listID: l.ID},
		})
		for j, c := range l.Cards {
			lay.cards = append(lay.cards, region{
				rect: rect{x: x + cardInset, y: boardTop + 2 + j*cardHeight, w: listWidth - 2*cardInset, h: cardHeight},
				hit:  hit{kind: hitCard, listID: l.ID, cardID: c.ID},
			})
		}
	}
	return lay
}

// hitTest returns the innermost region under (x, y)
func (lay layout) hitTest(x, y int) hit {
	for _, group := range [][]region{lay.cards, lay.headers, lay.lists} {
		for _, r := range group {
			if r.contains(x, y) {
				return r.hit
			}
		}
	}
	if lay.board.contains(x, y) {
		return hit{kind: hitBoard}
	}
	return hit{}
}

func distance(x0, y0, x1, y1 int) int {
	return abs(x1-x0) + abs(y1-y0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
