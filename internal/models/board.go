package models

import "github.com/thenoetrevino/dragboard/internal/types"

// Board is the top-level container of lists for one workspace
type Board struct {
	ID    types.BoardID `json:"id"`
	Title string        `json:"title"`
	Order int           `json:"order"`
}
