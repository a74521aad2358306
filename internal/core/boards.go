package core

import "math/rand/v2"

// DefaultBoard is handed out when the board catalog is empty.
const DefaultBoard = "default.svg"

type BoardAllocator struct {
	boards []string
	intn   func(n int) int
}

func NewBoardAllocator(boards []string) *BoardAllocator {
	return &BoardAllocator{
		boards: append([]string(nil), boards...),
		intn:   rand.IntN,
	}
}

// Assign picks a board uniformly at random.
func (b *BoardAllocator) Assign() string {
	if len(b.boards) == 0 {
		return DefaultBoard
	}
	return b.boards[b.intn(len(b.boards))]
}

// Rotate shifts board ownership by one position: slot i receives the board that was in
// slot (i+1) mod N. For N > 1 nobody keeps their board.
func (b *BoardAllocator) Rotate(current []string) []string {
	n := len(current)
	out := make([]string, n)
	for i := range current {
		out[i] = current[(i+1)%n]
	}
	return out
}

func (b *BoardAllocator) Boards() []string {
	return append([]string(nil), b.boards...)
}
