package game

import (
	"fmt"
	"strings"
)

// Bank is the shared supply of pieces not currently on the board.
type Bank struct {
	counts [12]int
}

// FullBank returns a bank holding every copy of every piece.
func FullBank() *Bank {
	b := &Bank{}
	for i := range b.counts {
		b.counts[i] = MaxCopies
	}
	return b
}

// Available returns how many copies of piece remain in the bank.
func (b *Bank) Available(piece Piece) int {
	if !piece.Valid() {
		return 0
	}
	return b.counts[piece.index()]
}

// Withdraw takes one copy of piece from the bank.
func (b *Bank) Withdraw(piece Piece) error {
	if b.Available(piece) < 1 {
		return fmt.Errorf("withdraw %s: %w", piece.Code(), ErrPieceUnavailable)
	}
	b.counts[piece.index()]--
	return nil
}

// WithdrawMany takes every listed piece or none of them.
func (b *Bank) WithdrawMany(pieces []Piece) error {
	var want [12]int
	for _, p := range pieces {
		if !p.Valid() {
			return fmt.Errorf("withdraw %s: %w", p.Code(), ErrPieceUnavailable)
		}
		want[p.index()]++
	}
	for _, p := range pieces {
		if want[p.index()] > b.counts[p.index()] {
			return fmt.Errorf("withdraw %d×%s: %w", want[p.index()], p.Code(), ErrPieceUnavailable)
		}
	}
	for i, n := range want {
		b.counts[i] -= n
	}
	return nil
}

// Deposit returns one copy of piece to the bank.
func (b *Bank) Deposit(piece Piece) error {
	if !piece.Valid() || b.counts[piece.index()] >= MaxCopies {
		return fmt.Errorf("deposit %s: %w", piece.Code(), ErrPieceAtCapacity)
	}
	b.counts[piece.index()]++
	return nil
}

// DepositMany returns every listed piece or none of them.
func (b *Bank) DepositMany(pieces []Piece) error {
	var give [12]int
	for _, p := range pieces {
		if !p.Valid() {
			return fmt.Errorf("deposit %s: %w", p.Code(), ErrPieceAtCapacity)
		}
		give[p.index()]++
	}
	for _, p := range pieces {
		if b.counts[p.index()]+give[p.index()] > MaxCopies {
			return fmt.Errorf("deposit %d×%s: %w", give[p.index()], p.Code(), ErrPieceAtCapacity)
		}
	}
	for i, n := range give {
		b.counts[i] += n
	}
	return nil
}

// Total returns the number of pieces in the bank.
func (b *Bank) Total() int {
	total := 0
	for _, n := range b.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the per-piece counts keyed by piece.
func (b *Bank) Counts() map[Piece]int {
	out := make(map[Piece]int, len(b.counts))
	for _, p := range AllPieces() {
		out[p] = b.counts[p.index()]
	}
	return out
}

// Clone returns an independent copy of the bank.
func (b *Bank) Clone() *Bank {
	c := *b
	return &c
}

func (b *Bank) String() string {
	var sb strings.Builder
	sb.WriteString("Bank - ")
	for _, c := range AllColors {
		fmt.Fprintf(&sb, "%s: ", c)
		for i, s := range AllSizes {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d %s", b.Available(Piece{Color: c, Size: s}), s)
		}
		sb.WriteString("; ")
	}
	return strings.TrimSuffix(sb.String(), " ")
}
