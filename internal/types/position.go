// internal/types/position.go
package types

// Position represents a cursor or text position within a buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
// Using rune indices keeps cursor math correct for multi-byte text.
type Position struct {
	Line int
	Col  int // Rune index
}
