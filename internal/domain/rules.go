package domain

// directions a line of four can run in, starting from its first cell
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// HasLineFrom reports whether ToWin cells starting at (row, column) and
// stepping by (deltaRow, deltaCol) are all in bounds and owned by player.
func HasLineFrom(b *Board, row, column, deltaRow, deltaCol int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, column+i*deltaCol
		if !b.InBounds(r, c) || b.cells[r][c] != player {
			return false
		}
	}
	return true
}

// HasLine scans every cell as a candidate line start.
func HasLine(b *Board, player PlayerID) bool {
	if player == Empty {
		return false
	}

	for row := 0; row < b.height; row++ {
		for column := 0; column < b.width; column++ {
			for _, d := range directions {
				if HasLineFrom(b, row, column, d[0], d[1], player) {
					return true
				}
			}
		}
	}

	return false
}
