package puz

// The .puz checksum family is built on one rolling 16-bit primitive applied
// to four overlapping regions of the file. All arithmetic wraps at 16 bits.

// Checksum computes the rolling checksum of data with the given seed: for
// each byte the running value is rotated right through bit 15, then the byte
// is added.
func Checksum(data []byte, seed uint16) uint16 {
	sum := seed
	for _, b := range data {
		if sum&1 != 0 {
			sum = sum>>1 + 0x8000
		} else {
			sum >>= 1
		}
		sum += uint16(b)
	}
	return sum
}

// stringRuns carries the raw (undecoded) byte runs of the string table in
// file order, kept solely so the checksum regions can be recomputed exactly
// as they were written.
type stringRuns struct {
	title     []byte
	author    []byte
	copyright []byte
	clues     [][]byte
	notes     []byte
}

// textChecksum chains the checksum across the string-table region: title,
// author, copyright and notes each including their NUL terminator when
// non-empty, clues without terminators.
func textChecksum(seed uint16, runs stringRuns) uint16 {
	sum := seed
	sum = checksumWithNUL(sum, runs.title)
	sum = checksumWithNUL(sum, runs.author)
	sum = checksumWithNUL(sum, runs.copyright)
	for _, clue := range runs.clues {
		sum = Checksum(clue, sum)
	}
	sum = checksumWithNUL(sum, runs.notes)
	return sum
}

func checksumWithNUL(seed uint16, run []byte) uint16 {
	if len(run) == 0 {
		return seed
	}
	sum := Checksum(run, seed)
	return Checksum([]byte{0}, sum)
}

// fileChecksum computes the overall checksum stored at offset 0x00: the CIB
// checksum chained across the solution grid, the state grid and the string
// table.
func fileChecksum(cibSum uint16, solution, state []byte, runs stringRuns) uint16 {
	sum := Checksum(solution, cibSum)
	sum = Checksum(state, sum)
	return textChecksum(sum, runs)
}

// checksumMask is the fixed XOR pad applied to the masked quartet bytes at
// header offsets 0x10-0x17.
var checksumMask = [8]byte{'I', 'C', 'H', 'E', 'A', 'T', 'E', 'D'}

// maskedChecksums splits the CIB, solution, grid and partial checksums into
// low/high bytes and XORs them against the mask, reproducing the 8 stored
// header bytes.
func maskedChecksums(cib, solution, grid, partial uint16) (low, high [4]byte) {
	sums := [4]uint16{cib, solution, grid, partial}
	for i, sum := range sums {
		low[i] = checksumMask[i] ^ byte(sum)
		high[i] = checksumMask[4+i] ^ byte(sum>>8)
	}
	return low, high
}

// scrambledChecksum computes the checksum of the solution letters read in
// column-major order with black squares omitted. It is the value stored at
// header offset 0x1E for scrambled puzzles.
func scrambledChecksum(solution []byte, width, height int) uint16 {
	letters := make([]byte, 0, len(solution))
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			b := solution[row*width+col]
			if b == blackSquare {
				continue
			}
			letters = append(letters, b)
		}
	}
	return Checksum(letters, 0)
}
