package utils

import (
	"fmt"
	"io/fs"
	"strings"
)

type GetHashFunc func(columns []string) uint64

// ReadBSV reads a bar-separated file into rows of at least minColumns columns,
// dropping rows whose hash was already seen.
func ReadBSV(fsys fs.FS, bsvPath string, minColumns int, getHash GetHashFunc) ([][]string, error) {
	var rows [][]string
	// to remove duplicates
	hashes := make(map[uint64]bool)

	err := scanLines(fsys, bsvPath, func(lineNum int, line string) error {
		columns := strings.Split(line, "|")
		for i := range columns {
			columns[i] = strings.TrimSpace(columns[i])
		}
		if len(columns) < minColumns {
			return fmt.Errorf("%s:%d: expected at least %d columns, got %d", bsvPath, lineNum, minColumns, len(columns))
		}
		if getHash != nil {
			hash := getHash(columns)
			if hashes[hash] {
				return nil
			}
			hashes[hash] = true
		}
		rows = append(rows, columns)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func HashFirstColumn(columns []string) uint64 {
	return HashString(strings.ToLower(columns[0]))
}
