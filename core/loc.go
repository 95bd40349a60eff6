package core

import (
	"os"
)

// CountLines returns the number of lines in the file at path.
// Unreadable files count as zero lines.
func CountLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return countLines(data)
}

// countLines counts text lines. "\n", "\r\n" and a lone "\r" each end a
// line, and trailing text without a terminator is one more line.
func countLines(data []byte) int {
	lines := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
		}
	}
	if n := len(data); n > 0 && data[n-1] != '\n' && data[n-1] != '\r' {
		lines++
	}
	return lines
}
