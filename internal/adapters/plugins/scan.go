package plugins

import "strings"

// stripComments blanks out comments while keeping offsets and line breaks intact.
// String literals are skipped so comment markers inside them survive.
func stripComments(src string, lineComments bool) string {
	b := []byte(src)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			case '\n':
				if quote != '`' {
					quote = 0
				}
			}
			continue
		}

		switch {
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			stop := len(b)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			blank(b, i, stop)
			i = stop - 1
		case lineComments && c == '/' && i+1 < len(b) && b[i+1] == '/' && !afterColon(b, i):
			stop := i
			for stop < len(b) && b[stop] != '\n' {
				stop++
			}
			blank(b, i, stop)
			i = stop - 1
		}
	}
	return string(b)
}

// stripHTMLComments blanks out <!-- --> sections.
func stripHTMLComments(src string) string {
	b := []byte(src)
	offset := 0
	for {
		start := strings.Index(src[offset:], "<!--")
		if start < 0 {
			return string(b)
		}
		start += offset
		stop := len(b)
		if end := strings.Index(src[start+4:], "-->"); end >= 0 {
			stop = start + 4 + end + 3
		}
		blank(b, start, stop)
		offset = stop
	}
}

// afterColon reports whether the slashes at i follow a scheme separator such as "https:".
func afterColon(b []byte, i int) bool {
	return i > 0 && b[i-1] == ':'
}

func blank(b []byte, from, to int) {
	for i := from; i < to; i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}
