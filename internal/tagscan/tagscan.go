// Package tagscan finds an embedded routing directive such as
// "// @UCO: Logs/Server" near the top of a file.
//
// Scanning is best effort: unreadable files, binary content and undecodable
// bytes never produce an error, only a Result without a tag. The Reason on
// the result says why no tag was returned.
package tagscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrCaptureGroups is returned by Compile when a pattern does not have
// exactly one capture group.
var ErrCaptureGroups = errors.New("tag pattern must have exactly one capture group")

// Reason explains the outcome of a scan.
type Reason int

const (
	ReasonFound Reason = iota
	ReasonEOF
	ReasonScanLimit
	ReasonEmptyTag
	ReasonUnreadable
)

func (r Reason) String() string {
	switch r {
	case ReasonFound:
		return "found"
	case ReasonEOF:
		return "eof"
	case ReasonScanLimit:
		return "scan-limit"
	case ReasonEmptyTag:
		return "empty-tag"
	case ReasonUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Result is the outcome of scanning one file.
type Result struct {
	Tag    string
	Found  bool
	Reason Reason
	Line   int   // 1-based line of the match, 0 when none
	Err    error // set only for ReasonUnreadable
}

// Compile compiles a tag pattern case-insensitively and checks that it has
// exactly one capture group.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling tag pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: %q has %d", ErrCaptureGroups, pattern, re.NumSubexp())
	}
	return re, nil
}

// Extract scans at most linesToScan lines of the file at path.
func Extract(path string, pattern *regexp.Regexp, linesToScan int) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Reason: ReasonUnreadable, Err: err}
	}
	defer f.Close()

	return Scan(f, pattern, linesToScan)
}

// Scan is Extract over an arbitrary reader.
func Scan(r io.Reader, pattern *regexp.Regexp, linesToScan int) Result {
	// A BOM switches decoding to UTF-8 or UTF-16; without one the bytes pass
	// through untouched and invalid sequences are dropped per line.
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	for n := 1; n <= linesToScan; n++ {
		line, err := readLine(br)
		if line == "" && err != nil {
			return endOfInput(err)
		}

		if m := pattern.FindStringSubmatch(strings.ToValidUTF8(line, "")); m != nil {
			tag := ""
			if len(m) > 1 {
				tag = strings.TrimSpace(m[1])
			}
			if tag == "" {
				return Result{Reason: ReasonEmptyTag, Line: n}
			}
			return Result{Tag: tag, Found: true, Reason: ReasonFound, Line: n}
		}

		if err != nil {
			return endOfInput(err)
		}
	}
	return Result{Reason: ReasonScanLimit}
}

// readLine returns the next line without its terminator. "\n", "\r\n"
// and a lone "\r" each end a line. err is set when input ends or fails
// before a terminator.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if next, err := br.ReadByte(); err == nil && next != '\n' {
				_ = br.UnreadByte()
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

func endOfInput(err error) Result {
	if errors.Is(err, io.EOF) {
		return Result{Reason: ReasonEOF}
	}
	return Result{Reason: ReasonUnreadable, Err: err}
}
