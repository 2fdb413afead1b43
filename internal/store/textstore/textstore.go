package textstore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
)

// Flat text storage. One task per line:
//
//	<0|1>,<title>,<description>,<start_date>,<end_date>
//
// No locking; a single local user owns the file.

// DefaultFile is the data file name, resolved against the working directory.
const DefaultFile = "tasks.txt"

const fieldCount = 5

// MaxLineLen bounds a single persisted line. Longer lines are reported as
// malformed and skipped.
const MaxLineLen = 1 << 20

// LineError describes a line that could not be parsed. For a line over
// MaxLineLen, Text holds only its first bytes.
type LineError struct {
	Line    int
	Text    string
	TooLong bool
}

func (e LineError) Error() string {
	if e.TooLong {
		return fmt.Sprintf("line %d: longer than %d bytes", e.Line, MaxLineLen)
	}
	return fmt.Sprintf("line %d: want %d fields: %q", e.Line, fieldCount, e.Text)
}

func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFile), nil
}

var escaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, "\n", `\n`, "\r", `\r`)

// EncodeLine returns the persisted form of t without the trailing newline.
func EncodeLine(t model.Task) string {
	flag := "0"
	if t.Completed {
		flag = "1"
	}
	return strings.Join([]string{
		flag,
		escaper.Replace(t.Title),
		escaper.Replace(t.Description),
		escaper.Replace(t.StartDate),
		escaper.Replace(t.EndDate),
	}, ",")
}

// DecodeLine parses one persisted line. The line is split on unescaped
// commas into at most five fields, so a legacy end date holding a raw comma
// keeps it. ok is false when fewer than five fields are present.
// Only the line ending and indentation before the flag are stripped;
// trailing blanks belong to the end date.
func DecodeLine(line string) (t model.Task, ok bool) {
	line = strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t")
	parts := splitFields(line, fieldCount)
	if len(parts) != fieldCount {
		return model.Task{}, false
	}
	t = model.New(parts[1], parts[2], parts[3], parts[4])
	if parts[0] == "1" {
		t.MarkCompleted()
	}
	return t, true
}

func splitFields(s string, n int) []string {
	var (
		parts []string
		b     strings.Builder
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
		case c == ',' && len(parts) < n-1:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(parts, b.String())
}

// Encode writes every task in order, one line each.
func Encode(w io.Writer, tasks []model.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(EncodeLine(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads tasks from r. Malformed or over-long lines are returned in
// bad and do not stop the read; blank lines are ignored.
func Decode(r io.Reader) (tasks []model.Task, bad []LineError, err error) {
	br := bufio.NewReader(r)
	tasks = []model.Task{}
	for n := 1; ; n++ {
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read line %d: %w", n, err)
		}
		if tooLong {
			bad = append(bad, LineError{Line: n, Text: line, TooLong: true})
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, ok := DecodeLine(line)
		if !ok {
			bad = append(bad, LineError{Line: n, Text: line})
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, bad, nil
}

// readLine returns the next line without its ending. Past MaxLineLen the
// rest of the line is drained and dropped, and tooLong is set.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var b []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && len(b) > 0 {
				break
			}
			return "", false, err
		}
		if !tooLong {
			b = append(b, chunk...)
			if len(b) > MaxLineLen {
				tooLong = true
				b = b[:64]
			}
		}
		if !isPrefix {
			break
		}
	}
	return string(b), tooLong, nil
}

// ReadFile decodes the file at path. A missing file surfaces as an error
// matching os.ErrNotExist.
func ReadFile(path string) ([]model.Task, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile overwrites path with the encoded tasks.
func WriteFile(path string, tasks []model.Task) error {
	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
