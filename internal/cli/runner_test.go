package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/idilsaglam/tasks/internal/form"
	"github.com/idilsaglam/tasks/internal/store/textstore"
	"github.com/idilsaglam/tasks/internal/tasks"
)

// run executes the CLI in a fresh working directory seeded with data.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--theme", "mono", "--no-color"}, args...)
	code = Run(context.Background(), args, Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut})
	return out.String(), errOut.String(), code
}

func inTempDir(t *testing.T, data string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("TASKS_DEBUG", "")
	if data != "" {
		if err := os.WriteFile(textstore.DefaultFile, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readData(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(textstore.DefaultFile)
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	return string(b)
}

func TestAddCommand(t *testing.T) {
	inTempDir(t, "")

	_, stderr, code := run(t, "", "add", "Buy", "milk", "--desc", "2% milk", "--start", "2024-01-01", "--end", "2024-01-02")
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	if got := readData(t); got != "0,Buy milk,2% milk,2024-01-01,2024-01-02\n" {
		t.Errorf("data = %q", got)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	inTempDir(t, "")
	_, stderr, code := run(t, "", "add")
	if code != ExitUsage {
		t.Errorf("code = %d", code)
	}
	if !strings.Contains(stderr, "usage: tasks add") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestLsCommand(t *testing.T) {
	inTempDir(t, "1,Buy milk,2% milk,2024-01-01,2024-01-02\n0,Call Bob,,2024-02-01,2024-02-03\n")

	stdout, _, code := run(t, "", "ls")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	for _, want := range []string{
		" 1. [x] Buy milk (2024-01-01 → 2024-01-02)",
		" 2. [ ] Call Bob (2024-02-01 → 2024-02-03)",
		"Total 2",
		" 50%",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("missing %q in:\n%s", want, stdout)
		}
	}
}

func TestLsGroupKeepsPositions(t *testing.T) {
	inTempDir(t, "1,a,,,\n0,b,,,\n1,c,,,\n")

	stdout, _, code := run(t, "", "ls", "--group")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	pending := strings.Index(stdout, "Pending")
	done := strings.Index(stdout, "Done")
	b := strings.Index(stdout, " 2. [ ] b")
	c := strings.Index(stdout, " 3. [x] c")
	if pending < 0 || done < 0 || b < 0 || c < 0 {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if !(pending < b && b < done && done < c) {
		t.Errorf("wrong grouping:\n%s", stdout)
	}
}

func TestLsEmpty(t *testing.T) {
	inTempDir(t, "")
	stdout, _, code := run(t, "", "ls")
	if code != ExitOK || !strings.Contains(stdout, "no tasks") {
		t.Errorf("code = %d, stdout:\n%s", code, stdout)
	}
}

func TestLsReportsMalformedLines(t *testing.T) {
	inTempDir(t, "0,a,b,c,d\nbroken\n0,e,f,g,h\n")
	stdout, stderr, code := run(t, "", "ls")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	if !strings.Contains(stderr, "skipping malformed line 2") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "Total 2") {
		t.Errorf("stdout:\n%s", stdout)
	}
}

func TestDoneAndRm(t *testing.T) {
	inTempDir(t, "0,a,,,\n0,b,,,\n")

	if _, stderr, code := run(t, "", "done", "2"); code != ExitOK {
		t.Fatalf("done: code = %d, stderr = %q", code, stderr)
	}
	if got := readData(t); got != "0,a,,,\n1,b,,,\n" {
		t.Errorf("after done = %q", got)
	}

	stdout, _, code := run(t, "", "rm", "1")
	if code != ExitOK {
		t.Fatalf("rm: code = %d", code)
	}
	if !strings.Contains(stdout, `task "a" deleted`) {
		t.Errorf("stdout = %q", stdout)
	}
	if got := readData(t); got != "1,b,,,\n" {
		t.Errorf("after rm = %q", got)
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not a number", []string{"done", "x"}, "done: not a number: x"},
		{"rm not a number", []string{"rm", "two"}, "rm: not a number: two"},
		{"zero", []string{"done", "0"}, "index out of range: have 1, got 0"},
		{"too big", []string{"rm", "5"}, "index out of range: have 1, got 5"},
		{"missing arg", []string{"done"}, "usage: tasks done <n>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t, "0,a,,,\n")
			_, stderr, code := run(t, "", tt.args...)
			if code != ExitUsage {
				t.Errorf("code = %d", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
			if got := readData(t); got != "0,a,,,\n" {
				t.Errorf("data changed: %q", got)
			}
		})
	}
}

func TestUnknownInput(t *testing.T) {
	inTempDir(t, "")
	if _, stderr, code := run(t, "", "frobnicate"); code != ExitUsage || !strings.Contains(stderr, "unknown subcommand: frobnicate") {
		t.Errorf("subcommand: code = %d, stderr = %q", code, stderr)
	}
	if _, _, code := run(t, "", "ls", "--bogus"); code != ExitUsage {
		t.Errorf("flag: code = %d", code)
	}
}

func TestDefaultRunsMenu(t *testing.T) {
	inTempDir(t, "")

	stdout, stderr, code := run(t, "1\nBuy milk\n2% milk\n2024-01-01\n2024-01-02\n3\n1\n4\n5\n")
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stderr, "no saved tasks found") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "1. [✓] Buy milk") || !strings.Contains(stdout, "Exiting application.") {
		t.Errorf("stdout:\n%s", stdout)
	}
	if got := readData(t); got != "1,Buy milk,2% milk,2024-01-01,2024-01-02\n" {
		t.Errorf("data = %q", got)
	}
}

func TestMenuInputClosed(t *testing.T) {
	inTempDir(t, "0,a,,,\n")

	_, stderr, code := run(t, "2\n1\n", "menu")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	if !strings.Contains(stderr, "input closed, changes not saved") {
		t.Errorf("stderr = %q", stderr)
	}
	if got := readData(t); got != "0,a,,,\n" {
		t.Errorf("data should be untouched: %q", got)
	}
}

func TestHelp(t *testing.T) {
	inTempDir(t, "")
	stdout, _, code := run(t, "", "--help")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	for _, want := range []string{"menu", "form", "add", "ls", "done", "rm"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestLsTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("é", 100)
	inTempDir(t, "0,"+long+",,,\n0,"+strings.Repeat("日", 50)+",,,\n")

	stdout, _, code := run(t, "", "ls")
	if code != ExitOK {
		t.Fatalf("code = %d", code)
	}
	if !utf8.ValidString(stdout) {
		t.Errorf("output is not valid UTF-8:\n%q", stdout)
	}
	if !strings.Contains(stdout, strings.Repeat("é", 77)+"...") {
		t.Errorf("long title not cut to 80 cells:\n%s", stdout)
	}
	// wide runes take two cells each
	if !strings.Contains(stdout, strings.Repeat("日", 38)+"...") {
		t.Errorf("wide title not cut to 80 cells:\n%s", stdout)
	}
}

func TestFormReportsMissingFile(t *testing.T) {
	inTempDir(t, "")
	runForm = func(_ context.Context, l *tasks.List, _ form.Options) (bool, error) {
		return false, nil
	}
	t.Cleanup(func() { runForm = form.Run })

	_, stderr, code := run(t, "", "form")
	if code != ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{"no saved tasks found", "quit without saving"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q: %q", want, stderr)
		}
	}
}

func TestMenuInterrupted(t *testing.T) {
	inTempDir(t, "0,a,,,\n")
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out, errOut bytes.Buffer
	codec := make(chan int, 1)
	go func() {
		codec <- Run(ctx, []string{"--theme", "mono", "--no-color", "menu"}, Streams{In: pr, Out: &out, Err: &errOut})
	}()

	if _, err := io.WriteString(pw, "2\n"); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case code := <-codec:
		if code != ExitInterrupted {
			t.Errorf("code = %d, stderr = %q", code, errOut.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("menu did not stop after cancel")
	}
	if !strings.Contains(errOut.String(), "interrupted, changes not saved") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if got := readData(t); got != "0,a,,,\n" {
		t.Errorf("data should be untouched: %q", got)
	}
}
