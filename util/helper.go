package util

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

const excerptWidth = 60

// Exist check if path is exist.
func Exist(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	return false
}

// IsFile returns true if path is exist and is a file.
func IsFile(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return false
	}
	return true
}

// GetUserInput reads user input from stdin.
// Prompt is written to stderr so stdout remains clean for redirects.
func GetUserInput(prompt, defaultValue string) string {
	fmt.Fprint(os.Stderr, prompt)

	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	text = strings.TrimSpace(text)

	if text == "" {
		return defaultValue
	}
	return text
}

// AnswerIsTrue indicates answer is a true value
func AnswerIsTrue(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "y" ||
		answer == "yes" ||
		answer == "t" ||
		answer == "true" ||
		answer == "on" ||
		answer == "1" {
		return true
	}
	return false
}

// ErrorExcerpt returns the line of text around err.Offset with a caret
// under the offending byte. It returns "" if the offset is unknown.
func ErrorExcerpt(text string, err *repair.SyntaxError) string {
	if err == nil || err.Offset <= 0 || len(text) == 0 {
		return ""
	}
	pos := int(err.Offset) - 1
	if pos >= len(text) {
		pos = len(text) - 1
	}

	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	lineEnd := len(text)
	if idx := strings.IndexByte(text[pos:], '\n'); idx >= 0 {
		lineEnd = pos + idx
	}
	lineNo := strings.Count(text[:lineStart], "\n") + 1

	// Keep long single-line documents readable.
	from := lineStart
	if pos-from > excerptWidth {
		from = pos - excerptWidth
	}
	to := lineEnd
	if to-pos > excerptWidth {
		to = pos + excerptWidth
	}

	var buf bytes.Buffer
	prefix := fmt.Sprintf("line %d: ", lineNo)
	buf.WriteString(prefix)
	buf.WriteString(text[from:to])
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", len(prefix)+pos-from))
	buf.WriteByte('^')
	return buf.String()
}

// ReportParseError logs a failed parse with an excerpt of the text.
func ReportParseError(text string, r repair.Result) {
	if r.OK() {
		return
	}
	msgs := []string{r.Message()}
	if excerpt := ErrorExcerpt(text, r.Err); excerpt != "" {
		msgs = append(msgs, excerpt)
	}
	reportResultMessages(msgs, "parse error:", log.ErrorLevel)
}

// ReportInfoAndErrors logs messages as info if ok, otherwise as errors.
func ReportInfoAndErrors(errs []string, prompt string, ok bool) {
	if ok {
		reportResultMessages(errs, prompt, log.InfoLevel)
	} else {
		reportResultMessages(errs, prompt, log.ErrorLevel)
	}
}

func reportResultMessages(errs []string, prompt string, level log.Level) {
	var fn func(format string, args ...interface{})

	if len(errs) == 0 {
		return
	}

	switch level {
	case log.InfoLevel:
		fn = log.Printf
	case log.WarnLevel:
		fn = log.Warnf
	default:
		fn = log.Errorf
	}

	showHorizontalLine()

	for _, err := range errs {
		if err == "" {
			fn("%s", prompt)
			continue
		}
		for _, line := range strings.Split(err, "\n") {
			if prompt == "" {
				fn("%s", line)
			} else if line == "" {
				fn("%s", prompt)
			} else {
				fn("%s\t%s", prompt, line)
			}
		}
	}
}

func showHorizontalLine() {
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 78))
}
