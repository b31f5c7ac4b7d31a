package util

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

// Fetcher retrieves raw text from the remote API.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Submitter sends an accepted value to the remote API.
type Submitter interface {
	Submit(ctx context.Context, value any) (string, error)
}

// FixOptions controls ResolveText and ShowResolution.
type FixOptions struct {
	// Unwrap strips a BOM, markdown fences and surrounding prose first.
	Unwrap bool
	// Deep tries jsonrepair when the sanitizer could not fix the text.
	Deep bool
	// Query prints only the value at this gjson path.
	Query string
	// Output is the file to write to; "" or "-" means stdout.
	Output string
}

// ResolveText runs the repair pipeline on raw with the optional
// pre-cleaning and jsonrepair fall back from opts.
func ResolveText(raw string, opts FixOptions) repair.Resolution {
	if opts.Unwrap {
		cleaned := string(PrepareJSONForParse([]byte(raw)))
		if cleaned != raw {
			log.Debugf("unwrapped JSON from %d to %d bytes", len(raw), len(cleaned))
		}
		raw = cleaned
	}

	res := repair.Resolve(raw)
	if res.Sanitized && res.Result.OK() {
		log.Infof("repaired JSON with: %s", strings.Join(res.Passes, ", "))
	}
	if res.Result.OK() || !opts.Deep {
		return res
	}

	log.Warnf("fall back to jsonrepair to fix json: %v", res.Result.Err)
	text, r, err := DeepRepair(raw)
	if err != nil {
		log.Warnf("jsonrepair failed: %v", err)
		return res
	}
	if !r.OK() {
		return res
	}
	return repair.Resolution{
		DisplayText: text,
		Result:      r,
		Sanitized:   true,
		Passes:      append(res.Passes, "jsonrepair"),
	}
}

// ShowResolution writes the display text (or the queried value) to
// opts.Output. A failed resolution is still written so it can be edited,
// and then reported as an error.
func ShowResolution(res repair.Resolution, opts FixOptions) error {
	if !res.Result.OK() {
		if err := WriteOutput(opts.Output, res.DisplayText); err != nil {
			return err
		}
		ReportParseError(res.DisplayText, res.Result)
		return fmt.Errorf("JSON is still invalid after repair, fix it by hand and run validate")
	}

	text := res.DisplayText
	if opts.Query != "" {
		v, err := Query(text, opts.Query)
		if err != nil {
			return err
		}
		text = v
	}
	return WriteOutput(opts.Output, text)
}

// CmdFetch fetches raw text, resolves it and shows the result.
func CmdFetch(ctx context.Context, f Fetcher, opts FixOptions) error {
	raw, err := f.Fetch(ctx)
	if err != nil {
		return err
	}
	log.Debugf("fetched %d bytes", len(raw))
	return ShowResolution(ResolveText(raw, opts), opts)
}

// CmdValidate parses the edited text in name strictly. On success the text
// is rewritten pretty-printed, unless check is set or name is stdin, in
// which case it is printed.
func CmdValidate(name string, check bool, query string) error {
	text, err := ReadInput(name)
	if err != nil {
		return err
	}
	r := repair.Parse(text)
	if !r.OK() {
		ReportParseError(text, r)
		return fmt.Errorf("edited JSON is invalid: %s", r.Message())
	}
	pretty, err := repair.Pretty(r.Value)
	if err != nil {
		return err
	}

	if query != "" {
		v, err := Query(pretty, query)
		if err != nil {
			return err
		}
		return WriteOutput("-", v)
	}
	if name == "-" {
		return WriteOutput("-", pretty)
	}
	if check {
		log.Infof("%s: format is valid", name)
		return nil
	}
	if strings.TrimSuffix(text, "\n") != pretty {
		if err := WriteOutput(name, pretty); err != nil {
			return err
		}
		log.Infof("%s: format is valid, reformatted", name)
	} else {
		log.Infof("%s: format is valid", name)
	}
	return nil
}

// CmdSubmit validates the text in name and submits the value.
func CmdSubmit(ctx context.Context, s Submitter, name string) error {
	text, err := ReadInput(name)
	if err != nil {
		return err
	}
	r := repair.Parse(text)
	if !r.OK() {
		ReportParseError(text, r)
		return fmt.Errorf("edited JSON is invalid: %s", r.Message())
	}
	reply, err := s.Submit(ctx, r.Value)
	if err != nil {
		return fmt.Errorf("POST failed: %w", err)
	}
	fmt.Printf("API response: %s\n", reply)
	return nil
}

// Upstream is both a Fetcher and a Submitter.
type Upstream interface {
	Fetcher
	Submitter
}

// CmdEdit runs the interactive loop: load (fetch when name is ""), resolve,
// edit until valid, then optionally submit.
func CmdEdit(ctx context.Context, up Upstream, name string, editor []string, opts FixOptions) error {
	if !IsInteractive() {
		return fmt.Errorf("edit needs an interactive terminal\nHint: use fetch, validate and submit in scripts")
	}

	var raw string
	var err error
	if name == "" {
		raw, err = up.Fetch(ctx)
		if err != nil {
			return err
		}
		f, err := os.CreateTemp("", "jsonfix-*.json")
		if err != nil {
			return err
		}
		name = f.Name()
		f.Close()
	} else {
		raw, err = ReadInput(name)
		if err != nil {
			return err
		}
	}

	res := ResolveText(raw, opts)
	if err := WriteOutput(name, res.DisplayText); err != nil {
		return err
	}
	if !res.Result.OK() {
		ReportParseError(res.DisplayText, res.Result)
	}

	for {
		if err := EditFile(editor, name); err != nil {
			return err
		}
		text, err := ReadInput(name)
		if err != nil {
			return err
		}
		r := repair.Parse(text)
		if !r.OK() {
			ReportParseError(text, r)
			if !AnswerIsTrue(GetUserInput("Edit again? [Y/n] ", "y")) {
				return fmt.Errorf("edited JSON is invalid: %s", r.Message())
			}
			continue
		}

		pretty, err := repair.Pretty(r.Value)
		if err != nil {
			return err
		}
		if err := WriteOutput(name, pretty); err != nil {
			return err
		}
		log.Info("format is valid")

		if !AnswerIsTrue(GetUserInput("Submit edited JSON? [y/N] ", "n")) {
			log.Infof("not submitted; edited JSON left in %s", name)
			return nil
		}
		reply, err := up.Submit(ctx, r.Value)
		if err != nil {
			return fmt.Errorf("POST failed: %w", err)
		}
		fmt.Printf("API response: %s\n", reply)
		return nil
	}
}
