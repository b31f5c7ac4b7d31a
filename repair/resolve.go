package repair

// Resolution is the outcome of Resolve.
type Resolution struct {
	// DisplayText is the pretty-printed value when Result is a success,
	// otherwise the sanitized text for a human to finish fixing.
	DisplayText string
	Result      Result
	// Sanitized reports whether the raw text failed to parse and the
	// sanitizer ran.
	Sanitized bool
	// Passes names the sanitizer passes that changed the text.
	Passes []string
}

// Resolve parses raw, and if that fails parses Sanitize(raw) once more.
// Only the error of the second attempt is kept.
func Resolve(raw string) Resolution {
	if r := Parse(raw); r.OK() {
		return display(r, raw)
	}

	sanitized, passes := SanitizeReport(raw)
	res := display(Parse(sanitized), sanitized)
	res.Sanitized = true
	res.Passes = passes
	return res
}

func display(r Result, text string) Resolution {
	if !r.OK() {
		return Resolution{DisplayText: text, Result: r}
	}
	pretty, err := Pretty(r.Value)
	if err != nil {
		return Resolution{
			DisplayText: text,
			Result:      Failure(&SyntaxError{Msg: err.Error()}),
		}
	}
	return Resolution{DisplayText: pretty, Result: r}
}
