package validate

// Level classifies a finding.
type Level string

const (
	LevelFatal    Level = "fatal"
	LevelError    Level = "error"
	LevelWarning  Level = "warning"
	LevelOK       Level = "ok"
	LevelComplete Level = "complete"
	LevelMissing  Level = "missing"
	LevelExtra    Level = "extra"
)

// Severity is what a level counts as in a summary.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// Severity returns the severity of the level. Missing and extra keys
// count as errors.
func (l Level) Severity() Severity {
	switch l {
	case LevelFatal:
		return SeverityFatal
	case LevelError, LevelMissing, LevelExtra:
		return SeverityError
	case LevelWarning:
		return SeverityWarning
	default:
		return SeverityNone
	}
}

// Finding is a single line of a file's report.
type Finding struct {
	Level   Level
	Message string
	Details []string
}

// Result holds the findings for one locale file.
type Result struct {
	Path     string
	Findings []Finding
}

func (r *Result) add(level Level, msg string, details ...string) {
	r.Findings = append(r.Findings, Finding{Level: level, Message: msg, Details: details})
}

// Count returns how many findings have the given severity.
func (r Result) Count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level.Severity() == s {
			n++
		}
	}
	return n
}

// Fatals returns the number of fatal findings.
func (r Result) Fatals() int { return r.Count(SeverityFatal) }

// Errors returns the number of error-severity findings.
func (r Result) Errors() int { return r.Count(SeverityError) }

// Warnings returns the number of warnings.
func (r Result) Warnings() int { return r.Count(SeverityWarning) }

// Failed reports whether the file has a fatal or error finding.
func (r Result) Failed() bool {
	return r.Fatals()+r.Errors() > 0
}

// Has reports whether any finding has the given level.
func (r Result) Has(level Level) bool {
	for _, f := range r.Findings {
		if f.Level == level {
			return true
		}
	}
	return false
}
