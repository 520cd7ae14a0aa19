package output

// LintOutput is the JSON document written by lint and fix.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary aggregates a run.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
	Fixable       int `json:"fixable"`
	Failed        int `json:"failed,omitempty"`
	FilesChanged  int `json:"files_changed,omitempty"`
	FixesApplied  int `json:"fixes_applied,omitempty"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path         string           `json:"path"`
	Error        string           `json:"error,omitempty"`
	Changed      bool             `json:"changed,omitempty"`
	Passes       int              `json:"passes,omitempty"`
	LimitReached bool             `json:"limit_reached,omitempty"`
	Diagnostics  []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is a flattened lint.Diagnostic.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	EndLine          int    `json:"end_line"`
	EndColumn        int    `json:"end_column"`
	Fixable          bool   `json:"fixable"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}
