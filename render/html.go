package render

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/katalvlaran/ptpure/driver"
)

// Milestone is one labeled intermediate graph captured during an
// analysis run (e.g. per-block worklist output captured by a
// flow.TraceHook), bundled into the HTML trace alongside the final
// verdict.
type Milestone struct {
	Label string
	DOT   string
}

// Trace is the input to HTMLTrace: one method's verdict plus the
// graph milestones leading up to it.
type Trace struct {
	Summary    driver.MethodSummary
	Milestones []Milestone
}

var traceTemplate = template.Must(template.New("trace").
	Funcs(template.FuncMap{"lower": strings.ToLower}).
	Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Summary.Signature}}</title>
<style>
body { font-family: monospace; margin: 2em; }
.pure { color: #0a0; }
.impure { color: #a00; }
.graph-violation { color: #a60; }
pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Summary.Signature}}</h1>
<p class="{{.Summary.Result.String | lower}}">verdict: {{.Summary.Result}}{{if .Summary.Reason}} — {{.Summary.Reason}}{{end}}</p>
{{range .Milestones}}
<h2>{{.Label}}</h2>
<pre>{{.DOT}}</pre>
{{end}}
</body>
</html>
`))

// HTMLTrace renders t as a self-contained HTML page: the method's
// signature, its verdict and reason, and one <pre>-wrapped DOT block
// per milestone in the order supplied.
func HTMLTrace(w io.Writer, t Trace) error {
	var buf bytes.Buffer
	if err := traceTemplate.Execute(&buf, t); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
