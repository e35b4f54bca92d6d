package verify

import (
	"bytes"
	"strings"
	"text/template"
)

func TemplateToString(tmpl *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

// fact renders the goal pred(args..., last).
func fact(pred string, args []string, last string) string {
	all := append(append([]string(nil), args...), last)
	return pred + "(" + strings.Join(all, ", ") + ")"
}

func NewTemplate(name, content string) *template.Template {
	tmpl, err := template.New(name).Funcs(
		template.FuncMap{"fact": fact}).Parse(content)
	if err != nil {
		panic(err)
	}
	return tmpl
}

var programTemplate = NewTemplate("program", `
:- dynamic(elem/1).
{{ range .Ops -}}
:- dynamic({{ .Pred }}/{{ .PredArity }}).
{{ end -}}
{{ range .Elements -}}
elem({{ . }}).
{{ end -}}
{{ range .Ops -}}
{{ $pred := .Pred -}}
{{ range .Rows -}}
{{ fact $pred .Args .Value }}.
{{ end -}}
{{ end -}}
{{ range .Identities }}
{{ .Head }} :-
    {{ range .Vars -}}
    elem({{ . }}),
    {{ end -}}
    {{ fact .LHSPred .LHSArgs "L" }},
    {{ fact .RHSPred .RHSArgs "R" }},
    L \== R.
{{ end -}}
`)
