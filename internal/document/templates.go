package document

import (
	"fmt"
	"strings"
	"text/template"
)

// Fields feeds the document templates. Items carries the type-specific
// lines: prescribed medications, requested exams, or referral notes.
type Fields struct {
	PatientName      string
	PatientDocument  string
	ProfessionalName string
	CRM              string
	Specialty        string
	Date             string // DD/MM/YYYY, the format printed on paper
	Items            []string
	TargetSpecialty  string // referral only
	DaysOff          int    // certificate only
	Observations     string
}

// Documents are issued in pt-BR; layout mirrors the clinic's printed forms.
var templates = map[Type]*template.Template{
	TypePrescription: mustParse("prescription", `RECEITUÁRIO

Paciente: {{.PatientName}}{{if .PatientDocument}} — CPF {{.PatientDocument}}{{end}}

Uso conforme orientação:
{{range $i, $item := .Items}}{{printf "%d. %s" (inc $i) $item}}
{{end}}{{if .Observations}}
Observações: {{.Observations}}
{{end}}
{{.Date}}

____________________________
{{.ProfessionalName}}{{if .Specialty}} — {{.Specialty}}{{end}}
CRM {{.CRM}}
`),
	TypeReferral: mustParse("referral", `ENCAMINHAMENTO

Encaminho o(a) paciente {{.PatientName}}{{if .PatientDocument}} (CPF {{.PatientDocument}}){{end}} para avaliação com {{.TargetSpecialty}}.
{{if .Items}}
Motivo:
{{range .Items}}- {{.}}
{{end}}{{end}}{{if .Observations}}
Observações: {{.Observations}}
{{end}}
{{.Date}}

____________________________
{{.ProfessionalName}}{{if .Specialty}} — {{.Specialty}}{{end}}
CRM {{.CRM}}
`),
	TypeExamRequest: mustParse("exam_request", `SOLICITAÇÃO DE EXAMES

Paciente: {{.PatientName}}{{if .PatientDocument}} — CPF {{.PatientDocument}}{{end}}

Solicito:
{{range .Items}}- {{.}}
{{end}}{{if .Observations}}
Observações: {{.Observations}}
{{end}}
{{.Date}}

____________________________
{{.ProfessionalName}}{{if .Specialty}} — {{.Specialty}}{{end}}
CRM {{.CRM}}
`),
	TypeCertificate: mustParse("certificate", `ATESTADO MÉDICO

Atesto, para os devidos fins, que {{.PatientName}}{{if .PatientDocument}} (CPF {{.PatientDocument}}){{end}} esteve sob meus cuidados nesta data{{if gt .DaysOff 0}}, necessitando de {{.DaysOff}} dia(s) de afastamento de suas atividades{{end}}.
{{if .Observations}}
Observações: {{.Observations}}
{{end}}
{{.Date}}

____________________________
{{.ProfessionalName}}{{if .Specialty}} — {{.Specialty}}{{end}}
CRM {{.CRM}}
`),
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(body))
}

func render(t Type, f Fields) (string, error) {
	tpl, ok := templates[t]
	if !ok {
		return "", fmt.Errorf("no template for document type %q", t)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, f); err != nil {
		return "", fmt.Errorf("render %s: %w", t, err)
	}
	return sb.String(), nil
}
