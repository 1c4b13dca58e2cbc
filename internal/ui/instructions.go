package ui

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"
)

const (
	instructionsTemplateNameConstant = "publication_instructions"
	renderInstructionsErrorTemplate  = "unable to render publication instructions: %w"

	instructionsTemplateConstant = `
{{ success "✅ Dépôt Git initialisé et premier commit créé." }}

{{ heading "📋 Prochaines étapes :" }}

1. Créez un nouveau dépôt sur GitHub :
   {{ link .NewRepositoryURL }}
   Nom du dépôt : {{ emphasis .RepositoryName }}
   Visibilité : Public (nécessaire pour l'URL publique des données)

2. Liez le dépôt local au dépôt distant :
   {{ command (printf "git remote add origin %s" .RemoteURL) }}

3. Poussez le code :
   {{ command (printf "git push -u origin %s" .Branch) }}

4. Activez les GitHub Actions dans l'onglet "Actions" du dépôt.

5. Après la première exécution du workflow, les données seront publiées ici :
   {{ link .PublicDataURL }}
{{- if .OwnerPlaceholder }}

{{ warning (printf "⚠️  Remplacez %s par votre nom d'utilisateur GitHub." .Owner) }}
{{- end }}
`
)

// PublicationInstructions describes the manual steps for publishing the bootstrapped repository.
type PublicationInstructions struct {
	NewRepositoryURL string
	Owner            string
	OwnerPlaceholder bool
	RepositoryName   string
	RemoteURL        string
	Branch           string
	PublicDataURL    string
}

// InstructionPrinter renders publication instructions as French console text.
type InstructionPrinter struct {
	instructionsTemplate *template.Template
}

// NewInstructionPrinter constructs a printer that colourises headings, commands, and links.
func NewInstructionPrinter() *InstructionPrinter {
	return newInstructionPrinter(template.FuncMap{
		"success":  color.New(color.FgGreen, color.Bold).SprintFunc(),
		"heading":  color.New(color.Bold).SprintFunc(),
		"command":  color.New(color.FgCyan).SprintFunc(),
		"link":     color.New(color.FgBlue, color.Underline).SprintFunc(),
		"emphasis": color.New(color.Bold).SprintFunc(),
		"warning":  color.New(color.FgYellow).SprintFunc(),
	})
}

// NewPlainInstructionPrinter constructs a printer that emits text without colour sequences.
func NewPlainInstructionPrinter() *InstructionPrinter {
	plain := func(values ...interface{}) string { return fmt.Sprint(values...) }
	return newInstructionPrinter(template.FuncMap{
		"success":  plain,
		"heading":  plain,
		"command":  plain,
		"link":     plain,
		"emphasis": plain,
		"warning":  plain,
	})
}

func newInstructionPrinter(functions template.FuncMap) *InstructionPrinter {
	parsedTemplate := template.Must(template.New(instructionsTemplateNameConstant).Funcs(functions).Parse(strings.TrimLeft(instructionsTemplateConstant, "\n")))
	return &InstructionPrinter{instructionsTemplate: parsedTemplate}
}

// Print writes the instructions to the provided writer.
func (printer *InstructionPrinter) Print(writer io.Writer, instructions PublicationInstructions) error {
	if executeError := printer.instructionsTemplate.Execute(writer, instructions); executeError != nil {
		return fmt.Errorf(renderInstructionsErrorTemplate, executeError)
	}
	return nil
}
