package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/pkg/errors"
)

// Template names an embedded email template under templates/.
type Template string

const (
	TemplateValidationReport Template = "validation_report"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	parsed     = map[Template]*template.Template{}
	parsedLock sync.Mutex
)

func lookup(name Template) (*template.Template, error) {
	parsedLock.Lock()
	defer parsedLock.Unlock()

	if tmpl, ok := parsed[name]; ok {
		return tmpl, nil
	}

	tmpl, err := template.New(string(name)+".html").
		Funcs(template.FuncMap{"percent": percent}).
		ParseFS(templateFS, fmt.Sprintf("templates/%s.html", name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse email template %s", name)
	}

	parsed[name] = tmpl
	return tmpl, nil
}

// Render executes the named template with data.
func Render(name Template, data any) (string, error) {
	tmpl, err := lookup(name)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}

	return body.String(), nil
}

func percent(part, total int64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
