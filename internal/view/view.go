package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Templates 解析内嵌的页面模板，模板名为文件名，例如 "dashboard.html"
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}
