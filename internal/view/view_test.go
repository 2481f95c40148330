package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesParse(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{
		"login.html", "dashboard.html", "setup.html", "ats_checker.html",
		"interview.html", "results.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_ResultsRendersNumberedDetails(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, "results.html", map[string]interface{}{
		"Title":      "Results",
		"UserName":   "Alice",
		"Percentage": 15,
		"Details": []map[string]string{
			{"Question": "Why should we hire you?", "Answer": "<b>because</b>"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<p class="score" id="score">15</p>`)
	assert.Contains(t, out, "Q1.")
	// 回答内容会被转义
	assert.Contains(t, out, "&lt;b&gt;because&lt;/b&gt;")
}
