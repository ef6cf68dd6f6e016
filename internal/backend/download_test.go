package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameFromDisposition(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"quoted", `attachment; filename="Acme_Dev.pdf"`, "Acme_Dev.pdf"},
		{"extended preferred", `attachment; filename="plain.pdf"; filename*=UTF-8''R%C3%A9sum%C3%A9.pdf`, "Résumé.pdf"},
		{"extended only", `attachment; filename*=UTF-8''Acme%20Dev.docx`, "Acme Dev.docx"},
		{"bare", `attachment; filename=report.xlsx`, "report.xlsx"},
		{"no filename", `inline`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameFromDisposition(tt.header))
		})
	}
}
