package upload

import (
	"fmt"
	"slices"
)

// Selection is the ordered list of resumes picked in the bulk dropzone.
// Files accumulate across picks and each file is accepted or rejected on its
// own.
type Selection struct {
	rules Rules
	files []File
}

// NewSelection returns an empty selection governed by rules.
func NewSelection(rules Rules) *Selection {
	return &Selection{rules: rules}
}

// Add appends the acceptable files of a pick. A file with the wrong type, one
// that is too large, or one that duplicates an already selected file (same
// name and size) is skipped and reported in rejected. When the pick would
// exceed MaxFiles, the files that fit are added and warning is set.
func (s *Selection) Add(files ...File) (rejected []*ValidationError, warning string) {
	for _, f := range files {
		if err := s.check(f); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if s.rules.Multiple() && len(s.files) >= s.rules.MaxFiles {
			warning = fmt.Sprintf("Maximum %d files allowed. Only the first %d files will be selected.", s.rules.MaxFiles, s.rules.MaxFiles)
			continue
		}
		s.files = append(s.files, f)
	}
	return rejected, warning
}

func (s *Selection) check(f File) *ValidationError {
	switch {
	case !s.rules.Accepts(f):
		return &ValidationError{
			File:    f.Name,
			Message: fmt.Sprintf("Invalid file type: %s. Please upload PDF, DOC, DOCX, or TXT files only.", f.Name),
		}
	case s.rules.MaxSize > 0 && f.Size() > s.rules.MaxSize:
		return &ValidationError{
			File:    f.Name,
			Message: fmt.Sprintf("File %s is too large. Maximum size is %dMB.", f.Name, s.rules.MaxSize/MB),
		}
	case s.contains(f):
		return &ValidationError{
			File:    f.Name,
			Message: fmt.Sprintf("File %s is already selected.", f.Name),
		}
	}
	return nil
}

func (s *Selection) contains(f File) bool {
	return slices.ContainsFunc(s.files, func(existing File) bool {
		return existing.Name == f.Name && existing.Size() == f.Size()
	})
}

// Remove drops the file at index i. Out-of-range indexes are ignored.
func (s *Selection) Remove(i int) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files = slices.Delete(s.files, i, i+1)
}

// RemoveNamed drops every selected file called name and reports whether any
// was selected.
func (s *Selection) RemoveNamed(name string) bool {
	removed := false
	for i := len(s.files) - 1; i >= 0; i-- {
		if s.files[i].Name == name {
			s.Remove(i)
			removed = true
		}
	}
	return removed
}

// Warnings renders rejections followed by the truncation warning, in the
// order they should be shown.
func Warnings(rejected []*ValidationError, warning string) []string {
	out := make([]string, 0, len(rejected)+1)
	for _, r := range rejected {
		out = append(out, r.Message)
	}
	if warning != "" {
		out = append(out, warning)
	}
	return out
}

// Files returns a copy of the selected files in pick order.
func (s *Selection) Files() []File {
	return slices.Clone(s.files)
}

// Len returns the number of selected files.
func (s *Selection) Len() int {
	return len(s.files)
}

// TotalSize returns the combined size of the selected files.
func (s *Selection) TotalSize() int64 {
	var total int64
	for _, f := range s.files {
		total += f.Size()
	}
	return total
}
