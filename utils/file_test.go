package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "invoice", FileNameWithoutExt("invoice.pdf"))
	assert.Equal(t, "invoice", FileNameWithoutExt("/uploads/invoice.pdf"))
	assert.Equal(t, "annual.report", FileNameWithoutExt("annual.report.pdf"))
	assert.Equal(t, "README", FileNameWithoutExt("README"))
	assert.Equal(t, ".hidden", FileNameWithoutExt(".hidden"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "my_report_2024", SanitizeFileName("my report 2024"))
	assert.Equal(t, "a-b_c.d", SanitizeFileName("a-b_c.d"))
	assert.Equal(t, "___", SanitizeFileName("€/\\"))
}
