package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// writeFakeTool creates an executable shell script standing in for an
// external converter binary.
func writeFakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0700)) // #nosec G306

	return path
}

func writeMarkupFile(t *testing.T, dir string) string {
	t.Helper()
	texPath := filepath.Join(dir, "deck.tex")
	require.NoError(t, os.WriteFile(texPath, []byte("\\documentclass{beamer}"), 0600))
	return texPath
}

func TestToolConverter_Supports(t *testing.T) {
	c := NewToolConverter(entities.ConverterConfig{})

	assert.True(t, c.Supports(ports.FormatPDF))
	assert.True(t, c.Supports(ports.FormatPPTX))
	assert.False(t, c.Supports(ports.OutputFormat("docx")))
	assert.False(t, c.Supports(ports.OutputFormat("")))
}

func TestToolConverter_Convert(t *testing.T) {
	t.Run("pdf conversion returns artifact bytes", func(t *testing.T) {
		dir := t.TempDir()
		texPath := writeMarkupFile(t, dir)

		// pdflatex is invoked as: -interaction=nonstopmode -halt-on-error
		// -output-directory <dir> <texPath>
		fake := writeFakeTool(t, dir, "fake-pdflatex", `out="${5%.tex}.pdf"
printf '%%PDF-1.5 fake' > "$out"`)

		c := NewToolConverter(entities.ConverterConfig{PDFLatexPath: fake})

		artifact, err := c.Convert(context.Background(), texPath, ports.FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.5 fake", string(artifact))
	})

	t.Run("pptx conversion returns artifact bytes", func(t *testing.T) {
		dir := t.TempDir()
		texPath := writeMarkupFile(t, dir)

		// pandoc is invoked as: --from latex --to pptx --output <pptxPath> <texPath>
		fake := writeFakeTool(t, dir, "fake-pandoc", `printf 'PK fake pptx' > "$6"`)

		c := NewToolConverter(entities.ConverterConfig{PandocPath: fake})

		artifact, err := c.Convert(context.Background(), texPath, ports.FormatPPTX)
		require.NoError(t, err)
		assert.Equal(t, "PK fake pptx", string(artifact))
	})

	t.Run("tool failure carries its output", func(t *testing.T) {
		dir := t.TempDir()
		texPath := writeMarkupFile(t, dir)

		fake := writeFakeTool(t, dir, "fake-pdflatex", `echo '! Undefined control sequence.'
exit 1`)

		c := NewToolConverter(entities.ConverterConfig{PDFLatexPath: fake})

		_, err := c.Convert(context.Background(), texPath, ports.FormatPDF)
		require.Error(t, err)

		var conv *entities.ConversionError
		require.True(t, errors.As(err, &conv))
		assert.Equal(t, "pdf", conv.Format)
		assert.Contains(t, conv.Output, "Undefined control sequence")
	})

	t.Run("missing artifact is a conversion error even on exit zero", func(t *testing.T) {
		dir := t.TempDir()
		texPath := writeMarkupFile(t, dir)

		fake := writeFakeTool(t, dir, "fake-pdflatex", `exit 0`)

		c := NewToolConverter(entities.ConverterConfig{PDFLatexPath: fake})

		_, err := c.Convert(context.Background(), texPath, ports.FormatPDF)
		require.Error(t, err)

		var conv *entities.ConversionError
		require.True(t, errors.As(err, &conv))
		assert.Contains(t, conv.Err.Error(), "artifact not produced")
	})

	t.Run("missing executable is a conversion error", func(t *testing.T) {
		dir := t.TempDir()
		texPath := writeMarkupFile(t, dir)

		c := NewToolConverter(entities.ConverterConfig{
			PDFLatexPath: filepath.Join(dir, "does-not-exist"),
		})

		_, err := c.Convert(context.Background(), texPath, ports.FormatPDF)
		require.Error(t, err)

		var conv *entities.ConversionError
		assert.True(t, errors.As(err, &conv))
	})

	t.Run("unknown format", func(t *testing.T) {
		c := NewToolConverter(entities.ConverterConfig{})

		_, err := c.Convert(context.Background(), "deck.tex", ports.OutputFormat("docx"))
		require.Error(t, err)

		var unknown *entities.UnknownFormatError
		assert.True(t, errors.As(err, &unknown))
	})
}

func TestTrimOutput(t *testing.T) {
	t.Run("short output passes through trimmed", func(t *testing.T) {
		assert.Equal(t, "hello", trimOutput([]byte("  hello\n")))
	})

	t.Run("long output keeps the tail", func(t *testing.T) {
		long := make([]byte, maxToolOutput*2)
		for i := range long {
			long[i] = 'a'
		}
		long[len(long)-1] = 'z'

		trimmed := trimOutput(long)
		assert.Len(t, trimmed, maxToolOutput+3)
		assert.True(t, trimmed[0] == '.' && trimmed[len(trimmed)-1] == 'z')
	})
}
