// Package convert invokes external tools to turn rendered beamer markup
// into distributable artifacts: pdflatex for PDF, pandoc for PPTX.
package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// maxToolOutput bounds how much converter output is kept on errors
const maxToolOutput = 2048

// ToolConverter implements format conversion by shelling out to pdflatex
// and pandoc. All intermediate files are written next to the input markup
// file, so the caller's per-request work directory scopes their lifetime.
type ToolConverter struct {
	pdflatexPath string
	pandocPath   string
	timeout      time.Duration
}

// NewToolConverter creates a converter using the configured executable
// paths, falling back to PATH lookup.
func NewToolConverter(cfg entities.ConverterConfig) *ToolConverter {
	pdflatex := cfg.PDFLatexPath
	if pdflatex == "" {
		pdflatex = "pdflatex"
	}

	pandoc := cfg.PandocPath
	if pandoc == "" {
		pandoc = "pandoc"
	}

	return &ToolConverter{
		pdflatexPath: pdflatex,
		pandocPath:   pandoc,
		timeout:      cfg.GetTimeout(),
	}
}

// Supports reports whether the converter can produce the format
func (c *ToolConverter) Supports(format ports.OutputFormat) bool {
	return format == ports.FormatPDF || format == ports.FormatPPTX
}

// Convert runs the external tool for the format and returns the artifact
// bytes. Tool failures, timeouts, and a missing output file all surface as
// a ConversionError carrying the tool's trimmed output.
func (c *ToolConverter) Convert(ctx context.Context, texPath string, format ports.OutputFormat) ([]byte, error) {
	switch format {
	case ports.FormatPDF:
		return c.convertPDF(ctx, texPath)
	case ports.FormatPPTX:
		return c.convertPPTX(ctx, texPath)
	default:
		return nil, &entities.UnknownFormatError{Format: string(format)}
	}
}

// convertPDF runs pdflatex in nonstop mode with output confined to the
// markup file's directory.
func (c *ToolConverter) convertPDF(ctx context.Context, texPath string) ([]byte, error) {
	workDir := filepath.Dir(texPath)
	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", workDir,
		texPath,
	}

	output, err := c.run(ctx, workDir, c.pdflatexPath, args)
	if err != nil {
		return nil, &entities.ConversionError{Format: "pdf", Output: output, Err: err}
	}

	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	return readArtifact(pdfPath, "pdf", output)
}

// convertPPTX runs pandoc reading the markup as LaTeX and writing a
// PowerPoint package.
func (c *ToolConverter) convertPPTX(ctx context.Context, texPath string) ([]byte, error) {
	workDir := filepath.Dir(texPath)
	pptxPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pptx"
	args := []string{
		"--from", "latex",
		"--to", "pptx",
		"--output", pptxPath,
		texPath,
	}

	output, err := c.run(ctx, workDir, c.pandocPath, args)
	if err != nil {
		return nil, &entities.ConversionError{Format: "pptx", Output: output, Err: err}
	}

	return readArtifact(pptxPath, "pptx", output)
}

// run executes one converter invocation under the configured timeout and
// returns the tool's combined output, trimmed for error reporting.
func (c *ToolConverter) run(ctx context.Context, workDir, executable string, args []string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// #nosec G204 - executable comes from validated configuration and args are built internally
	cmd := exec.CommandContext(cmdCtx, executable, args...)
	cmd.Dir = workDir

	output, err := cmd.CombinedOutput()
	trimmed := trimOutput(output)
	if err != nil {
		return trimmed, fmt.Errorf("%s failed: %w", filepath.Base(executable), err)
	}

	return trimmed, nil
}

// readArtifact loads the produced file, treating absence as a conversion
// failure even when the tool exited zero.
func readArtifact(path, format, toolOutput string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the caller's temp markup file
	if err != nil {
		return nil, &entities.ConversionError{
			Format: format,
			Output: toolOutput,
			Err:    fmt.Errorf("artifact not produced: %w", err),
		}
	}
	return data, nil
}

// trimOutput keeps the tail of the tool output; LaTeX errors appear at the
// end of its log.
func trimOutput(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) > maxToolOutput {
		s = "..." + s[len(s)-maxToolOutput:]
	}
	return s
}

// Ensure ToolConverter implements ports.Converter
var _ ports.Converter = (*ToolConverter)(nil)
