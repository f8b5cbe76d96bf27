package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoreResultsDir appends the resolved benchmark output directory to the
// repository .gitignore as a directory pattern. It reports whether the file changed.
func ignoreResultsDir(repoRoot, outputDir string) (bool, error) {
	entry, err := resultsIgnoreEntry(repoRoot, outputDir)
	if err != nil {
		return false, err
	}

	path := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if sameIgnorePattern(line, entry) {
			return false, nil
		}
	}

	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// resultsIgnoreEntry returns outputDir relative to repoRoot as "dir/".
// outputDir must already be resolved against the config root.
func resultsIgnoreEntry(repoRoot, outputDir string) (string, error) {
	if !filepath.IsAbs(outputDir) {
		return "", fmt.Errorf("output dir %q is not resolved", outputDir)
	}
	rel, err := filepath.Rel(repoRoot, filepath.Clean(outputDir))
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output dir %q is outside the repo root", outputDir)
	}
	return filepath.ToSlash(rel) + "/", nil
}

// sameIgnorePattern treats "dir", "dir/", "/dir" and "/dir/" as one pattern.
func sameIgnorePattern(line, entry string) bool {
	normalize := func(value string) string {
		return strings.Trim(strings.TrimSpace(value), "/")
	}
	return normalize(line) != "" && normalize(line) == normalize(entry)
}
