package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",           // Go projects
			"pyproject.toml",   // Python projects
			"requirements.txt", // Python projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string, baseURL ...string) (*Project, error) {
	// Get the absolute path
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a directory, start from there
	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}

	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	// Search up the directory tree for project markers
	rootPath, projectType := d.findProjectRoot(startDir)

	// Create default Project with fallback values
	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}

	// Use baseURL if provided and no project root found
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	// Calculate relative path from project root to the file
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		// Fallback to just the filename if we can't get the relative path
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	// Try to extract project name from config files
	if projectType != "" {
		info.Name = d.extractProjectName(rootPath, projectType)
	}

	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir

	// Search up the directory tree
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				projectType := determineProjectType(marker)
				return dir, projectType
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}

	return "", ""
}

// extractProjectName attempts to extract a project name from configuration
// files. Go and Python projects read their config files; any other type
// (such as "git" from the .git marker) falls back to the directory name.
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	switch projectType {
	case "go":
		return extractGoModuleName(filepath.Join(rootPath, "go.mod"))
	case "python":
		if name := extractPyProjectName(filepath.Join(rootPath, "pyproject.toml")); name != "" {
			return name
		}
		return extractPythonPackageName(rootPath)
	default:
		// Fall back to directory name
		return filepath.Base(rootPath)
	}
}

func extractGoModuleName(goModPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), goModPath); len(content) > 0 {
		if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil {
			return mod.Module.Mod.Path
		}

	}
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return filepath.Base(filepath.Dir(goModPath))
	}
	moduleRegex := regexp.MustCompile(`module\s+([^\s]+)`)
	matches := moduleRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(goModPath))
	}

	// The full module path is the project name
	modulePath := string(matches[1])
	return modulePath
}

func extractPyProjectName(pyprojectPath string) string {
	data, err := os.ReadFile(pyprojectPath)
	if err != nil {
		return ""
	}

	// Try to extract name from [tool.poetry] or [project] section
	nameRegex := regexp.MustCompile(`(?:tool\.poetry|project)\.name\s*=\s*["']([^"']+)["']`)
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}

	return string(matches[1])
}

func extractPythonPackageName(rootPath string) string {
	// Look for setup.py or __init__.py to determine package name
	setupPath := filepath.Join(rootPath, "setup.py")
	if _, err := os.Stat(setupPath); err == nil {
		data, err := os.ReadFile(setupPath)
		if err == nil {
			nameRegex := regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
			matches := nameRegex.FindSubmatch(data)
			if len(matches) >= 2 {
				return string(matches[1])
			}
		}
	}

	// Fall back to directory name
	return filepath.Base(rootPath)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pyproject.toml", "requirements.txt":
		return "python"
	case ".git":
		return "git" // Generic project with version control
	default:
		return "unknown"
	}
}
