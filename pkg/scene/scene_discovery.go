package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create and CreateListed
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the YAML file (file type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Sphere resting on a large ground sphere", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "sky", Name: "Sky", Description: "Empty scene showing only the background gradient", Type: "builtin"}, NewSkyScene},
	{SceneInfo{ID: "plane", Name: "Sphere on Plane", Description: "Sphere standing on an infinite ground plane", Type: "builtin"}, NewPlaneScene},
	{SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of spheres seen from a look-at camera", Type: "builtin"}, NewSphereGridScene},
}

// ScenesDir is the directory searched for YAML scene files
var ScenesDir = "scenes"

// FileScenePrefix marks scene IDs that refer to a file in ScenesDir
const FileScenePrefix = "file:"

// ErrUnknownScene is returned when a name resolves to no scene
var ErrUnknownScene = errors.New("unknown scene")

// Create returns a built-in scene by name, or loads a scene file when the
// name ends in .yaml or .yml. Any path is accepted, so Create is meant for
// trusted input such as the command line.
func Create(name string) (*Scene, error) {
	if isSceneFile(name) {
		return NewFromFile(name)
	}

	if s, ok := createBuiltin(name); ok {
		return s, nil
	}

	if strings.HasPrefix(name, FileScenePrefix) {
		return CreateListed(name)
	}

	// Fall back to a file of that name in the scenes directory
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(ScenesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return NewFromFile(path)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// CreateListed resolves only the IDs ListScenes reports: built-in names and
// file:<name> for scene files directly inside ScenesDir. Paths are rejected.
func CreateListed(id string) (*Scene, error) {
	if s, ok := createBuiltin(id); ok {
		return s, nil
	}

	if strings.HasPrefix(id, FileScenePrefix) {
		fileScenes, err := ListSceneFiles(ScenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range fileScenes {
			if info.ID == id {
				return NewFromFile(info.FilePath)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

func createBuiltin(name string) (*Scene, bool) {
	for _, builtin := range builtinScenes {
		if builtin.info.ID == name {
			return builtin.factory(), true
		}
	}
	return nil, false
}

// ListScenes returns the built-in scenes followed by the scene files found in ScenesDir
func ListScenes() ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, builtin := range builtinScenes {
		scenes = append(scenes, builtin.info)
	}

	fileScenes, err := ListSceneFiles(ScenesDir)
	if err != nil {
		return nil, err
	}
	return append(scenes, fileScenes...), nil
}

// ListSceneFiles scans dir for YAML scene files. A missing directory is not an error.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		info, err := ParseSceneMetadata(path)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads "# Scene:" and "# Description:" header comments
// from a scene file
func ParseSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       FileScenePrefix + base,
		Name:     titleCase(base),
		Type:     "file",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
