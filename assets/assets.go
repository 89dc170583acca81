// Package assets resolves and loads the bundled images: the five weather icons,
// the logo and the window icon.
//
// Files on disk win over the copies embedded in the binary, so a packaged
// install can ship its own artwork. A missing or corrupt image is never an
// error: Load returns nil and the caller renders without it.
package assets

import (
	"bytes"
	"embed"
	"image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	Logo       = "logo.png"
	WindowIcon = "icon.ico"

	defaultDir = "assets"
)

//go:embed *.png icon.ico
var embedded embed.FS

var icoHeader = []byte{0x00, 0x00, 0x01, 0x00}

// Resolver turns an asset name into a filesystem path. The path is not
// guaranteed to exist.
type Resolver interface {
	ResolveAssetPath(name string) string
}

// DirResolver searches Dirs in order and returns the first existing match.
type DirResolver struct {
	Dirs []string
}

// NewDirResolver searches the assets directory next to the executable first,
// then devDir. An empty devDir means ./assets.
func NewDirResolver(devDir string) *DirResolver {
	if devDir == "" {
		devDir = defaultDir
	}
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), defaultDir))
	}
	dirs = append(dirs, devDir)
	return &DirResolver{Dirs: dirs}
}

func (r *DirResolver) ResolveAssetPath(name string) string {
	name = filepath.Base(name)
	for _, dir := range r.Dirs {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	if len(r.Dirs) == 0 {
		return filepath.Join(defaultDir, name)
	}
	return filepath.Join(r.Dirs[len(r.Dirs)-1], name)
}

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

type Loader struct {
	Resolver Resolver
	// Fallback is consulted when the resolved file does not exist. Nil disables it.
	Fallback fs.FS
}

func NewLoader(r Resolver) *Loader {
	return &Loader{Resolver: r, Fallback: embedded}
}

// Load returns the named image, or nil when it is missing or cannot be decoded.
func (l *Loader) Load(name string) *Image {
	name = filepath.Base(name)

	data, err := os.ReadFile(l.Resolver.ResolveAssetPath(name))
	if err != nil {
		if l.Fallback == nil {
			return nil
		}
		data, err = fs.ReadFile(l.Fallback, name)
		if err != nil {
			return nil
		}
	}

	contentType, ok := validate(name, data)
	if !ok {
		log.Printf("Ignoring unreadable asset %s", name)
		return nil
	}
	return &Image{Name: name, ContentType: contentType, Data: data}
}

func validate(name string, data []byte) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", false
		}
		return "image/png", true
	case ".ico":
		if !bytes.HasPrefix(data, icoHeader) {
			return "", false
		}
		return "image/x-icon", true
	default:
		return "", false
	}
}
