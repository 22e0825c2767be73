// Package library is the on-disk home for finished sheets: the song JSON,
// the rendered text sheet, and the SVG chord strip, plus a gob index so
// listing doesn't re-stat the world on every request.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/musicbox/model"
	"github.com/jsphweid/musicbox/render"
	"github.com/jsphweid/musicbox/util"
)

const indexFilename = "index.dat"

// reindexDelay batches the index rebuilds that follow a burst of saves.
const reindexDelay = 500 * time.Millisecond

type Library struct {
	dir string

	mu      sync.Mutex
	entries []model.SheetInfo

	debounced func(func())
}

// Open creates the library dir if needed and loads or rebuilds the index.
func Open(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("could not create library dir: %w", err)
	}

	l := &Library{
		dir:       dir,
		debounced: debounce.New(reindexDelay),
	}

	entries, err := util.ReadBinary[[]model.SheetInfo](filepath.Join(dir, indexFilename))
	if err != nil {
		// stale or missing index, scan instead
		entries, err = l.scan()
		if err != nil {
			return nil, err
		}
	}
	l.entries = entries
	return l, nil
}

// Save writes the song's three artifacts and schedules an index rebuild.
func (l *Library) Save(song model.Song) (model.SheetInfo, error) {
	name := SheetName(song)

	dataPath := filepath.Join(l.dir, name+".json")
	sheetPath := filepath.Join(l.dir, name+".txt")
	stripPath := filepath.Join(l.dir, name+".svg")

	data, err := json.MarshalIndent(song, "", "  ")
	if err != nil {
		return model.SheetInfo{}, fmt.Errorf("could not encode song: %w", err)
	}
	if err := l.writeFile(dataPath, data); err != nil {
		return model.SheetInfo{}, err
	}
	if err := l.writeFile(sheetPath, []byte(render.Sheet(song))); err != nil {
		return model.SheetInfo{}, err
	}

	strip := render.ChordStripSVG(song)
	if strip == "" {
		stripPath = ""
	} else if err := l.writeFile(stripPath, []byte(strip)); err != nil {
		return model.SheetInfo{}, err
	}

	info := model.SheetInfo{
		Name:      name,
		DataPath:  dataPath,
		SheetPath: sheetPath,
		StripPath: stripPath,
		SavedAt:   time.Now(),
	}

	l.mu.Lock()
	l.entries = append(withoutName(l.entries, name), info)
	l.mu.Unlock()

	l.debounced(l.rebuildIndex)
	return info, nil
}

// List returns sheets newest first.
func (l *Library) List() []model.SheetInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.SheetInfo, len(l.entries))
	copy(out, l.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out
}

// Get finds one sheet by name.
func (l *Library) Get(name string) (model.SheetInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Name == name {
			return e, true
		}
	}
	return model.SheetInfo{}, false
}

// Dir exposes the library root for handlers that serve files from it.
func (l *Library) Dir() string {
	return l.dir
}

// SheetName derives the on-disk base name for a song.
func SheetName(song model.Song) string {
	name := fmt.Sprintf("%v - %v", song.Artist, song.Title)
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "_").Replace(name)
}

// writeFile writes atomically: a uuid-named temp file then a rename, so a
// crash mid-save never leaves a half-written sheet behind.
func (l *Library) writeFile(path string, data []byte) error {
	tmp := filepath.Join(l.dir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0777); err != nil {
		return fmt.Errorf("write failed for %v: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename failed for %v: %w", path, err)
	}
	return nil
}

func (l *Library) scan() ([]model.SheetInfo, error) {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read library dir: %w", err)
	}

	var entries []model.SheetInfo
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ".json")
		fi, err := f.Info()
		if err != nil {
			continue
		}

		info := model.SheetInfo{
			Name:     name,
			DataPath: filepath.Join(l.dir, f.Name()),
			SavedAt:  fi.ModTime(),
		}
		if sheet := filepath.Join(l.dir, name+".txt"); exists(sheet) {
			info.SheetPath = sheet
		}
		if strip := filepath.Join(l.dir, name+".svg"); exists(strip) {
			info.StripPath = strip
		}
		entries = append(entries, info)
	}
	return entries, nil
}

func (l *Library) rebuildIndex() {
	entries, err := l.scan()
	if err != nil {
		return
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	// best effort; the index is a cache over scan
	_ = util.CreateBinary(filepath.Join(l.dir, indexFilename), entries)
}

func withoutName(entries []model.SheetInfo, name string) []model.SheetInfo {
	var out []model.SheetInfo
	for _, e := range entries {
		if e.Name != name {
			out = append(out, e)
		}
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
