package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docnav"
	"gopkg.in/yaml.v3"
)

// metaFileNames are the ordering files looked up in each directory, in
// order of preference.
var metaFileNames = []string{"_meta.json", "_meta.yaml", "_meta.yml"}

// metaEntry is one item of a _meta file.
type metaEntry struct {
	Key         string `yaml:"-"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Display     string `yaml:"display"`
	Type        string `yaml:"type"`
	Href        string `yaml:"href"`
}

// hidden reports whether the entry removes its item from the tree.
func (e metaEntry) hidden() bool {
	return e.Display == "hidden"
}

// virtual reports whether the entry describes something other than a file
// or directory, such as an external link or a separator.
func (e metaEntry) virtual() bool {
	return e.Href != "" || e.Type == "separator"
}

// dirMeta is the parsed _meta file of a directory.
type dirMeta struct {
	entries []metaEntry
	byKey   map[string]metaEntry
	raw     []byte
}

func (m *dirMeta) lookup(key string) (metaEntry, bool) {
	e, ok := m.byKey[key]
	return e, ok
}

// readDirMeta reads the _meta file of dir. A directory without one has an
// empty dirMeta.
func readDirMeta(dir string) (*dirMeta, error) {
	for _, name := range metaFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		m, err := parseDirMeta(data)
		if err != nil {
			return nil, docnav.Errorf(docnav.EINVALID, "invalid %s: %s", path, docnav.ErrorMessage(err))
		}
		return m, nil
	}
	return &dirMeta{byKey: map[string]metaEntry{}}, nil
}

// parseDirMeta parses _meta contents. JSON is read through the YAML parser,
// which keeps keys in the order they were written.
func parseDirMeta(data []byte) (*dirMeta, error) {
	m := &dirMeta{byKey: map[string]metaEntry{}, raw: data}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, docnav.Errorf(docnav.EINVALID, "%v", err)
	}
	if len(doc.Content) == 0 {
		return m, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, docnav.Errorf(docnav.EINVALID, "expected a mapping of names to titles")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		entry := metaEntry{}
		switch val.Kind {
		case yaml.ScalarNode:
			entry.Title = val.Value
		case yaml.MappingNode:
			if err := val.Decode(&entry); err != nil {
				return nil, docnav.Errorf(docnav.EINVALID, "entry %q: %v", key.Value, err)
			}
		default:
			return nil, docnav.Errorf(docnav.EINVALID, "entry %q: expected a title or an object", key.Value)
		}
		entry.Key = key.Value
		if _, dup := m.byKey[entry.Key]; dup {
			continue
		}
		m.entries = append(m.entries, entry)
		m.byKey[entry.Key] = entry
	}
	return m, nil
}
