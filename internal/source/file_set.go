package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file of one run. FileIDs are dense indices into it,
// so a Span can be resolved without any other context.
type FileSet struct {
	files   []File
	latest  map[string]FileID // нормализованный путь -> последняя версия
	baseDir string            // для относительных путей в выводе
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase is NewFileSet with paths shown relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the configured base directory, falling back to the
// working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path as a new version and returns its id.
// Adding the same path twice yields two ids; GetLatest returns the second.
// content is expected to be normalized already.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	key := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.latest[key] = id
	return id
}

// Load reads path from disk and adds it with BOM and CRLF stripped.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.addNormalized(path, content, 0), nil
}

// AddReader drains r and stores the result as a virtual file named name.
// The reader is consumed strictly left to right and never rewound.
func (fileSet *FileSet) AddReader(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return fileSet.addNormalized(name, content, FileVirtual), nil
}

// AddVirtual adds in-memory content (stdin, tests) as is.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) addNormalized(path string, content []byte, flags FileFlags) FileID {
	var stripped bool
	if content, stripped = removeBOM(content); stripped {
		flags |= FileHadBOM
	}
	if content, stripped = normalizeCRLF(content); stripped {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// Get returns the file with the given id; id must come from this set.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the newest id registered for path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end Location) {
	idx := fileSet.files[span.File].LineIdx
	return toLocation(idx, span.Start), toLocation(idx, span.End)
}
