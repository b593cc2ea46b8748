package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todomenu/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking and no atomic rename; every call reads or rewrites the whole file.

const DefaultFileName = "todos.json"

const schemaURL = "todos.schema.json"

// Only the shape of the document is checked: an array of objects carrying
// string name and id fields. Extra keys are allowed.
const todosSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "id"],
    "properties": {
      "name": {"type": "string"},
      "id": {"type": "string"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, todosSchema)

// Kind classifies storage failures.
type Kind int

const (
	// KindIO covers missing, unreadable and unwritable files.
	KindIO Kind = iota + 1
	// KindParse covers malformed JSON and documents of the wrong shape.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is returned by Load and Save.
type Error struct {
	Op   string // "load" or "save"
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a storage *Error of kind k.
func IsKind(err error, k Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == k
}

// Store reads and writes one todos file. It keeps no state between calls.
type Store struct {
	Path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{Path: path}
}

// Load reads and parses the whole file.
// A missing file is a KindIO error wrapping fs.ErrNotExist; callers decide
// whether that means "start empty".
func (s *Store) Load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &Error{Op: "load", Path: s.Path, Kind: KindIO, Err: err}
	}
	return s.decode(b)
}

func (s *Store) decode(b []byte) ([]model.Todo, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &Error{Op: "load", Path: s.Path, Kind: KindParse, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &Error{Op: "load", Path: s.Path, Kind: KindParse, Err: shapeError(err)}
	}
	todos := []model.Todo{}
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, &Error{Op: "load", Path: s.Path, Kind: KindParse, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	return todos, nil
}

// Save overwrites the file with todos.
func (s *Store) Save(todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return &Error{Op: "save", Path: s.Path, Kind: KindParse, Err: fmt.Errorf("json marshal: %w", err)}
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &Error{Op: "save", Path: s.Path, Kind: KindIO, Err: fmt.Errorf("mkdir: %w", err)}
		}
	}
	if err := os.WriteFile(s.Path, append(b, '\n'), 0o644); err != nil {
		return &Error{Op: "save", Path: s.Path, Kind: KindIO, Err: fmt.Errorf("write file: %w", err)}
	}
	return nil
}

// shapeError reduces a schema validation tree to its first leaf, which is
// the most specific message.
func shapeError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("invalid shape at %s: %s", loc, ve.Message)
}
