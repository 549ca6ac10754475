package execlog

import "fmt"

// Open builds the Store named by backend ("jsonl" or "sqlite") rooted at
// path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "jsonl":
		return NewJSONLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("execlog: unknown backend %q", backend)
	}
}
