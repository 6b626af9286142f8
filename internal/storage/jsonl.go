package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"trustdeploy/internal/model"
)

// JsonlStorage appends deployment records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutDeployment appends one record as a JSON line.
func (s *JsonlStorage) PutDeployment(_ context.Context, record model.DeploymentRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal deployment record: %w", err)
	}
	line = append(line, '\n')

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}

	if _, err := file.Write(line); err != nil {
		file.Close()
		return fmt.Errorf("write deployment record: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}
