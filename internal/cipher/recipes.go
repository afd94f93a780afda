package cipher

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Recipe is a named, reusable cipher pipeline, e.g. "affine then columnar".
type Recipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Pipeline    Pipeline `json:"pipeline"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// RecipeStore keeps recipes in memory and, when a store path is set,
// mirrors each one to a JSON file. Safe for concurrent use.
type RecipeStore struct {
	mu      sync.RWMutex
	recipes map[string]*Recipe
	dir     string
	log     *slog.Logger
}

// NewRecipeStore creates a store rooted at dir. An empty dir keeps recipes
// in memory only. A nil logger falls back to slog.Default.
func NewRecipeStore(dir string, logger *slog.Logger) *RecipeStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeStore{
		recipes: make(map[string]*Recipe),
		dir:     dir,
		log:     logger,
	}
}

// Save stores a recipe, stamping timestamps and persisting to disk when
// configured.
func (s *RecipeStore) Save(recipe *Recipe) error {
	if recipe == nil || recipe.Name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if recipe.CreatedAt == "" {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now
	s.recipes[recipe.Name] = recipe

	if s.dir == "" {
		return nil
	}
	return s.persist(recipe)
}

// Get retrieves a recipe by name.
func (s *RecipeStore) Get(name string) (*Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[name]
	return r, ok
}

// List returns all recipes sorted by name.
func (s *RecipeStore) List() []*Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Delete removes a recipe from memory and disk.
func (s *RecipeStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.recipes, name)
	if s.dir == "" {
		return nil
	}
	path := filepath.Join(s.dir, sanitizeFilename(name)+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete recipe file: %w", err)
	}
	return nil
}

// Load reads every recipe file under the store directory, creating it if
// needed. Unreadable files are logged and skipped rather than aborting the
// whole load.
func (s *RecipeStore) Load() error {
	if s.dir == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create recipes directory: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read recipes directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("skipping unreadable recipe", "path", path, "err", err)
			continue
		}
		var recipe Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			s.log.Warn("skipping malformed recipe", "path", path, "err", err)
			continue
		}
		if recipe.Name == "" {
			s.log.Warn("skipping unnamed recipe", "path", path)
			continue
		}
		s.recipes[recipe.Name] = &recipe
	}
	return nil
}

func (s *RecipeStore) persist(recipe *Recipe) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create recipes directory: %w", err)
	}
	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}
	path := filepath.Join(s.dir, sanitizeFilename(recipe.Name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write recipe: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
