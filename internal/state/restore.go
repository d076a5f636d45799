package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/store"
)

// Restore loads a previously saved state directory into the store. A
// missing directory means a fresh start and is not an error. Restored users
// are forced offline; restored projects get a live chat address through the
// store's allocator rather than whatever was persisted.
func Restore(dir string, st *store.Store) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("state: inspecting %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("state: %s is not a directory", dir)
	}

	var users []board.User
	if err := readJSON(filepath.Join(dir, usersFile), &users); err != nil {
		return err
	}
	st.LoadUsers(users)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("state: reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := restoreProject(filepath.Join(dir, entry.Name()), entry.Name())
		if err != nil {
			return err
		}
		if err := st.LoadProject(p); err != nil {
			return fmt.Errorf("state: adopting project %q: %w", entry.Name(), err)
		}
	}
	return nil
}

func restoreProject(projectDir, name string) (*board.Project, error) {
	var members []string
	if err := readJSON(filepath.Join(projectDir, membersFile), &members); err != nil {
		return nil, err
	}

	cardsPath := filepath.Join(projectDir, cardsDir)
	entries, err := os.ReadDir(cardsPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("state: reading %s: %w", cardsPath, err)
	}
	var cards []*board.Card
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var c board.Card
		if err := readJSON(filepath.Join(cardsPath, entry.Name()), &c); err != nil {
			return nil, err
		}
		cards = append(cards, &c)
	}

	p, err := board.RestoreProject(name, members, cards)
	if err != nil {
		return nil, fmt.Errorf("state: rebuilding project %q: %w", name, err)
	}
	return p, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("state: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("state: decoding %s: %w", path, err)
	}
	return nil
}
