package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tyrowin/goboard/internal/board"
)

const (
	usersFile   = "users.json"
	membersFile = "members.json"
	cardsDir    = "cards"
)

// Save replaces the state directory with a fresh snapshot: the previous
// directory is removed wholesale, then recreated with the users file and
// one subdirectory per project. Project and card names are used as path
// components verbatim; the store rejects names that cannot serve as one.
func Save(dir string, users []board.User, projects []board.ProjectSnapshot) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("state: clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: creating %s: %w", dir, err)
	}

	if err := writeJSON(filepath.Join(dir, usersFile), users); err != nil {
		return err
	}

	for _, p := range projects {
		if err := saveProject(dir, p); err != nil {
			return err
		}
	}
	return nil
}

func saveProject(dir string, p board.ProjectSnapshot) error {
	projectDir := filepath.Join(dir, p.Name)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return fmt.Errorf("state: creating project directory %s: %w", projectDir, err)
	}
	if err := writeJSON(filepath.Join(projectDir, membersFile), p.Members); err != nil {
		return err
	}
	cardsPath := filepath.Join(projectDir, cardsDir)
	if err := os.MkdirAll(cardsPath, 0o755); err != nil {
		return fmt.Errorf("state: creating cards directory %s: %w", cardsPath, err)
	}
	for _, list := range [][]board.Card{p.Todo, p.InProgress, p.ToBeRevised, p.Done} {
		for _, c := range list {
			if err := writeJSON(filepath.Join(cardsPath, c.Name+".json"), c); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("state: writing %s: %w", path, err)
	}
	return nil
}
