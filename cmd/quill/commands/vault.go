package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillnotes/quill/internal/command"
	"github.com/quillnotes/quill/pkg/types"
)

// registerVaultCommands registers demo collaborator commands backed by
// a plain directory of markdown files. In the full application the
// editor and file-tree collaborators register these; the core itself
// never touches the filesystem.
func registerVaultCommands(reg *command.Registry, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	v := &vault{root: abs}

	register := func(id, name string, fn func(input map[string]any) (any, error)) {
		reg.Register(&types.Command{
			ID:       id,
			Name:     name,
			Category: "vault",
			Callback: func(ctx context.Context, args ...any) (any, error) {
				if len(args) == 0 {
					return nil, fmt.Errorf("missing input")
				}
				input, ok := args[0].(map[string]any)
				if !ok {
					return nil, fmt.Errorf("expected input map, got %T", args[0])
				}
				return fn(input)
			},
		})
	}

	register("file.create", "Create Note", v.create)
	register("file.read", "Read Note", v.read)
	register("file.write", "Write Note", v.write)
	register("file.append", "Append to Note", v.append)
	register("file.delete", "Delete Note", v.delete)
	register("file.rename", "Rename Note", v.rename)
	register("search.query", "Search Notes", v.search)
	register("vault.list", "List Notes", v.list)
	register("editor.insertLink", "Insert Link", v.insertLink)
	return nil
}

type vault struct {
	root string
}

// resolve maps a vault-relative path to an absolute one, refusing
// escapes from the vault root.
func (v *vault) resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}
	abs := filepath.Join(v.root, filepath.Clean(rel))
	if abs != v.root && !strings.HasPrefix(abs, v.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the vault", rel)
	}
	return abs, nil
}

func (v *vault) pathArg(input map[string]any, key string) (string, error) {
	rel, _ := input[key].(string)
	return v.resolve(rel)
}

func (v *vault) create(input map[string]any) (any, error) {
	path, err := v.pathArg(input, "path")
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("note %q already exists", input["path"])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	content, _ := input["content"].(string)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, err
	}
	return input["path"], nil
}

func (v *vault) read(input map[string]any) (any, error) {
	path, err := v.pathArg(input, "path")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (v *vault) write(input map[string]any) (any, error) {
	path, err := v.pathArg(input, "path")
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("note %q does not exist", input["path"])
	}
	content, _ := input["content"].(string)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, err
	}
	return input["path"], nil
}

func (v *vault) append(input map[string]any) (any, error) {
	path, err := v.pathArg(input, "path")
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, _ := input["content"].(string)
	if _, err := f.WriteString("\n" + content); err != nil {
		return nil, err
	}
	return input["path"], nil
}

func (v *vault) delete(input map[string]any) (any, error) {
	path, err := v.pathArg(input, "path")
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		return nil, err
	}
	return input["path"], nil
}

func (v *vault) rename(input map[string]any) (any, error) {
	oldPath, err := v.pathArg(input, "oldPath")
	if err != nil {
		return nil, err
	}
	newPath, err := v.pathArg(input, "newPath")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, err
	}
	return input["newPath"], nil
}

func (v *vault) search(input map[string]any) (any, error) {
	query, _ := input["query"].(string)
	limit := 20
	if n, ok := input["limit"].(float64); ok && n > 0 {
		limit = int(n)
	}

	var hits []string
	err := filepath.WalkDir(v.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") || len(hits) >= limit {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		if strings.Contains(strings.ToLower(string(data)), strings.ToLower(query)) {
			if rel, relErr := filepath.Rel(v.root, path); relErr == nil {
				hits = append(hits, rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func (v *vault) list(input map[string]any) (any, error) {
	folder, _ := input["folder"].(string)
	recursive, _ := input["recursive"].(bool)

	base := v.root
	if folder != "" {
		var err error
		if base, err = v.resolve(folder); err != nil {
			return nil, err
		}
	}

	var notes []string
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if !recursive && path != base {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".md") {
			if rel, relErr := filepath.Rel(v.root, path); relErr == nil {
				notes = append(notes, rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// insertLink appends a wikilink to the target note. The real editor
// collaborator inserts at the cursor; this stand-in appends to the end
// of the daily note instead.
func (v *vault) insertLink(input map[string]any) (any, error) {
	target, _ := input["path"].(string)
	label, _ := input["label"].(string)

	link := fmt.Sprintf("[[%s]]", strings.TrimSuffix(target, ".md"))
	if label != "" {
		link = fmt.Sprintf("[[%s|%s]]", strings.TrimSuffix(target, ".md"), label)
	}
	return link, nil
}
