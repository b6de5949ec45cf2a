package tool

import (
	"github.com/quillnotes/quill/pkg/types"
)

// Catalog is an immutable table of tool schemas, defined once at
// process start.
type Catalog struct {
	tools map[string]types.ToolSchema
	order []string
}

// NewCatalog creates a catalog from the given schemas, preserving their
// declaration order for listings.
func NewCatalog(schemas ...types.ToolSchema) *Catalog {
	c := &Catalog{tools: make(map[string]types.ToolSchema, len(schemas))}
	for _, s := range schemas {
		if _, exists := c.tools[s.ID]; exists {
			continue
		}
		c.tools[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c
}

// Get retrieves a tool schema by ID.
func (c *Catalog) Get(id string) (types.ToolSchema, bool) {
	s, ok := c.tools[id]
	return s, ok
}

// Has reports whether a tool is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.tools[id]
	return ok
}

// IDs returns the tool IDs in declaration order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// All returns every schema in declaration order.
func (c *Catalog) All() []types.ToolSchema {
	out := make([]types.ToolSchema, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tools[id])
	}
	return out
}

// CommandID returns the command a tool dispatches to.
func (c *Catalog) CommandID(toolID string) (string, bool) {
	s, ok := c.tools[toolID]
	if !ok {
		return "", false
	}
	return s.CommandID, true
}

// Default returns the built-in note-taking tool catalog.
func Default() *Catalog {
	return NewCatalog(
		types.ToolSchema{
			ID:          "note_create",
			Name:        "Create Note",
			Description: "Create a new note at the given vault path",
			CommandID:   "file.create",
			Parameters: map[string]types.ToolParam{
				"path":    {Type: "string", Description: "Vault-relative path of the new note", Required: true},
				"content": {Type: "string", Description: "Initial markdown content", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_read",
			Name:        "Read Note",
			Description: "Read the content of an existing note",
			CommandID:   "file.read",
			Parameters: map[string]types.ToolParam{
				"path": {Type: "string", Description: "Vault-relative path of the note", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_update",
			Name:        "Update Note",
			Description: "Replace the content of an existing note",
			CommandID:   "file.write",
			Parameters: map[string]types.ToolParam{
				"path":    {Type: "string", Description: "Vault-relative path of the note", Required: true},
				"content": {Type: "string", Description: "New markdown content", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_append",
			Name:        "Append to Note",
			Description: "Append markdown content to the end of a note",
			CommandID:   "file.append",
			Parameters: map[string]types.ToolParam{
				"path":    {Type: "string", Description: "Vault-relative path of the note", Required: true},
				"content": {Type: "string", Description: "Markdown content to append", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_delete",
			Name:        "Delete Note",
			Description: "Delete a note from the vault",
			CommandID:   "file.delete",
			Parameters: map[string]types.ToolParam{
				"path": {Type: "string", Description: "Vault-relative path of the note", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_rename",
			Name:        "Rename Note",
			Description: "Move or rename a note, updating its vault path",
			CommandID:   "file.rename",
			Parameters: map[string]types.ToolParam{
				"oldPath": {Type: "string", Description: "Current vault-relative path", Required: true},
				"newPath": {Type: "string", Description: "New vault-relative path", Required: true},
			},
		},
		types.ToolSchema{
			ID:          "note_search",
			Name:        "Search Notes",
			Description: "Full-text search across the vault",
			CommandID:   "search.query",
			Parameters: map[string]types.ToolParam{
				"query": {Type: "string", Description: "Search query", Required: true},
				"limit": {Type: "number", Description: "Maximum number of results", Default: float64(20)},
			},
		},
		types.ToolSchema{
			ID:          "note_list",
			Name:        "List Notes",
			Description: "List the notes in a vault folder",
			CommandID:   "vault.list",
			Parameters: map[string]types.ToolParam{
				"folder":    {Type: "string", Description: "Vault-relative folder, empty for the root"},
				"recursive": {Type: "boolean", Description: "Include notes in subfolders", Default: false},
			},
		},
		types.ToolSchema{
			ID:          "link_insert",
			Name:        "Insert Link",
			Description: "Insert a wikilink to a note at the current editor position",
			CommandID:   "editor.insertLink",
			Parameters: map[string]types.ToolParam{
				"path":  {Type: "string", Description: "Vault-relative path of the link target", Required: true},
				"label": {Type: "string", Description: "Optional display label for the link"},
			},
		},
	)
}
