package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/quillnotes/quill/pkg/types"
)

// DefaultDiffMaxChars caps the rendered preview length.
const DefaultDiffMaxChars = 2000

// readCommandID is the collaborator command used to fetch current note
// content for write-shaped previews.
const readCommandID = "file.read"

// noDiffAvailable is returned for tools with no meaningful preview.
const noDiffAvailable = "no diff available"

// Diff renders a best-effort human-readable preview of what a step
// would change. It never fails: a collaborator read error is treated as
// the new-file case. The rendered preview is cached on the step.
func (e *Executor) Diff(ctx context.Context, step *types.ProposedStep) string {
	var preview string

	switch step.ToolID {
	case "note_create", "note_update":
		preview = e.writeDiff(ctx, inputString(step.Input, "path"), inputString(step.Input, "content"), false)
	case "note_append":
		preview = e.writeDiff(ctx, inputString(step.Input, "path"), inputString(step.Input, "content"), true)
	case "note_rename":
		preview = fmt.Sprintf("Rename %s -> %s", inputString(step.Input, "oldPath"), inputString(step.Input, "newPath"))
	case "note_delete":
		preview = fmt.Sprintf("Delete %s", inputString(step.Input, "path"))
	default:
		preview = noDiffAvailable
	}

	e.mu.Lock()
	step.Diff = preview
	e.mu.Unlock()
	return preview
}

// writeDiff previews a write-shaped step against the note's current
// content, falling back to a new-file rendering when the read fails.
func (e *Executor) writeDiff(ctx context.Context, path, content string, isAppend bool) string {
	current, err := e.readCurrent(ctx, path)
	if err != nil {
		return e.truncate(newFilePreview(path, content))
	}

	proposed := content
	if isAppend {
		proposed = current + "\n" + content
	}
	return e.truncate(unifiedPreview(path, current, proposed))
}

// readCurrent fetches the current note content via the read
// collaborator command.
func (e *Executor) readCurrent(ctx context.Context, path string) (string, error) {
	out, err := e.registry.Execute(ctx, readCommandID, types.SourceAgent, map[string]any{"path": path})
	if err != nil {
		return "", err
	}
	switch v := out.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

// newFilePreview renders the creation of a note that does not exist yet.
func newFilePreview(path, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New file: %s\n", path)
	for _, line := range strings.Split(content, "\n") {
		b.WriteString("+ ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// unifiedPreview renders a line-based patch between the current and
// proposed content.
func unifiedPreview(path, before, after string) string {
	if before == after {
		return fmt.Sprintf("%s: no changes", path)
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(before, diffs)
	patchText := dmp.PatchToText(patches)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("--- %s\n", path))
	builder.WriteString(fmt.Sprintf("+++ %s\n", path))
	builder.WriteString(patchText)
	return strings.TrimSuffix(builder.String(), "\n")
}

// truncate caps a preview at the configured length.
func (e *Executor) truncate(s string) string {
	if len(s) <= e.diffMaxChars {
		return s
	}
	return s[:e.diffMaxChars] + "\n... (truncated)"
}

// inputString extracts a string parameter, tolerating absence.
func inputString(input map[string]any, key string) string {
	if v, ok := input[key].(string); ok {
		return v
	}
	return ""
}
