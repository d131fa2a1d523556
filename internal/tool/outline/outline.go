package outline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Cyclone1070/well/internal/config"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/helper/content"
	sitter "github.com/smacker/go-tree-sitter"
)

// OutlineRequest is the argument shape of the outline tool.
type OutlineRequest struct {
	Path string `mapstructure:"path"`
}

// OutlineTool summarises source files as the names they define and reference.
type OutlineTool struct {
	fs       fileSystem
	resolver pathResolver
	ignore   ignoreMatcher
	config   *config.Config
}

// NewOutlineTool creates a new OutlineTool with injected dependencies.
func NewOutlineTool(fs fileSystem, resolver pathResolver, ignore ignoreMatcher, cfg *config.Config) *OutlineTool {
	if fs == nil {
		panic("fs is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &OutlineTool{
		fs:       fs,
		resolver: resolver,
		ignore:   ignore,
		config:   cfg,
	}
}

func (t *OutlineTool) Name() string {
	return "outline"
}

func (t *OutlineTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name: "outline",
		Description: "Outline a source file or every file in a directory: the module name, " +
			"the symbols it defines and the symbols it references. Start here before reading files.",
		Parameters: tool.PathParameters("File or directory to outline, relative to the project root"),
	}
}

func (t *OutlineTool) Request() any {
	return &OutlineRequest{}
}

// Execute outlines a file, or each entry of a directory one line at a time.
// Files in languages without outline support render as "()".
func (t *OutlineTool) Execute(ctx context.Context, req any) (string, error) {
	r, ok := req.(*OutlineRequest)
	if !ok {
		return "", fmt.Errorf("invalid request type: %T", req)
	}

	abs, err := t.resolver.Confine("read", r.Path)
	if err != nil {
		return "", err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		return "", &tool.IOError{Op: "stat", Path: r.Path, Cause: err}
	}

	if !info.IsDir() {
		return t.outlineFile(ctx, abs, info)
	}
	return t.outlineDir(ctx, abs, r.Path)
}

func (t *OutlineTool) outlineDir(ctx context.Context, abs, display string) (string, error) {
	entries, err := t.fs.ListDir(abs)
	if err != nil {
		return "", &tool.IOError{Op: "list", Path: display, Cause: err}
	}

	var sb strings.Builder
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		entryAbs := filepath.Join(abs, entry.Name())
		if t.ignore.ShouldIgnore(t.resolver.Rel(entryAbs), entry.IsDir()) {
			continue
		}

		name := displayName(entry.Name())
		switch {
		case entry.IsDir():
			fmt.Fprintf(&sb, "%s/ (directory)\n", name)
		case entry.Mode()&os.ModeSymlink != 0:
			fmt.Fprintf(&sb, "%s (symlink)\n", name)
		default:
			outline, err := t.outlineFile(ctx, entryAbs, entry)
			if err != nil {
				outline = fmt.Sprintf("(error %q)", err.Error())
			}
			fmt.Fprintf(&sb, "%s %s\n", name, outline)
		}
	}
	return sb.String(), nil
}

func (t *OutlineTool) outlineFile(ctx context.Context, abs string, info os.FileInfo) (string, error) {
	lang, ok := languageFor(abs)
	if !ok {
		return "()", nil
	}

	if info.Size() > t.config.Tools.MaxFileSize {
		return "", fmt.Errorf("%s is too large to outline (%d bytes, limit %d)", info.Name(), info.Size(), t.config.Tools.MaxFileSize)
	}

	src, err := t.fs.ReadFile(abs)
	if err != nil {
		return "", &tool.IOError{Op: "read", Path: info.Name(), Cause: err}
	}
	if !content.IsText(src) {
		return "", fmt.Errorf("%s does not contain valid UTF-8 text", info.Name())
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return "", fmt.Errorf("could not parse %s: %w", info.Name(), err)
	}
	defer tree.Close()

	root := tree.RootNode()
	defs, err := captureNames(lang.grammar, lang.defs, root, src)
	if err != nil {
		return "", err
	}
	refs, err := captureNames(lang.grammar, lang.refs, root, src)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
	return fmt.Sprintf("(module name:%s defs:%s refs:%s)", strconv.Quote(stem), formatNames(defs), formatNames(refs)), nil
}

// captureNames runs query over root and returns every captured node's text,
// de-duplicated and sorted.
func captureNames(grammar *sitter.Language, query string, root *sitter.Node, src []byte) ([]string, error) {
	q, err := sitter.NewQuery([]byte(query), grammar)
	if err != nil {
		return nil, fmt.Errorf("invalid outline query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	seen := make(map[string]struct{})
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		for _, c := range m.Captures {
			seen[c.Node.Content(src)] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func formatNames(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = strconv.Quote(name)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// displayName escapes control and non-ASCII characters in a file name.
func displayName(name string) string {
	q := strconv.QuoteToASCII(name)
	return q[1 : len(q)-1]
}
