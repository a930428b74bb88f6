package templates

import (
	"errors"
	"fmt"
	"strings"
	texttemplate "text/template"
	"text/template/parse"
)

var (
	// ErrUnknownVariable indicates a template referencing a field
	// outside the fixed variable set. Raised at compile time.
	ErrUnknownVariable = errors.New("template references unknown variable")
	// ErrRender indicates a template that failed to render. A version
	// is never created with a partially rendered name or path.
	ErrRender = errors.New("template render failed")
)

// Template is a compiled naming template. Compilation validates both the
// syntax and every referenced variable, so a Template that exists always
// renders against a fully populated Vars value.
type Template struct {
	text string
	tmpl *texttemplate.Template
}

// Compile parses src and verifies that every field it references is part
// of the naming variable contract.
func Compile(name, src string) (*Template, error) {
	tmpl, err := texttemplate.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", name, err)
	}
	for _, t := range tmpl.Templates() {
		if t.Tree == nil || t.Tree.Root == nil {
			continue
		}
		if err := checkNode(t.Tree.Root); err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
	}
	return &Template{text: src, tmpl: tmpl}, nil
}

// Source returns the original template text.
func (t *Template) Source() string {
	return t.text
}

// Render executes the template. A failure here means the template
// referenced data the variable set does not carry for this version;
// callers must treat it as fatal, never as an empty string.
func (t *Template) Render(vars Vars) (string, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return sb.String(), nil
}

// checkNode walks the parse tree collecting field references.
func checkNode(node parse.Node) error {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return nil
		}
		for _, child := range n.Nodes {
			if err := checkNode(child); err != nil {
				return err
			}
		}
	case *parse.ActionNode:
		return checkPipe(n.Pipe)
	case *parse.IfNode:
		return checkBranch(&n.BranchNode)
	case *parse.RangeNode, *parse.WithNode, *parse.TemplateNode:
		// Loops, scope changes and template calls would break the
		// flat variable contract.
		return fmt.Errorf("%w: construct %T not allowed", ErrUnknownVariable, n)
	}
	return nil
}

func checkBranch(n *parse.BranchNode) error {
	if err := checkPipe(n.Pipe); err != nil {
		return err
	}
	if err := checkNode(n.List); err != nil {
		return err
	}
	if n.ElseList != nil {
		return checkNode(n.ElseList)
	}
	return nil
}

func checkPipe(pipe *parse.PipeNode) error {
	if pipe == nil {
		return nil
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				if err := checkField(a.Ident); err != nil {
					return err
				}
			case *parse.ChainNode:
				return fmt.Errorf("%w: chained access not allowed", ErrUnknownVariable)
			case *parse.VariableNode:
				return fmt.Errorf("%w: variables not allowed", ErrUnknownVariable)
			case *parse.PipeNode:
				if err := checkPipe(a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkField(ident []string) error {
	path := strings.Join(ident, ".")
	if !allowedFields[path] {
		return fmt.Errorf("%w: .%s", ErrUnknownVariable, path)
	}
	return nil
}
