package main

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudcmds/monkey/ast"
	"github.com/cloudcmds/monkey/parser"
)

func newAstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the AST for monkey code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := getMonkeyCode(cmd, args)
			if err != nil {
				return err
			}
			format, err := getOutputFormat()
			if err != nil {
				return err
			}
			program, err := parseSource(cmd.Context(), src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, nodeToJSON(program))
			}
			newASTPrinter(out, useColor(out)).printAST(program)
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

// parseSource parses a program, reporting all diagnostics as one error.
func parseSource(ctx context.Context, src source) (*ast.Program, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	program, err := parser.Parse(ctx, src.code, parser.WithFilename(src.filename))
	log.Debug().
		Str("file", src.filename).
		Int("bytes", len(src.code)).
		Int("statements", len(program.Stmts)).
		Err(err).
		Msg("parsed input")
	return program, err
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Line     int        `json:"line,omitempty"`
	Column   int        `json:"column,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}
	builder := &jsonBuilder{}
	ast.Walk(builder, node)
	return builder.root
}

// jsonBuilder is an ast.Visitor that appends each visited node to the
// children of its parent. A fresh builder is returned for every node so
// that the node's own children are attached beneath it.
type jsonBuilder struct {
	root   *ASTNode
	parent *ASTNode
	skip   ast.Node
}

func (b *jsonBuilder) Visit(node ast.Node) ast.Visitor {
	if node == b.skip {
		return nil
	}
	result := &ASTNode{Type: nodeTypeName(node)}
	if _, isProgram := node.(*ast.Program); !isProgram {
		result.Line = node.Pos().LineNumber()
		result.Column = node.Pos().ColumnNumber()
	}

	next := &jsonBuilder{parent: result}
	switch n := node.(type) {
	case *ast.Ident:
		result.Value = n.Name
	case *ast.Var:
		// The bound name is shown as the value rather than as a child
		if n.Name != nil {
			result.Value = n.Name.Name
			next.skip = n.Name
		}
	}

	if b.parent == nil {
		b.root = result
	} else {
		b.parent.Children = append(b.parent.Children, result)
	}
	return next
}

func nodeTypeName(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// astPrinter writes an indented tree view of a program.
type astPrinter struct {
	w            io.Writer
	nodeStyle    *color.Color
	valueStyle   *color.Color
	literalStyle *color.Color
	mutedStyle   *color.Color
}

func newASTPrinter(w io.Writer, colored bool) *astPrinter {
	p := &astPrinter{
		w:            w,
		nodeStyle:    color.New(color.FgHiCyan, color.Bold),
		valueStyle:   color.New(color.FgGreen),
		literalStyle: color.New(color.FgYellow),
		mutedStyle:   color.New(color.FgHiBlack),
	}
	setColor(colored, p.nodeStyle, p.valueStyle, p.literalStyle, p.mutedStyle)
	return p
}

func (p *astPrinter) printAST(program *ast.Program) {
	root := nodeToJSON(program)
	fmt.Fprintln(p.w, p.nodeStyle.Sprint(root.Type))
	p.printChildren(root, "  ")
}

func (p *astPrinter) printNode(node ast.Node, indent string, isLast bool) {
	if tree := nodeToJSON(node); tree != nil {
		p.printTree(tree, indent, isLast)
	}
}

func (p *astPrinter) printTree(node *ASTNode, indent string, isLast bool) {
	// Choose connector
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	prefix := p.mutedStyle.Sprintf("%s%s", indent, connector)
	typeName := p.nodeStyle.Sprint(node.Type)

	switch node.Type {
	case "Ident":
		fmt.Fprintf(p.w, "%s%s %s\n", prefix, typeName, p.literalStyle.Sprintf("%q", node.Value))
	case "Var":
		fmt.Fprintf(p.w, "%s%s %s\n", prefix, typeName, p.valueStyle.Sprint(node.Value))
		p.printValue(node, childIndent)
	case "Return":
		fmt.Fprintf(p.w, "%s%s\n", prefix, typeName)
		p.printValue(node, childIndent)
	default:
		fmt.Fprintf(p.w, "%s%s\n", prefix, typeName)
		p.printChildren(node, childIndent)
	}
}

func (p *astPrinter) printChildren(node *ASTNode, indent string) {
	for i, child := range node.Children {
		p.printTree(child, indent, i == len(node.Children)-1)
	}
}

// printValue prints the value of a statement, or a placeholder when the
// value was not parsed.
func (p *astPrinter) printValue(stmt *ASTNode, indent string) {
	if len(stmt.Children) > 0 {
		p.printChildren(stmt, indent)
		return
	}
	fmt.Fprintf(p.w, "%s%s\n", p.mutedStyle.Sprintf("%s└─ ", indent), p.mutedStyle.Sprint("None"))
}
