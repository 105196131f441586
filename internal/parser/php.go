package parser

import (
	"strings"

	"github.com/VKCOM/php-parser/pkg/ast"
	"github.com/VKCOM/php-parser/pkg/conf"
	phperrors "github.com/VKCOM/php-parser/pkg/errors"
	phpparser "github.com/VKCOM/php-parser/pkg/parser"
	"github.com/VKCOM/php-parser/pkg/token"
	"github.com/VKCOM/php-parser/pkg/version"
	"github.com/VKCOM/php-parser/pkg/visitor/nsresolver"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
)

const phpLanguage = "php"

// phpVersion is the newest grammar the underlying parser supports.
var phpVersion = &version.Version{Major: 8, Minor: 1}

// PHPParser extracts classes, interfaces, traits, enums and functions from PHP files.
//
// Declarations are read from the top level of a file and from namespace blocks. Names in
// `extends`, `implements` and attributes are resolved against the file's namespace and `use`
// imports. Anonymous classes, closures and function bodies are skipped.
type PHPParser struct{}

// NewPHPParser returns a PHP parser.
func NewPHPParser() *PHPParser {
	return &PHPParser{}
}

// Language implements LanguageParser.
func (*PHPParser) Language() string {
	return phpLanguage
}

// Extensions implements LanguageParser.
func (*PHPParser) Extensions() []string {
	return []string{".php"}
}

// Parse implements LanguageParser. A file with any syntax error yields a SyntaxError and no declarations.
func (*PHPParser) Parse(path string, src []byte) ([]*declaration.Declaration, error) {
	var syntaxErrs []*phperrors.Error

	root, err := phpparser.Parse(src, conf.Config{
		Version: phpVersion,
		ErrorHandlerFunc: func(e *phperrors.Error) {
			syntaxErrs = append(syntaxErrs, e)
		},
	})
	if err != nil {
		return nil, errors.New(err)
	}

	if len(syntaxErrs) > 0 {
		first := syntaxErrs[0]

		syntaxErr := &SyntaxError{Path: path, Message: first.Msg}
		if first.Pos != nil {
			syntaxErr.Line = first.Pos.StartLine
		}

		return nil, errors.New(syntaxErr)
	}

	ex := &extractor{
		path:     path,
		resolver: nsresolver.NewNamespaceResolver(),
	}

	if file, ok := root.(*ast.Root); ok {
		if err := ex.statements(file.Stmts); err != nil {
			return nil, err
		}
	}

	return ex.decls, nil
}

// extractor collects the declarations of one file. The namespace resolver tracks the current
// namespace and the `use` imports in effect.
type extractor struct {
	resolver *nsresolver.NamespaceResolver
	path     string
	decls    []*declaration.Declaration
}

func (ex *extractor) statements(stmts []ast.Vertex) error {
	for _, stmt := range stmts {
		if err := ex.statement(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (ex *extractor) statement(stmt ast.Vertex) error {
	switch n := stmt.(type) {
	case *ast.StmtNamespace:
		ex.resolver.StmtNamespace(n)

		if n.Stmts == nil {
			return nil
		}

		err := ex.statements(n.Stmts)
		ex.resolver.Namespace = nsresolver.NewNamespace("")

		return err
	case *ast.StmtUseList:
		ex.resolver.StmtUse(n)
	case *ast.StmtGroupUseList:
		ex.resolver.StmtGroupUse(n)
	case *ast.StmtStmtList:
		return ex.statements(n.Stmts)
	case *ast.StmtClass:
		if n.Name == nil {
			return nil
		}

		spec := ex.spec(n.Name, declaration.KindClass, n.ClassTkn, n.AttrGroups)
		spec.Modifiers = classModifiers(n.Modifiers)
		spec.Interfaces = ex.names(n.Implements)

		if n.Extends != nil {
			spec.Parent = ex.resolve(n.Extends)
		}

		ex.members(&spec, n.Stmts)

		return ex.add(spec)
	case *ast.StmtInterface:
		spec := ex.spec(n.Name, declaration.KindInterface, n.InterfaceTkn, n.AttrGroups)
		spec.Interfaces = ex.names(n.Extends)
		ex.members(&spec, n.Stmts)

		return ex.add(spec)
	case *ast.StmtTrait:
		spec := ex.spec(n.Name, declaration.KindTrait, n.TraitTkn, n.AttrGroups)
		ex.members(&spec, n.Stmts)

		return ex.add(spec)
	case *ast.StmtEnum:
		spec := ex.spec(n.Name, declaration.KindEnum, n.EnumTkn, n.AttrGroups)
		spec.Interfaces = ex.names(n.Implements)
		ex.members(&spec, n.Stmts)

		return ex.add(spec)
	case *ast.StmtFunction:
		return ex.add(ex.spec(n.Name, declaration.KindFunction, n.FunctionTkn, n.AttrGroups))
	}

	return nil
}

// spec starts the record of a named declaration introduced by keyword.
func (ex *extractor) spec(name ast.Vertex, kind declaration.Kind, keyword *token.Token, attrGroups []ast.Vertex) declaration.Spec {
	spec := declaration.Spec{
		Name:      identifier(name),
		Namespace: ex.resolver.Namespace.Namespace,
		Kind:      kind,
		Location:  declaration.SourceLocation{Path: ex.path, Line: line(keyword)},
	}

	spec.Attachments = attach(spec.Attachments, declaration.ClassPoint, ex.attributes(attrGroups))

	return spec
}

// members records the methods of a class-like body and the attributes of its members.
func (ex *extractor) members(spec *declaration.Spec, stmts []ast.Vertex) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.StmtClassConstList:
			tags := ex.attributes(n.AttrGroups)

			for _, c := range n.Consts {
				if constant, ok := c.(*ast.StmtConstant); ok {
					point := declaration.Point{Kind: declaration.PointConstant, Name: identifier(constant.Name)}
					spec.Attachments = attach(spec.Attachments, point, tags)
				}
			}
		case *ast.StmtPropertyList:
			tags := ex.attributes(n.AttrGroups)

			for _, p := range n.Props {
				if prop, ok := p.(*ast.StmtProperty); ok {
					point := declaration.Point{Kind: declaration.PointProperty, Name: variableName(prop.Var)}
					spec.Attachments = attach(spec.Attachments, point, tags)
				}
			}
		case *ast.StmtClassMethod:
			method := declaration.Method{
				Name:           identifier(n.Name),
				Public:         true,
				RequiredParams: requiredParams(n.Params),
			}

			for _, modifier := range n.Modifiers {
				switch strings.ToLower(identifier(modifier)) {
				case "protected", "private":
					method.Public = false
				case "static":
					method.Static = true
				}
			}

			spec.Methods = append(spec.Methods, method)

			point := declaration.Point{Kind: declaration.PointMethod, Name: method.Name}
			spec.Attachments = attach(spec.Attachments, point, ex.attributes(n.AttrGroups))
		}
	}
}

// attributes returns the resolved names of the attributes in attrGroups, in source order.
func (ex *extractor) attributes(attrGroups []ast.Vertex) []string {
	var names []string

	for _, g := range attrGroups {
		group, ok := g.(*ast.AttributeGroup)
		if !ok {
			continue
		}

		for _, a := range group.Attrs {
			if attr, ok := a.(*ast.Attribute); ok {
				names = append(names, ex.resolve(attr.Name))
			}
		}
	}

	return names
}

func (ex *extractor) names(nodes []ast.Vertex) []string {
	names := make([]string, 0, len(nodes))

	for _, node := range nodes {
		names = append(names, ex.resolve(node))
	}

	return names
}

// resolve returns the qualified name a class name refers to in the current scope.
func (ex *extractor) resolve(node ast.Vertex) string {
	name, err := ex.resolver.Namespace.ResolveName(node, "")
	if err != nil {
		return ""
	}

	return name
}

func (ex *extractor) add(spec declaration.Spec) error {
	decl, err := declaration.New(spec)
	if err != nil {
		return errors.New(&SyntaxError{Path: ex.path, Line: spec.Location.Line, Message: err.Error()})
	}

	ex.decls = append(ex.decls, decl)

	return nil
}

func attach(attachments []declaration.Attachment, point declaration.Point, tags []string) []declaration.Attachment {
	if len(tags) == 0 {
		return attachments
	}

	return append(attachments, declaration.Attachment{Point: point, Tags: tags})
}

var classModifierNames = map[string]declaration.Modifier{
	"abstract": declaration.ModifierAbstract,
	"final":    declaration.ModifierFinal,
	"readonly": declaration.ModifierReadonly,
}

func classModifiers(nodes []ast.Vertex) []declaration.Modifier {
	var modifiers []declaration.Modifier

	for _, node := range nodes {
		if modifier, ok := classModifierNames[strings.ToLower(identifier(node))]; ok {
			modifiers = append(modifiers, modifier)
		}
	}

	return modifiers
}

// requiredParams counts the parameters that have neither a default value nor a variadic marker.
func requiredParams(params []ast.Vertex) int {
	var required int

	for _, p := range params {
		if param, ok := p.(*ast.Parameter); ok && param.DefaultValue == nil && param.VariadicTkn == nil {
			required++
		}
	}

	return required
}

func identifier(node ast.Vertex) string {
	if id, ok := node.(*ast.Identifier); ok {
		return string(id.Value)
	}

	return ""
}

func variableName(node ast.Vertex) string {
	if variable, ok := node.(*ast.ExprVariable); ok {
		return strings.TrimPrefix(identifier(variable.Name), "$")
	}

	return ""
}

func line(tkn *token.Token) int {
	if tkn == nil || tkn.Position == nil {
		return 0
	}

	return tkn.Position.StartLine
}
