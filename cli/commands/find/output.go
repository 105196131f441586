package find

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/listener"
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/log"
	"github.com/mgutz/ansi"
)

func newOutputListener(opts *options.Options) (listener.Listener, error) {
	switch opts.Format {
	case options.FormatText:
		return &textListener{writer: opts.Writer, colorizer: NewColorizer(shouldColor(opts, opts.Writer))}, nil
	case options.FormatJSON:
		return &jsonListener{writer: opts.Writer}, nil
	default:
		// Validate rejects other formats before Run is reached.
		return nil, errors.Errorf("invalid format %q", opts.Format)
	}
}

// textListener prints one qualified name per line as records arrive.
type textListener struct {
	writer    io.Writer
	colorizer *Colorizer
}

func (out *textListener) Handle(_ context.Context, decl *declaration.Declaration) error {
	if _, err := fmt.Fprintln(out.writer, out.colorizer.Colorize(decl)); err != nil {
		return errors.New(err)
	}

	return nil
}

// jsonListener buffers the records and prints them as one JSON array on Finalize.
type jsonListener struct {
	writer io.Writer
	decls  declaration.Declarations
}

func (out *jsonListener) Handle(_ context.Context, decl *declaration.Declaration) error {
	out.decls = append(out.decls, decl)
	return nil
}

func (out *jsonListener) Finalize(context.Context) error {
	decls := out.decls
	if decls == nil {
		decls = declaration.Declarations{}
	}

	jsonBytes, err := json.MarshalIndent(decls, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	if _, err := out.writer.Write(append(jsonBytes, '\n')); err != nil {
		return errors.New(err)
	}

	return nil
}

// Colorizer paints the namespace dim and the name by declaration kind.
type Colorizer struct {
	kindColorizers     map[declaration.Kind]func(string) string
	namespaceColorizer func(string) string
	fallbackColorizer  func(string) string
}

// NewColorizer returns a Colorizer. With shouldColor unset it returns names unchanged.
func NewColorizer(shouldColor bool) *Colorizer {
	plain := func(s string) string { return s }

	if !shouldColor {
		return &Colorizer{
			kindColorizers:     map[declaration.Kind]func(string) string{},
			namespaceColorizer: plain,
			fallbackColorizer:  plain,
		}
	}

	return &Colorizer{
		kindColorizers: map[declaration.Kind]func(string) string{
			declaration.KindClass:     ansi.ColorFunc("blue+bh"),
			declaration.KindInterface: ansi.ColorFunc("green+bh"),
			declaration.KindTrait:     ansi.ColorFunc("magenta+bh"),
			declaration.KindEnum:      ansi.ColorFunc("yellow+bh"),
			declaration.KindFunction:  ansi.ColorFunc("cyan+bh"),
		},
		namespaceColorizer: ansi.ColorFunc("white+d"),
		fallbackColorizer:  plain,
	}
}

// Colorize renders the qualified name of decl.
func (c *Colorizer) Colorize(decl *declaration.Declaration) string {
	colorizeName, ok := c.kindColorizers[decl.Kind()]
	if !ok {
		colorizeName = c.fallbackColorizer
	}

	if decl.Namespace() == "" {
		return colorizeName(decl.Name())
	}

	return c.namespaceColorizer(decl.Namespace()+declaration.Separator) + colorizeName(decl.Name())
}

// shouldColor returns true if output written to w should be colored.
func shouldColor(opts *options.Options, w io.Writer) bool {
	return !opts.NoColor && log.IsTerminal(w)
}
