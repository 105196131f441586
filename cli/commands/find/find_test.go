package find_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/gruntwork-io/declscan/cli/commands/find"
	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sources = map[string]string{
	"/work/src/Http/Controller.php": `<?php
namespace App\Http;

abstract class Controller {}
`,
	"/work/src/Http/UserController.php": `<?php
namespace App\Http;

final class UserController extends Controller implements \JsonSerializable
{
    public function jsonSerialize(): mixed { return []; }
}
`,
	"/work/src/Models/Status.php": `<?php
namespace App\Models;

enum Status: string
{
    case Active = 'active';
}
`,
	"/work/src/Models/User.php": `<?php
namespace App\Models;

#[Entity]
class User {}
`,
	"/work/src/helpers.php": `<?php
namespace App;

function helper(): void {}
`,
	"/work/src/broken.php": `<?php
class Broken extends {}
`,
}

func newOptions(t *testing.T, queries ...string) (*options.Options, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	opts := options.NewOptionsWithWriters(stdout, stderr)
	opts.WorkingDir = "/work"
	opts.Roots = []string{"src"}
	opts.FilterQueries = queries
	opts.NumWorkers = 2

	for path, content := range sources {
		require.NoError(t, vfs.WriteFile(opts.FS, path, []byte(content), 0o644))
	}

	return opts, stdout, stderr
}

func newLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

func lines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestRunText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		queries []string
		want    []string
	}{
		{
			name: "no filter",
			want: []string{`App\Http\Controller`, `App\Http\UserController`, `App\Models\Status`, `App\Models\User`, `App\helper`},
		},
		{
			name:    "kind",
			queries: []string{"kind=class"},
			want:    []string{`App\Http\Controller`, `App\Http\UserController`, `App\Models\User`},
		},
		{
			name:    "intersection with negation",
			queries: []string{"kind=class | !is=abstract"},
			want:    []string{`App\Http\UserController`, `App\Models\User`},
		},
		{
			name:    "namespace pattern",
			queries: []string{`App\Models\*`},
			want:    []string{`App\Models\Status`, `App\Models\User`},
		},
		{
			name:    "union of queries",
			queries: []string{"kind=enum", "kind=function"},
			want:    []string{`App\Models\Status`, `App\helper`},
		},
		{
			name:    "only negated queries",
			queries: []string{"!kind=class"},
			want:    []string{`App\Models\Status`, `App\helper`},
		},
		{
			name:    "extends resolves through discovered parents",
			queries: []string{`extends=App\Http\Controller`},
			want:    []string{`App\Http\UserController`},
		},
		{
			name:    "attribute",
			queries: []string{"attribute=Entity"},
			want:    []string{`App\Models\User`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, stdout, _ := newOptions(t, tc.queries...)

			require.NoError(t, find.Run(t.Context(), newLogger(), opts))
			assert.Equal(t, tc.want, lines(stdout))
		})
	}
}

func TestRunNoMatches(t *testing.T) {
	t.Parallel()

	opts, stdout, _ := newOptions(t, "kind=trait")

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))
	assert.Empty(t, stdout.String())
}

func TestRunJSON(t *testing.T) {
	t.Parallel()

	opts, stdout, _ := newOptions(t, "kind=class | !is=abstract")
	opts.Format = options.FormatJSON

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out, 2)

	assert.Equal(t, `App\Http\UserController`, out[0]["qualifiedName"])
	assert.Equal(t, []any{"final"}, out[0]["modifiers"])
	assert.Equal(t, []any{"JsonSerializable"}, out[0]["interfaces"])
	assert.Equal(t, `App\Models\User`, out[1]["qualifiedName"])
}

func TestRunJSONEmpty(t *testing.T) {
	t.Parallel()

	opts, stdout, _ := newOptions(t, "kind=trait")
	opts.Format = options.FormatJSON

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))
	assert.Equal(t, "[]\n", stdout.String())
}

func TestRunCount(t *testing.T) {
	t.Parallel()

	opts, stdout, _ := newOptions(t, "kind=class")
	opts.Count = true

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))
	assert.Equal(t, "3\n", stdout.String())
}

func TestRunExcludeAndHidden(t *testing.T) {
	t.Parallel()

	opts, stdout, _ := newOptions(t)
	opts.Excludes = []string{"Http"}
	require.NoError(t, vfs.WriteFile(opts.FS, "/work/src/.cache/Cached.php", []byte("<?php class Cached {}"), 0o644))

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))
	assert.Equal(t, []string{`App\Models\Status`, `App\Models\User`, `App\helper`}, lines(stdout))

	stdout.Reset()

	opts.Hidden = true

	require.NoError(t, find.Run(t.Context(), newLogger(), opts))
	assert.Equal(t, []string{"Cached", `App\Models\Status`, `App\Models\User`, `App\helper`}, lines(stdout))
}

func TestRunQueryErrors(t *testing.T) {
	t.Parallel()

	opts, stdout, stderr := newOptions(t, "kind=class", "kind=struct")

	err := find.Run(t.Context(), newLogger(), opts)
	require.Error(t, err)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Filter parsing error")
	assert.Contains(t, stderr.String(), "--filter[1] 'kind=struct'")
	assert.Contains(t, stderr.String(), "Supported kinds")
}

func TestRunMissingRoot(t *testing.T) {
	t.Parallel()

	opts, _, _ := newOptions(t)
	opts.Roots = []string{"missing"}

	require.Error(t, find.Run(t.Context(), newLogger(), opts))
}

func TestColorizer(t *testing.T) {
	t.Parallel()

	decl := declaration.MustNew(declaration.Spec{Name: "User", Namespace: "App", Kind: declaration.KindClass})
	fn := declaration.MustNew(declaration.Spec{Name: "helper", Kind: declaration.KindFunction})

	plain := find.NewColorizer(false)
	assert.Equal(t, `App\User`, plain.Colorize(decl))
	assert.Equal(t, "helper", plain.Colorize(fn))

	colored := find.NewColorizer(true).Colorize(decl)
	assert.NotEqual(t, `App\User`, colored)
	assert.Contains(t, colored, "User")
}
