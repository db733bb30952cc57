package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/molsel"
	"github.com/hupe1980/molsel/codec"
	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two chains of three two-atom residues, chain 0 also copied by a half turn
func writeFixture(t *testing.T) string {
	t.Helper()
	atoms := &AtomsFixture{}
	for c := range 2 {
		for r := range 3 {
			for a := range 2 {
				atoms.X = append(atoms.X, float64(c)*3)
				atoms.Y = append(atoms.Y, float64(r)*1.5)
				atoms.Z = append(atoms.Z, float64(a)*0.5)
				atoms.ResidueIndex = append(atoms.ResidueIndex, c*3+r)
				atoms.ChainIndex = append(atoms.ChainIndex, c)
			}
		}
	}
	atoms.ChainEntity = []int{0, 0}
	rot := geom.RotationZ(math.Pi)

	f := Fixture{
		Models:    []ModelFixture{{ID: "m", ModelNum: 1, EntityIDs: []string{"1"}, Atoms: atoms}},
		Operators: []OperatorFixture{{Name: "2", Matrix: rot[:], Symmetry: "assembly"}},
		Units: []UnitFixture{
			{ID: 0, Model: "m", Elements: []int{0, 1, 2, 3, 4, 5}},
			{ID: 1, Model: "m", Elements: []int{6, 7, 8, 9, 10, 11}, ChainGroupID: 1},
			{ID: 10, Model: "m", Elements: []int{0, 1, 2, 3, 4, 5}, Operator: "2"},
		},
	}
	data, err := gojson.Marshal(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "structure.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "molsel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFind(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "find", "--structure", path, "--at", "0,0,0", "-r", "0.1", "--json")
	require.NoError(t, err)

	var hits []molsel.Hit
	require.NoError(t, gojson.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 2)
	units := []int{hits[0].UnitID, hits[1].UnitID}
	assert.ElementsMatch(t, []int{0, 10}, units)
	for _, h := range hits {
		assert.Equal(t, 0, h.Element)
		assert.Zero(t, h.SquaredDistance)
	}

	out, err = run(t, "find", "--structure", path, "--at", "3,0,0", "-r", "0.1")
	require.NoError(t, err)
	assert.Equal(t, "unit=1 element=6 source=6 squared_distance=0.0000\n", out)
}

func TestNearest(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "nearest", "--structure", path, "--at", "0,1.5,0", "--k", "3", "--json")
	require.NoError(t, err)

	var hits []molsel.Hit
	require.NoError(t, gojson.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	assert.Equal(t, molsel.Hit{UnitID: 0, Element: 2, SourceIndex: 2}, hits[0])
	assert.LessOrEqual(t, hits[1].SquaredDistance, hits[2].SquaredDistance)
}

func TestExpr(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "expr", "--structure", path, "--at", "0,0,0", "-r", "0.1", "-g", "chain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(struct.modifier.union (struct.generator.atom-groups"))
	// both copies of chain 0 share one term
	assert.Contains(t, out, `(core.type.set "1_555" "2")`)

	out, err = run(t, "expr", "--structure", path, "--at", "0,0,0", "-r", "0.1", "--json")
	require.NoError(t, err)
	var e expr.Expression
	require.NoError(t, gojson.Unmarshal([]byte(out), &e))
	assert.Equal(t, expr.SymUnion, e.Head)
}

func TestExpr_Encode(t *testing.T) {
	path := writeFixture(t)
	cfg := writeConfig(t, "codec: go-json+zstd\nlog_level: error\n")

	out, err := run(t, "expr", "--structure", path, "--config", cfg, "--at", "0,0,0", "-r", "0.1", "--encode")
	require.NoError(t, err)

	name, payload, ok := strings.Cut(strings.TrimSpace(out), " ")
	require.True(t, ok)
	assert.Equal(t, "go-json+zstd", name)

	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	c, ok := codec.ByName(name)
	require.True(t, ok)
	var e expr.Expression
	require.NoError(t, c.Unmarshal(data, &e))
	assert.Equal(t, expr.SymUnion, e.Head)
}

func TestErrors(t *testing.T) {
	path := writeFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing structure", args: []string{"find"}, want: "structure"},
		{name: "bad point", args: []string{"find", "-s", path, "--at", "1,2"}, want: "want x,y,z"},
		{name: "bad radius", args: []string{"find", "-s", path, "--radius=-1"}, want: molsel.ErrInvalidRadius.Error()},
		{name: "bad k", args: []string{"nearest", "-s", path, "--k", "0"}, want: molsel.ErrInvalidK.Error()},
		{name: "bad granularity", args: []string{"expr", "-s", path, "-g", "polymer"}, want: "unknown granularity"},
		{name: "bad log level", args: []string{"find", "-s", path, "--log-level", "loud"}, want: "--log-level"},
		{name: "missing file", args: []string{"find", "-s", filepath.Join(t.TempDir(), "none.json")}, want: "read structure"},
		{
			name: "bad config",
			args: []string{"find", "-s", path, "--config", writeConfig(t, "lookup:\n  elements_per_cell: 0\n")},
			want: "invalid config",
		},
		{
			name: "bad codec",
			args: []string{"find", "-s", path, "--config", writeConfig(t, "codec: msgpack\n")},
			want: "invalid config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFixture_Invalid(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) string {
		p := filepath.Join(dir, "f.json")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	_, err := readFixture(write(`{"models": [], "units": []}`))
	assert.ErrorContains(t, err, "invalid structure")

	f, err := readFixture(write(`{
		"models": [{"id": "m", "atoms": {"x": [0, 1], "y": [0], "z": [0, 0], "residue_index": [0, 0], "chain_index": [0, 0]}}],
		"units": [{"id": 0, "model": "m", "elements": [0, 1]}]
	}`))
	require.NoError(t, err)
	_, err = f.Build()
	assert.ErrorIs(t, err, errColumnLength)

	f, err = readFixture(write(`{
		"models": [{"id": "m", "atoms": {"x": [0, 1], "y": [0, 0], "z": [0, 0], "residue_index": [0, 0], "chain_index": [0, 0]}}],
		"operators": [{"name": "shear", "matrix": [1,0,0,0, 1,1,0,0, 0,0,1,0, 0,0,0,1]}],
		"units": [{"id": 0, "model": "m", "elements": [0, 1], "operator": "shear"}]
	}`))
	require.NoError(t, err)
	_, err = f.Build()
	assert.ErrorContains(t, err, "shear")
}

func TestFixture_SegmentAndSourceIndices(t *testing.T) {
	tests := []struct {
		name  string
		atoms string
		want  error
	}{
		{"residue ids not from zero", `"residue_index": [10, 10, 11, 11], "chain_index": [0, 0, 0, 0]`, errSegmentIndex},
		{"residue ids skip", `"residue_index": [0, 0, 2, 2], "chain_index": [0, 0, 0, 0]`, errSegmentIndex},
		{"chain ids decrease", `"residue_index": [0, 1, 2, 3], "chain_index": [0, 1, 1, 0]`, errSegmentIndex},
		{"negative source index", `"residue_index": [0, 0, 1, 1], "chain_index": [0, 0, 0, 0], "source_index": [0, 1, -2, 3]`, errSourceIndex},
		{"valid", `"residue_index": [0, 0, 1, 1], "chain_index": [0, 0, 1, 1], "source_index": [4, 5, 6, 7]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "f.json")
			body := `{
				"models": [{"id": "m", "atoms": {"x": [0, 1, 2, 3], "y": [0, 0, 0, 0], "z": [0, 0, 0, 0], ` + tt.atoms + `}}],
				"units": [{"id": 0, "model": "m", "elements": [0, 1, 2, 3]}]
			}`
			require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

			f, err := readFixture(p)
			require.NoError(t, err)
			_, err = f.Build()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpr_RejectsGappedResidues(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.json")
	body := `{
		"models": [{"id": "m", "atoms": {"x": [0, 1, 2, 3], "y": [0, 0, 0, 0], "z": [0, 0, 0, 0],
			"residue_index": [10, 10, 11, 11], "chain_index": [0, 0, 0, 0]}}],
		"units": [{"id": 0, "model": "m", "elements": [0, 1, 2, 3]}]
	}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	_, err := run(t, "expr", "--structure", p, "--at", "0,0,0", "-r", "0.1")
	assert.ErrorIs(t, err, errSegmentIndex)
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, codec.Default.Name(), cfg.Codec)
	assert.Equal(t, 32, cfg.Lookup.ElementsPerCell)

	cfg, err = loadConfig(writeConfig(t, "log_level: debug\nlookup:\n  cell_size: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4.0, cfg.Lookup.CellSize)
	assert.Equal(t, 32, cfg.Lookup.ElementsPerCell)
}
