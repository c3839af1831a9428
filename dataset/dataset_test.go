package dataset

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, clamped := Generate(1000, 0, 42)
	require.False(t, clamped)
	require.Len(t, a, 1000)

	b, _ := Generate(1000, 0, 42)
	require.Equal(t, a, b, "같은 시드는 같은 데이터")

	c, clamped := Generate(1000, 10, 42)
	require.True(t, clamped)
	require.Len(t, c, 10)

	empty, _ := Generate(-1, 0, 1)
	require.Empty(t, empty)
}

func TestGenerateShape(t *testing.T) {
	asc, _ := GenerateShape(Ascending, 100, 0, 1)
	assert.True(t, IsSorted(asc))

	desc, _ := GenerateShape(Descending, 100, 0, 1)
	assert.False(t, IsSorted(desc))
	assert.Equal(t, int32(100), desc[0])

	constant, _ := GenerateShape(Constant, 100, 0, 1)
	assert.True(t, IsSorted(constant))

	few, _ := GenerateShape(FewUnique, 1000, 0, 1)
	for _, v := range few {
		assert.GreaterOrEqual(t, v, int32(0))
		assert.Less(t, v, int32(8))
	}
}

func TestParseShape(t *testing.T) {
	for _, shape := range Shapes {
		got, err := ParseShape(string(shape))
		require.NoError(t, err)
		require.Equal(t, shape, got)
	}
	_, err := ParseShape("zigzag")
	require.Error(t, err)
}

func TestVerifySorted(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, VerifySorted(ctx, nil, 4))
	require.NoError(t, VerifySorted(ctx, []int32{1}, 4))

	asc, _ := GenerateShape(Ascending, 5*minChunk, 0, 0)
	require.NoError(t, VerifySorted(ctx, asc, 8))

	// 조각 경계에 걸친 역전도 잡아야 한다
	asc[minChunk-1], asc[minChunk] = asc[minChunk], asc[minChunk-1]
	err := VerifySorted(ctx, asc, 8)
	require.True(t, errors.Is(err, ErrNotSorted))
	require.False(t, IsSorted(asc))
}

func TestSameMultiset(t *testing.T) {
	require.True(t, SameMultiset(nil, nil))
	require.True(t, SameMultiset([]int32{3, 1, 3}, []int32{1, 3, 3}))
	require.False(t, SameMultiset([]int32{3, 1, 3}, []int32{1, 1, 3}))
	require.False(t, SameMultiset([]int32{1}, []int32{1, 1}))
}

func TestFileRoundTrip(t *testing.T) {
	data, _ := Generate(10_000, 0, 7)
	data = append(data, -1, -2147483648)
	path := filepath.Join(t.TempDir(), "data.txt")

	require.NoError(t, WriteFile(data, path))
	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1\n\nabc\n"), 0o600))
	_, err = ReadFile(bad)
	require.ErrorContains(t, err, "bad.txt:3")

	overflow := filepath.Join(dir, "overflow.txt")
	require.NoError(t, os.WriteFile(overflow, []byte("99999999999\n"), 0o600))
	_, err = ReadFile(overflow)
	require.Error(t, err)

	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("\n 5 \n"), 0o600))
	got, err := ReadFile(blank)
	require.NoError(t, err)
	require.True(t, slices.Equal([]int32{5}, got))
}
