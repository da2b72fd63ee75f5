package flow

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	ctx := context.Background()

	v, err := Call0(func() string { return "x" }).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = Call1(strconv.Itoa, 7).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	n, err := Call2(add, 2, 3).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = Call3(func(a, b, c int) int { return a * b * c }, 2, 3, 4).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, n)
}

func TestTry(t *testing.T) {
	ctx := context.Background()
	bad := errors.New("bad")

	_, err := Try0(func() (int, error) { return 0, bad }).Invoke(ctx)
	assert.ErrorIs(t, err, bad)

	n, err := Try1(strconv.Atoi, "42").Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Try1(strconv.Atoi, "nope").Invoke(ctx)
	assert.Error(t, err)

	div := func(a, b int) (int, error) {
		if b == 0 {
			return 0, bad
		}
		return a / b, nil
	}
	n, err = Try2(div, 9, 3).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	clamp := func(v, lo, hi int) (int, error) { return max(lo, min(v, hi)), nil }
	n, err = Try3(clamp, 15, 0, 10).Invoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestNilCallables(t *testing.T) {
	assert.Nil(t, Call0[int](nil))
	assert.Nil(t, Call1[int, int](nil, 1))
	assert.Nil(t, Try2[int, int, int](nil, 1, 2))
	assert.Nil(t, Bind[int](nil, 1))
	assert.Nil(t, BindArgs[int](nil, Args{}))
	assert.True(t, IsNil(Task[int](Call0[int](nil))))
	assert.True(t, IsNil(Task[int](Bind[int](nil))))
}

func TestBind(t *testing.T) {
	greet := func(_ context.Context, args Args) (string, error) {
		name, err := ArgAs[string](args, 0)
		if err != nil {
			return "", err
		}
		greeting := "hello"
		if g, err := KeywordAs[string](args, "greeting"); err == nil {
			greeting = g
		}
		return greeting + " " + name, nil
	}

	base := Bind(greet, "ann")
	v, err := base.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello ann", v)

	custom := base.WithKeyword("greeting", "hi")
	v, err = custom.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi ann", v)

	_, ok := base.Args().Get("greeting")
	assert.False(t, ok, "WithKeyword does not modify the receiver")
}

func TestBind_CopiesArguments(t *testing.T) {
	positional := []any{1, 2}
	keyword := map[string]any{"k": "v"}
	task := BindArgs(func(_ context.Context, args Args) (int, error) {
		args.Positional[0] = 100
		return len(args.Positional), nil
	}, Args{Positional: positional, Keyword: keyword})

	positional[1] = 99
	keyword["k"] = "changed"

	n, err := task.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	args := task.Args()
	assert.Equal(t, []any{1, 2}, args.Positional)
	assert.Equal(t, "v", args.Keyword["k"])
}

func TestArgs(t *testing.T) {
	args := Args{Positional: []any{"a", 2}, Keyword: map[string]any{"n": 3}}

	assert.Equal(t, "a", args.Arg(0))
	assert.Nil(t, args.Arg(5))
	assert.Nil(t, args.Arg(-1))

	_, err := ArgAs[int](args, 0)
	assert.Error(t, err)
	n, err := ArgAs[int](args, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = KeywordAs[int](args, "n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = KeywordAs[int](args, "missing")
	assert.ErrorContains(t, err, "missing")
	_, err = KeywordAs[string](args, "n")
	assert.Error(t, err)
}
