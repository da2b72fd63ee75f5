package flow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Success(t *testing.T) {
	r := Success(42).at(3, time.Second)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.False(t, r.IsEmpty())
	assert.Equal(t, 42, r.Value())
	assert.NoError(t, r.Err())
	assert.Equal(t, 3, r.Index())
	assert.Equal(t, time.Second, r.Duration())
	assert.False(t, r.CreatedAt().IsZero())

	_, ok := r.Failure()
	assert.False(t, ok)
}

func TestResult_Fail(t *testing.T) {
	cause := errors.New("disk full")
	r := Fail[int](&TaskFailure{Index: 1, Name: "write", Err: cause})

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.Equal(t, 0, r.Value())
	assert.ErrorIs(t, r.Err(), cause)

	f, ok := r.Failure()
	require.True(t, ok)
	assert.Equal(t, "write", f.Name)
	assert.Equal(t, "task 1 (write) failed: disk full", f.Error())

	v, err := r.Unwrap()
	assert.Equal(t, 0, v)
	assert.Error(t, err)
}

func TestResult_FailNil(t *testing.T) {
	r := Fail[string](nil)
	assert.True(t, r.IsFailure())
	assert.EqualError(t, r.Err(), "unknown failure")
}

func TestResult_Empty(t *testing.T) {
	var r Result[int]
	assert.True(t, r.IsEmpty())
	assert.False(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
}

func TestResult_UniqueIds(t *testing.T) {
	assert.NotEqual(t, Success(1).Id(), Success(1).Id())
}

func TestFinally(t *testing.T) {
	describe := func(r Result[int]) string {
		return Finally[int, string](r,
			func(v int) string { return fmt.Sprintf("ok %d", v) },
			func(err error) string { return "err " + err.Error() })
	}

	assert.Equal(t, "ok 2", describe(Success(2)))
	assert.Equal(t, "err boom", describe(Fail[int](errors.New("boom"))))
}

func TestCollect(t *testing.T) {
	e1 := &TaskFailure{Index: 1, Name: "b", Err: errors.New("one")}
	e3 := &TaskFailure{Index: 3, Name: "d", Err: errors.New("three"), Panicked: true}
	results := []Result[int]{Success(1), Fail[int](e1), Success(3), Fail[int](e3)}

	assert.Equal(t, []int{1, 0, 3, 0}, Values(results))
	assert.False(t, OK(results))
	assert.Equal(t, []*TaskFailure{e1, e3}, Failures(results))

	err := Errors(results)
	assert.ErrorIs(t, err, ErrTaskFailed)
	assert.Len(t, GetErrors(err), 2)
	assert.Contains(t, err.Error(), "task 3 (d) panicked: three")

	ok := []Result[int]{Success(1)}
	assert.True(t, OK(ok))
	assert.NoError(t, Errors(ok))
	assert.Empty(t, Failures(ok))
	assert.True(t, OK[int](nil))
}

func TestErrors_Matching(t *testing.T) {
	fault := &PoolFault{Op: PoolOpSubmit, Err: errors.New("full")}
	assert.ErrorIs(t, fault, ErrPoolFault)
	assert.NotErrorIs(t, fault, ErrTaskFailed)
	assert.Equal(t, "worker pool submit: full", fault.Error())

	wrapped := fmt.Errorf("process %q: %w", "p", fault)
	var got *PoolFault
	require.ErrorAs(t, wrapped, &got)
	assert.Equal(t, PoolOpSubmit, got.Op)
}

func TestGetErrors(t *testing.T) {
	assert.Empty(t, GetErrors(nil))
	single := errors.New("x")
	assert.Equal(t, []error{single}, GetErrors(single))
}
