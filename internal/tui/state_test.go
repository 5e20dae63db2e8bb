package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryState_Transitions(t *testing.T) {
	var q queryState[[]string]
	assert.Equal(t, stateIdle, q.state)

	q.start()
	assert.True(t, q.loading())

	q.resolve([]string{"a"}, nil)
	assert.True(t, q.ok())
	assert.Equal(t, []string{"a"}, q.data)

	q.start()
	q.resolve([]string{"ignored"}, errors.New("boom"))
	assert.True(t, q.failed())
	assert.Nil(t, q.data)
	assert.EqualError(t, q.err, "boom")

	q.start()
	assert.NoError(t, q.err)

	q.reset()
	assert.Equal(t, stateIdle, q.state)
}

func TestViewState_String(t *testing.T) {
	assert.Equal(t, "idle", stateIdle.String())
	assert.Equal(t, "loading", stateLoading.String())
	assert.Equal(t, "success", stateSuccess.String())
	assert.Equal(t, "error", stateError.String())
}

func TestPageScope_Generations(t *testing.T) {
	var s pageScope
	assert.False(t, s.current(0))

	s.open(t.Context())
	first := s.gen
	ctx := s.ctx
	assert.True(t, s.current(first))

	s.open(t.Context())
	assert.False(t, s.current(first))
	assert.Error(t, ctx.Err())

	s.close()
	assert.False(t, s.current(s.gen))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "hello world", fitText("hello\n  world", 20))
	assert.Equal(t, "héllo...", fitText("héllo wörld", 8))
	assert.Equal(t, "abc", fitText("abcdef", 3))
	assert.Equal(t, "abcdef", fitText("abcdef", 0))
}
