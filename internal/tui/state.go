package tui

// viewState is the lifecycle of one query as seen by a page.
type viewState int

const (
	stateIdle viewState = iota
	stateLoading
	stateSuccess
	stateError
)

func (s viewState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateSuccess:
		return "success"
	case stateError:
		return "error"
	default:
		return "idle"
	}
}

// queryState holds the last result of a page query. Data is only
// meaningful in stateSuccess.
type queryState[T any] struct {
	state viewState
	data  T
	err   error
}

func (q *queryState[T]) start() {
	q.state = stateLoading
	q.err = nil
}

func (q *queryState[T]) resolve(data T, err error) {
	if err != nil {
		var zero T
		q.state, q.data, q.err = stateError, zero, err
		return
	}
	q.state, q.data, q.err = stateSuccess, data, nil
}

func (q *queryState[T]) reset() {
	*q = queryState[T]{}
}

func (q queryState[T]) loading() bool { return q.state == stateLoading }
func (q queryState[T]) ok() bool      { return q.state == stateSuccess }
func (q queryState[T]) failed() bool  { return q.state == stateError }
