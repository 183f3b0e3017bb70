package chain

// trampoline bounds native stack depth for mutually recursive steps. A call
// made while a step is running is queued; the outermost call drains the
// queue in FIFO order, so steps run in exactly the order they were issued.
type trampoline[T any] struct {
	run     func(T)
	queue   []T
	head    int
	running bool
}

func newTrampoline[T any](run func(T)) *trampoline[T] {
	return &trampoline[T]{run: run}
}

func (t *trampoline[T]) call(v T) {
	t.queue = append(t.queue, v)
	if t.running {
		return
	}

	t.running = true
	defer func() { t.running = false }()

	for t.head < len(t.queue) {
		next := t.queue[t.head]
		var zero T
		t.queue[t.head] = zero
		t.head++
		if t.head == len(t.queue) {
			t.queue = t.queue[:0]
			t.head = 0
		}
		t.run(next)
	}
}

// halt drops every queued step.
func (t *trampoline[T]) halt() {
	clear(t.queue)
	t.queue = t.queue[:0]
	t.head = 0
}

// pending returns the number of queued steps.
func (t *trampoline[T]) pending() int {
	return len(t.queue) - t.head
}
