package rating

// formWindow is a fixed-capacity FIFO of recent results.
type formWindow struct {
	results []int
	start   int
	size    int
}

func newFormWindow(capacity int) *formWindow {
	return &formWindow{results: make([]int, capacity)}
}

func (w *formWindow) push(result int) {
	capacity := len(w.results)
	if w.size < capacity {
		w.results[(w.start+w.size)%capacity] = result
		w.size++
		return
	}
	// Full: overwrite the oldest entry.
	w.results[w.start] = result
	w.start = (w.start + 1) % capacity
}

// mean returns the share of wins in the window, 0.5 when empty.
func (w *formWindow) mean() float64 {
	if w.size == 0 {
		return 0.5
	}
	sum := 0
	for i := 0; i < w.size; i++ {
		sum += w.results[(w.start+i)%len(w.results)]
	}
	return float64(sum) / float64(w.size)
}

// values returns the window contents oldest first.
func (w *formWindow) values() []int {
	out := make([]int, w.size)
	for i := range out {
		out[i] = w.results[(w.start+i)%len(w.results)]
	}
	return out
}

func (w *formWindow) reset() {
	w.start = 0
	w.size = 0
}
