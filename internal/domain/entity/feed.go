package entity

// Feed is a synchronous observer list. Subscribers run in subscription order,
// once per Emit.
type Feed[T any] struct {
	next int
	subs []feedSub[T]
}

type feedSub[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it
func (f *Feed[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := f.next
	f.next++
	f.subs = append(f.subs, feedSub[T]{id: id, fn: fn})
	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers v to every subscriber
func (f *Feed[T]) Emit(v T) {
	for _, s := range f.subs {
		s.fn(v)
	}
}

// Len returns the number of subscribers
func (f *Feed[T]) Len() int {
	return len(f.subs)
}
