package a

type app struct{}

func (app) QueueUpdate(f func())     { f() }
func (app) QueueUpdateDraw(f func()) { f() }

type state struct{}

type store struct{}

func (store) Subscribe(fn func(state)) func() { return func() {} }
func (store) BeginLoad()                      {}
func (store) ReceiveImages(ids []string)      {}
func (store) RemoveImagesByID(ids []string)   {}
func (store) Snapshot() state                 { return state{} }

type relay struct{}

func (relay) push(state) {}

func nested(a app) {
	a.QueueUpdateDraw(func() {
		a.QueueUpdateDraw(func() {}) // want `nested QueueUpdateDraw inside QueueUpdateDraw callback can deadlock tview`
	})

	a.QueueUpdate(func() {
		a.QueueUpdateDraw(func() {}) // want `nested QueueUpdateDraw inside QueueUpdate callback`
	})
}

func goroutineIsFine(a app) {
	a.QueueUpdateDraw(func() {
		go func() {
			a.QueueUpdateDraw(func() {})
		}()
	})
}

func observers(a app, s store, r relay) {
	s.Subscribe(func(st state) {
		a.QueueUpdateDraw(func() {}) // want `QueueUpdateDraw inside a Subscribe callback blocks the notifier`
	})

	s.Subscribe(func(st state) {
		s.RemoveImagesByID(nil) // want `store action RemoveImagesByID inside a Subscribe callback re-enters notification`
		s.BeginLoad()           // want `store action BeginLoad`
	})

	s.Subscribe(func(st state) {
		_ = s.Snapshot()
		r.push(st)
	})

	s.Subscribe(r.push)
}
