package srv

type Srv struct {
	ai     *AI
	locker SessionLocker
}

type ApplyFunc func(*Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}

	if a.locker == nil {
		a.locker = NewLocalSessionLocker()
	}
	return a
}

func (s *Srv) AI() *AI {
	return s.ai
}

func (s *Srv) SessionLocker() SessionLocker {
	return s.locker
}
