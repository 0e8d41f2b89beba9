package physics

// Integrate advances every dynamic body by one explicit Euler step of dt.
// Walls never move. Bodies for which frozen returns true are treated as
// immovable for this step; frozen may be nil.
func Integrate(s *Store, dt float64, frozen func(*Body) bool) {
	s.Iter().Each(func(b *Body) {
		switch b.Kind {
		case KindWall:
			return
		case KindBall, KindPaddle:
			if frozen != nil && frozen(b) {
				return
			}
			b.Position = b.Position.Add(b.Velocity.Mul(dt))
		}
	})
}
