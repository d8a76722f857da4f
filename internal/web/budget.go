package web

import (
	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/flake"
)

// limit clamps p to the server ranges, then drops recursion levels until a
// frame fits in MaxSegments. Branches are never reduced.
func (s *Server) limit(p config.Params) config.Params {
	p = s.Options.Ranges.Apply(p)
	if s.MaxSegments <= 0 {
		return p
	}
	depth := p.Depth
	for depth > 1 && flake.Count(p.Branches, depth) > s.MaxSegments {
		depth--
	}
	if depth != p.Depth {
		s.Logger.Printf("layers %d with %d branches over budget of %d segments, using %d",
			p.Depth, p.Branches, s.MaxSegments, depth)
		p.Depth = depth
	}
	return p
}

// limitForm is limit applied to a submitted form. The result reads back
// through config.FromForm as the limited parameters.
func (s *Server) limitForm(f formValues) formValues {
	p := s.limit(config.FromForm(f))
	out := formValues{}
	for key, vals := range p.Values() {
		if key == config.KeyDirection {
			continue
		}
		out[key] = vals[0]
	}
	if p.Direction {
		out[config.KeyDirection] = "on"
	}
	return out
}
