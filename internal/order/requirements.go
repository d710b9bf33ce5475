package order

import (
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
	"github.com/hammamikhairi/vintagevendor/internal/rng"
)

// candidate is a requirement together with where it came from.
type candidate struct {
	req    domain.Requirement
	forced bool
}

// drawRequirements picks 0..min(2, len(pool)) requirements from the pool
// by shuffling it and keeping a prefix.
func drawRequirements(src *rng.Source, pool []domain.Requirement) []domain.Requirement {
	if len(pool) == 0 {
		return nil
	}
	n := src.Intn(0, min(2, len(pool)))
	shuffled := append([]domain.Requirement(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.Intn(0, i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}

// forcedFor returns the requirements an archetype always asks for on a
// dish with the given capability and base temperature.
func forcedFor(arch domain.Archetype, capab recipe.Capability, temp domain.Temperature) []domain.Requirement {
	var out []domain.Requirement
	switch arch {
	case domain.ArchElderly:
		if capab.Spicy {
			out = append(out, domain.ReqNotSpicy)
		}
		if capab.Temperature {
			out = append(out, domain.ReqHot)
		}
	case domain.ArchStudent:
		if capab.Iced && temp == domain.TemperatureCold {
			out = append(out, domain.ReqExtraIce)
		}
		if capab.Spicy {
			out = append(out, domain.ReqSpicy)
		}
	}
	return out
}

// excludes lists requirements that cannot share an item with the key even
// though they sit in different groups. The key wins unless only the other
// side was forced.
var excludes = map[domain.Requirement][]domain.Requirement{
	domain.ReqHot:      {domain.ReqExtraIce, domain.ReqLessIce},
	domain.ReqNotSpicy: {domain.ReqExtraChili},
}

// Resolve merges randomly drawn and forced requirements and enforces the
// conflict groups: at most one member per group survives. A forced member
// beats a drawn one; between members of equal origin the first declared in
// the group wins. Cross-group exclusions follow the same forced-first rule.
// Survivors keep their input order, drawn first, then forced.
func Resolve(drawn, forced []domain.Requirement) []domain.Requirement {
	var cands []candidate
	index := make(map[domain.Requirement]int)
	for _, r := range drawn {
		if _, dup := index[r]; dup || r == domain.ReqUnknown {
			continue
		}
		index[r] = len(cands)
		cands = append(cands, candidate{req: r})
	}
	for _, r := range forced {
		if i, ok := index[r]; ok {
			cands[i].forced = true
			continue
		}
		if r == domain.ReqUnknown {
			continue
		}
		index[r] = len(cands)
		cands = append(cands, candidate{req: r, forced: true})
	}

	// Winner per group.
	winners := make(map[string]candidate)
	for _, c := range cands {
		g, idx, ok := c.req.Group()
		if !ok {
			continue
		}
		w, seen := winners[g]
		if !seen || beats(c, idx, w) {
			winners[g] = c
		}
	}

	dropped := make(map[domain.Requirement]bool)
	for _, c := range cands {
		g, _, ok := c.req.Group()
		if ok && winners[g].req != c.req {
			dropped[c.req] = true
		}
	}

	byReq := make(map[domain.Requirement]candidate, len(cands))
	for _, c := range cands {
		byReq[c.req] = c
	}
	for _, c := range cands {
		if dropped[c.req] {
			continue
		}
		for _, other := range excludes[c.req] {
			o, ok := byReq[other]
			if !ok || dropped[other] {
				continue
			}
			if o.forced && !c.forced {
				dropped[c.req] = true
				break
			}
			dropped[other] = true
		}
	}

	out := make([]domain.Requirement, 0, len(cands))
	for _, c := range cands {
		if !dropped[c.req] {
			out = append(out, c.req)
		}
	}
	return out
}

// beats reports whether c (at group index idx) should replace the current
// group winner w.
func beats(c candidate, idx int, w candidate) bool {
	if c.forced != w.forced {
		return c.forced
	}
	_, widx, _ := w.req.Group()
	return idx < widx
}
