package funnel

import "time"

// minimumNotice is how far ahead of now the proposed call date sits.
const minimumNotice = 24 * time.Hour

// ProposeSlots fills in the morning/afternoon slot pair and the date label
// for the next booking attempt. It is idempotent: once the lead carries
// slots they are never regenerated, so previously announced times cannot
// change underneath the visitor.
func (e *Engine) ProposeSlots(lead *LeadState) {
	if len(lead.ProposedSlots) > 0 {
		return
	}

	target := e.now().Add(minimumNotice)
	lead.ProposedDateLabel = e.pack.weekdays[int(target.Weekday())]
	lead.ProposedSlots = []string{
		e.pickSlot(e.pack.morningSlots),
		e.pickSlot(e.pack.afternoonSlots),
	}
}

// pickSlot draws uniformly from the pool, skipping taken slots when a filter
// is injected. A filter that rejects the whole pool is ignored rather than
// leaving the visitor with nothing to pick.
func (e *Engine) pickSlot(pool []string) string {
	eligible := pool
	if e.taken != nil {
		open := make([]string, 0, len(pool))
		for _, slot := range pool {
			if !e.taken(slot) {
				open = append(open, slot)
			}
		}
		if len(open) > 0 {
			eligible = open
		}
	}
	return eligible[e.rng.Intn(len(eligible))]
}
