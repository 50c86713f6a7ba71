// Package distribute turns a requested quantity and an ordered recipient
// list into an integer-exact allocation plan. It is pure computation; the
// loot service feeds its output to the allocation writes.
package distribute

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/kalrend/warchest/internal/domain"
)

// Rule selects how a quantity is split among recipients.
type Rule string

const (
	// RuleAverage floors the per-head share and hands the remainder to
	// the first recipients in input order.
	RuleAverage Rule = "average"
	// RuleRoundRobin is average with a starting offset that advances
	// across successive calls within one batch, so repeated small grants
	// rotate who receives the remainder.
	RuleRoundRobin Rule = "round"
	// RuleValueWeighted weights recipients by the item's unit value.
	RuleValueWeighted Rule = "value"
	// RuleCustomWeighted weights recipients by caller-supplied weights.
	RuleCustomWeighted Rule = "weight"
	// RuleRandom shuffles the recipient order once per batch, then
	// applies the average rule over the shuffled order.
	RuleRandom Rule = "random"
)

// ValidRule reports whether r is a known distribution rule.
func ValidRule(r Rule) bool {
	switch r {
	case RuleAverage, RuleRoundRobin, RuleValueWeighted, RuleCustomWeighted, RuleRandom:
		return true
	}
	return false
}

// minWeight keeps weighted shares away from division by zero.
const minWeight = 0.0001

// Recipient is one candidate for a share. Weight is only consulted by the
// weighted rules.
type Recipient struct {
	ID     string
	Weight float64
}

// Share is one recipient's slice of the plan. Plans never contain
// zero-quantity shares.
type Share struct {
	RecipientID string `json:"character_id"`
	Quantity    int    `json:"quantity"`
}

// Planner holds the per-batch state the stateful rules need: the
// round-robin offset and the one-time shuffle of the random rule. Create
// one Planner per publish or auto-assign batch.
type Planner struct {
	rnd    *rand.Rand
	offset int
	perm   []int
}

// Option configures a Planner.
type Option func(*Planner)

// WithSource injects the randomness source used by RuleRandom, so tests
// can assert specific outcomes.
func WithSource(src rand.Source) Option {
	return func(p *Planner) {
		p.rnd = rand.New(src)
	}
}

// NewPlanner creates a Planner for one distribution batch.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rnd == nil {
		p.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Plan splits quantity among recipients according to rule. The output
// quantities always sum to quantity exactly; a zero quantity or empty
// recipient list yields an empty plan. Callers that require at least one
// eligible recipient must treat the empty-recipients case as
// domain.ErrNoRecipients themselves.
func (p *Planner) Plan(quantity int, recipients []Recipient, rule Rule) ([]Share, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if quantity == 0 || len(recipients) == 0 {
		return nil, nil
	}

	switch rule {
	case RuleAverage:
		return splitEvenly(quantity, recipients, 0), nil
	case RuleRoundRobin:
		shares := splitEvenly(quantity, recipients, p.offset)
		p.offset = (p.offset + quantity) % len(recipients)
		return shares, nil
	case RuleValueWeighted, RuleCustomWeighted:
		return splitByWeight(quantity, recipients), nil
	case RuleRandom:
		return splitEvenly(quantity, p.shuffle(recipients), 0), nil
	default:
		return nil, domain.ErrUnknownRule
	}
}

// shuffle permutes recipients using a permutation drawn once per batch.
// Subsequent calls with the same recipient count reuse it, so every item
// in a batch sees the same random order.
func (p *Planner) shuffle(recipients []Recipient) []Recipient {
	if len(p.perm) != len(recipients) {
		p.perm = p.rnd.Perm(len(recipients))
	}
	out := make([]Recipient, len(recipients))
	for i, j := range p.perm {
		out[i] = recipients[j]
	}
	return out
}

// splitEvenly gives each recipient the floored per-head share and hands
// the remainder out one unit at a time, starting at offset.
func splitEvenly(quantity int, recipients []Recipient, offset int) []Share {
	n := len(recipients)
	base := quantity / n
	remainder := quantity % n

	extra := make([]int, n)
	for i := 0; i < remainder; i++ {
		extra[(offset+i)%n] = 1
	}

	shares := make([]Share, 0, n)
	for i, r := range recipients {
		q := base + extra[i]
		if q > 0 {
			shares = append(shares, Share{RecipientID: r.ID, Quantity: q})
		}
	}
	return shares
}

// splitByWeight apportions quantity proportionally to recipient weights
// using the largest-remainder method: exact floors first, then leftover
// units to the largest fractional parts, ties broken by input order.
func splitByWeight(quantity int, recipients []Recipient) []Share {
	n := len(recipients)
	weights := make([]float64, n)
	var total float64
	for i, r := range recipients {
		weights[i] = math.Max(minWeight, r.Weight)
		total += weights[i]
	}

	type portion struct {
		index    int
		quantity int
		frac     float64
	}
	portions := make([]portion, n)
	assigned := 0
	for i := range recipients {
		exact := float64(quantity) * weights[i] / total
		floor := math.Floor(exact)
		portions[i] = portion{index: i, quantity: int(floor), frac: exact - floor}
		assigned += int(floor)
	}

	// Stable sort keeps input order as the tie-break for equal fractions.
	order := make([]portion, n)
	copy(order, portions)
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].frac > order[b].frac
	})
	for i := 0; i < len(order) && assigned < quantity; i++ {
		portions[order[i].index].quantity++
		assigned++
	}

	shares := make([]Share, 0, n)
	for _, pt := range portions {
		if pt.quantity > 0 {
			shares = append(shares, Share{RecipientID: recipients[pt.index].ID, Quantity: pt.quantity})
		}
	}
	return shares
}
