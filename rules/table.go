package rules

import (
	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/unit"
)

// Table is the ordered rule registry. Base rules live in a fixed array
// indexed by dimension, dynamic rules (gram included) in a slice kept in
// definition order, and index maps every live symbol to its rule.
type Table struct {
	base     [unit.NumDimensions]*Rule
	dynamic  []*Rule
	index    map[string]*Rule
	prefixes []Prefix
	trace    *diag.Tracer
	closed   bool
}

// NewTable builds a table seeded with the base rules, the built-in gram rule
// and the SI prefix list.
//
// Implementation:
//   - Stage 1: one forced basis-vector rule per dimension, in enum order.
//   - Stage 2: the forced gram rule, first entry of the dynamic tier.
//   - Stage 3: a private copy of SIPrefixes.
//
// Complexity:
//   - Time O(D + P), Space O(D + P).
func NewTable(opts ...Option) *Table {
	t := &Table{index: make(map[string]*Rule)}
	for _, opt := range opts {
		opt(t)
	}

	t.trace.Debug("rules", "initializing base rules")
	for _, d := range unit.Dimensions() {
		r := &Rule{Symbol: d.Symbol(), Unit: unit.Base(d), Force: true, Tier: TierBase}
		t.base[d] = r
		t.index[r.Symbol] = r
	}
	t.seedBuiltins()

	t.prefixes = make([]Prefix, len(SIPrefixes))
	copy(t.prefixes, SIPrefixes)
	t.trace.Debug("rules", "table initialized", "rules", t.Len(), "prefixes", len(t.prefixes))

	return t
}

func (t *Table) seedBuiltins() {
	t.append(&Rule{Symbol: GramSymbol, Unit: gram(), Force: true, Tier: TierBuiltin})
}

func (t *Table) usable(op string) error {
	if t == nil {
		return diag.Errorf(diag.InvalidArgument, op, "nil rule table")
	}
	if t.closed {
		return diag.Errorf(diag.InvalidArgument, op, "rule table is closed")
	}
	return nil
}

// Lookup returns the rule bound to sym.
// Complexity: O(1).
func (t *Table) Lookup(sym string) (Rule, bool) {
	if t.usable("rules.lookup") != nil {
		return Rule{}, false
	}
	r, ok := t.index[sym]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// Prefix returns the prefix registered for c.
// Complexity: O(P).
func (t *Table) Prefix(c byte) (Prefix, bool) {
	if t.usable("rules.prefix") != nil {
		return Prefix{}, false
	}
	for _, p := range t.prefixes {
		if p.Symbol == c {
			return p, true
		}
	}
	return Prefix{}, false
}

// Add appends a dynamic rule at the tail of the table.
//
// Errors:
//   - ErrInvalidArgument if sym is empty or the table is closed.
//   - ErrRuleConflict if sym is already bound.
//
// Complexity: O(1) amortized.
func (t *Table) Add(sym string, u unit.Unit, force bool) (Rule, error) {
	const op = "rules.add"
	if err := t.usable(op); err != nil {
		return Rule{}, err
	}
	if sym == "" {
		return Rule{}, diag.Errorf(diag.InvalidArgument, op, "empty symbols are not allowed")
	}
	if _, exists := t.index[sym]; exists {
		return Rule{}, diag.Errorf(diag.RuleConflict, op, "symbol '%s' is already defined", sym)
	}
	r := &Rule{Symbol: sym, Unit: u, Force: force, Tier: TierDynamic}
	t.append(r)
	if t.trace.Enabled() {
		t.trace.Debug("rules", "rule added", "symbol", sym, "unit", u.String(), "force", force)
	}
	return *r, nil
}

// Remove unlinks a dynamic, non-forced rule.
//
// Errors:
//   - ErrRuleConflict if the rule is forced (every base rule is).
//   - ErrInvalidArgument if no rule is bound to sym.
//
// Complexity: O(R).
func (t *Table) Remove(sym string) error {
	const op = "rules.remove"
	if err := t.usable(op); err != nil {
		return err
	}
	r, ok := t.index[sym]
	if !ok {
		return diag.Errorf(diag.InvalidArgument, op, "rule '%s' not found", sym)
	}
	if r.Force || r.Tier != TierDynamic {
		return diag.Errorf(diag.RuleConflict, op, "cannot remove forced rule '%s'", sym)
	}
	t.detach(r)
	t.trace.Debug("rules", "rule removed", "symbol", sym)
	return nil
}

// Define binds sym to the unit produced by eval, applying the redefinition
// policy of the rule language:
//
//   - an existing forced rule can never be redefined;
//   - an existing non-forced rule is only replaced when force is true;
//   - the old binding is removed before eval runs, so eval cannot see it
//     (this is what makes "!R = R" fail);
//   - if eval fails the old binding is put back at its original position
//     and the table is left exactly as it was.
//
// Complexity: O(R) plus the cost of eval.
func (t *Table) Define(sym string, force bool, eval func() (unit.Unit, error)) (Rule, error) {
	const op = "rules.define"
	if err := t.usable(op); err != nil {
		return Rule{}, err
	}
	if sym == "" {
		return Rule{}, diag.Errorf(diag.InvalidArgument, op, "empty symbols are not allowed")
	}
	if eval == nil {
		return Rule{}, diag.Errorf(diag.InvalidArgument, op, "nil evaluator")
	}

	var restore func()
	if old, ok := t.index[sym]; ok {
		if old.Force || !force {
			return Rule{}, diag.Errorf(diag.RuleConflict, op, "you may not redefine '%s'", sym)
		}
		pos := t.detach(old)
		restore = func() { t.insert(pos, old) }
		t.trace.Debug("rules", "old rule detached for forced redefinition", "symbol", sym)
	}

	u, err := eval()
	if err != nil {
		if restore != nil {
			restore()
		}
		return Rule{}, err
	}
	r := &Rule{Symbol: sym, Unit: u, Force: force, Tier: TierDynamic}
	t.append(r)
	if t.trace.Enabled() {
		t.trace.Debug("rules", "rule defined", "symbol", sym, "unit", u.String(), "force", force)
	}
	return *r, nil
}

// Resolve maps a symbol, optionally carrying one prefix character, to its
// unit and prefix multiplier (1 when no prefix applied).
//
// Implementation:
//   - Stage 1: exact rule match.
//   - Stage 2: first byte as prefix, remainder as an exact rule.
//
// Errors:
//   - ErrUnknownSymbol if neither reading resolves.
func (t *Table) Resolve(sym string) (unit.Unit, float64, error) {
	const op = "rules.resolve"
	if err := t.usable(op); err != nil {
		return unit.Unit{}, 0, err
	}
	if r, ok := t.index[sym]; ok {
		return r.Unit, 1, nil
	}
	if sym == "" {
		return unit.Unit{}, 0, diag.Errorf(diag.UnknownSymbol, op, "empty symbol")
	}

	p, ok := t.Prefix(sym[0])
	if !ok {
		return unit.Unit{}, 0, diag.Errorf(diag.UnknownSymbol, op, "unknown symbol '%s'", sym)
	}
	t.trace.Debug("rules", "trying prefix", "prefix", string(sym[0]), "rest", sym[1:])
	r, ok := t.index[sym[1:]]
	if !ok {
		return unit.Unit{}, 0, diag.Errorf(diag.UnknownSymbol, op,
			"unknown symbol '%s' with prefix '%c'", sym[1:], sym[0])
	}
	return r.Unit, p.Value, nil
}

// Reduce returns the first rule, base tier first and then in definition
// order, whose exponent vector equals u's. The factor is ignored.
// Complexity: O(D + R).
func (t *Table) Reduce(u unit.Unit) (Rule, bool) {
	if t.usable("rules.reduce") != nil {
		return Rule{}, false
	}
	for _, r := range t.base {
		if r.Unit.Exps == u.Exps {
			return *r, true
		}
	}
	for _, r := range t.dynamic {
		if r.Unit.Exps == u.Exps {
			return *r, true
		}
	}
	return Rule{}, false
}

// Rules returns a snapshot of every rule in resolution order.
func (t *Table) Rules() []Rule {
	if t.usable("rules.list") != nil {
		return nil
	}
	out := make([]Rule, 0, t.Len())
	for _, r := range t.base {
		out = append(out, *r)
	}
	for _, r := range t.dynamic {
		out = append(out, *r)
	}
	return out
}

// Prefixes returns a copy of the prefix list.
func (t *Table) Prefixes() []Prefix {
	if t.usable("rules.prefixes") != nil {
		return nil
	}
	out := make([]Prefix, len(t.prefixes))
	copy(out, t.prefixes)
	return out
}

// Len returns the number of live rules, base tier included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Reset drops every dynamic rule and re-seeds the built-in gram rule.
func (t *Table) Reset() error {
	if err := t.usable("rules.reset"); err != nil {
		return err
	}
	for _, r := range t.dynamic {
		delete(t.index, r.Symbol)
	}
	t.dynamic = nil
	t.seedBuiltins()
	t.trace.Debug("rules", "dynamic rules reset")
	return nil
}

// Close releases the dynamic rules and the prefix list. Any later call
// fails with ErrInvalidArgument. Closing twice is a no-op.
func (t *Table) Close() error {
	if t == nil || t.closed {
		return nil
	}
	t.dynamic = nil
	t.prefixes = nil
	t.index = nil
	t.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (t *Table) Closed() bool {
	return t != nil && t.closed
}

func (t *Table) append(r *Rule) {
	t.dynamic = append(t.dynamic, r)
	t.index[r.Symbol] = r
}

// detach unlinks r from the dynamic tier and returns its former position.
func (t *Table) detach(r *Rule) int {
	for i, cur := range t.dynamic {
		if cur == r {
			t.dynamic = append(t.dynamic[:i], t.dynamic[i+1:]...)
			delete(t.index, r.Symbol)
			return i
		}
	}
	return -1
}

// insert puts r back at position pos of the dynamic tier.
func (t *Table) insert(pos int, r *Rule) {
	if pos < 0 || pos > len(t.dynamic) {
		pos = len(t.dynamic)
	}
	t.dynamic = append(t.dynamic, nil)
	copy(t.dynamic[pos+1:], t.dynamic[pos:])
	t.dynamic[pos] = r
	t.index[r.Symbol] = r
}
