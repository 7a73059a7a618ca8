package authz

// Scope field names shared between the filter engine and store adapters.
// Adapters that have no mapping for a referenced field must treat the term
// as matching nothing.
const (
	FieldID                 = "id"
	FieldSchoolID           = "school_id"
	FieldGradeID            = "grade_id"
	FieldTeacherID          = "teacher_id"
	FieldStudentID          = "student_id"
	FieldCreatedByTeacherID = "created_by_teacher_id"
	FieldIsPublished        = "is_published"
)

// PredKind tags the predicate variant.
type PredKind int

const (
	PredAll PredKind = iota // matches every row; the zero predicate
	PredNone
	PredEq
	PredAnd
	PredOr
)

// FieldGetter exposes a row's scope fields for in-memory evaluation.
// The second return value is false when the row has no such field.
type FieldGetter interface {
	ScopeField(name string) (any, bool)
}

// Predicate is a composable row filter: always-true, always-false, a single
// field equality, or a conjunction/disjunction of sub-predicates. Store
// adapters either evaluate it in memory or compile it to a query clause.
type Predicate struct {
	kind  PredKind
	field string
	value any
	subs  []Predicate
}

// All matches every row. This is the only bypass predicate.
func All() Predicate { return Predicate{kind: PredAll} }

// None matches no row (fail closed).
func None() Predicate { return Predicate{kind: PredNone} }

// FieldEq matches rows whose named scope field equals value.
func FieldEq(field string, value any) Predicate {
	return Predicate{kind: PredEq, field: field, value: value}
}

// Kind returns the variant tag.
func (p Predicate) Kind() PredKind { return p.kind }

// Field returns the field name of a PredEq predicate.
func (p Predicate) Field() string { return p.field }

// Value returns the comparison value of a PredEq predicate.
func (p Predicate) Value() any { return p.value }

// Subs returns the children of a PredAnd/PredOr predicate.
func (p Predicate) Subs() []Predicate { return p.subs }

// IsAll reports whether p matches everything.
func (p Predicate) IsAll() bool { return p.kind == PredAll }

// IsNone reports whether p matches nothing.
func (p Predicate) IsNone() bool { return p.kind == PredNone }

// And conjoins p with q, normalizing the trivial cases. Conjunction only ever
// narrows: All is the identity and None absorbs everything.
func (p Predicate) And(q Predicate) Predicate {
	switch {
	case p.IsNone() || q.IsNone():
		return None()
	case p.IsAll():
		return q
	case q.IsAll():
		return p
	}
	// Flatten nested conjunctions so compiled clauses stay shallow.
	var subs []Predicate
	if p.kind == PredAnd {
		subs = append(subs, p.subs...)
	} else {
		subs = append(subs, p)
	}
	if q.kind == PredAnd {
		subs = append(subs, q.subs...)
	} else {
		subs = append(subs, q)
	}
	return Predicate{kind: PredAnd, subs: subs}
}

// AnyOf disjoins the given predicates, normalizing trivial cases.
func AnyOf(ps ...Predicate) Predicate {
	var subs []Predicate
	for _, p := range ps {
		if p.IsAll() {
			return All()
		}
		if p.IsNone() {
			continue
		}
		subs = append(subs, p)
	}
	switch len(subs) {
	case 0:
		return None()
	case 1:
		return subs[0]
	}
	return Predicate{kind: PredOr, subs: subs}
}

// Matches evaluates p against a row. An equality term referencing a field the
// row does not expose matches nothing.
func (p Predicate) Matches(row FieldGetter) bool {
	switch p.kind {
	case PredAll:
		return true
	case PredNone:
		return false
	case PredEq:
		v, ok := row.ScopeField(p.field)
		return ok && v == p.value
	case PredAnd:
		for _, s := range p.subs {
			if !s.Matches(row) {
				return false
			}
		}
		return true
	case PredOr:
		for _, s := range p.subs {
			if s.Matches(row) {
				return true
			}
		}
		return false
	}
	return false
}
