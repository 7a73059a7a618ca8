package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeRow exposes scope fields from a plain map for predicate evaluation.
type fakeRow map[string]any

func (r fakeRow) ScopeField(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

func TestZeroPredicateMatchesEverything(t *testing.T) {
	var p Predicate
	require.True(t, p.IsAll())
	require.True(t, p.Matches(fakeRow{}))
}

func TestAndNormalization(t *testing.T) {
	id := uuid.New()
	eq := FieldEq(FieldSchoolID, id)

	require.Equal(t, eq, All().And(eq), "All is the left identity")
	require.Equal(t, eq, eq.And(All()), "All is the right identity")
	require.True(t, eq.And(None()).IsNone(), "None absorbs")
	require.True(t, None().And(eq).IsNone(), "None absorbs")
	require.True(t, All().And(All()).IsAll())
}

func TestAndFlattensConjunctions(t *testing.T) {
	a := FieldEq(FieldSchoolID, uuid.New())
	b := FieldEq(FieldGradeID, uuid.New())
	c := FieldEq(FieldStudentID, uuid.New())

	p := a.And(b).And(c)
	require.Equal(t, PredAnd, p.Kind())
	require.Len(t, p.Subs(), 3, "nested conjunctions flatten")
}

func TestAnyOfNormalization(t *testing.T) {
	eq := FieldEq(FieldTeacherID, uuid.New())

	require.True(t, AnyOf().IsNone(), "empty disjunction matches nothing")
	require.True(t, AnyOf(None(), None()).IsNone())
	require.True(t, AnyOf(eq, All()).IsAll(), "All short-circuits")
	require.Equal(t, eq, AnyOf(None(), eq), "single surviving branch collapses")

	p := AnyOf(eq, FieldEq(FieldCreatedByTeacherID, uuid.New()))
	require.Equal(t, PredOr, p.Kind())
	require.Len(t, p.Subs(), 2)
}

func TestMatchesFieldEquality(t *testing.T) {
	schoolID := uuid.New()
	row := fakeRow{FieldSchoolID: schoolID}

	require.True(t, FieldEq(FieldSchoolID, schoolID).Matches(row))
	require.False(t, FieldEq(FieldSchoolID, uuid.New()).Matches(row))
}

func TestMatchesMissingFieldIsFalse(t *testing.T) {
	row := fakeRow{FieldSchoolID: uuid.New()}
	require.False(t, FieldEq(FieldTeacherID, uuid.New()).Matches(row),
		"a field the row does not expose matches nothing")
}

func TestMatchesJunctions(t *testing.T) {
	schoolID := uuid.New()
	gradeID := uuid.New()
	row := fakeRow{FieldSchoolID: schoolID, FieldGradeID: gradeID}

	and := FieldEq(FieldSchoolID, schoolID).And(FieldEq(FieldGradeID, gradeID))
	require.True(t, and.Matches(row))

	and = FieldEq(FieldSchoolID, schoolID).And(FieldEq(FieldGradeID, uuid.New()))
	require.False(t, and.Matches(row))

	or := AnyOf(FieldEq(FieldGradeID, uuid.New()), FieldEq(FieldSchoolID, schoolID))
	require.True(t, or.Matches(row))

	or = AnyOf(FieldEq(FieldGradeID, uuid.New()), FieldEq(FieldSchoolID, uuid.New()))
	require.False(t, or.Matches(row))
}

func TestMatchesAllAndNone(t *testing.T) {
	row := fakeRow{}
	require.True(t, All().Matches(row))
	require.False(t, None().Matches(row))
}
